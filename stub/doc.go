// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package stub defines flexible policies for deciding, request by
// request, whether the provider performs real network I/O or serves a
// synthetic response from the endpoint's sample closure. A generic
// interface for stub policies is provided, Policy, along with the
// behavior variants (Never, Immediate, Delayed) and several built-in
// policies.
package stub
