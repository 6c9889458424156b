// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package plugins contains ready-made plugins for a moya.Provider: a
// structured request logger built on apex/log, a Prometheus metrics
// collector, and a network-activity notifier for driving activity
// indicators. Register them on a provider's plugin list alongside any
// custom plugins.
package plugins
