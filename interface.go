// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package moya

import (
	"context"

	"github.com/jasl/moya/endpoint"
)

// A Completion receives the single Result of a dispatched request. It
// runs on the provider's queue, after all plugins' DidReceive hooks,
// and fires exactly once per Request call.
type Completion func(Result)

// Requester is the interface that wraps the basic Request method.
//
// Request dispatches the request described by the target and returns a
// cancellation handle. Provider implements the Requester interface,
// and any other Requester implementation must behave substantially the
// same as Provider.Request.
type Requester interface {
	Request(t endpoint.Target, completion Completion) Cancellable
}

// Await uses the specified Requester to dispatch the target and blocks
// until the result is delivered or ctx is done, whichever comes first.
// If ctx is done first, Await cancels the in-flight request and still
// waits for the single completion, returning the cancellation-flavored
// result it carries.
//
// Await must not be called from a plugin hook or a completion
// callback, since those already run on the provider's queue.
func Await(ctx context.Context, r Requester, t endpoint.Target) Result {
	ch := make(chan Result, 1)
	tok := r.Request(t, func(res Result) {
		ch <- res
	})
	select {
	case res := <-ch:
		return res
	case <-ctx.Done():
		tok.Cancel()
		return <-ch
	}
}
