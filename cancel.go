// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package moya

import (
	"sync"
)

// Cancellable is the handle a provider returns from Request. It lets
// the caller cancel the request at any point before its completion
// callback has fired.
//
// Cancel is idempotent and safe to call from any goroutine, including
// concurrently with the dispatch it cancels. Cancelling after the
// completion callback has fired has no observable effect.
type Cancellable interface {
	// Cancel requests cancellation of the in-flight request.
	Cancel()

	// IsCancelled reports whether Cancel has been called.
	IsCancelled() bool
}

// A token is the provider's Cancellable implementation: a small state
// machine jointly owned by the caller (who may cancel) and the
// provider (who attaches the transport-level cancel function once real
// dispatch begins, and marks the token complete when the result is
// committed).
//
// A cancel requested before attachment must still take effect, so
// Cancel flips a persistent flag and attach forwards to the attached
// function immediately when the flag is already set.
type token struct {
	mu        sync.Mutex
	cancelled bool
	completed bool
	cancelFn  func()
}

func newToken() *token {
	return &token{}
}

func (t *token) Cancel() {
	t.mu.Lock()
	if t.cancelled || t.completed {
		t.mu.Unlock()
		return
	}
	t.cancelled = true
	fn := t.cancelFn
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (t *token) IsCancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// attach installs the lower-level cancel function, typically the
// context.CancelFunc governing a transport request. If the token was
// cancelled before attachment, fn is invoked right away.
func (t *token) attach(fn func()) {
	t.mu.Lock()
	t.cancelFn = fn
	pending := t.cancelled && !t.completed
	t.mu.Unlock()
	if pending && fn != nil {
		fn()
	}
}

// complete transitions the token to its terminal state and reports
// whether the caller won the single-fire race. The provider delivers
// the result only when complete returns true, which is what makes the
// completion callback fire exactly once per request.
func (t *token) complete() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.completed {
		return false
	}
	t.completed = true
	return true
}
