// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package moya

import (
	"sync"
	"time"
)

// A Queue is the single cooperative scheduling context on which a
// provider runs everything user-visible: plugin notifications, stub
// evaluation, delayed stub firings, and completion callbacks. The
// transport performs its I/O on worker goroutines, but results are
// marshaled back onto the queue before any user code runs, so plugin
// hooks never run concurrently with each other or with a completion.
//
// The zero value is a valid, empty queue. A Queue may be shared by any
// number of providers; sharing one queue serializes their callbacks
// with respect to each other.
type Queue struct {
	mu       sync.Mutex
	backlog  []func()
	draining bool
}

var defaultQueue = &Queue{}

// DefaultQueue returns the package-level queue used by providers whose
// Queue field is nil.
func DefaultQueue() *Queue {
	return defaultQueue
}

// Do runs fn on the queue.
//
// If the queue is idle, the calling goroutine drains it: fn (and any
// work fn itself enqueues) runs before Do returns. If another
// goroutine is already draining, fn is appended to the backlog and
// runs on that goroutine; Do returns without waiting. Either way no
// two functions ever run concurrently, and functions enqueued from
// within a running function run in enqueue order on the same drain.
func (q *Queue) Do(fn func()) {
	if fn == nil {
		panic("moya: nil queue function")
	}
	q.mu.Lock()
	q.backlog = append(q.backlog, fn)
	if q.draining {
		q.mu.Unlock()
		return
	}
	q.draining = true
	for len(q.backlog) > 0 {
		next := q.backlog[0]
		q.backlog = q.backlog[1:]
		q.mu.Unlock()
		next()
		q.mu.Lock()
	}
	q.draining = false
	q.mu.Unlock()
}

// After schedules fn to run on the queue once d has elapsed. The timer
// fires on its own goroutine and immediately hands fn to Do, so fn
// still runs under the queue's serialization guarantee. A non-positive
// d runs fn via Do directly.
func (q *Queue) After(d time.Duration, fn func()) {
	if fn == nil {
		panic("moya: nil queue function")
	}
	if d <= 0 {
		q.Do(fn)
		return
	}
	time.AfterFunc(d, func() {
		q.Do(fn)
	})
}
