// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package stub

import (
	"fmt"
	"time"

	"github.com/jasl/moya/endpoint"
)

// A Behavior directs how the provider dispatches a single request:
// over the real transport, or as a synthetic response produced from the
// endpoint's sample closure, either right away or after a delay.
//
// The zero value of Behavior is Never.
type Behavior struct {
	kind  kind
	delay time.Duration
}

type kind int

const (
	never kind = iota
	immediate
	delayed
)

var kindNames = []string{
	"Never",
	"Immediate",
	"Delayed",
}

// Never directs the provider to send the request over the real
// transport. It is the only behavior that reaches the network.
var Never = Behavior{kind: never}

// Immediate directs the provider to evaluate the endpoint's sample
// closure synchronously, within the dispatching call itself.
var Immediate = Behavior{kind: immediate}

// Delayed returns a behavior directing the provider to evaluate the
// endpoint's sample closure after waiting d, simulating network
// latency. The wait is scheduled on the provider's queue, so a
// cancellation requested during the wait is honored when the stub
// fires. A non-positive d behaves like Immediate.
func Delayed(d time.Duration) Behavior {
	return Behavior{kind: delayed, delay: d}
}

// Real reports whether the behavior routes the request to the real
// transport rather than the stub dispatcher.
func (b Behavior) Real() bool {
	return b.kind == never
}

// Delay returns the stub delay. It is zero for Never and Immediate.
func (b Behavior) Delay() time.Duration {
	return b.delay
}

// String returns the name of the behavior.
func (b Behavior) String() string {
	if b.kind == delayed {
		return fmt.Sprintf("%s(%s)", kindNames[delayed], b.delay)
	}
	return kindNames[b.kind]
}

// A Policy decides, per request, whether the provider stubs the
// request or sends it over the real transport.
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines.
type Policy interface {
	// Behavior returns the stub behavior to apply to a request for the
	// given target.
	Behavior(t endpoint.Target) Behavior
}

// The PolicyFunc type is an adapter to allow the use of ordinary
// functions as stub policies.
type PolicyFunc func(endpoint.Target) Behavior

// Behavior calls f(t).
func (f PolicyFunc) Behavior(t endpoint.Target) Behavior {
	return f(t)
}

// DefaultPolicy is the default stub policy. It never stubs: every
// request is sent over the real transport.
var DefaultPolicy Policy = Always(Never)

// NeverStub is a built-in policy that sends every request over the
// real transport. It is the same policy as DefaultPolicy.
var NeverStub Policy = Always(Never)

// ImmediateStub is a built-in policy that stubs every request
// synchronously.
var ImmediateStub Policy = Always(Immediate)

// DelayedStub returns a policy that stubs every request after waiting
// d.
func DelayedStub(d time.Duration) Policy {
	return Always(Delayed(d))
}

// Always returns a policy that applies the same behavior to every
// request.
func Always(b Behavior) Policy {
	return always(b)
}

type always Behavior

func (a always) Behavior(endpoint.Target) Behavior {
	return Behavior(a)
}
