// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package moya

import (
	"errors"
	"fmt"
)

// ErrUnknownNetwork is the cause recorded on an Underlying error when
// the transport misbehaves by returning neither a response nor an
// error.
var ErrUnknownNetwork = errors.New("moya: unknown network failure")

// An ErrKind classifies a request failure. Every failed request
// produces exactly one *Error carrying exactly one kind.
type ErrKind int

const (
	// BuildingRequestFailed indicates the target-to-endpoint mapping
	// or the endpoint-to-request conversion failed; the request never
	// reached the transport or the stub dispatcher.
	BuildingRequestFailed ErrKind = iota
	// ResponseFailed indicates a response was received but rejected,
	// for example by a status code filter.
	ResponseFailed
	// UnexpectedBackendFailure indicates a response was received but
	// its body could not be decoded as expected.
	UnexpectedBackendFailure
	// Aborted indicates the caller abandoned the request at the
	// application level, as distinct from cancelling the token.
	Aborted
	// Cancelled indicates the request's token was cancelled before a
	// result was committed. Both the real and the stub dispatch paths
	// report cancellation with this kind.
	Cancelled
	// Underlying wraps any lower-level transport error, including
	// OS-level network errors.
	Underlying
	// kindSentinel provides the total number of kinds typed as an
	// ErrKind.
	kindSentinel

	// numKinds provides the total number of kinds as an int.
	numKinds = int(kindSentinel)
)

var kindNames = []string{
	"BuildingRequestFailed",
	"ResponseFailed",
	"UnexpectedBackendFailure",
	"Aborted",
	"Cancelled",
	"Underlying",
}

// Name returns the name of the error kind.
func (k ErrKind) Name() string {
	return kindNames[int(k)]
}

// String returns the name of the error kind.
func (k ErrKind) String() string {
	return k.Name()
}

// An Error is the failure variant of a Result. It pairs an ErrKind
// with the lower-level cause, if any.
//
// Use errors.Is with an *Error target to test for a kind:
//
//	if errors.Is(result.Err, &moya.Error{Kind: moya.Cancelled}) {
//		...
//	}
type Error struct {
	// Kind classifies the failure.
	Kind ErrKind

	// Cause is the lower-level error that produced the failure. It may
	// be nil.
	Cause error
}

// NewError returns an *Error with the given kind and cause.
func NewError(kind ErrKind, cause error) *Error {
	if int(kind) < 0 || int(kind) >= numKinds {
		panic(fmt.Sprintf("moya: invalid error kind %d", int(kind)))
	}
	return &Error{Kind: kind, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause == nil {
		return "moya: " + e.Kind.Name()
	}
	return fmt.Sprintf("moya: %s: %v", e.Kind, e.Cause)
}

// Unwrap returns the lower-level cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind, making
// *Error compatible with errors.Is kind tests.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}
