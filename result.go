// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package moya

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// A Response is the success variant of a Result: a received (or
// stubbed) HTTP response with its body fully buffered.
type Response struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Body is the complete, buffered response body. It may be empty
	// but, on a Response delivered by a provider, never reflects a
	// partial read.
	Body []byte

	// Request is the request that produced the response. For stubbed
	// responses it is the notification-only request built for the
	// plugins.
	Request *http.Request

	// RawResponse is the transport's response handle. It is nil for
	// stubbed responses. Its body has already been consumed and
	// closed.
	RawResponse *http.Response
}

// Header returns the HTTP response headers. If the response was
// stubbed there is no transport response, and the nil header is
// returned.
//
// Note that a nil return value is always safe for read-only
// operations, since http.Header is a map type.
func (r *Response) Header() http.Header {
	if r.RawResponse == nil {
		var nilHeader http.Header
		return nilHeader
	}
	return r.RawResponse.Header
}

// FilterStatusCodes returns the response unchanged if its status code
// lies in the closed range [lo, hi], and a ResponseFailed error
// otherwise.
func (r *Response) FilterStatusCodes(lo, hi int) (*Response, error) {
	if r.StatusCode < lo || r.StatusCode > hi {
		return nil, NewError(ResponseFailed, fmt.Errorf("status code %d outside %d...%d", r.StatusCode, lo, hi))
	}
	return r, nil
}

// FilterSuccessfulStatusCodes returns the response unchanged if its
// status code is in the 2xx range, and a ResponseFailed error
// otherwise.
func (r *Response) FilterSuccessfulStatusCodes() (*Response, error) {
	return r.FilterStatusCodes(200, 299)
}

// MapJSON decodes the response body as JSON into v. A decoding failure
// is reported as an UnexpectedBackendFailure error.
func (r *Response) MapJSON(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return NewError(UnexpectedBackendFailure, err)
	}
	return nil
}

// MapString returns the response body as a string.
func (r *Response) MapString() string {
	return string(r.Body)
}

// A Result is the two-variant outcome of one dispatched request:
// either a Response or an error, never both and never neither. The
// provider delivers exactly one Result per request, to the plugins'
// DidReceive hook and then to the completion callback.
type Result struct {
	// Response is the success variant. It is nil when Err is non-nil.
	Response *Response

	// Err is the failure variant. Whenever it is non-nil it has type
	// *Error.
	Err error
}

// Ok reports whether the result is the success variant.
func (r Result) Ok() bool {
	return r.Err == nil
}

// successResult and failureResult keep the exactly-one-variant
// invariant in one place.
func successResult(resp *Response) Result {
	return Result{Response: resp}
}

func failureResult(kind ErrKind, cause error) Result {
	return Result{Err: NewError(kind, cause)}
}
