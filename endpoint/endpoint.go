// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

const (
	nilCtxMsg = "moya/endpoint: nil context"
)

// A SampleResponse is the outcome of evaluating an endpoint's sample
// closure: either a synthetic HTTP status code paired with a response
// body, or a transport-level error. Exactly one of the two shapes is
// meaningful: if Err is non-nil, StatusCode and Data are ignored.
type SampleResponse struct {
	// StatusCode is the synthetic HTTP status code.
	StatusCode int

	// Data is the synthetic response body. It may be nil or empty.
	Data []byte

	// Err, if non-nil, simulates a transport-level failure instead of
	// a response.
	Err error
}

// A SampleFunc lazily produces the sample response used when a request
// is stubbed rather than sent over the network. It is evaluated at most
// once per dispatched request, at the moment the stub fires.
type SampleFunc func() SampleResponse

// NetworkResponse returns a SampleFunc producing a synthetic response
// with the given status code and body.
func NetworkResponse(statusCode int, data []byte) SampleFunc {
	return func() SampleResponse {
		return SampleResponse{StatusCode: statusCode, Data: data}
	}
}

// NetworkError returns a SampleFunc simulating a transport-level
// failure, for example a connection reset or timeout.
func NetworkError(err error) SampleFunc {
	return func() SampleResponse {
		return SampleResponse{Err: err}
	}
}

// An Endpoint is the fully-resolved, immutable description of a single
// request: the absolute URL, the HTTP method, the parameter map, any
// extra header fields, and the sample closure consulted when the
// request is stubbed.
//
// An Endpoint is constructed once per request by the provider's
// endpoint-mapping function and discarded after the request completes.
// Construct new endpoints with New or FromTarget; derive modified
// copies with AddingHeaders. Do not mutate an Endpoint after
// construction.
type Endpoint struct {
	// URL is the absolute request URL.
	URL string

	// Method is the HTTP method (GET, POST, PUT, etc.). An empty
	// string means GET.
	Method string

	// Parameters contains the request parameters. How they are encoded
	// into the outgoing request is decided by ToRequest (or by a
	// custom request-mapping function installed on the provider).
	Parameters map[string]interface{}

	// Header contains extra header fields to send with the request.
	Header http.Header

	// Body, if non-nil, is the raw request body. It takes precedence
	// over the JSON encoding of Parameters in ToRequest. Derive an
	// endpoint carrying a body with WithBody.
	Body []byte

	// Sample produces the synthetic response used when the request is
	// stubbed. It is never nil on an Endpoint built by New or
	// FromTarget.
	Sample SampleFunc

	// u is the parsed form of URL, validated at construction time. It
	// must not be mutated; ToRequest copies it before use.
	u *urlpkg.URL
}

// New returns a new Endpoint for the given absolute URL and HTTP
// method.
//
// An empty method is interpreted as GET. The method must be a valid
// HTTP token and the URL must parse. A nil sample is replaced with an
// empty 200 response.
func New(url, method string, sample SampleFunc) (*Endpoint, error) {
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("moya/endpoint: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	if sample == nil {
		sample = NetworkResponse(http.StatusOK, nil)
	}
	return &Endpoint{
		URL:    u.String(),
		Method: method,
		Header: make(http.Header),
		Sample: sample,
		u:      u,
	}, nil
}

// FromTarget is the default target-to-endpoint mapping. It joins the
// target's base URL and path, and copies the method, parameters, and
// sample data verbatim. The endpoint's sample closure yields a 200
// response whose body is the target's sample data.
func FromTarget(t Target) (*Endpoint, error) {
	e, err := New(JoinURL(t.BaseURL(), t.Path()), t.Method(), NetworkResponse(http.StatusOK, t.SampleData()))
	if err != nil {
		return nil, err
	}
	e.Parameters = t.Parameters()
	return e, nil
}

// JoinURL joins a base URL and a path with exactly one slash between
// them. An empty path leaves the base URL untouched.
func JoinURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// AddingHeaders returns a copy of the endpoint with the given header
// fields added. The receiver is left unmodified. Fields already present
// on the receiver are overwritten in the copy.
func (e *Endpoint) AddingHeaders(fields map[string]string) *Endpoint {
	e2 := new(Endpoint)
	*e2 = *e
	e2.Header = make(http.Header, len(e.Header)+len(fields))
	for k, vs := range e.Header {
		e2.Header[k] = append([]string(nil), vs...)
	}
	for k, v := range fields {
		e2.Header.Set(k, v)
	}
	return e2
}

// WithBody returns a copy of the endpoint carrying body as its raw
// request body. The receiver is left unmodified. The body parameter
// accepts the types documented on BodyBytes: nil, string, []byte,
// io.Reader, or io.ReadCloser.
func (e *Endpoint) WithBody(body interface{}) (*Endpoint, error) {
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	e2 := new(Endpoint)
	*e2 = *e
	e2.Body = b
	return e2, nil
}

// ToRequest converts the endpoint into an HTTP request with the given
// context, which may not be nil.
//
// An endpoint carrying a raw body (see WithBody) sends it as-is, for
// any method, with the parameters appended to the URL query string.
// Otherwise parameters are encoded according to the method: for GET,
// HEAD, and DELETE requests they are appended to the URL query string;
// for every other method they are sent as a JSON body with
// Content-Type application/json. Install a custom request-mapping
// function on the provider for any other encoding.
func (e *Endpoint) ToRequest(ctx context.Context) (*http.Request, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	u := new(urlpkg.URL)
	*u = *e.u
	r := template.WithContext(ctx)
	r.Method = e.Method
	if r.Method == "" {
		r.Method = "GET"
	}
	r.URL = u
	r.Header = make(http.Header, len(e.Header))
	for k, vs := range e.Header {
		r.Header[k] = append([]string(nil), vs...)
	}
	r.Host = u.Host
	switch {
	case e.Body != nil:
		setBody(r, e.Body)
		encodeQuery(u, e.Parameters)
	case r.Method == "GET", r.Method == "HEAD", r.Method == "DELETE":
		encodeQuery(u, e.Parameters)
	default:
		if len(e.Parameters) > 0 {
			b, err := json.Marshal(e.Parameters)
			if err != nil {
				return nil, err
			}
			setBody(r, b)
			r.Header.Set("Content-Type", "application/json")
		}
	}
	return r, nil
}

func setBody(r *http.Request, b []byte) {
	r.Body = io.NopCloser(bytes.NewReader(b))
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(b)), nil
	}
	r.ContentLength = int64(len(b))
}

func encodeQuery(u *urlpkg.URL, params map[string]interface{}) {
	if len(params) == 0 {
		return
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, fmt.Sprint(v))
	}
	u.RawQuery = q.Encode()
}

func validMethod(method string) bool {
	/*
	     Method         = "OPTIONS"                ; Section 9.2
	                    | "GET"                    ; Section 9.3
	                    | "HEAD"                   ; Section 9.4
	                    | "POST"                   ; Section 9.5
	                    | "PUT"                    ; Section 9.6
	                    | "DELETE"                 ; Section 9.7
	                    | "TRACE"                  ; Section 9.8
	                    | "CONNECT"                ; Section 9.9
	                    | extension-method
	   extension-method = token
	     token          = 1*<any CHAR except CTLs or separators>

	   We don't need to check for length more than 1 because we always
	   interpret the empty string as "GET".
	*/
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !isTokenRune(r)
}

// isTokenRune is lifted verbatim from x/net/http/httpguts/httplex.go
// (but converted to non-exported). It classifies a rune as being valid
// for a token as defined in https://tools.ietf.org/html/rfc7230#section-3.2.6
func isTokenRune(r rune) bool {
	i := int(r)
	return i < len(isTokenTable) && isTokenTable[i]
}

var isTokenTable = [127]bool{
	'!':  true,
	'#':  true,
	'$':  true,
	'%':  true,
	'&':  true,
	'\'': true,
	'*':  true,
	'+':  true,
	'-':  true,
	'.':  true,
	'0':  true,
	'1':  true,
	'2':  true,
	'3':  true,
	'4':  true,
	'5':  true,
	'6':  true,
	'7':  true,
	'8':  true,
	'9':  true,
	'A':  true,
	'B':  true,
	'C':  true,
	'D':  true,
	'E':  true,
	'F':  true,
	'G':  true,
	'H':  true,
	'I':  true,
	'J':  true,
	'K':  true,
	'L':  true,
	'M':  true,
	'N':  true,
	'O':  true,
	'P':  true,
	'Q':  true,
	'R':  true,
	'S':  true,
	'T':  true,
	'U':  true,
	'W':  true,
	'V':  true,
	'X':  true,
	'Y':  true,
	'Z':  true,
	'^':  true,
	'_':  true,
	'`':  true,
	'a':  true,
	'b':  true,
	'c':  true,
	'd':  true,
	'e':  true,
	'f':  true,
	'g':  true,
	'h':  true,
	'i':  true,
	'j':  true,
	'k':  true,
	'l':  true,
	'm':  true,
	'n':  true,
	'o':  true,
	'p':  true,
	'q':  true,
	'r':  true,
	's':  true,
	't':  true,
	'u':  true,
	'v':  true,
	'w':  true,
	'x':  true,
	'y':  true,
	'z':  true,
	'|':  true,
	'~':  true,
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
