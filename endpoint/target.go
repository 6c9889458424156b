// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package endpoint

// A Target is the declarative description of one API call, supplied by
// the API integrator. The provider converts a Target into an Endpoint
// through its endpoint-mapping function before dispatching.
//
// Targets are read-only from the provider's perspective: the provider
// and the built-in plugins only ever call the accessor methods, and
// they may call them more than once per request, so implementations
// should be cheap and side-effect free.
//
// A typical integration declares one Target implementation per API and
// enumerates its calls:
//
//	type userAPI struct {
//		name string
//	}
//
//	func (a userAPI) BaseURL() string                    { return "https://api.example.com" }
//	func (a userAPI) Path() string                       { return "/users/" + a.name }
//	func (a userAPI) Method() string                     { return "GET" }
//	func (a userAPI) Parameters() map[string]interface{} { return nil }
//	func (a userAPI) SampleData() []byte                 { return []byte(`{"name": "ham"}`) }
type Target interface {
	// BaseURL returns the base URL of the API, for example
	// "https://api.example.com".
	BaseURL() string

	// Path returns the path component of the call, appended to the
	// base URL.
	Path() string

	// Method returns the HTTP method. An empty string means GET.
	Method() string

	// Parameters returns the request parameters, or nil if the call
	// has none.
	Parameters() map[string]interface{}

	// SampleData returns the stubbed response body for this call. It
	// may be nil if the integration never stubs.
	SampleData() []byte
}

// Static is a ready-made Target for tests and simple integrations that
// do not need a Target type of their own.
type Static struct {
	// URL is the base URL of the API.
	URL string

	// Route is the path appended to URL.
	Route string

	// Verb is the HTTP method. An empty string means GET.
	Verb string

	// Params contains the request parameters, if any.
	Params map[string]interface{}

	// Sample is the stubbed response body, if any.
	Sample []byte
}

func (s Static) BaseURL() string                    { return s.URL }
func (s Static) Path() string                       { return s.Route }
func (s Static) Method() string                     { return s.Verb }
func (s Static) Parameters() map[string]interface{} { return s.Params }
func (s Static) SampleData() []byte                 { return s.Sample }
