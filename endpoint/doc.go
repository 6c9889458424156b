// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package endpoint contains the core types Target (the declarative
description of an API call supplied by the integrator) and Endpoint
(the fully-resolved description of one request built from a Target).

A Target exposes the base URL, path, method, parameters, and sample
data for one API call. Integrations typically declare a Target type per
API and hand its values to the provider:

	tok := provider.Request(userAPI{name: "ham"}, completion)

An Endpoint is derived from a Target by the provider's endpoint-mapping
function. The default mapping, FromTarget, joins the base URL and path
and copies everything else verbatim. Install a custom mapping on the
provider to rewrite URLs, attach headers, or swap the sample closure:

	provider := &moya.Provider{
		EndpointFn: func(t endpoint.Target) (*endpoint.Endpoint, error) {
			e, err := endpoint.FromTarget(t)
			if err != nil {
				return nil, err
			}
			return e.AddingHeaders(map[string]string{"X-Api-Key": key}), nil
		},
	}

Every Endpoint carries a sample closure producing either a synthetic
(status code, body) pair or a transport error. The closure is evaluated
only when the provider's stub policy routes the request to the stub
dispatcher; real dispatch never touches it.
*/
package endpoint
