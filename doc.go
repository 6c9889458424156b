// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package moya provides a declarative request-dispatch layer over an
injected HTTP transport: callers describe an API endpoint as a target,
and a Provider turns that description into an executed (or stubbed)
network call, routing every request and response through an ordered
list of plugins.

Create a Provider and declare targets to begin making requests.

	provider := &moya.Provider{}
	tok := provider.Request(userAPI{name: "ham"}, func(res moya.Result) {
		if !res.Ok() {
			...
			return
		}
		fmt.Println(res.Response.StatusCode)
	})

The returned handle cancels the request mid-flight:

	tok.Cancel()

For control over how requests are put on the wire, use a custom
HTTPDoer. For example, use a GoLang standard HTTP client:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	provider := &moya.Provider{
		HTTPDoer: doer,
	}

To serve synthetic responses from each endpoint's sample closure
instead of performing network I/O, install a stub policy from package
stub:

	provider := &moya.Provider{
		StubPolicy: stub.DelayedStub(300 * time.Millisecond),
	}

To observe or mutate requests before they are sent, and to observe
every result, register plugins:

	group := &moya.Plugins{}
	group.Register(&plugins.Logger{})
	group.Register(moya.PluginFuncs{
		WillSendFunc: func(req *http.Request, _ endpoint.Target) {
			req.Header.Set("Authorization", "Bearer "+token)
		},
	})
	provider := &moya.Provider{
		Plugins: group,
	}

All plugin hooks, stub evaluations, and completion callbacks run on a
single cooperative queue, so consumers may touch shared state from
inside them without additional locking. Use Await for a blocking,
context-aware call on top of any Requester.
*/
package moya
