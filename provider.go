// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package moya

import (
	"context"
	"io"
	"net/http"

	"github.com/jasl/moya/endpoint"
	"github.com/jasl/moya/stub"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package. It is the
// transport collaborator: the provider is agnostic to how the request
// is actually put on the wire beyond this contract.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// A Provider turns declarative targets into dispatched requests. Its
// zero value is a valid configuration.
//
// The zero value provider uses http.DefaultClient (from net/http) as
// the HTTPDoer, endpoint.FromTarget as the endpoint mapping, the
// direct endpoint-to-request conversion as the request mapping,
// stub.DefaultPolicy (never stub) as the stub policy, no plugins, and
// the package default queue.
//
// Provider's HTTPDoer typically has internal state (cached TCP
// connections) so Provider instances should be reused instead of
// created as needed. Provider is safe for concurrent use by multiple
// goroutines.
//
// For every Request call the provider resolves the target into an
// endpoint, converts the endpoint into an HTTP request, consults the
// stub policy, and then either sends the request through the HTTPDoer
// or serves the endpoint's sample response. Plugins are notified
// before the send and after the result, and the completion callback
// fires exactly once, always immediately after the last DidReceive
// notification, on the provider's queue.
type Provider struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard
	// net/http package is used.
	HTTPDoer HTTPDoer

	// EndpointFn converts a declarative target into a resolved
	// endpoint. Failures surface to the completion callback as
	// BuildingRequestFailed.
	//
	// If EndpointFn is nil, endpoint.FromTarget is used.
	EndpointFn func(t endpoint.Target) (*endpoint.Endpoint, error)

	// RequestFn converts an endpoint into a transport-level request
	// and hands it to next. The indirection lets integrators customize
	// serialization, for example alternative body encodings or signed
	// headers, without touching the provider. RequestFn may invoke
	// next asynchronously; the provider marshals the continuation back
	// onto its queue either way. Passing a non-nil error to next
	// surfaces as BuildingRequestFailed.
	//
	// If RequestFn is nil, the endpoint's own ToRequest conversion is
	// used.
	RequestFn func(e *endpoint.Endpoint, next func(*http.Request, error))

	// StubPolicy decides, per request, whether to send the request
	// over the real transport or serve the endpoint's sample response.
	//
	// If StubPolicy is nil, stub.DefaultPolicy is used and every
	// request is sent for real.
	StubPolicy stub.Policy

	// Plugins are notified of every request, in registration order,
	// once before the send and once with the final result.
	//
	// If Plugins is nil, no plugins are notified.
	Plugins *Plugins

	// Queue is the serial context on which plugin notifications, stub
	// evaluation, and completion callbacks run.
	//
	// If Queue is nil, the package default queue is used.
	Queue *Queue
}

// Request dispatches the request described by the target and returns a
// cancellation handle.
//
// The handle is usable immediately: Cancel may be called from any
// goroutine at any time, and a cancel requested before the transport
// or stub has started still takes effect at the next dispatch
// checkpoint. The completion callback receives exactly one Result,
// after the plugins' DidReceive hooks, on the provider's queue.
//
// Note that when the stub policy answers Immediate and the queue is
// idle, the completion callback runs within the Request call itself.
func (p *Provider) Request(t endpoint.Target, completion Completion) Cancellable {
	tok := newToken()
	p.queue().Do(func() {
		p.dispatch(t, tok, completion)
	})
	return tok
}

// dispatch runs on the queue. It resolves the endpoint, builds the
// transport request, and routes to real or stub dispatch.
func (p *Provider) dispatch(t endpoint.Target, tok *token, completion Completion) {
	ep, err := p.endpointFn()(t)
	if err != nil {
		p.deliver(tok, t, completion, failureResult(BuildingRequestFailed, err))
		return
	}
	p.requestFn()(ep, func(req *http.Request, err error) {
		p.queue().Do(func() {
			if tok.IsCancelled() {
				p.deliver(tok, t, completion, failureResult(Cancelled, context.Canceled))
				return
			}
			if err != nil {
				p.deliver(tok, t, completion, failureResult(BuildingRequestFailed, err))
				return
			}
			if b := p.stubPolicy().Behavior(t); b.Real() {
				p.sendReal(req, t, tok, completion)
			} else {
				p.sendStub(ep, req, t, tok, b, completion)
			}
		})
	})
}

// sendReal runs on the queue. It attaches transport-level cancellation
// to the token, notifies plugins with the live request, and performs
// the blocking I/O on a worker goroutine, marshaling the result back
// onto the queue.
func (p *Provider) sendReal(req *http.Request, t endpoint.Target, tok *token, completion Completion) {
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)
	tok.attach(cancel)
	p.Plugins.willSend(req, t)
	doer := p.doer()
	q := p.queue()
	go func() {
		resp, err := doer.Do(req)
		var body []byte
		if err == nil && resp != nil {
			body, err = readBody(resp)
		}
		q.Do(func() {
			p.deliver(tok, t, completion, convert(tok, req, resp, body, err))
		})
	}()
}

func readBody(resp *http.Response) ([]byte, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	return io.ReadAll(resp.Body)
}

// convert turns the transport's (response, body, error) triple into a
// Result. Precedence: a response whose body was read without error
// wins; any error is Underlying, unless the token was cancelled, in
// which case it is Cancelled with the transport error as cause; a
// transport returning neither response nor error is malformed and
// reported as Underlying(ErrUnknownNetwork).
func convert(tok *token, req *http.Request, resp *http.Response, body []byte, err error) Result {
	switch {
	case resp != nil && err == nil:
		return successResult(&Response{
			StatusCode:  resp.StatusCode,
			Body:        body,
			Request:     req,
			RawResponse: resp,
		})
	case err != nil:
		if tok.IsCancelled() {
			return failureResult(Cancelled, err)
		}
		return failureResult(Underlying, err)
	default:
		return failureResult(Underlying, ErrUnknownNetwork)
	}
}

// sendStub runs on the queue. The request handle is used for
// notification only and discarded afterwards.
func (p *Provider) sendStub(ep *endpoint.Endpoint, req *http.Request, t endpoint.Target, tok *token, b stub.Behavior, completion Completion) {
	if b.Real() {
		panic("moya: stub dispatch with Never behavior")
	}
	p.Plugins.willSend(req, t)
	fire := func() {
		p.deliver(tok, t, completion, stubResult(ep, req, tok))
	}
	if d := b.Delay(); d > 0 {
		p.queue().After(d, fire)
	} else {
		fire()
	}
}

// stubResult runs on the queue, at stub fire time. Cancellation is
// re-checked here so a cancel during a Delayed wait is honored.
func stubResult(ep *endpoint.Endpoint, req *http.Request, tok *token) Result {
	if tok.IsCancelled() {
		return failureResult(Cancelled, context.Canceled)
	}
	s := ep.Sample()
	if s.Err != nil {
		return failureResult(Underlying, s.Err)
	}
	return successResult(&Response{
		StatusCode: s.StatusCode,
		Body:       s.Data,
		Request:    req,
	})
}

// deliver commits the result: the token's single-fire transition
// decides whether this path won, and if so the plugins are notified
// and the completion callback runs, in that order.
func (p *Provider) deliver(tok *token, t endpoint.Target, completion Completion, res Result) {
	if !tok.complete() {
		return
	}
	p.Plugins.didReceive(res, t)
	if completion != nil {
		completion(res)
	}
}

func (p *Provider) doer() HTTPDoer {
	if p.HTTPDoer == nil {
		return http.DefaultClient
	}
	return p.HTTPDoer
}

func (p *Provider) endpointFn() func(endpoint.Target) (*endpoint.Endpoint, error) {
	if p.EndpointFn == nil {
		return endpoint.FromTarget
	}
	return p.EndpointFn
}

func (p *Provider) requestFn() func(*endpoint.Endpoint, func(*http.Request, error)) {
	if p.RequestFn == nil {
		return defaultRequestFn
	}
	return p.RequestFn
}

func defaultRequestFn(e *endpoint.Endpoint, next func(*http.Request, error)) {
	req, err := e.ToRequest(context.Background())
	next(req, err)
}

func (p *Provider) stubPolicy() stub.Policy {
	if p.StubPolicy == nil {
		return stub.DefaultPolicy
	}
	return p.StubPolicy
}

func (p *Provider) queue() *Queue {
	if p.Queue == nil {
		return defaultQueue
	}
	return p.Queue
}
