// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package moya

import (
	"net/http"

	"github.com/jasl/moya/endpoint"
)

// A Plugin observes every request a provider dispatches. Install
// plugins in a provider to extend it with custom functionality such as
// logging, metrics, header injection, or activity indicators.
//
// WillSend fires once per request, immediately before the request is
// handed to the transport or the stub dispatcher. For real dispatch
// the request handle is live: a plugin may mutate it, for example to
// inject headers. For stubbed dispatch the handle is built solely for
// notification and discarded afterwards.
//
// DidReceive fires once per request with the final Result, after the
// response (real or stubbed) is in and immediately before the
// completion callback. Both hooks run on the provider's queue, in
// plugin registration order. Return values are not consumed and panics
// are not recovered; a plugin's failures are its own responsibility.
type Plugin interface {
	WillSend(req *http.Request, target endpoint.Target)
	DidReceive(result Result, target endpoint.Target)
}

// Plugins is an ordered collection of plugins which can be installed
// in a Provider. Notification order is registration order. A nil
// *Plugins notifies nothing.
type Plugins struct {
	list []Plugin
}

// Register appends a plugin to the back of the notification order.
func (ps *Plugins) Register(p Plugin) {
	if p == nil {
		panic("moya: nil plugin")
	}
	ps.list = append(ps.list, p)
}

// Len returns the number of registered plugins. Len on a nil *Plugins
// is zero.
func (ps *Plugins) Len() int {
	if ps == nil {
		return 0
	}
	return len(ps.list)
}

func (ps *Plugins) willSend(req *http.Request, t endpoint.Target) {
	if ps == nil {
		return
	}
	for _, p := range ps.list {
		p.WillSend(req, t)
	}
}

func (ps *Plugins) didReceive(r Result, t endpoint.Target) {
	if ps == nil {
		return
	}
	for _, p := range ps.list {
		p.DidReceive(r, t)
	}
}

// PluginFuncs is an adapter to allow the use of ordinary functions as
// a plugin. Nil fields are skipped.
type PluginFuncs struct {
	// WillSendFunc, if non-nil, is invoked for the plugin's WillSend
	// hook.
	WillSendFunc func(*http.Request, endpoint.Target)

	// DidReceiveFunc, if non-nil, is invoked for the plugin's
	// DidReceive hook.
	DidReceiveFunc func(Result, endpoint.Target)
}

// WillSend calls WillSendFunc if it is non-nil.
func (p PluginFuncs) WillSend(req *http.Request, t endpoint.Target) {
	if p.WillSendFunc != nil {
		p.WillSendFunc(req, t)
	}
}

// DidReceive calls DidReceiveFunc if it is non-nil.
func (p PluginFuncs) DidReceive(r Result, t endpoint.Target) {
	if p.DidReceiveFunc != nil {
		p.DidReceiveFunc(r, t)
	}
}
