// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package moya

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jasl/moya/endpoint"
	"github.com/jasl/moya/stub"
)

func TestPlugins(t *testing.T) {
	var log []string
	p1 := &seqPlugin{seq: 1, log: &log}
	p2 := &seqPlugin{seq: 2, log: &log}
	ps := &Plugins{}
	t.Run("Register", func(t *testing.T) {
		assert.Panics(t, func() { ps.Register(nil) })
		assert.Equal(t, 0, ps.Len())
		ps.Register(p1)
		ps.Register(p2)
		assert.Equal(t, 2, ps.Len())
	})
	t.Run("nil list is inert", func(t *testing.T) {
		var none *Plugins
		assert.Equal(t, 0, none.Len())
		assert.NotPanics(t, func() {
			none.willSend(nil, nil)
			none.didReceive(Result{}, nil)
		})
	})
	t.Run("order", func(t *testing.T) {
		target := endpoint.Static{URL: "http://test"}
		req, err := http.NewRequest("GET", "http://test", nil)
		require.NoError(t, err)
		ps.willSend(req, target)
		assert.Equal(t, []string{"1.WillSend", "2.WillSend"}, log)
		log = log[:0]
		ps.didReceive(Result{Response: &Response{StatusCode: 200}}, target)
		assert.Equal(t, []string{"1.DidReceive", "2.DidReceive"}, log)
	})
}

type seqPlugin struct {
	seq int
	log *[]string
}

func (p *seqPlugin) WillSend(*http.Request, endpoint.Target) {
	*p.log = append(*p.log, fmt.Sprintf("%d.WillSend", p.seq))
}

func (p *seqPlugin) DidReceive(Result, endpoint.Target) {
	*p.log = append(*p.log, fmt.Sprintf("%d.DidReceive", p.seq))
}

func TestPluginFuncs(t *testing.T) {
	t.Run("zero value is inert", func(t *testing.T) {
		var p PluginFuncs
		assert.NotPanics(t, func() {
			p.WillSend(nil, nil)
			p.DidReceive(Result{}, nil)
		})
	})
	t.Run("calls through", func(t *testing.T) {
		var gotReq *http.Request
		var gotRes Result
		p := PluginFuncs{
			WillSendFunc: func(req *http.Request, _ endpoint.Target) {
				gotReq = req
			},
			DidReceiveFunc: func(res Result, _ endpoint.Target) {
				gotRes = res
			},
		}
		req, err := http.NewRequest("GET", "http://test", nil)
		require.NoError(t, err)
		p.WillSend(req, nil)
		p.DidReceive(Result{Response: &Response{StatusCode: 204}}, nil)
		assert.Same(t, req, gotReq)
		assert.Equal(t, 204, gotRes.Response.StatusCode)
	})
}

// TestPluginNotificationContract drives a full dispatch and checks the
// ordering invariant: every WillSend precedes every DidReceive, the
// hooks fire exactly once per request, and the completion callback
// runs last, immediately after the final DidReceive.
func TestPluginNotificationContract(t *testing.T) {
	for _, stubbed := range []bool{false, true} {
		name := "real"
		if stubbed {
			name = "stubbed"
		}
		t.Run(name, func(t *testing.T) {
			var log []string
			ps := &Plugins{}
			ps.Register(&seqPlugin{seq: 1, log: &log})
			ps.Register(&seqPlugin{seq: 2, log: &log})
			provider := &Provider{
				Plugins: ps,
				Queue:   &Queue{},
			}
			var target endpoint.Target
			if stubbed {
				provider.StubPolicy = stub.ImmediateStub
				target = endpoint.Static{URL: "http://test", Sample: []byte("stub")}
			} else {
				target = serverTarget("/plugins", map[string]interface{}{"body": "real"})
			}

			ch := make(chan struct{})
			provider.Request(target, func(res Result) {
				require.True(t, res.Ok())
				log = append(log, "completion")
				close(ch)
			})
			<-ch

			assert.Equal(t, []string{
				"1.WillSend", "2.WillSend",
				"1.DidReceive", "2.DidReceive",
				"completion",
			}, log)
		})
	}
}

// TestPluginFlagScenario mirrors the simplest integration: two plugin
// closures flipping booleans around a successful round trip.
func TestPluginFlagScenario(t *testing.T) {
	var sent, received bool
	ps := &Plugins{}
	ps.Register(PluginFuncs{
		WillSendFunc:   func(*http.Request, endpoint.Target) { sent = true },
		DidReceiveFunc: func(Result, endpoint.Target) { received = true },
	})
	provider := &Provider{
		StubPolicy: stub.ImmediateStub,
		Plugins:    ps,
		Queue:      &Queue{},
	}

	res := await(t, provider, endpoint.Static{URL: "http://test", Sample: []byte("ok")})

	require.True(t, res.Ok())
	assert.True(t, sent)
	assert.True(t, received)
}

// TestPluginHeaderInjection checks that a WillSend plugin can mutate
// the live request on the real dispatch path.
func TestPluginHeaderInjection(t *testing.T) {
	var got string
	mockDoer := newMockHTTPDoer(t)
	mockDoer.On("Do", mock.MatchedBy(func(r *http.Request) bool {
		got = r.Header.Get("X-Probe")
		return true
	})).Return(nil, assert.AnError).Once()
	ps := &Plugins{}
	ps.Register(PluginFuncs{
		WillSendFunc: func(req *http.Request, _ endpoint.Target) {
			req.Header.Set("X-Probe", "injected")
		},
	})
	provider := &Provider{
		HTTPDoer: mockDoer,
		Plugins:  ps,
		Queue:    &Queue{},
	}

	await(t, provider, endpoint.Static{URL: "http://test"})

	assert.Equal(t, "injected", got)
	mockDoer.AssertExpectations(t)
}
