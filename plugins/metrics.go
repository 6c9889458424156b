// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package plugins

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jasl/moya"
	"github.com/jasl/moya/endpoint"
)

// Metrics is a plugin that exports Prometheus metrics for the request
// lifecycle of the provider it is installed in. It is safe for
// concurrent use and may be shared between providers.
//
// A result delivered without a preceding will-send notification, as
// happens when a request fails to build or is cancelled before
// dispatch starts, is still counted but leaves the in-flight gauge
// untouched.
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestsInFlight *prometheus.GaugeVec
	errorsTotal      *prometheus.CounterVec

	mu       sync.Mutex
	inFlight map[string]int
}

// NewMetrics creates a metrics plugin registered on the default
// registerer.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates a metrics plugin registered on the
// supplied registerer.
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	return &Metrics{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "moya_requests_total",
				Help: "Total number of requests dispatched",
			},
			[]string{"method", "status"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "moya_requests_in_flight",
				Help: "Number of requests currently in flight",
			},
			[]string{"method"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "moya_errors_total",
				Help: "Total number of failed requests by error kind",
			},
			[]string{"kind"},
		),
		inFlight: make(map[string]int),
	}
}

// WillSend implements moya.Plugin.
func (m *Metrics) WillSend(_ *http.Request, t endpoint.Target) {
	method := methodLabel(t)
	m.mu.Lock()
	m.inFlight[method]++
	m.mu.Unlock()
	m.requestsInFlight.WithLabelValues(method).Inc()
}

// DidReceive implements moya.Plugin.
func (m *Metrics) DidReceive(result moya.Result, t endpoint.Target) {
	method := methodLabel(t)
	m.mu.Lock()
	paired := m.inFlight[method] > 0
	if paired {
		m.inFlight[method]--
	}
	m.mu.Unlock()
	if paired {
		m.requestsInFlight.WithLabelValues(method).Dec()
	}
	if result.Ok() {
		m.requestsTotal.WithLabelValues(method, strconv.Itoa(result.Response.StatusCode)).Inc()
		return
	}
	m.requestsTotal.WithLabelValues(method, "0").Inc()
	m.errorsTotal.WithLabelValues(errorKindLabel(result.Err)).Inc()
}

// methodLabel normalizes the method the same way the endpoint mapping
// does, so WillSend and DidReceive agree on the in-flight label.
func methodLabel(t endpoint.Target) string {
	if m := t.Method(); m != "" {
		return m
	}
	return "GET"
}

func errorKindLabel(err error) string {
	var e *moya.Error
	if errors.As(err, &e) {
		return e.Kind.Name()
	}
	return "unknown"
}
