// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package plugins

import (
	"net/http"

	"github.com/apex/log"

	"github.com/jasl/moya"
	"github.com/jasl/moya/endpoint"
)

// Logger is a plugin that writes a structured log line when a request
// is about to be sent and another when its result arrives. Successful
// results log at debug level; failures log at warn level.
//
// The zero value logs to log.Log, apex/log's standard logger.
type Logger struct {
	// Log is the destination logger. If nil, log.Log is used.
	Log log.Interface
}

// WillSend implements moya.Plugin.
func (l *Logger) WillSend(req *http.Request, _ endpoint.Target) {
	l.logger().WithFields(log.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	}).Debug("sending request")
}

// DidReceive implements moya.Plugin.
func (l *Logger) DidReceive(result moya.Result, t endpoint.Target) {
	entry := l.logger().WithField("path", t.Path())
	if result.Ok() {
		entry.WithField("status", result.Response.StatusCode).Debug("received response")
		return
	}
	entry.WithError(result.Err).Warn("request failed")
}

func (l *Logger) logger() log.Interface {
	if l.Log == nil {
		return log.Log
	}
	return l.Log
}
