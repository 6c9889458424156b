// Copyright 2026 The moya Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package plugins

import (
	"net/http"

	"github.com/jasl/moya"
	"github.com/jasl/moya/endpoint"
)

// A ChangeType identifies a network-activity transition reported by
// the Activity plugin.
type ChangeType int

const (
	// Began identifies the transition that occurs when a request is
	// about to be sent (or stubbed).
	Began ChangeType = iota
	// Ended identifies the transition that occurs when a request's
	// result has been received.
	Ended
)

var changeNames = []string{
	"Began",
	"Ended",
}

// Name returns the name of the change type.
func (c ChangeType) Name() string {
	return changeNames[int(c)]
}

// String returns the name of the change type.
func (c ChangeType) String() string {
	return c.Name()
}

// Activity is a plugin that reports network-activity transitions, for
// example to drive an activity indicator or a busy cursor. The
// callback runs on the provider's queue, so it may touch UI-adjacent
// state without additional locking.
//
// A request cancelled before dispatch starts delivers its result
// without a preceding will-send notification, so consumers counting
// Began/Ended pairs should clamp at zero.
type Activity struct {
	// OnChange receives each transition together with the target that
	// caused it. A nil OnChange disables the plugin.
	OnChange func(ChangeType, endpoint.Target)
}

// WillSend implements moya.Plugin.
func (a *Activity) WillSend(_ *http.Request, t endpoint.Target) {
	a.notify(Began, t)
}

// DidReceive implements moya.Plugin.
func (a *Activity) DidReceive(_ moya.Result, t endpoint.Target) {
	a.notify(Ended, t)
}

func (a *Activity) notify(c ChangeType, t endpoint.Target) {
	if a.OnChange != nil {
		a.OnChange(c, t)
	}
}
