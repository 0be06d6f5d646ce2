// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dispatch

import (
	"context"

	"fram.dev/message"
	"fram.dev/router"
)

// Recorder observes dispatches.
//
// OnDispatchStart is called before routing. It returns an enriched context
// (for example carrying a trace span) and an opaque state token. The
// enriched context is always used for the request. Returning a nil state
// skips OnDispatchEnd for this request.
//
// OnDispatchEnd is called once the handler returned. route is the failure
// route when nothing matched; resp is nil when err is not.
type Recorder interface {
	OnDispatchStart(ctx context.Context, req *message.Request) (context.Context, any)
	OnDispatchEnd(ctx context.Context, state any, route router.Route, resp *message.Response, err error)
}

type noopRecorder struct{}

func (noopRecorder) OnDispatchStart(ctx context.Context, _ *message.Request) (context.Context, any) {
	return ctx, nil
}

func (noopRecorder) OnDispatchEnd(context.Context, any, router.Route, *message.Response, error) {}

// Recorders combines several recorders into one. Start hooks run in order,
// end hooks in reverse order.
func Recorders(recs ...Recorder) Recorder {
	filtered := make([]Recorder, 0, len(recs))
	for _, r := range recs {
		if r != nil {
			filtered = append(filtered, r)
		}
	}
	switch len(filtered) {
	case 0:
		return noopRecorder{}
	case 1:
		return filtered[0]
	}
	return multiRecorder(filtered)
}

type multiRecorder []Recorder

type multiState struct {
	states []any
}

func (m multiRecorder) OnDispatchStart(ctx context.Context, req *message.Request) (context.Context, any) {
	st := &multiState{states: make([]any, len(m))}
	for i, r := range m {
		ctx, st.states[i] = r.OnDispatchStart(ctx, req)
	}
	return ctx, st
}

func (m multiRecorder) OnDispatchEnd(ctx context.Context, state any, route router.Route, resp *message.Response, err error) {
	st, ok := state.(*multiState)
	if !ok {
		return
	}
	for i := len(m) - 1; i >= 0; i-- {
		if st.states[i] != nil {
			m[i].OnDispatchEnd(ctx, st.states[i], route, resp, err)
		}
	}
}
