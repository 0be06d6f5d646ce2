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

//go:build !integration

package dispatch

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fram.dev/message"
	"fram.dev/router"
)

func TestParseTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		descriptor string
		want       Target
		wantErr    bool
	}{
		{descriptor: "Pages", want: Target{Class: "Pages", Method: InvokeMethod, Invokable: true}},
		{descriptor: "Pages@show", want: Target{Class: "Pages", Method: "show"}},
		{descriptor: " Pages@show ", want: Target{Class: "Pages", Method: "show"}},
		{descriptor: "", wantErr: true},
		{descriptor: "@show", wantErr: true},
		{descriptor: "Pages@", wantErr: true},
		{descriptor: "Pages@show@again", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.descriptor, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTarget(tt.descriptor)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDescriptor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	call := func(any, Args) (any, error) { return "ok", nil }

	reg := NewRegistry()
	require.NoError(t, reg.Register("Pages", NewMethod("show", call), Invokable(call)))
	require.NoError(t, reg.Register("Health", Invokable(call)))

	m, err := reg.Resolve("Pages", "show")
	require.NoError(t, err)
	assert.Equal(t, "show", m.Name)

	_, err = reg.Resolve("Pages", "edit")
	require.ErrorIs(t, err, ErrHandlerNotFound)
	_, err = reg.Resolve("Posts", "show")
	require.ErrorIs(t, err, ErrHandlerNotFound)

	err = reg.Register("Pages", NewMethod("show", call))
	require.ErrorIs(t, err, ErrDuplicateMethod)

	require.Error(t, reg.Register("Pages", NewMethod("", call)))
	require.Error(t, reg.Register("Pages", NewMethod("nocall", nil)))

	assert.Equal(t, []string{"Health", "Pages"}, reg.Classes())
	assert.Panics(t, func() { reg.MustRegister("Health", Invokable(call)) })
}

func TestArgs(t *testing.T) {
	t.Parallel()

	args := NewArgs("s", 1, int64(2), 1.5, true, nil)
	assert.Equal(t, 6, args.Len())
	assert.Equal(t, "s", args.String(0))
	assert.Equal(t, 1, args.Int(1))
	assert.Equal(t, int64(2), args.Int64(2))
	assert.InDelta(t, 1.5, args.Float(3), 0)
	assert.True(t, args.Bool(4))
	assert.True(t, args.IsNil(5))
	assert.Nil(t, args.File(5))
	assert.Equal(t, 0, args.Int(5))
	assert.Len(t, args.Values(), 6)
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "int", KindInt.String())
	assert.Equal(t, "container", KindContainer.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

type recordingRecorder struct {
	name   string
	events *[]string
	skip   bool
}

type recorderKey string

func (r recordingRecorder) OnDispatchStart(ctx context.Context, _ *message.Request) (context.Context, any) {
	*r.events = append(*r.events, "start "+r.name)
	ctx = context.WithValue(ctx, recorderKey(r.name), true)
	if r.skip {
		return ctx, nil
	}
	return ctx, r.name
}

func (r recordingRecorder) OnDispatchEnd(ctx context.Context, state any, route router.Route, _ *message.Response, err error) {
	*r.events = append(*r.events, "end "+state.(string)+" "+route.Name())
	if ctx.Value(recorderKey(r.name)) == nil {
		*r.events = append(*r.events, "lost context")
	}
}

func TestRecorders(t *testing.T) {
	t.Parallel()

	var events []string
	rec := Recorders(
		recordingRecorder{name: "a", events: &events},
		nil,
		recordingRecorder{name: "b", events: &events},
		recordingRecorder{name: "c", events: &events, skip: true},
	)

	d := newTestDispatcher(t, totoRouter(t), WithRecorder(rec))
	_, err := d.Dispatch(message.NewRequest(http.MethodGet, "/salut"))
	require.NoError(t, err)
	_, err = d.Dispatch(message.NewRequest(http.MethodGet, "/nowhere"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"start a", "start b", "start c", "end b toto.salut", "end a toto.salut",
		"start a", "start b", "start c", "end b ", "end a ",
	}, events)
}

func TestRecorders_Empty(t *testing.T) {
	t.Parallel()

	rec := Recorders()
	ctx, state := rec.OnDispatchStart(context.Background(), message.NewRequest(http.MethodGet, "/"))
	assert.NotNil(t, ctx)
	assert.Nil(t, state)
}
