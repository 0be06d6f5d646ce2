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
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"fram.dev/container"
	"fram.dev/message"
	"fram.dev/render"
	"fram.dev/router"
)

// toto is the handler fixture used across dispatch tests.
type toto struct{}

func (toto) invoke() string                 { return "__invoke w/o params" }
func (toto) salut() string                  { return "salut w/o params" }
func (toto) params(slug string, id int) string {
	return fmt.Sprintf("params : %s, %d", slug, id)
}

func (toto) tutu(req *message.Request, slug string) string {
	return fmt.Sprintf("tutu %s", slug)
}

func (toto) nulo(slug string, id *int) string {
	if id == nil {
		return fmt.Sprintf("toto %s null", slug)
	}
	return fmt.Sprintf("toto %s %d", slug, *id)
}

func totoRegistry(tb testing.TB) *Registry {
	tb.Helper()

	str := func(name string) Param { return Param{Name: name, Kind: KindString} }
	integer := func(name string) Param { return Param{Name: name, Kind: KindInt} }

	reg := NewRegistry()
	reg.MustRegister("Toto",
		Invokable(func(target any, _ Args) (any, error) {
			return target.(toto).invoke(), nil
		}),
		NewMethod("salut", func(target any, _ Args) (any, error) {
			return target.(toto).salut(), nil
		}),
		NewMethod("params", func(target any, args Args) (any, error) {
			return target.(toto).params(args.String(0), args.Int(1)), nil
		}, str("slug"), integer("id")),
		NewMethod("tutu", func(target any, args Args) (any, error) {
			return target.(toto).tutu(args.Request(0), args.String(1)), nil
		}, Param{Name: "request", Kind: KindRequest}, str("slug")),
		NewMethod("invalid", func(any, Args) (any, error) {
			return "unreachable", nil
		}, str("missing")),
		NewMethod("nulo", func(target any, args Args) (any, error) {
			var id *int
			if !args.IsNil(1) {
				n := args.Int(1)
				id = &n
			}
			return target.(toto).nulo(args.String(0), id), nil
		}, str("slug"), integer("id").OrNil()),
		NewMethod("bad", func(any, Args) (any, error) {
			return 42, nil
		}),
		NewMethod("response", func(any, Args) (any, error) {
			return message.Redirect("/elsewhere", http.StatusMovedPermanently), nil
		}),
		NewMethod("services", func(_ any, args Args) (any, error) {
			return fmt.Sprintf("has toto: %v", args.Container(0).Has("Toto")), nil
		}, Param{Name: "c", Kind: KindContainer}),
		NewMethod("flag", func(_ any, args Args) (any, error) {
			return fmt.Sprintf("flag=%v", args.Bool(0)), nil
		}, Param{Name: "flag", Kind: KindBool}),
	)
	return reg
}

func totoRouter(tb testing.TB) *router.Router {
	tb.Helper()

	r := router.MustNew()
	r.GET("toto.invoke", "Toto", "/toto")
	r.GET("toto.salut", "Toto@salut", "/salut")
	r.GET("toto.params", "Toto@params", `/params/{slug}-{id:\d+}`)
	r.POST("toto.params.body", "Toto@params", "/params/{slug}")
	r.GET("toto.tutu", "Toto@tutu", "/tutu/{slug}")
	r.GET("toto.invalid", "Toto@invalid", "/invalid")
	r.GET("toto.nulo", "Toto@nulo", "/nulo/{slug}")
	r.GET("toto.bad", "Toto@bad", "/bad")
	r.GET("toto.response", "Toto@response", "/response")
	r.GET("toto.services", "Toto@services", "/services")
	r.GET("toto.flag", "Toto@flag", "/flag")
	r.GET("toto.ghost", "Ghost@show", "/ghost")
	return r
}

func newTestDispatcher(tb testing.TB, r *router.Router, opts ...Option) *Dispatcher {
	tb.Helper()

	services := container.New().Set("Toto", toto{})
	base := []Option{
		WithRouter(r),
		WithContainer(services),
		WithRenderer(render.Static{DefaultNotFoundView: "<h1>Not found</h1>"}),
		WithResolver(totoRegistry(tb)),
	}
	d, err := New(append(base, opts...)...)
	require.NoError(tb, err)
	return d
}
