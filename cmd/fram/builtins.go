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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"fram.dev/app"
	"fram.dev/config"
	"fram.dev/container"
	"fram.dev/dispatch"
	"fram.dev/message"
	"fram.dev/middleware/accesslog"
	"fram.dev/middleware/methodoverride"
	"fram.dev/middleware/realip"
	"fram.dev/middleware/requestid"
	"fram.dev/middleware/security"
	"fram.dev/middleware/timeout"
	"fram.dev/middleware/trailingslash"
	"fram.dev/render"
)

// pages renders the view "pages/<slug>".
type pages struct {
	views render.Renderer
}

func (p pages) show(slug string) (any, error) {
	body, err := p.views.Render("pages/"+slug, map[string]any{"slug": slug})
	if errors.Is(err, render.ErrViewNotFound) {
		notFound, rerr := p.views.Render(dispatch.DefaultNotFoundView, nil)
		if rerr != nil {
			notFound = http.StatusText(http.StatusNotFound)
		}
		return message.New(http.StatusNotFound, []byte(notFound)).
			WithHeader("Content-Type", "text/html; charset=utf-8"), nil
	}
	if err != nil {
		return nil, err
	}
	return message.New(http.StatusOK, []byte(body)).
		WithHeader("Content-Type", "text/html; charset=utf-8"), nil
}

// builtins registers the handlers and middleware services available to
// configuration files: Pages@show, Health and one container entry per
// built-in middleware.
func builtins(cfg *app.Config) app.Module {
	return app.ModuleFunc(func(a *app.App) error {
		services, ok := a.Services().(*container.Services)
		if !ok {
			return fmt.Errorf("unexpected container %T", a.Services())
		}
		reg := a.Registry()

		if err := reg.Register("Pages",
			dispatch.NewMethod("show", func(target any, args dispatch.Args) (any, error) {
				return target.(pages).show(args.String(0))
			}, dispatch.Param{Name: "slug", Kind: dispatch.KindString}),
		); err != nil {
			return err
		}
		if err := reg.Register("Health",
			dispatch.Invokable(func(any, dispatch.Args) (any, error) { return "ok", nil }),
		); err != nil {
			return err
		}

		ip, err := realip.New(realip.WithTrustedProxies(cfg.Server.TrustedProxies...))
		if err != nil {
			return err
		}

		services.
			Set("Pages", pages{views: a.Renderer()}).
			Set("Health", struct{}{}).
			Set("realip", ip).
			Set("requestid", requestid.New()).
			Set("accesslog", accesslog.New(
				accesslog.WithLogger(a.Logger()),
				accesslog.WithExcludePaths(app.DefaultHealthPath, app.DefaultReadyPath),
			)).
			Set("methodoverride", methodoverride.New()).
			Set("trailingslash", trailingslash.New()).
			Set("security", security.New()).
			Factory("timeout", func(container.Container) (any, error) {
				return timeout.New(timeout.WithDuration(cfg.Server.WriteTimeout), timeout.WithLogger(a.Logger())), nil
			})
		return nil
	})
}

// globalPipeline lists the middleware every request passes through, in order.
var globalPipeline = []string{"realip", "requestid", "accesslog", "security", "trailingslash", "methodoverride"}

// loadApp reads the configuration and builds an application with the
// built-in module and routes registered.
func loadApp(ctx context.Context, path string) (*app.App, *app.Config, *config.Config, error) {
	cfg, raw, err := app.LoadConfig(ctx, path)
	if err != nil {
		return nil, nil, nil, err
	}

	a, err := app.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := a.AddModule(builtins(cfg)); err != nil {
		return nil, nil, nil, err
	}
	if err := a.LoadRoutes(cfg.RoutesConfig()); err != nil {
		return nil, nil, nil, err
	}
	return a, cfg, raw, nil
}

func pipeDefaults(a *app.App) error {
	for _, id := range globalPipeline {
		if err := a.PipeID(id); err != nil {
			return err
		}
	}
	return nil
}
