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

package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"fram.dev/binding"
	framconfig "fram.dev/config"
	"fram.dev/logging"
	"fram.dev/metrics"
	"fram.dev/middleware"
	"fram.dev/render"
	"fram.dev/tracing"
	"fram.dev/validation"
)

// EnvPrefix is the prefix of environment variables read by [LoadConfig].
// Nested keys use a double underscore: FRAM_SERVER__ADDR.
const EnvPrefix = "FRAM_"

// Config is the file and environment configuration of an application.
type Config struct {
	Service ServiceConfig `config:"service"`
	Server  ServerConfig  `config:"server"`
	Log     LogConfig     `config:"log"`
	Metrics MetricsConfig `config:"metrics"`
	Tracing TracingConfig `config:"tracing"`

	// Views is a directory of html/template views. Empty uses the
	// built-in not-found page only.
	Views string `config:"views"`

	Routes []RouteConfig `config:"routes" validate:"dive"`
	Groups []GroupConfig `config:"groups" validate:"dive"`
}

// ServiceConfig identifies the service.
type ServiceConfig struct {
	Name        string `config:"name" default:"fram" validate:"required"`
	Version     string `config:"version" default:"dev"`
	Environment string `config:"environment" default:"development" validate:"oneof=development production"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `config:"addr" default:":8080" validate:"required"`
	ReadTimeout     time.Duration `config:"read_timeout" default:"10s" validate:"gt=0"`
	WriteTimeout    time.Duration `config:"write_timeout" default:"10s" validate:"gt=0,gtefield=ReadTimeout"`
	IdleTimeout     time.Duration `config:"idle_timeout" default:"60s" validate:"gt=0"`
	ShutdownTimeout time.Duration `config:"shutdown_timeout" default:"30s" validate:"gte=1s"`
	MaxBodyBytes    int64         `config:"max_body_bytes" validate:"gte=0"`
	TrustedProxies  []string      `config:"trusted_proxies"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `config:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `config:"format" default:"json" validate:"oneof=json text console"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `config:"enabled"`
	Path    string `config:"path" default:"/metrics"`
}

// TracingConfig configures tracing.
type TracingConfig struct {
	Enabled    bool    `config:"enabled"`
	Stdout     bool    `config:"stdout"`
	SampleRate float64 `config:"sample_rate" default:"1" validate:"gte=0,lte=1"`
}

// RouteConfig declares a route.
type RouteConfig struct {
	Name    string `config:"name" validate:"required"`
	Method  string `config:"method" validate:"required,http_method"`
	Pattern string `config:"pattern" validate:"required,route_pattern"`
	Handler string `config:"handler" validate:"required,handler"`
}

// GroupConfig attaches middleware, named by container id, to every route
// whose name starts with Prefix.
type GroupConfig struct {
	Prefix     string   `config:"prefix" validate:"required"`
	Middleware []string `config:"middleware" validate:"required,min=1,dive,required"`
}

// RoutesConfig is the routing part of [Config].
type RoutesConfig struct {
	Routes []RouteConfig `config:"routes" validate:"dive"`
	Groups []GroupConfig `config:"groups" validate:"dive"`
}

// RoutesConfig returns the routes and groups of c.
func (c *Config) RoutesConfig() RoutesConfig {
	return RoutesConfig{Routes: c.Routes, Groups: c.Groups}
}

// LoadConfig reads path, when not empty, then FRAM_ environment variables.
// Extra options are applied last and may add sources.
func LoadConfig(ctx context.Context, path string, opts ...framconfig.Option) (*Config, *framconfig.Config, error) {
	cfg := &Config{}

	var all []framconfig.Option
	if path != "" {
		all = append(all, framconfig.WithFile(path))
	}
	all = append(all, framconfig.WithEnv(EnvPrefix), framconfig.WithBinding(cfg))
	all = append(all, opts...)

	c, err := framconfig.New(all...)
	if err != nil {
		return nil, nil, err
	}
	if err := c.Load(ctx); err != nil {
		return nil, nil, err
	}
	return cfg, c, nil
}

// NewFromConfig builds an application from cfg: logger, metrics, tracer,
// renderer and server settings. Routes are not registered; call
// [App.LoadRoutes] once handlers and services exist.
func NewFromConfig(cfg *Config, opts ...Option) (*App, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	logger, err := logging.New(
		logging.WithHandlerType(logging.HandlerType(cfg.Log.Format)),
		logging.WithOutput(os.Stderr),
		logging.WithLevel(level),
		logging.WithServiceName(cfg.Service.Name),
		logging.WithServiceVersion(cfg.Service.Version),
		logging.WithEnvironment(cfg.Service.Environment),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	log := logger.Logger()

	base := []Option{
		WithServiceName(cfg.Service.Name),
		WithServiceVersion(cfg.Service.Version),
		WithLogger(log),
		WithServerTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.IdleTimeout),
		WithShutdownTimeout(cfg.Server.ShutdownTimeout),
	}
	if cfg.Server.MaxBodyBytes > 0 {
		base = append(base, WithBindingOptions(binding.WithMaxBodySize(cfg.Server.MaxBodyBytes)))
	}

	if cfg.Views != "" {
		base = append(base, WithRenderer(render.NewTemplates(os.DirFS(cfg.Views))))
	}

	if cfg.Metrics.Enabled {
		rec, err := metrics.New(
			metrics.WithServiceName(cfg.Service.Name),
			metrics.WithServiceVersion(cfg.Service.Version),
			metrics.WithLogger(log),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		base = append(base, WithMetrics(rec), WithMetricsPath(cfg.Metrics.Path))
	}

	if cfg.Tracing.Enabled {
		topts := []tracing.Option{
			tracing.WithServiceName(cfg.Service.Name),
			tracing.WithServiceVersion(cfg.Service.Version),
			tracing.WithSampleRate(cfg.Tracing.SampleRate),
			tracing.WithLogger(log),
			tracing.WithExcludePaths(DefaultHealthPath, DefaultReadyPath),
		}
		if cfg.Tracing.Stdout {
			topts = append(topts, tracing.WithStdout())
		}
		tr, err := tracing.New(topts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		base = append(base, WithTracer(tr))
	}

	return New(append(base, opts...)...)
}

// LoadRoutes validates rc, registers its routes and attaches group
// middleware resolved from the container.
func (a *App) LoadRoutes(rc RoutesConfig) error {
	if a.frozen.Load() {
		return ErrFrozen
	}

	v, err := validation.New(validation.WithTagName(framconfig.DefaultTag))
	if err != nil {
		return err
	}
	if err := v.Validate(rc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	for _, g := range rc.Groups {
		mws := make([]middleware.Middleware, 0, len(g.Middleware))
		for _, id := range g.Middleware {
			mw, err := a.middlewareByID(id)
			if err != nil {
				return fmt.Errorf("group %s: %w", g.Prefix, err)
			}
			mws = append(mws, mw)
		}
		a.router.AddGroupMiddleware(g.Prefix, mws...)
	}

	for _, rt := range rc.Routes {
		if err := a.router.Handle(strings.ToUpper(rt.Method), rt.Name, rt.Handler, rt.Pattern); err != nil {
			return fmt.Errorf("route %s: %w", rt.Name, err)
		}
	}
	return nil
}
