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

package security

// Option configures the security middleware.
type Option func(*config)

type config struct {
	frameOptions          string
	contentTypeNosniff    bool
	contentSecurityPolicy string
	referrerPolicy        string
	permissionsPolicy     string
	hstsMaxAge            int
	hstsIncludeSubdomains bool
	hstsPreload           bool
	customHeaders         map[string]string
}

func defaultConfig() *config {
	return &config{
		frameOptions:          "DENY",
		contentTypeNosniff:    true,
		contentSecurityPolicy: "default-src 'self'",
		referrerPolicy:        "strict-origin-when-cross-origin",
		hstsMaxAge:            31536000,
		hstsIncludeSubdomains: true,
		customHeaders:         make(map[string]string),
	}
}

// WithFrameOptions sets X-Frame-Options. Empty disables it.
func WithFrameOptions(value string) Option {
	return func(cfg *config) { cfg.frameOptions = value }
}

// WithContentTypeNosniff toggles X-Content-Type-Options: nosniff.
func WithContentTypeNosniff(enabled bool) Option {
	return func(cfg *config) { cfg.contentTypeNosniff = enabled }
}

// WithContentSecurityPolicy sets Content-Security-Policy. Empty disables it.
func WithContentSecurityPolicy(policy string) Option {
	return func(cfg *config) { cfg.contentSecurityPolicy = policy }
}

// WithReferrerPolicy sets Referrer-Policy. Empty disables it.
func WithReferrerPolicy(policy string) Option {
	return func(cfg *config) { cfg.referrerPolicy = policy }
}

// WithPermissionsPolicy sets Permissions-Policy.
func WithPermissionsPolicy(policy string) Option {
	return func(cfg *config) { cfg.permissionsPolicy = policy }
}

// WithHSTS configures Strict-Transport-Security. A zero maxAge disables it.
//
//	security.New(security.WithHSTS(63072000, true, true))
func WithHSTS(maxAge int, includeSubdomains, preload bool) Option {
	return func(cfg *config) {
		cfg.hstsMaxAge = maxAge
		cfg.hstsIncludeSubdomains = includeSubdomains
		cfg.hstsPreload = preload
	}
}

// WithCustomHeader adds an extra header.
func WithCustomHeader(name, value string) Option {
	return func(cfg *config) { cfg.customHeaders[name] = value }
}

// DevelopmentPreset relaxes CSP for inline scripts and disables HSTS.
func DevelopmentPreset() Option {
	return func(cfg *config) {
		cfg.frameOptions = "SAMEORIGIN"
		cfg.contentSecurityPolicy = "default-src 'self' 'unsafe-inline' 'unsafe-eval'; img-src 'self' data:"
		cfg.referrerPolicy = "no-referrer-when-downgrade"
		cfg.hstsMaxAge = 0
	}
}

// NoSecurityHeaders disables every header, for use behind a gateway that
// sets them.
func NoSecurityHeaders() Option {
	return func(cfg *config) {
		*cfg = config{customHeaders: make(map[string]string)}
	}
}
