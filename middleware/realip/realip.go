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

package realip

import (
	"fmt"
	"net"
	"net/netip"
	"strings"

	"fram.dev/message"
	"fram.dev/middleware"
)

// Header names a forwarding header.
type Header string

// Supported forwarding headers.
const (
	HeaderXFF          Header = "X-Forwarded-For"
	HeaderXRealIP      Header = "X-Real-IP"
	HeaderCFConnecting Header = "CF-Connecting-IP"
)

// Option configures the middleware.
type Option func(*config)

type config struct {
	proxies []string
	headers []Header
	maxHops int
}

// WithTrustedProxies sets the CIDRs whose forwarding headers are believed.
// Plain addresses are accepted as single-host prefixes.
func WithTrustedProxies(cidrs ...string) Option {
	return func(c *config) { c.proxies = append(c.proxies, cidrs...) }
}

// WithHeaders sets the headers consulted, in order. The default is
// X-Forwarded-For then X-Real-IP.
func WithHeaders(headers ...Header) Option {
	return func(c *config) { c.headers = headers }
}

// WithMaxHops limits how many trusted X-Forwarded-For entries are skipped.
func WithMaxHops(n int) Option {
	return func(c *config) { c.maxHops = n }
}

type realIP struct {
	trusted []netip.Prefix
	headers []Header
	maxHops int
}

// New returns the middleware. It fails on malformed proxy CIDRs.
func New(opts ...Option) (middleware.Middleware, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &realIP{headers: cfg.headers, maxHops: cfg.maxHops}
	if len(m.headers) == 0 {
		m.headers = []Header{HeaderXFF, HeaderXRealIP}
	}
	if m.maxHops <= 0 {
		m.maxHops = 1
	}

	for _, p := range cfg.proxies {
		prefix, err := parsePrefix(p)
		if err != nil {
			return nil, fmt.Errorf("realip: invalid trusted proxy %q: %w", p, err)
		}
		m.trusted = append(m.trusted, prefix)
	}
	return m, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) middleware.Middleware {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

func parsePrefix(s string) (netip.Prefix, error) {
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		return p.Masked(), err
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// Process implements middleware.Middleware.
func (m *realIP) Process(req *message.Request, next middleware.Handler) (*message.Response, error) {
	return next.Handle(req.WithAttribute(middleware.AttrIPAddress, m.clientIP(req)))
}

func (m *realIP) clientIP(req *message.Request) string {
	remote := hostOf(req.RemoteAddr())
	if !m.isTrusted(remote) {
		return remote
	}

	for _, h := range m.headers {
		if h == HeaderXFF {
			if ip := m.fromXFF(req.Header(string(HeaderXFF))); ip != "" {
				return ip
			}
			continue
		}
		if ip := parseIP(req.Header(string(h))); ip != "" {
			return ip
		}
	}
	return remote
}

// fromXFF returns the rightmost untrusted entry, skipping at most maxHops
// trusted ones.
func (m *realIP) fromXFF(xff string) string {
	if xff == "" {
		return ""
	}
	parts := strings.Split(xff, ",")
	hops := 0
	for i := len(parts) - 1; i >= 0; i-- {
		ip := parseIP(parts[i])
		if ip == "" {
			continue
		}
		if !m.isTrusted(ip) {
			return ip
		}
		hops++
		if hops > m.maxHops {
			return ip
		}
	}
	return parseIP(parts[0])
}

func (m *realIP) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range m.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func hostOf(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

func parseIP(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().String()
}

// Get returns the client IP stored on req, or "".
func Get(req *message.Request) string {
	ip, _ := req.AttributeOr(middleware.AttrIPAddress, "").(string)
	return ip
}
