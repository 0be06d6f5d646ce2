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

package requestid

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"fram.dev/logging"
	"fram.dev/message"
	"fram.dev/middleware"
)

// DefaultHeader carries the request ID in both directions.
const DefaultHeader = "X-Request-ID"

// maxClientIDLength bounds client-supplied IDs.
const maxClientIDLength = 128

// Option configures the middleware.
type Option func(*config)

type config struct {
	headerName    string
	generator     func() string
	allowClientID bool
}

func defaultConfig() *config {
	return &config{
		headerName:    DefaultHeader,
		generator:     generateUUIDv7,
		allowClientID: true,
	}
}

// WithHeader sets the header name.
func WithHeader(name string) Option {
	return func(c *config) { c.headerName = name }
}

// WithULID generates ULIDs instead of UUID v7.
func WithULID() Option {
	return func(c *config) { c.generator = generateULID }
}

// WithGenerator sets a custom ID generator.
func WithGenerator(fn func() string) Option {
	return func(c *config) {
		if fn != nil {
			c.generator = fn
		}
	}
}

// WithAllowClientID controls whether a client-supplied ID is reused.
func WithAllowClientID(allow bool) Option {
	return func(c *config) { c.allowClientID = allow }
}

func generateUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}

var (
	ulidEntropy     = ulid.Monotonic(rand.Reader, 0)
	ulidEntropyLock sync.Mutex
)

func generateULID() string {
	ulidEntropyLock.Lock()
	defer ulidEntropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}

type requestID struct {
	cfg *config
}

// New returns the request ID middleware.
func New(opts ...Option) middleware.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &requestID{cfg: cfg}
}

// Process implements middleware.Middleware.
func (m *requestID) Process(req *message.Request, next middleware.Handler) (*message.Response, error) {
	var id string
	if m.cfg.allowClientID {
		if v := req.Header(m.cfg.headerName); validClientID(v) {
			id = v
		}
	}
	if id == "" {
		id = m.cfg.generator()
	}

	req = req.WithAttribute(middleware.AttrRequestID, id)
	req = req.WithContext(logging.WithRequestID(req.Context(), id))

	resp, err := next.Handle(req)
	if resp != nil {
		resp = resp.WithHeader(m.cfg.headerName, id)
	}
	return resp, err
}

// validClientID accepts printable ASCII up to maxClientIDLength.
func validClientID(id string) bool {
	if id == "" || len(id) > maxClientIDLength {
		return false
	}
	for i := range len(id) {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// Get returns the request ID of req, or "".
func Get(req *message.Request) string {
	id, _ := req.AttributeOr(middleware.AttrRequestID, "").(string)
	return id
}
