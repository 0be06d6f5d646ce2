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

package middleware

import "fram.dev/message"

// Chain is an ordered middleware pipeline with a cursor.
//
// Each call to [Chain.Handle] runs the middleware at the cursor and advances
// it, so a middleware that calls next.Handle resumes the chain where it left
// off. A Chain is single-use and not safe for concurrent use.
type Chain struct {
	middlewares []Middleware
	final       Handler
	index       int
}

// NewChain creates a chain running mws in order.
func NewChain(mws ...Middleware) *Chain {
	c := &Chain{middlewares: make([]Middleware, 0, len(mws)+2)}
	c.middlewares = append(c.middlewares, mws...)
	return c
}

// Push appends middleware to the end of the chain.
func (c *Chain) Push(mws ...Middleware) *Chain {
	c.middlewares = append(c.middlewares, mws...)
	return c
}

// SetFinal sets the handler invoked once every middleware has run.
func (c *Chain) SetFinal(h Handler) *Chain {
	c.final = h
	return c
}

// Len returns the number of middleware in the chain.
func (c *Chain) Len() int {
	return len(c.middlewares)
}

// Middlewares returns a copy of the chain's middleware in execution order.
func (c *Chain) Middlewares() []Middleware {
	return append([]Middleware(nil), c.middlewares...)
}

// Handle runs the next middleware, or the final handler once the chain is
// exhausted. It returns [ErrFinalHandlerUnspecified] if no final handler was set.
func (c *Chain) Handle(req *message.Request) (*message.Response, error) {
	if c.index >= len(c.middlewares) {
		if c.final == nil {
			return nil, ErrFinalHandlerUnspecified
		}
		return c.final.Handle(req)
	}
	mw := c.middlewares[c.index]
	c.index++
	return mw.Process(req, c)
}
