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

package compiler

import "sync"

// testParamWriter is a concurrency-safe ParamWriter for tests.
type testParamWriter struct {
	mu     sync.Mutex
	params map[string]any
}

func (w *testParamWriter) SetParam(name string, value any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.params == nil {
		w.params = make(map[string]any)
	}
	w.params[name] = value
}

func (w *testParamWriter) get(name string) (any, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	v, ok := w.params[name]
	return v, ok
}
