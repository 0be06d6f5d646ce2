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
	"fmt"
	"strings"
)

// InvokeMethod is the method called for descriptors without "@".
const InvokeMethod = "Invoke"

// Target is a parsed handler descriptor.
type Target struct {
	Class     string
	Method    string
	Invokable bool
}

// ParseTarget parses "Class" or "Class@method".
func ParseTarget(descriptor string) (Target, error) {
	descriptor = strings.TrimSpace(descriptor)
	if descriptor == "" {
		return Target{}, fmt.Errorf("%w: empty", ErrInvalidDescriptor)
	}

	class, method, found := strings.Cut(descriptor, "@")
	if !found {
		return Target{Class: descriptor, Method: InvokeMethod, Invokable: true}, nil
	}
	if class == "" || method == "" || strings.Contains(method, "@") {
		return Target{}, fmt.Errorf("%w: %q", ErrInvalidDescriptor, descriptor)
	}
	return Target{Class: class, Method: method}, nil
}

// String returns the descriptor form of t.
func (t Target) String() string {
	if t.Invokable {
		return t.Class
	}
	return t.Class + "@" + t.Method
}
