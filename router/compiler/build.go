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

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cast"
)

// Build substitutes subs into the pattern and returns the path.
//
// Every placeholder needs a value in subs whose string form satisfies the
// placeholder expression. Values are path-escaped. Extra entries in subs are
// ignored.
func (r *CompiledRoute) Build(subs map[string]any) (string, error) {
	if r.isStatic {
		return r.pattern, nil
	}

	var b strings.Builder
	b.Grow(len(r.pattern) + 16)
	for _, p := range r.parts {
		if !p.isParam() {
			b.WriteString(p.literal)
			continue
		}
		v, ok := subs[p.param]
		if !ok || v == nil {
			return "", fmt.Errorf("%w: %q for %s", ErrMissingParam, p.param, r.pattern)
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return "", fmt.Errorf("%w: %q for %s: %w", ErrInvalidParam, p.param, r.pattern, err)
		}
		if !p.check.MatchString(s) {
			return "", fmt.Errorf("%w: %q=%q does not match %s", ErrInvalidParam, p.param, s, p.expr)
		}
		b.WriteString(url.PathEscape(s))
	}
	return b.String(), nil
}
