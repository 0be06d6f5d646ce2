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
	"regexp"
	"strings"
)

// defaultExpr matches a placeholder without an explicit expression.
const defaultExpr = `[^/]+`

var (
	paramNameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	intExprRE   = regexp.MustCompile(`^(?:\\d|\[0-9\])(?:\+|\{[1-9][0-9]*(?:,[0-9]*)?\})$`)
)

// part is one piece of a parsed pattern: either literal text or a placeholder.
type part struct {
	literal string

	param string
	expr  string
	check *regexp.Regexp // anchored expr, used when building URLs
	isInt bool
}

func (p part) isParam() bool {
	return p.param != ""
}

// parsePattern splits pattern into literal and placeholder parts.
func parsePattern(pattern string) ([]part, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("%w: %q must start with '/'", ErrInvalidPattern, pattern)
	}

	var (
		parts []part
		lit   strings.Builder
		seen  = make(map[string]struct{})
	)

	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, part{literal: lit.String()})
			lit.Reset()
		}
	}
	addParam := func(name, expr string) error {
		if !paramNameRE.MatchString(name) {
			return fmt.Errorf("%w: %q has invalid parameter name %q", ErrInvalidPattern, pattern, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q in %q", ErrDuplicateParam, name, pattern)
		}
		seen[name] = struct{}{}
		if expr == "" {
			expr = defaultExpr
		}
		check, err := regexp.Compile(`^(?:` + expr + `)$`)
		if err != nil {
			return fmt.Errorf("%w: %q parameter %q: %w", ErrInvalidPattern, pattern, name, err)
		}
		flush()
		parts = append(parts, part{
			param: name,
			expr:  expr,
			check: check,
			isInt: intExprRE.MatchString(expr),
		})
		return nil
	}

	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '{':
			end, err := closingBrace(pattern, i)
			if err != nil {
				return nil, err
			}
			body := pattern[i+1 : end]
			name, expr, _ := strings.Cut(body, ":")
			if err = addParam(strings.TrimSpace(name), strings.TrimSpace(expr)); err != nil {
				return nil, err
			}
			i = end + 1
		case c == '}':
			return nil, fmt.Errorf("%w: %q has unbalanced '}' at %d", ErrInvalidPattern, pattern, i)
		case c == ':' && i > 0 && pattern[i-1] == '/':
			end := strings.IndexByte(pattern[i:], '/')
			if end < 0 {
				end = len(pattern)
			} else {
				end += i
			}
			if err := addParam(pattern[i+1:end], ""); err != nil {
				return nil, err
			}
			i = end
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return parts, nil
}

// closingBrace returns the index of the '}' closing the '{' at start,
// allowing balanced braces inside the expression (e.g. \d{4}).
func closingBrace(pattern string, start int) (int, error) {
	depth := 0
	for i := start; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q has unclosed '{' at %d", ErrInvalidPattern, pattern, start)
}

// buildRegexp assembles the anchored matcher for parts.
func buildRegexp(parts []part) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteByte('^')
	for _, p := range parts {
		if p.isParam() {
			b.WriteString("(?P<")
			b.WriteString(p.param)
			b.WriteByte('>')
			b.WriteString(p.expr)
			b.WriteByte(')')
			continue
		}
		b.WriteString(regexp.QuoteMeta(p.literal))
	}
	b.WriteByte('$')
	return regexp.Compile(b.String())
}
