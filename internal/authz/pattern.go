// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authz

import (
	"fmt"
	"path"
	"strings"
)

type segmentKind int

const (
	segLiteral segmentKind = iota
	segID
	segAny
	segRest
)

type segment struct {
	kind    segmentKind
	literal string
}

// pattern is a compiled path pattern.
type pattern struct {
	raw      string
	segments []segment
}

func compilePattern(raw string) (pattern, error) {
	if !strings.HasPrefix(raw, "/") {
		return pattern{}, fmt.Errorf("%w: %q must start with '/'", ErrInvalidPattern, raw)
	}

	parts := splitPath(raw)
	p := pattern{raw: raw, segments: make([]segment, 0, len(parts))}
	for i, part := range parts {
		switch part {
		case "{id}":
			p.segments = append(p.segments, segment{kind: segID})
		case "*":
			p.segments = append(p.segments, segment{kind: segAny})
		case "**":
			if i != len(parts)-1 {
				return pattern{}, fmt.Errorf("%w: %q uses '**' before the last segment", ErrInvalidPattern, raw)
			}
			p.segments = append(p.segments, segment{kind: segRest})
		default:
			if strings.ContainsAny(part, "*{}") {
				return pattern{}, fmt.Errorf("%w: %q has unsupported segment %q", ErrInvalidPattern, raw, part)
			}
			p.segments = append(p.segments, segment{kind: segLiteral, literal: part})
		}
	}

	return p, nil
}

func (p pattern) match(parts []string) bool {
	for i, seg := range p.segments {
		if seg.kind == segRest {
			return true
		}
		if i >= len(parts) {
			return false
		}
		switch seg.kind {
		case segLiteral:
			if parts[i] != seg.literal {
				return false
			}
		case segID:
			if !isDigits(parts[i]) {
				return false
			}
		case segAny:
			if parts[i] == "" {
				return false
			}
		}
	}

	return len(parts) == len(p.segments)
}

// CleanPath normalises a request path for matching: the query string is
// dropped, duplicate slashes and dot segments are resolved and the trailing
// slash is removed.
func CleanPath(p string) string {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if p == "" || p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}

// splitPath returns the segments of a cleaned path. "/" has none.
func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
