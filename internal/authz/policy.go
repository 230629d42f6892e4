// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authz

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-course-catalog/models"
)

// Rule is one row of the policy table. Empty Methods means any method.
type Rule struct {
	Methods  []string
	Patterns []string
	Access   Access
}

type compiledRule struct {
	index    int
	methods  []string
	patterns []pattern
	access   Access
}

func (r compiledRule) appliesTo(method string) bool {
	if len(r.methods) == 0 {
		return true
	}
	for _, m := range r.methods {
		if m == method {
			return true
		}
	}
	return false
}

// Match describes which rule of the table a request hit.
type Match struct {
	// Index is the position of the rule in the table.
	Index   int
	Pattern string
	Access  Access
}

// Policy evaluates requests against a rule table. It is immutable after
// construction and safe for concurrent use.
type Policy struct {
	rules []compiledRule

	csrfExempt       []pattern
	sameOriginFrames []pattern
}

type Option func(*Policy) error

// WithCSRFExemptions lists path patterns on which mutating requests do not
// need a CSRF token.
func WithCSRFExemptions(patterns ...string) Option {
	return func(p *Policy) error {
		compiled, err := compileAll(patterns)
		if err != nil {
			return err
		}
		p.csrfExempt = append(p.csrfExempt, compiled...)
		return nil
	}
}

// WithSameOriginFrames lists path patterns that may be framed by pages of
// the same origin. Everything else is served with frames denied.
func WithSameOriginFrames(patterns ...string) Option {
	return func(p *Policy) error {
		compiled, err := compileAll(patterns)
		if err != nil {
			return err
		}
		p.sameOriginFrames = append(p.sameOriginFrames, compiled...)
		return nil
	}
}

// NewPolicy compiles rules. Requests that match no rule need an
// authenticated principal.
func NewPolicy(rules []Rule, opts ...Option) (*Policy, error) {
	p := &Policy{rules: make([]compiledRule, 0, len(rules))}

	for i, rule := range rules {
		if len(rule.Patterns) == 0 {
			return nil, fmt.Errorf("rule %d: %w", i, ErrEmptyRule)
		}
		patterns, err := compileAll(rule.Patterns)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}

		methods := make([]string, len(rule.Methods))
		for j, m := range rule.Methods {
			methods[j] = strings.ToUpper(m)
		}

		p.rules = append(p.rules, compiledRule{
			index:    i,
			methods:  methods,
			patterns: patterns,
			access:   rule.Access,
		})
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Match returns the first rule matching method and requestPath. ok is false
// when no rule matches.
func (p *Policy) Match(method, requestPath string) (Match, bool) {
	parts := splitPath(CleanPath(requestPath))
	method = strings.ToUpper(method)

	for _, rule := range p.rules {
		if !rule.appliesTo(method) {
			continue
		}
		for _, pat := range rule.patterns {
			if pat.match(parts) {
				return Match{Index: rule.index, Pattern: pat.raw, Access: rule.access}, true
			}
		}
	}

	return Match{Index: -1, Access: AccessAuthenticated}, false
}

// Authorize decides whether principal may issue method on requestPath.
// A nil principal is anonymous.
func (p *Policy) Authorize(method, requestPath string, principal *models.Principal) Decision {
	m, _ := p.Match(method, requestPath)
	return decide(m.Access, principal)
}

func decide(access Access, principal *models.Principal) Decision {
	switch access {
	case AccessPublic:
		return Allow
	case AccessAdmin:
		if principal == nil {
			return RedirectToLogin
		}
		if !principal.IsAdmin() {
			return Forbid
		}
		return Allow
	default:
		if principal == nil {
			return RedirectToLogin
		}
		return Allow
	}
}

// CSRFExempt reports whether requestPath is exempt from the CSRF check.
func (p *Policy) CSRFExempt(requestPath string) bool {
	return matchAny(p.csrfExempt, requestPath)
}

// FramesSameOrigin reports whether requestPath may be framed by the same
// origin.
func (p *Policy) FramesSameOrigin(requestPath string) bool {
	return matchAny(p.sameOriginFrames, requestPath)
}

// Mutating reports whether method changes server state and therefore needs
// a CSRF token.
func Mutating(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}

func matchAny(patterns []pattern, requestPath string) bool {
	if len(patterns) == 0 {
		return false
	}
	parts := splitPath(CleanPath(requestPath))
	for _, pat := range patterns {
		if pat.match(parts) {
			return true
		}
	}
	return false
}

func compileAll(raw []string) ([]pattern, error) {
	out := make([]pattern, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		pat, err := compilePattern(r)
		if err != nil {
			return nil, err
		}
		out = append(out, pat)
	}
	return out, nil
}
