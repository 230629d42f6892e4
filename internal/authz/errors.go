package authz

import "errors"

var (
	ErrInvalidPattern = errors.New("invalid path pattern")
	ErrEmptyRule      = errors.New("rule has no patterns")
)
