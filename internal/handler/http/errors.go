// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidPathID is returned when the {id} segment of a route does not
	// fit an int64.
	ErrInvalidPathID = errors.New("invalid id in request path")

	// ErrMalformedForm is returned when the request body cannot be parsed as
	// a form, or a hidden field the page itself renders was tampered with.
	ErrMalformedForm = errors.New("malformed form")
)
