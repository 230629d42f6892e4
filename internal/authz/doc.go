// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package authz holds the URL-scoped access policy of the application.
//
// The policy is a table of [Rule] values evaluated first-match-wins. A rule
// names the HTTP methods it applies to (none means any), one or more path
// patterns and the [Access] level required. Patterns are slash-separated
// segments where
//
//	{id}  matches one all-digit segment
//	*     matches any single non-empty segment
//	**    (last segment only) matches zero or more trailing segments
//
// Every other segment is matched literally. Request paths are cleaned
// before matching and never include the query string.
package authz
