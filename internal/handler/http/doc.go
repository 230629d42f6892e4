// Package http implements the HTML transport layer of the course catalog.
//
// It wires the chi router, the server-rendered pages and the middleware
// chain. Requests pass tracing, access logging, security headers, session
// loading, the CSRF check and the access policy before any handler runs.
package http
