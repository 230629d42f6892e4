// Package session keeps per-client server-side state: the authentication
// status, the CSRF token, single-shot flash attributes and a few plain
// attributes such as the request saved before a login redirect.
//
// Sessions live in a [MemoryStore]. The store lock guards the session map
// and every expiry time; each [Session] has its own lock which the HTTP
// middleware holds for the duration of a request so that requests on the
// same session are served one at a time.
package session
