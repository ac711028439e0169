// Package auth provides authentication and rate limiting middleware for
// tenpin-server.
//
// APIKey(mode, header, key) checks a shared key in the named request header.
// Bearer(mode, secret) checks an HS256 token in the Authorization header;
// IssueToken mints one. Each passes every request through unless its own
// mode is configured and the secret is set, so both can wrap the same
// handler. A missing or wrong credential is answered with 401 and a JSON
// error body.
//
// RateLimit wraps a handler with a per-client-IP token bucket and answers
// 429 when a client exceeds it.
package auth
