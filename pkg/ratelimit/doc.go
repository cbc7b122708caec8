// Package ratelimit throttles requests per key with token buckets from
// golang.org/x/time/rate.
//
// A Limiter keeps one bucket per key (usually the client IP) and evicts
// buckets that have been idle longer than the configured TTL. Middleware
// applies a Limiter to an http.Handler, sets X-RateLimit-* headers, and
// answers 429 with Retry-After when the bucket is empty.
//
// The gateway puts password login, registration and auto-login behind a
// limiter so that credential guessing against the upstream CRM stays slow.
package ratelimit
