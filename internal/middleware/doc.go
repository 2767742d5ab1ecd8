// Package middleware provides HTTP middleware for the TesfaFund API.
//
// # Available Middleware
//
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: structured request logging with slog
//   - Recovery: turns panics into a 500 problem response
//   - CORS: cross-origin headers and preflight handling (go-chi/cors)
//   - Compress: gzip for JSON responses (chi middleware)
//   - RateLimit: token bucket limit on mutating requests per client
//   - Idempotency: replays the response of a repeated POST with the same
//     Idempotency-Key, so a retried donation is recorded once
//
// # Client Identity
//
// There are no user accounts at the HTTP layer. Per-client bookkeeping is
// keyed on the client address (ClientKey), which expects chi's RealIP to
// run earlier in the chain.
//
// # Context Values
//
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
