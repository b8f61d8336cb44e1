// Package httputil provides HTTP retry infrastructure for registry
// clients and JSON response helpers for handlers.
//
// Registry lookups are plain idempotent GETs, so transient failures
// (timeouts, connection resets, 5xx responses) are safe to retry. Clients
// wrap such failures in [RetryableError]; anything else fails fast.
//
// Responses are never cached between runs: every invocation queries the
// index fresh so results always reflect its current state.
package httputil
