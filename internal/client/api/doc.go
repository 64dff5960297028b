// Package api is the client for the ResQSync HTTP API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering auth,
//     profile, public directories (hospitals, news), reports, help and
//     volunteer submissions, manager verification and the notification
//     stream.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that injects
//     the bearer token from a TokenSource, tags each call with an
//     X-Request-ID, applies a per-request timeout, and maps HTTP statuses to
//     sentinel errors.
//  3. Stream, a scoped server-push connection whose events arrive on a
//     channel and which is released by Close.
//
// # Error Handling
//
// Non-2xx responses become *Error, carrying the status and a best-effort
// message extracted from the body. *Error unwraps to ErrUnauthorized,
// ErrNotFound or ErrUnavailable where the status allows, so callers match
// with errors.Is. Transport failures wrap ErrUnavailable.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package api
