// Package client contains client-side building blocks for gophterms.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the gophterms server: Register/GetSalt/Login, Me, collections,
//     AcceptTerms and Ping.
//  2. A concrete HTTP implementation (see HTTPClient) that attaches the
//     access token, transparently refreshes an expired one once, and maps
//     HTTP status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI,
//     opening an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrConflict,
// ErrTermsMismatch, ErrBadRequest.
//
// All operations accept context.Context and honor cancellation/timeouts.
package client
