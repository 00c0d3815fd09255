// Package client contains the kiosk's backend transport.
//
// # Overview
//
// The package provides:
//  1. The Client interface: login, PIN management, scan, undo, restock,
//     admin verification, the login grid and quick-item listings, and Ping.
//  2. HTTPClient, which speaks the backend's JSON-over-HTTP API and tags
//     every request with an X-Request-ID.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     activity journal, wiring SQLite and the embedded goose migrations.
//
// # Error Handling
//
// Callers match with errors.Is:
//   - ErrUnavailable: the backend could not be reached.
//   - ErrUnexpectedStatus: a non-2xx response without a usable body.
//   - ErrRejected: a business-rule failure; errors.As to *RejectedError for
//     the server message.
//
// HTTPClient is safe for concurrent use. All operations honor context
// cancellation.
package client
