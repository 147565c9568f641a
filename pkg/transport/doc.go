// Package transport defines the handler contract and middleware chain for
// the aufgabe HTTP transport layer.
//
// Handlers are functions returning an error. Business logic raises typed
// errors from pkg/api and the centralized translator in this package maps
// each error category to its HTTP status and the uniform response envelope.
// Operational errors pass their message through to the client; unexpected
// faults are logged in full and reduced to a generic message.
//
// Built-in middleware provides panic recovery, request ID assignment
// (X-Request-ID), structured request logging via log/slog, and CORS
// handling for a single configured browser origin.
package transport
