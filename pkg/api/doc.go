// Package api defines the core domain types for the aufgabe task service.
//
// This package provides all data types shared across the service layers:
// identities and tasks, request/response payloads, the uniform response
// envelope, typed application errors, declarative request validation, and
// ID generation.
//
// The package has zero external dependencies (Go standard library only) and
// performs no I/O.
//
// Core types:
//   - [User]: A registered account; the password hash never serializes.
//   - [Task]: A unit of work owned by exactly one user.
//   - [Error]: Typed application error carrying a category and message.
//   - [RuleSet]: Ordered declarative validation rules evaluated per route.
//   - [Envelope]: The uniform {success, message, data} response shape.
package api
