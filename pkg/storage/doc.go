// Package storage defines the persistence contracts for the aufgabe task
// service, along with sentinel errors and shared filter types.
//
// Storage adapters (memory, postgres) implement the UserStore and TaskStore
// interfaces. Handlers and services depend only on the interfaces, so the
// same business logic runs against PostgreSQL in production and the
// in-memory store in tests.
package storage
