// Package types defines the closed kind set shared by the descriptor
// model. Every descriptor variant the engine can encode or decode is
// enumerated here; the public package re-exports these so callers can
// switch over descriptor kinds without importing an internal path.
package types
