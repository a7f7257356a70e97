// Package errors provides the structured error type used throughout
// the library.
//
// Every failure carries a Phase (where in processing it happened), a
// Kind (what went wrong), and optionally the field path inside the
// schema, the descriptor type name, the offending value, and a
// human-readable detail message. Errors compare with errors.Is on
// Phase and Kind, so callers can match categories without string
// inspection.
package errors
