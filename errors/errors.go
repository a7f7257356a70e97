package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // schema construction
	PhaseEncode  Phase = "encode"  // record to bytes
	PhaseDecode  Phase = "decode"  // bytes to record
	PhaseParse   Phase = "parse"   // schema document parsing
)

// Kind categorizes the error
type Kind string

const (
	KindTruncatedBuffer Kind = "truncated_buffer"
	KindFieldMissing    Kind = "field_missing"
	KindValueTooLong    Kind = "value_too_long"
	KindArityMismatch   Kind = "arity_mismatch"
	KindTypeMismatch    Kind = "type_mismatch"
	KindCyclicSchema    Kind = "cyclic_schema"
	KindDuplicateField  Kind = "duplicate_field"
	KindInvalidSchema   Kind = "invalid_schema"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	TypeName string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.TypeName != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.TypeName != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", descriptor ")
			b.WriteString(e.TypeName)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("descriptor ")
			b.WriteString(e.TypeName)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.TypeName != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name of the offending value
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// TypeName sets the descriptor type name
func (b *Builder) TypeName(t string) *Builder {
	b.err.TypeName = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Truncated creates a truncated buffer error
func Truncated(phase Phase, path []string, need, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncatedBuffer,
		Path:   path,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, got),
		Value:  got,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// ValueTooLong creates an error for a value that exceeds its field's
// fixed width or numeric range
func ValueTooLong(phase Phase, path []string, typeName string, value any, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindValueTooLong,
		Path:     path,
		TypeName: typeName,
		Detail:   detail,
		Value:    value,
	}
}

// ArityMismatch creates an error for an array value of the wrong length
func ArityMismatch(phase Phase, path []string, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindArityMismatch,
		Path:   path,
		Detail: fmt.Sprintf("array expects %d elements, got %d", want, got),
		Value:  got,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, typeName string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		GoType:   goType,
		TypeName: typeName,
	}
}

// CyclicSchema creates an error for a schema that contains itself
func CyclicSchema(path []string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindCyclicSchema,
		Path:   path,
		Detail: "structure contains itself, directly or through nesting",
	}
}

// DuplicateField creates an error for a field name reused at one level
func DuplicateField(path []string, fieldName string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindDuplicateField,
		Path:   path,
		Detail: fmt.Sprintf("field name %q already declared at this level", fieldName),
	}
}

// InvalidSchema creates an error for a malformed schema definition
func InvalidSchema(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidSchema,
		Path:   path,
		Detail: detail,
	}
}
