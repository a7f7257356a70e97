package binstruct

import (
	"go.uber.org/zap"

	"github.com/structlab/binstruct/errors"
)

// Structure is the schema-driven codec for one ordered field list. It
// is built once, caches its total byte width, and may then serve any
// number of Pack and Unpack calls, concurrently if each call gets its
// own buffer.
type Structure struct {
	typ *Type
}

// New builds a Structure from an ordered field list. Field names must
// be unique within their own level; nesting is expressed with Struct
// field types or another Structure's Type. Construction fails if a
// name repeats, a field type is missing, or the schema contains itself.
func New(fields ...Field) (*Structure, error) {
	typ, err := Struct(fields...)
	if err != nil {
		return nil, err
	}
	return &Structure{typ: typ}, nil
}

// Struct builds a struct-kind descriptor from an ordered field list,
// for use as a nested field type or an array element. New is the
// top-level form of the same thing.
func Struct(fields ...Field) (*Type, error) {
	t := &Type{
		kind:   KindStruct,
		name:   "struct",
		fields: make([]Field, len(fields)),
	}
	copy(t.fields, fields)

	width, err := measure(t, make(map[*Type]bool), nil)
	if err != nil {
		return nil, err
	}
	t.width = width

	Logger().Debug("compiled structure",
		zap.Int("fields", len(t.fields)),
		zap.Int("width", width),
	)
	return t, nil
}

// measure computes the total byte width of t, recursing through array
// elements and struct fields, and validates the schema on the way:
// names unique per level, no nil field types, no self-reference. The
// onPath set holds the struct descriptors on the current recursion
// path; revisiting one means the schema contains itself.
func measure(t *Type, onPath map[*Type]bool, path []string) (int, error) {
	switch t.kind {
	case KindArray:
		elemWidth, err := measure(t.elem, onPath, appendPath(path, "[]"))
		if err != nil {
			return 0, err
		}
		return elemWidth * t.count, nil

	case KindStruct:
		if onPath[t] {
			return 0, errors.CyclicSchema(path)
		}
		onPath[t] = true
		defer delete(onPath, t)

		seen := make(map[string]bool, len(t.fields))
		total := 0
		for _, f := range t.fields {
			if f.Name == "" {
				return 0, errors.InvalidSchema(errors.PhaseCompile, path, "field with empty name")
			}
			if f.Type == nil {
				return 0, errors.InvalidSchema(errors.PhaseCompile, appendPath(path, f.Name), "field has no type")
			}
			if seen[f.Name] {
				return 0, errors.DuplicateField(path, f.Name)
			}
			seen[f.Name] = true

			w, err := measure(f.Type, onPath, appendPath(path, f.Name))
			if err != nil {
				return 0, err
			}
			total += w
		}
		return total, nil

	default:
		return t.width, nil
	}
}

// Width returns the structure's total byte width: the sum of its field
// widths in declared order. Fixed at construction.
func (s *Structure) Width() int { return s.typ.width }

// Fields returns a copy of the structure's ordered field list.
func (s *Structure) Fields() []Field { return s.typ.Fields() }

// Type returns the structure as a descriptor, for nesting it as a
// field type or an array element.
func (s *Structure) Type() *Type { return s.typ }

// Unpack decodes the structure's width of bytes from the front of data
// into an ordered record. Trailing bytes beyond the width are ignored,
// so a structure can act as a prefix codec for a larger stream; fewer
// bytes than the width is a truncated-buffer error.
func (s *Structure) Unpack(data []byte) (*Record, error) {
	v, err := s.typ.decode(data, 0, nil)
	if err != nil {
		return nil, err
	}
	return v.(*Record), nil
}

// Pack encodes a record into exactly the structure's width of bytes,
// fields in declared order. The record may be a *Record or a plain
// map[string]any; only names matter, order comes from the schema.
// Every non-padding field must be present.
func (s *Structure) Pack(record any) ([]byte, error) {
	return s.typ.Pack(record)
}

// appendPath extends an error path without sharing the backing array
// with sibling recursions.
func appendPath(path []string, elem string) []string {
	return append(path[:len(path):len(path)], elem)
}
