package binstruct

import (
	"github.com/structlab/binstruct/internal/types"
)

// TypeKind identifies one of the closed set of descriptor variants.
type TypeKind = types.Kind

const (
	KindBool    = types.KindBool
	KindChar    = types.KindChar
	KindS8      = types.KindS8
	KindU8      = types.KindU8
	KindS16     = types.KindS16
	KindU16     = types.KindU16
	KindS32     = types.KindS32
	KindU32     = types.KindU32
	KindS64     = types.KindS64
	KindU64     = types.KindU64
	KindSNative = types.KindSNative
	KindUNative = types.KindUNative
	KindF16     = types.KindF16
	KindF32     = types.KindF32
	KindF64     = types.KindF64
	KindBytes   = types.KindBytes
	KindString  = types.KindString
	KindPadding = types.KindPadding
	KindArray   = types.KindArray
	KindStruct  = types.KindStruct
)

// NativeWidth is the byte width of the platform int/uint, used by the
// SNative and UNative descriptors.
const NativeWidth = types.NativeWidth

// Type is a fixed-width binary type descriptor. A Type knows its byte
// width at construction time and how to encode and decode one value of
// its kind; composites (arrays, structures) recurse into their element
// and field descriptors.
//
// Types are immutable after construction and safe for concurrent use.
type Type struct {
	elem    *Type
	fields  []Field
	name    string
	width   int
	count   int
	rawText bool
	kind    TypeKind
}

// Kind returns the descriptor variant.
func (t *Type) Kind() TypeKind { return t.kind }

// Width returns the fixed byte width the descriptor occupies on the
// wire. It never depends on the data being coded.
func (t *Type) Width() int { return t.width }

// String returns the descriptor's display name, e.g. "u16" or
// "array(u8, 3)".
func (t *Type) String() string { return t.name }

// Elem returns an array descriptor's element type, or nil for any
// other kind.
func (t *Type) Elem() *Type { return t.elem }

// Count returns an array descriptor's fixed element count, or 0 for
// any other kind.
func (t *Type) Count() int { return t.count }

// Fields returns a copy of a struct descriptor's ordered field list,
// or nil for any other kind.
func (t *Type) Fields() []Field {
	if t.fields == nil {
		return nil
	}
	out := make([]Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// Null returns an all-zero buffer of the descriptor's width.
func (t *Type) Null() []byte { return make([]byte, t.width) }

// Field pairs a name with a type descriptor. A schema is an ordered
// []Field; declaration order is the on-the-wire byte order.
type Field struct {
	Type *Type
	Name string
}
