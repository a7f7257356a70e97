// Package binstruct converts between declarative field schemas and
// packed little-endian binary layouts, the way C-like structs lay out
// over a byte stream or file.
//
// A schema is an ordered field list; each field is a scalar, a
// fixed-length buffer, padding, a fixed-count array, or a nested
// structure, recursively. The Structure engine computes the total byte
// width once at construction and then converts both ways:
//
//	┌──────────────────────────────────────────────────────┐
//	│ ordered Record ←→ [Structure] ←→ packed bytes        │
//	└──────────────────────────────────────────────────────┘
//
// # Layout
//
// Layouts are packed: no hidden alignment, zero-filled padding only
// where Spare declares it, multi-byte scalars little-endian.
//
//	Type                    Width
//	────────────────────────────────
//	Bool, Char, S8, U8      1
//	S16, U16, F16           2
//	S32, U32, F32           4
//	S64, U64, F64           8
//	SNative, UNative        platform int width
//	Bytes(n), String(n)     n
//	Spare(n)                n
//	Array(T, k)             k × T.Width()
//	struct                  sum of field widths
//
// # Usage
//
//	inner, _ := binstruct.Struct(
//		binstruct.Field{Name: "three", Type: binstruct.U8},
//		binstruct.Field{Name: "pad1", Type: binstruct.Spare(1)},
//		binstruct.Field{Name: "five", Type: binstruct.U8},
//	)
//	s, _ := binstruct.New(
//		binstruct.Field{Name: "one", Type: binstruct.U8},
//		binstruct.Field{Name: "nested", Type: inner},
//		binstruct.Field{Name: "array", Type: binstruct.Array(binstruct.U8, 3)},
//	)
//	rec, _ := s.Unpack(data)   // bytes -> ordered record
//	out, _ := s.Pack(rec)      // ordered record -> bytes
//
// Every bare descriptor also packs and unpacks a single value directly
// (binstruct.U16.Unpack, binstruct.Array(binstruct.F32, 4).Pack, ...).
//
// # Key Types
//
//	Type       - fixed-width descriptor for one value kind
//	Field      - name plus descriptor; a schema is an ordered []Field
//	Structure  - compiled schema with cached width and Pack/Unpack
//	Record     - ordered decoded value, field order preserved
//
// Structures and descriptors are immutable after construction; a
// single Structure may serve concurrent Pack/Unpack calls as long as
// each call owns its buffer.
package binstruct
