package binstruct

import "fmt"

// Bytes returns a descriptor for a fixed-length raw byte buffer of n
// bytes. Decoding copies exactly n bytes; encoding pads shorter input
// with zero bytes and rejects longer input.
//
// Bytes panics if n is negative: buffer sizes are part of the schema
// and fixed by the programmer.
func Bytes(n int) *Type {
	mustSize("Bytes", n)
	return &Type{
		kind:  KindBytes,
		width: n,
		name:  fmt.Sprintf("bytes(%d)", n),
	}
}

// String returns a descriptor for a fixed-length text buffer of n
// bytes. Decoding yields a Go string cut at the first NUL byte;
// encoding pads shorter input with zero bytes and rejects longer
// input. Use StringRaw to keep NUL bytes on decode.
//
// String panics if n is negative.
func String(n int) *Type {
	mustSize("String", n)
	return &Type{
		kind:  KindString,
		width: n,
		name:  fmt.Sprintf("string(%d)", n),
	}
}

// StringRaw is String without NUL trimming: the decoded string always
// has exactly n bytes.
func StringRaw(n int) *Type {
	mustSize("StringRaw", n)
	return &Type{
		kind:    KindString,
		width:   n,
		rawText: true,
		name:    fmt.Sprintf("string(%d, raw)", n),
	}
}

// Spare returns a descriptor for n bytes of padding. It decodes to nil
// and always encodes as n zero bytes; a record need not supply a value
// for a spare field.
//
// Spare panics if n is negative.
func Spare(n int) *Type {
	mustSize("Spare", n)
	return &Type{
		kind:  KindPadding,
		width: n,
		name:  fmt.Sprintf("spare(%d)", n),
	}
}

// Padding is an alias for Spare.
func Padding(n int) *Type { return Spare(n) }

// Array returns a descriptor for a fixed-count repetition of elem.
// The element may be any descriptor, including a structure type or
// another array. Width is count times the element width.
//
// Decoding yields a []any of exactly count elements; encoding accepts
// any slice or array value of exactly count elements and fails with an
// arity mismatch otherwise.
//
// Array panics on a nil element or negative count.
func Array(elem *Type, count int) *Type {
	if elem == nil {
		panic("binstruct: Array element type is nil")
	}
	mustSize("Array", count)
	return &Type{
		kind:  KindArray,
		elem:  elem,
		count: count,
		width: elem.width * count,
		name:  fmt.Sprintf("array(%s, %d)", elem.name, count),
	}
}

func mustSize(what string, n int) {
	if n < 0 {
		panic(fmt.Sprintf("binstruct: %s size %d is negative", what, n))
	}
}
