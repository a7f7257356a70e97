package binstruct

// The scalar descriptor catalog. All multi-byte scalars are
// little-endian, matching packed C struct conventions on common
// platforms; there is no per-field byte order.
var (
	// Bool is one byte: any non-zero byte decodes true, true encodes
	// as 0x01.
	Bool = scalar(KindBool)

	// Char is a single raw byte, the one-byte variant of Bytes.
	Char = scalar(KindChar)

	S8  = scalar(KindS8)
	U8  = scalar(KindU8)
	S16 = scalar(KindS16)
	U16 = scalar(KindU16)
	S32 = scalar(KindS32)
	U32 = scalar(KindU32)
	S64 = scalar(KindS64)
	U64 = scalar(KindU64)

	// SNative and UNative take the platform int/uint width.
	SNative = scalar(KindSNative)
	UNative = scalar(KindUNative)

	// F16, F32 and F64 use the IEEE 754 binary16/32/64 layouts.
	F16 = scalar(KindF16)
	F32 = scalar(KindF32)
	F64 = scalar(KindF64)
)

func scalar(kind TypeKind) *Type {
	return &Type{
		kind:  kind,
		width: kind.ScalarWidth(),
		name:  kind.String(),
	}
}

// signedRange returns the representable domain of a signed integer of
// the given byte width.
func signedRange(width int) (int64, int64) {
	bits := uint(width) * 8
	max := int64(1)<<(bits-1) - 1
	return -max - 1, max
}

// unsignedMax returns the largest value representable in an unsigned
// integer of the given byte width.
func unsignedMax(width int) uint64 {
	if width >= 8 {
		return ^uint64(0)
	}
	return 1<<(uint(width)*8) - 1
}
