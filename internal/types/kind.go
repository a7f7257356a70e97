package types

import "strconv"

// Kind identifies one of the closed set of descriptor variants.
type Kind uint8

const (
	KindBool Kind = iota
	KindChar
	KindS8
	KindU8
	KindS16
	KindU16
	KindS32
	KindU32
	KindS64
	KindU64
	KindSNative
	KindUNative
	KindF16
	KindF32
	KindF64
	KindBytes
	KindString
	KindPadding
	KindArray
	KindStruct
)

var kindNames = [...]string{
	KindBool:    "bool",
	KindChar:    "char",
	KindS8:      "s8",
	KindU8:      "u8",
	KindS16:     "s16",
	KindU16:     "u16",
	KindS32:     "s32",
	KindU32:     "u32",
	KindS64:     "s64",
	KindU64:     "u64",
	KindSNative: "snative",
	KindUNative: "unative",
	KindF16:     "f16",
	KindF32:     "f32",
	KindF64:     "f64",
	KindBytes:   "bytes",
	KindString:  "string",
	KindPadding: "spare",
	KindArray:   "array",
	KindStruct:  "struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsScalar reports whether k is a single-value leaf kind, as opposed to
// padding or a composite.
func (k Kind) IsScalar() bool {
	return k <= KindString
}

// IsSigned reports whether k is a signed integer kind.
func (k Kind) IsSigned() bool {
	switch k {
	case KindS8, KindS16, KindS32, KindS64, KindSNative:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether k is an unsigned integer kind.
func (k Kind) IsUnsigned() bool {
	switch k {
	case KindU8, KindU16, KindU32, KindU64, KindUNative:
		return true
	default:
		return false
	}
}

// IsFloat reports whether k is a floating point kind.
func (k Kind) IsFloat() bool {
	switch k {
	case KindF16, KindF32, KindF64:
		return true
	default:
		return false
	}
}

// NativeWidth is the byte width of the platform int/uint, used by the
// snative and unative kinds.
const NativeWidth = strconv.IntSize / 8

// ScalarWidth returns the fixed byte width of a scalar kind, or -1 for
// kinds whose width depends on construction arguments (bytes, string,
// spare) or composition (array, struct).
func (k Kind) ScalarWidth() int {
	switch k {
	case KindBool, KindChar, KindS8, KindU8:
		return 1
	case KindS16, KindU16, KindF16:
		return 2
	case KindS32, KindU32, KindF32:
		return 4
	case KindS64, KindU64, KindF64:
		return 8
	case KindSNative, KindUNative:
		return NativeWidth
	default:
		return -1
	}
}
