package binstruct

import (
	"math"
	"strconv"
	"strings"

	"github.com/structlab/binstruct/errors"
	"github.com/structlab/binstruct/internal/coerce"
)

// Unpack decodes the descriptor's width of bytes from the front of
// data. Trailing bytes are ignored; fewer bytes than the width is a
// truncated-buffer error.
//
// Decoded value per kind: bool, byte (char and u8), int8..int64,
// uint16..uint64, int/uint (native), float32 (f16 and f32), float64,
// []byte (bytes), string, nil (padding), []any (array), and *Record
// (struct).
func (t *Type) Unpack(data []byte) (any, error) {
	return t.decode(data, 0, nil)
}

// decode reads exactly t.width bytes at off. The cursor is call-local:
// recursion passes advanced offsets, never shared state.
func (t *Type) decode(data []byte, off int, path []string) (any, error) {
	if len(data)-off < t.width {
		return nil, errors.Truncated(errors.PhaseDecode, path, t.width, len(data)-off)
	}

	switch t.kind {
	case KindPadding:
		return nil, nil

	case KindBool:
		return data[off] != 0, nil

	case KindChar, KindU8:
		return data[off], nil

	case KindS8:
		return int8(data[off]), nil

	case KindS16:
		return int16(readLE(data[off:], 2)), nil
	case KindU16:
		return uint16(readLE(data[off:], 2)), nil
	case KindS32:
		return int32(readLE(data[off:], 4)), nil
	case KindU32:
		return uint32(readLE(data[off:], 4)), nil
	case KindS64:
		return int64(readLE(data[off:], 8)), nil
	case KindU64:
		return readLE(data[off:], 8), nil

	case KindSNative:
		return int(readLE(data[off:], NativeWidth)), nil
	case KindUNative:
		return uint(readLE(data[off:], NativeWidth)), nil

	case KindF16:
		return coerce.Float16FromBits(uint16(readLE(data[off:], 2))), nil
	case KindF32:
		return math.Float32frombits(uint32(readLE(data[off:], 4))), nil
	case KindF64:
		return math.Float64frombits(readLE(data[off:], 8)), nil

	case KindBytes:
		out := make([]byte, t.width)
		copy(out, data[off:off+t.width])
		return out, nil

	case KindString:
		s := string(data[off : off+t.width])
		if !t.rawText {
			if i := strings.IndexByte(s, 0); i >= 0 {
				s = s[:i]
			}
		}
		return s, nil

	case KindArray:
		out := make([]any, t.count)
		cursor := off
		for i := range out {
			v, err := t.elem.decode(data, cursor, appendPath(path, "["+strconv.Itoa(i)+"]"))
			if err != nil {
				return nil, err
			}
			out[i] = v
			cursor += t.elem.width
		}
		return out, nil

	case KindStruct:
		rec := NewRecord()
		cursor := off
		for _, f := range t.fields {
			v, err := f.Type.decode(data, cursor, appendPath(path, f.Name))
			if err != nil {
				return nil, err
			}
			rec.Set(f.Name, v)
			cursor += f.Type.width
		}
		return rec, nil

	default:
		return nil, errors.InvalidSchema(errors.PhaseDecode, path, "unknown descriptor kind")
	}
}

// readLE assembles a little-endian unsigned integer of the given byte
// width. The caller has already bounds-checked b.
func readLE(b []byte, width int) uint64 {
	var u uint64
	for i := 0; i < width; i++ {
		u |= uint64(b[i]) << (8 * i)
	}
	return u
}
