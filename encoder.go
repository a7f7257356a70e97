package binstruct

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/structlab/binstruct/errors"
	"github.com/structlab/binstruct/internal/coerce"
)

// Pack encodes a single value into exactly the descriptor's width of
// bytes. For struct descriptors the value is a *Record or a plain
// map[string]any; for arrays any slice or array of the right length;
// padding ignores the value entirely.
//
// A failing Pack returns no partial buffer.
func (t *Type) Pack(value any) ([]byte, error) {
	dst := make([]byte, 0, t.width)
	dst, err := t.encode(dst, value, nil)
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// encode appends exactly t.width bytes for value to dst. path names
// the position inside the top-level schema for error reporting.
func (t *Type) encode(dst []byte, value any, path []string) ([]byte, error) {
	switch t.kind {
	case KindPadding:
		return appendZeros(dst, t.width), nil

	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, t.mismatch(path, value)
		}
		if b {
			return append(dst, 1), nil
		}
		return append(dst, 0), nil

	case KindChar:
		c, ok := coerce.ToByte(value)
		if !ok {
			return nil, t.mismatch(path, value)
		}
		return append(dst, c), nil

	case KindS8, KindS16, KindS32, KindS64, KindSNative:
		i, ok := coerce.ToInt64(value)
		if !ok {
			return nil, t.mismatch(path, value)
		}
		if min, max := signedRange(t.width); i < min || i > max {
			return nil, errors.ValueTooLong(errors.PhaseEncode, path, t.name, value,
				fmt.Sprintf("value %d outside [%d, %d]", i, min, max))
		}
		return appendLE(dst, uint64(i), t.width), nil

	case KindU8, KindU16, KindU32, KindU64, KindUNative:
		u, ok := coerce.ToUint64(value)
		if !ok {
			return nil, t.mismatch(path, value)
		}
		if max := unsignedMax(t.width); u > max {
			return nil, errors.ValueTooLong(errors.PhaseEncode, path, t.name, value,
				fmt.Sprintf("value %d exceeds %d", u, max))
		}
		return appendLE(dst, u, t.width), nil

	case KindF16:
		// float32 input skips the float64 detour so NaN payloads
		// survive a decode/encode round trip untouched.
		f32, ok := value.(float32)
		if !ok {
			f, ok := coerce.ToFloat64(value)
			if !ok {
				return nil, t.mismatch(path, value)
			}
			f32 = float32(f)
			if math.IsInf(float64(f32), 0) && !math.IsInf(f, 0) {
				return nil, errors.ValueTooLong(errors.PhaseEncode, path, t.name, value,
					fmt.Sprintf("value %v overflows the f16 range", f))
			}
		}
		bits, exact := coerce.Float16Bits(f32)
		if !exact {
			return nil, errors.ValueTooLong(errors.PhaseEncode, path, t.name, value,
				fmt.Sprintf("value %v overflows the f16 range", f32))
		}
		return appendLE(dst, uint64(bits), 2), nil

	case KindF32:
		f32, ok := value.(float32)
		if !ok {
			f, ok := coerce.ToFloat64(value)
			if !ok {
				return nil, t.mismatch(path, value)
			}
			f32 = float32(f)
			if math.IsInf(float64(f32), 0) && !math.IsInf(f, 0) {
				return nil, errors.ValueTooLong(errors.PhaseEncode, path, t.name, value,
					fmt.Sprintf("value %v overflows the f32 range", f))
			}
		}
		return appendLE(dst, uint64(math.Float32bits(f32)), 4), nil

	case KindF64:
		f, ok := coerce.ToFloat64(value)
		if !ok {
			return nil, t.mismatch(path, value)
		}
		return appendLE(dst, math.Float64bits(f), 8), nil

	case KindBytes, KindString:
		b, ok := coerce.ToBytes(value)
		if !ok {
			return nil, t.mismatch(path, value)
		}
		if len(b) > t.width {
			return nil, errors.ValueTooLong(errors.PhaseEncode, path, t.name, value,
				fmt.Sprintf("%d bytes exceed width %d", len(b), t.width))
		}
		dst = append(dst, b...)
		return appendZeros(dst, t.width-len(b)), nil

	case KindArray:
		return t.encodeArray(dst, value, path)

	case KindStruct:
		return t.encodeStruct(dst, value, path)

	default:
		return nil, errors.InvalidSchema(errors.PhaseEncode, path, "unknown descriptor kind")
	}
}

func (t *Type) encodeArray(dst []byte, value any, path []string) ([]byte, error) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, t.mismatch(path, value)
	}
	if rv.Len() != t.count {
		return nil, errors.ArityMismatch(errors.PhaseEncode, path, t.count, rv.Len())
	}
	var err error
	for i := 0; i < t.count; i++ {
		dst, err = t.elem.encode(dst, rv.Index(i).Interface(), appendPath(path, "["+strconv.Itoa(i)+"]"))
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func (t *Type) encodeStruct(dst []byte, value any, path []string) ([]byte, error) {
	var err error
	for _, f := range t.fields {
		// Padding never reads the record; a supplied value is ignored.
		if f.Type.kind == KindPadding {
			dst = appendZeros(dst, f.Type.width)
			continue
		}
		v, found, ok := fieldValue(value, f.Name)
		if !ok {
			return nil, t.mismatch(path, value)
		}
		if !found {
			return nil, errors.FieldMissing(errors.PhaseEncode, path, f.Name)
		}
		dst, err = f.Type.encode(dst, v, appendPath(path, f.Name))
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// fieldValue looks a field up by name in either record form. The last
// result is false when the container is not a record at all.
func fieldValue(record any, name string) (value any, found, ok bool) {
	switch m := record.(type) {
	case *Record:
		v, found := m.Get(name)
		return v, found, true
	case map[string]any:
		v, found := m[name]
		return v, found, true
	}
	return nil, false, false
}

func (t *Type) mismatch(path []string, value any) *errors.Error {
	return errors.TypeMismatch(errors.PhaseEncode, path, fmt.Sprintf("%T", value), t.name)
}

// appendLE appends the low width bytes of u, least significant first.
func appendLE(dst []byte, u uint64, width int) []byte {
	for i := 0; i < width; i++ {
		dst = append(dst, byte(u>>(8*i)))
	}
	return dst
}

func appendZeros(dst []byte, n int) []byte {
	return append(dst, make([]byte, n)...)
}
