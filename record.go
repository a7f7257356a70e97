package binstruct

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Record is an ordered name-to-value mapping, the runtime shape of a
// decoded structure: nested field lists decode to nested Records,
// arrays to []any, padding to nil. Key order is the schema's field
// order.
//
// Record is not safe for concurrent mutation; decoded records are
// independent per Unpack call.
type Record struct {
	keys []string
	vals map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{vals: make(map[string]any)}
}

// Set stores value under name. The first Set of a name appends it to
// the key order; later Sets replace the value in place. Returns the
// record for chaining.
func (r *Record) Set(name string, value any) *Record {
	if _, ok := r.vals[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.vals[name] = value
	return r
}

// Get returns the value stored under name.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.vals[name]
	return v, ok
}

// Has reports whether name is present.
func (r *Record) Has(name string) bool {
	_, ok := r.vals[name]
	return ok
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.keys) }

// Keys returns the field names in order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Equal reports whether two records have the same fields in the same
// order with deeply equal values. Nested records and []any sequences
// compare recursively.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	if len(r.keys) != len(o.keys) {
		return false
	}
	for i, k := range r.keys {
		if o.keys[i] != k {
			return false
		}
		if !valueEqual(r.vals[k], o.vals[k]) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	if ar, ok := a.(*Record); ok {
		br, ok := b.(*Record)
		return ok && ar.Equal(br)
	}
	if as, ok := a.([]any); ok {
		bs, ok := b.([]any)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !valueEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// MarshalJSON renders the record as a JSON object with keys in field
// order. Padding fields render as null, byte buffers as base64 per
// encoding/json convention.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String renders the record as its JSON form, for logs and tests.
func (r *Record) String() string {
	b, err := r.MarshalJSON()
	if err != nil {
		return "record(unprintable)"
	}
	return string(b)
}
