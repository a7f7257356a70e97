package binstruct

import (
	"bytes"
	"testing"

	"github.com/structlab/binstruct/errors"
)

// exampleStructure is the worked flat+nested+padding+array layout:
//
//	one:u8  two:u8  nested{three:u8 four:u8 pad1:spare(1) five:u8}  six:u8  array(u8, 3)
func exampleStructure(t *testing.T) *Structure {
	t.Helper()
	nested, err := Struct(
		Field{Name: "three", Type: U8},
		Field{Name: "four", Type: U8},
		Field{Name: "pad1", Type: Spare(1)},
		Field{Name: "five", Type: U8},
	)
	if err != nil {
		t.Fatalf("nested Struct failed: %v", err)
	}
	s, err := New(
		Field{Name: "one", Type: U8},
		Field{Name: "two", Type: U8},
		Field{Name: "nested", Type: nested},
		Field{Name: "six", Type: U8},
		Field{Name: "array", Type: Array(U8, 3)},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

var exampleBytes = []byte{0x01, 0x02, 0x03, 0x04, 0x00, 0x05, 0x06, 0x07, 0x08, 0x09}

func exampleRecord() *Record {
	nested := NewRecord().
		Set("three", byte(3)).
		Set("four", byte(4)).
		Set("pad1", nil).
		Set("five", byte(5))
	return NewRecord().
		Set("one", byte(1)).
		Set("two", byte(2)).
		Set("nested", nested).
		Set("six", byte(6)).
		Set("array", []any{byte(7), byte(8), byte(9)})
}

func TestStructureWidth(t *testing.T) {
	s := exampleStructure(t)
	if s.Width() != 10 {
		t.Errorf("Width() = %d, want 10", s.Width())
	}
}

func TestStructureUnpack(t *testing.T) {
	s := exampleStructure(t)
	rec, err := s.Unpack(exampleBytes)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if want := exampleRecord(); !rec.Equal(want) {
		t.Errorf("Unpack = %v, want %v", rec, want)
	}

	// field order is the schema order
	wantKeys := []string{"one", "two", "nested", "six", "array"}
	for i, k := range rec.Keys() {
		if k != wantKeys[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, k, wantKeys[i])
		}
	}
}

func TestStructurePack(t *testing.T) {
	s := exampleStructure(t)
	out, err := s.Pack(exampleRecord())
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if !bytes.Equal(out, exampleBytes) {
		t.Errorf("Pack = % x, want % x", out, exampleBytes)
	}
}

func TestStructurePackFromMap(t *testing.T) {
	s := exampleStructure(t)

	// padding fields may be omitted; plain maps work, order comes from
	// the schema
	record := map[string]any{
		"one": 1,
		"two": 2,
		"nested": map[string]any{
			"three": 3,
			"four":  4,
			"five":  5,
		},
		"six":   6,
		"array": []int{7, 8, 9},
	}
	out, err := s.Pack(record)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if !bytes.Equal(out, exampleBytes) {
		t.Errorf("Pack = % x, want % x", out, exampleBytes)
	}
}

func TestStructurePackMissingField(t *testing.T) {
	s := exampleStructure(t)
	record := map[string]any{
		"one": 1,
		"two": 2,
		"nested": map[string]any{
			"three": 3,
			"four":  4,
			"five":  5,
		},
		// six omitted
		"array": []int{7, 8, 9},
	}
	_, err := s.Pack(record)
	if !isKind(err, errors.PhaseEncode, errors.KindFieldMissing) {
		t.Errorf("Pack = %v, want field_missing", err)
	}
}

func TestStructureTruncation(t *testing.T) {
	s := exampleStructure(t)

	if _, err := s.Unpack(exampleBytes[:9]); !isKind(err, errors.PhaseDecode, errors.KindTruncatedBuffer) {
		t.Errorf("Unpack(9 bytes) = %v, want truncated_buffer", err)
	}

	// trailing bytes are ignored: a structure is a prefix codec
	longer := append(append([]byte{}, exampleBytes...), 0xAA, 0xBB)
	rec, err := s.Unpack(longer)
	if err != nil {
		t.Fatalf("Unpack with trailing bytes failed: %v", err)
	}
	if !rec.Equal(exampleRecord()) {
		t.Error("trailing bytes changed the decoded record")
	}
}

func TestStructureInsideArray(t *testing.T) {
	inner := exampleStructure(t)
	outer, err := New(
		Field{Name: "starting", Type: U8},
		Field{Name: "subs", Type: Array(inner.Type(), 2)},
		Field{Name: "ending", Type: U8},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if outer.Width() != 22 {
		t.Fatalf("Width() = %d, want 22", outer.Width())
	}

	data := append([]byte{0xFF}, exampleBytes...)
	data = append(data, exampleBytes...)
	data = append(data, 0xEE)

	rec, err := outer.Unpack(data)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}

	if v, _ := rec.Get("starting"); v != byte(0xFF) {
		t.Errorf("starting = %v", v)
	}
	if v, _ := rec.Get("ending"); v != byte(0xEE) {
		t.Errorf("ending = %v", v)
	}
	subs, _ := rec.Get("subs")
	seq := subs.([]any)
	if len(seq) != 2 {
		t.Fatalf("subs length = %d", len(seq))
	}
	for i, sub := range seq {
		if !sub.(*Record).Equal(exampleRecord()) {
			t.Errorf("subs[%d] = %v", i, sub)
		}
	}

	out, err := outer.Pack(rec)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("repack = % x, want % x", out, data)
	}
}

func TestStructureWithString(t *testing.T) {
	s, err := New(
		Field{Name: "starting", Type: U8},
		Field{Name: "str", Type: String(25)},
		Field{Name: "ending", Type: U8},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	data := append([]byte{0xFF}, []byte("ThisIsAStringOfLength23\x00\x00")...)
	data = append(data, 0xEE)

	rec, err := s.Unpack(data)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if v, _ := rec.Get("str"); v != "ThisIsAStringOfLength23" {
		t.Errorf("str = %q", v)
	}

	out, err := s.Pack(rec)
	if err != nil || !bytes.Equal(out, data) {
		t.Errorf("repack = % x, %v", out, err)
	}
}

func TestWidthAdditivity(t *testing.T) {
	s := exampleStructure(t)
	sum := 0
	for _, f := range s.Fields() {
		sum += f.Type.Width()
	}
	if sum != s.Width() {
		t.Errorf("sum of field widths %d != Width() %d", sum, s.Width())
	}
}

func TestSchemaValidation(t *testing.T) {
	if _, err := New(
		Field{Name: "a", Type: U8},
		Field{Name: "a", Type: U16},
	); !isKind(err, errors.PhaseCompile, errors.KindDuplicateField) {
		t.Errorf("duplicate name: %v", err)
	}

	if _, err := New(Field{Name: "", Type: U8}); !isKind(err, errors.PhaseCompile, errors.KindInvalidSchema) {
		t.Errorf("empty name: %v", err)
	}

	if _, err := New(Field{Name: "a"}); !isKind(err, errors.PhaseCompile, errors.KindInvalidSchema) {
		t.Errorf("nil type: %v", err)
	}

	// same name at different nesting levels is fine
	inner, err := Struct(Field{Name: "a", Type: U8})
	if err != nil {
		t.Fatalf("Struct failed: %v", err)
	}
	if _, err := New(
		Field{Name: "a", Type: U8},
		Field{Name: "inner", Type: inner},
	); err != nil {
		t.Errorf("same name across levels should be fine: %v", err)
	}
}

func TestCyclicSchemaRejected(t *testing.T) {
	// The public builders cannot express a cycle, so splice one in
	// behind the API and check the guard holds.
	a, err := Struct(Field{Name: "leaf", Type: U8})
	if err != nil {
		t.Fatalf("Struct failed: %v", err)
	}
	a.fields = append(a.fields, Field{Name: "self", Type: a})

	if _, err := measure(a, make(map[*Type]bool), nil); !isKind(err, errors.PhaseCompile, errors.KindCyclicSchema) {
		t.Errorf("measure = %v, want cyclic_schema", err)
	}

	// indirect cycle through an array
	b, err := Struct(Field{Name: "leaf", Type: U8})
	if err != nil {
		t.Fatalf("Struct failed: %v", err)
	}
	b.fields = append(b.fields, Field{Name: "ring", Type: Array(b, 2)})

	if _, err := measure(b, make(map[*Type]bool), nil); !isKind(err, errors.PhaseCompile, errors.KindCyclicSchema) {
		t.Errorf("measure through array = %v, want cyclic_schema", err)
	}
}

func TestRoundTripBytesDirection(t *testing.T) {
	s := exampleStructure(t)
	rec, err := s.Unpack(exampleBytes)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	out, err := s.Pack(rec)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if !bytes.Equal(out, exampleBytes) {
		t.Errorf("pack(unpack(B)) = % x, want % x", out, exampleBytes)
	}
}

func TestPackRejectsBadContainer(t *testing.T) {
	s := exampleStructure(t)
	if _, err := s.Pack("not a record"); !isKind(err, errors.PhaseEncode, errors.KindTypeMismatch) {
		t.Errorf("Pack(string) = %v, want type_mismatch", err)
	}
}

func TestConcurrentUse(t *testing.T) {
	s := exampleStructure(t)
	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				rec, err := s.Unpack(exampleBytes)
				if err != nil {
					done <- err
					return
				}
				if _, err := s.Pack(rec); err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent call failed: %v", err)
		}
	}
}
