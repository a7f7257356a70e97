package binstruct_test

import (
	"fmt"

	"github.com/structlab/binstruct"
)

func ExampleStructure_Unpack() {
	nested, _ := binstruct.Struct(
		binstruct.Field{Name: "three", Type: binstruct.U8},
		binstruct.Field{Name: "four", Type: binstruct.U8},
		binstruct.Field{Name: "pad1", Type: binstruct.Spare(1)},
		binstruct.Field{Name: "five", Type: binstruct.U8},
	)
	s, _ := binstruct.New(
		binstruct.Field{Name: "one", Type: binstruct.U8},
		binstruct.Field{Name: "two", Type: binstruct.U8},
		binstruct.Field{Name: "nested", Type: nested},
		binstruct.Field{Name: "six", Type: binstruct.U8},
		binstruct.Field{Name: "array", Type: binstruct.Array(binstruct.U8, 3)},
	)

	rec, _ := s.Unpack([]byte{0x01, 0x02, 0x03, 0x04, 0x00, 0x05, 0x06, 0x07, 0x08, 0x09})
	fmt.Println(rec)
	// Output: {"one":1,"two":2,"nested":{"three":3,"four":4,"pad1":null,"five":5},"six":6,"array":[7,8,9]}
}

func ExampleStructure_Pack() {
	s, _ := binstruct.New(
		binstruct.Field{Name: "id", Type: binstruct.U16},
		binstruct.Field{Name: "name", Type: binstruct.String(8)},
	)

	// a plain map works for packing: order comes from the schema
	out, _ := s.Pack(map[string]any{
		"id":   17921,
		"name": "knock",
	})
	fmt.Printf("% x\n", out)
	// Output: 01 46 6b 6e 6f 63 6b 00 00 00
}

func ExampleType_Pack() {
	out, _ := binstruct.F32.Pack(3.141592)
	fmt.Printf("% x\n", out)
	// Output: d8 0f 49 40
}

func ExampleArray() {
	grid := binstruct.Array(binstruct.U8, 3)
	v, _ := grid.Unpack([]byte{7, 8, 9})
	fmt.Println(v)
	// Output: [7 8 9]
}
