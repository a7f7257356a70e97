// Package schemafile loads binary structure schemas from declarative
// TOML documents.
//
// A document is an ordered list of [[field]] tables; order in the file
// is the on-the-wire field order. Each field has a name and either a
// type expression or a nested list of [[field.fields]] tables:
//
//	[[field]]
//	name = "one"
//	type = "u8"
//
//	[[field]]
//	name = "nested"
//	  [[field.fields]]
//	  name = "three"
//	  type = "u8"
//	  [[field.fields]]
//	  name = "pad1"
//	  type = "spare(1)"
//
//	[[field]]
//	name = "array"
//	type = "array(u8, 3)"
//
// Type expressions are the scalar names (bool, char, s8, u8, s16, u16,
// s32, u32, s64, u64, snative, unative, f16, f32, f64) plus bytes(n),
// string(n), string(n, raw), spare(n), padding(n) and array(type, n),
// with arbitrary array nesting.
package schemafile
