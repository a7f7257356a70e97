package schemafile

import (
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/structlab/binstruct"
	"github.com/structlab/binstruct/errors"
)

type fieldDoc struct {
	Name   string     `toml:"name"`
	Type   string     `toml:"type"`
	Fields []fieldDoc `toml:"fields"`
}

type document struct {
	Field []fieldDoc `toml:"field"`
}

// Load reads a TOML schema document from path and compiles it.
func Load(path string) (*binstruct.Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidSchema).
			Detail("reading schema file %s", path).
			Cause(err).
			Build()
	}
	return Parse(data)
}

// Parse compiles a TOML schema document into a Structure. Field order
// in the document is the structure's field order.
func Parse(data []byte) (*binstruct.Structure, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidSchema).
			Detail("malformed TOML").
			Cause(err).
			Build()
	}
	if len(doc.Field) == 0 {
		return nil, errors.InvalidSchema(errors.PhaseParse, nil, "document declares no fields")
	}

	fields, err := compileFields(doc.Field, nil)
	if err != nil {
		return nil, err
	}

	s, err := binstruct.New(fields...)
	if err != nil {
		return nil, err
	}
	binstruct.Logger().Debug("loaded schema document",
		zap.Int("fields", len(fields)),
		zap.Int("width", s.Width()),
	)
	return s, nil
}

func compileFields(docs []fieldDoc, path []string) ([]binstruct.Field, error) {
	fields := make([]binstruct.Field, 0, len(docs))
	for _, fd := range docs {
		if fd.Name == "" {
			return nil, errors.InvalidSchema(errors.PhaseParse, path, "field with no name")
		}
		fieldPath := append(path[:len(path):len(path)], fd.Name)

		var typ *binstruct.Type
		switch {
		case len(fd.Fields) > 0 && fd.Type != "":
			return nil, errors.InvalidSchema(errors.PhaseParse, fieldPath, "field declares both a type and nested fields")
		case len(fd.Fields) > 0:
			nested, err := compileFields(fd.Fields, fieldPath)
			if err != nil {
				return nil, err
			}
			t, err := binstruct.Struct(nested...)
			if err != nil {
				return nil, err
			}
			typ = t
		case fd.Type != "":
			t, err := parseType(fd.Type, fieldPath)
			if err != nil {
				return nil, err
			}
			typ = t
		default:
			return nil, errors.InvalidSchema(errors.PhaseParse, fieldPath, "field declares neither a type nor nested fields")
		}

		fields = append(fields, binstruct.Field{Name: fd.Name, Type: typ})
	}
	return fields, nil
}

// ParseType compiles a bare type expression, e.g. "u16" or
// "array(array(f32, 4), 2)", for ad-hoc single-value conversions.
func ParseType(expr string) (*binstruct.Type, error) {
	return parseType(expr, nil)
}
