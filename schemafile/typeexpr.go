package schemafile

import (
	"fmt"
	"strconv"

	"github.com/structlab/binstruct"
	"github.com/structlab/binstruct/errors"
)

var scalars = map[string]*binstruct.Type{
	"bool":    binstruct.Bool,
	"char":    binstruct.Char,
	"s8":      binstruct.S8,
	"u8":      binstruct.U8,
	"s16":     binstruct.S16,
	"u16":     binstruct.U16,
	"s32":     binstruct.S32,
	"u32":     binstruct.U32,
	"s64":     binstruct.S64,
	"u64":     binstruct.U64,
	"snative": binstruct.SNative,
	"unative": binstruct.UNative,
	"f16":     binstruct.F16,
	"f32":     binstruct.F32,
	"f64":     binstruct.F64,
}

func parseType(expr string, path []string) (*binstruct.Type, error) {
	p := &typeParser{src: expr, path: path}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("trailing input after type expression")
	}
	return t, nil
}

// typeParser is a recursive-descent parser over one type expression.
type typeParser struct {
	src  string
	path []string
	pos  int
}

func (p *typeParser) parse() (*binstruct.Type, error) {
	name := p.ident()
	if name == "" {
		return nil, p.errorf("empty type expression")
	}

	if t, ok := scalars[name]; ok {
		return t, nil
	}

	switch name {
	case "bytes":
		n, err := p.sizeArg()
		if err != nil {
			return nil, err
		}
		return binstruct.Bytes(n), nil

	case "string":
		if err := p.expect('('); err != nil {
			return nil, err
		}
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		raw := false
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
			if mod := p.ident(); mod != "raw" {
				return nil, p.errorf("unknown string modifier %q", mod)
			}
			raw = true
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		if raw {
			return binstruct.StringRaw(n), nil
		}
		return binstruct.String(n), nil

	case "spare", "padding":
		n, err := p.sizeArg()
		if err != nil {
			return nil, err
		}
		return binstruct.Spare(n), nil

	case "array":
		if err := p.expect('('); err != nil {
			return nil, err
		}
		elem, err := p.parse()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(','); err != nil {
			return nil, err
		}
		count, err := p.number()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return binstruct.Array(elem, count), nil

	default:
		return nil, p.errorf("unknown type %q", name)
	}
}

// sizeArg parses the "(n)" suffix of the single-argument builders.
func (p *typeParser) sizeArg() (int, error) {
	if err := p.expect('('); err != nil {
		return 0, err
	}
	n, err := p.number()
	if err != nil {
		return 0, err
	}
	if err := p.expect(')'); err != nil {
		return 0, err
	}
	return n, nil
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' && p.pos > start {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *typeParser) number() (int, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, p.errorf("expected a number at offset %d", start)
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, p.errorf("bad number %q", p.src[start:p.pos])
	}
	return n, nil
}

func (p *typeParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return p.errorf("expected %q at offset %d", string(c), p.pos)
	}
	p.pos++
	return nil
}

func (p *typeParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) errorf(format string, args ...any) *errors.Error {
	detail := fmt.Sprintf(format, args...)
	return errors.New(errors.PhaseParse, errors.KindInvalidSchema).
		Path(p.path...).
		Detail("%s in %q", detail, p.src).
		Build()
}
