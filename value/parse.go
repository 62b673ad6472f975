package value

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/stewi1014/tnets/frame"
	"github.com/stewi1014/tnets/tnio"
)

// DefaultMaxDepth is the nesting limit used by Parse.
const DefaultMaxDepth = 1000

// Parse parses the frame at the front of data, returning the remaining input and the parsed Value.
// Compounds may nest at most DefaultMaxDepth deep.
func Parse(data []byte) (rest []byte, v Value, err error) {
	return ParseDepth(data, DefaultMaxDepth)
}

// ParseDepth is Parse with a nesting limit of maxDepth.
// A negative maxDepth disables the limit, and deeply nested input can then exhaust the stack.
func ParseDepth(data []byte, maxDepth int) (rest []byte, v Value, err error) {
	p := parser{maxDepth: maxDepth}
	return p.parse(data)
}

type parser struct {
	maxDepth int
	depth    int
}

func (p *parser) parse(data []byte) ([]byte, Value, error) {
	payload, tag, rest, err := frame.Split(data)
	if err != nil {
		return data, nil, err
	}

	var v Value
	switch tag {
	case frame.Bool:
		// Truth is decided by payload length alone; "4:xyz%!" is true.
		v = Bool(len(payload) == len("true"))

	case frame.String:
		v, err = parseString(payload)

	case frame.Int:
		n, perr := strconv.ParseInt(string(payload), 10, 64)
		if perr != nil {
			err = tnio.NewError(tnio.ErrUnableToParseInt, perr.Error(), 0)
		}
		v = Int(n)

	case frame.Float:
		// ParseFloat also reads hexadecimal mantissas, which are not decimal floats.
		if bytes.ContainsAny(payload, "xX") {
			err = tnio.NewError(tnio.ErrUnableToParseFloat, fmt.Sprintf("%q is not a decimal float", payload), 0)
			break
		}
		f, perr := strconv.ParseFloat(string(payload), 64)
		if perr != nil {
			err = tnio.NewError(tnio.ErrUnableToParseFloat, perr.Error(), 0)
		}
		v = Float(f)

	case frame.Null:
		if len(payload) != 0 {
			err = tnio.NewError(tnio.ErrNonZeroLengthNull, fmt.Sprintf("null has %v byte payload", len(payload)), 0)
		}
		v = Null{}

	case frame.List:
		v, err = p.parseList(payload)

	case frame.Dict:
		v, err = p.parseDict(payload)

	default:
		err = tnio.NewError(tnio.ErrUnknownSegmentType, fmt.Sprintf("tag %q", tag), 0)
	}

	if err != nil {
		return data, nil, err
	}
	return rest, v, nil
}

func (p *parser) enter() error {
	if p.maxDepth >= 0 && p.depth >= p.maxDepth {
		return tnio.NewError(tnio.ErrNestingTooDeep, fmt.Sprintf("limit is %v", p.maxDepth), 1)
	}
	p.depth++
	return nil
}

func (p *parser) parseList(payload []byte) (Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()

	list := List{}
	for len(payload) > 0 {
		rest, elem, err := p.parse(payload)
		if err != nil {
			return nil, err
		}
		list = append(list, elem)
		payload = rest
	}
	return list, nil
}

func (p *parser) parseDict(payload []byte) (Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()

	dict := Dict{}
	for len(payload) > 0 {
		rest, key, err := p.parse(payload)
		if err != nil {
			return nil, err
		}

		str, ok := key.(String)
		if !ok {
			return nil, tnio.NewError(tnio.ErrFoundNonStringKey, fmt.Sprintf("key is a %v", key.Kind()), 0)
		}

		rest, val, err := p.parse(rest)
		if err != nil {
			return nil, err
		}

		dict[string(str)] = val
		payload = rest
	}
	return dict, nil
}

// parseString decodes payload as UTF-8, replacing invalid sequences with U+FFFD.
func parseString(payload []byte) (Value, error) {
	if utf8.Valid(payload) {
		return String(payload), nil
	}

	text, err := unicode.UTF8.NewDecoder().Bytes(payload)
	if err != nil {
		return nil, tnio.NewError(tnio.ErrNonUTF8Str, err.Error(), 0)
	}
	return String(text), nil
}
