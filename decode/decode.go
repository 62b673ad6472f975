// Package decode reads typed values straight out of tnetstring text, without building a value tree.
//
// Deserializer implements shape.Deserializer over a single cursor into the input.
// Strings it returns are substrings of the input; nothing is copied.
package decode

import (
	"fmt"
	"strings"

	"github.com/stewi1014/tnets/shape"
	"github.com/stewi1014/tnets/tnio"
)

const (
	trueFrame  = "4:true!"
	falseFrame = "5:false!"
	unitFrame  = "0:~"

	maxInt = int(^uint(0) >> 1)
)

// New returns a Deserializer reading from input.
// Compounds may nest at most maxDepth deep; a negative maxDepth disables the limit.
func New(input string, maxDepth int) *Deserializer {
	return &Deserializer{
		input:    input,
		maxDepth: maxDepth,
	}
}

// Deserializer is a shape.Deserializer reading from a string.
//
// While a compound is open the cursor is narrowed to the compound's payload,
// and the input following the compound is kept on a stack until the compound ends.
type Deserializer struct {
	input string
	outer []string

	// bare counts the levels in outer opened by unit variants, which are not compounds.
	bare int

	maxDepth int
}

var _ shape.Deserializer = (*Deserializer)(nil)

// Remaining returns the unread input at the current nesting level.
func (d *Deserializer) Remaining() string {
	return d.input
}

// Finish checks that a top-level value was read completely.
// It returns tnio.ErrUnusedParseData if input remains.
func (d *Deserializer) Finish() error {
	if len(d.outer) != 0 {
		return tnio.NewError(tnio.ErrStackProblem, fmt.Sprintf("%v compounds left open", len(d.outer)), 0)
	}
	if d.input != "" {
		return tnio.NewError(tnio.ErrUnusedParseData, fmt.Sprintf("%v bytes remain", len(d.input)), 0)
	}
	return nil
}

// next reads the frame at the cursor without consuming it.
// size is the length of the whole frame.
func (d *Deserializer) next() (payload string, tag byte, size int, err error) {
	n, i := 0, 0
	for ; i < len(d.input) && isDigit(d.input[i]); i++ {
		digit := int(d.input[i] - '0')
		if n > (maxInt-digit)/10 {
			return "", 0, 0, tnio.NewError(tnio.ErrParsingUnsigned, "length prefix overflows int", 1)
		}
		n = n*10 + digit
	}

	switch {
	case i == len(d.input):
		return "", 0, 0, tnio.NewError(tnio.ErrEOF, "input ends in length prefix", 1)
	case i == 0 || d.input[i] != ':':
		return "", 0, 0, tnio.NewError(tnio.ErrParsingUnsigned, fmt.Sprintf("bad length prefix at %q", preview(d.input)), 1)
	}

	body := d.input[i+1:]
	if len(body) <= n {
		return "", 0, 0, tnio.NewError(tnio.ErrEOF, fmt.Sprintf("frame wants %v bytes and a tag but only %v bytes remain", n, len(body)), 1)
	}

	return body[:n], body[n], i + 1 + n + 1, nil
}

// enter narrows the cursor to payload, saving rest for when the compound ends.
func (d *Deserializer) enter(payload, rest string) error {
	if d.maxDepth >= 0 && len(d.outer)-d.bare >= d.maxDepth {
		return tnio.NewError(tnio.ErrNestingTooDeep, fmt.Sprintf("limit is %v", d.maxDepth), 1)
	}
	d.outer = append(d.outer, rest)
	d.input = payload
	return nil
}

// leave restores the cursor of the enclosing level.
// err is returned if the current level has unread input.
func (d *Deserializer) leave(err error) error {
	if d.input != "" {
		return tnio.NewError(err, fmt.Sprintf("%v bytes left unread", len(d.input)), 1)
	}
	if len(d.outer) == 0 {
		return tnio.NewError(tnio.ErrStackProblem, "no compound is open", 1)
	}

	last := len(d.outer) - 1
	d.input = d.outer[last]
	d.outer = d.outer[:last]
	return nil
}

// Any implements shape.Deserializer.
// The shape is chosen by the tag of the next frame.
func (d *Deserializer) Any(v shape.Visitor) error {
	_, tag, _, err := d.next()
	if err != nil {
		return err
	}

	switch tag {
	case '~':
		if err := d.Unit(); err != nil {
			return err
		}
		return v.VisitUnit()

	case '!':
		b, err := d.Bool()
		if err != nil {
			return err
		}
		return v.VisitBool(b)

	case ',':
		s, err := d.Str()
		if err != nil {
			return err
		}
		return v.VisitStr(s)

	case '^':
		return d.unsupported("float")

	case '#':
		n, err := d.Int64()
		if err != nil {
			return err
		}
		return v.VisitInt(n)

	case ']':
		seq, err := d.Seq()
		if err != nil {
			return err
		}
		if err := v.VisitSeq(d, seq); err != nil {
			return err
		}
		return seq.End()

	case '}':
		m, err := d.Map()
		if err != nil {
			return err
		}
		if err := v.VisitMap(d, m); err != nil {
			return err
		}
		return m.End()
	}

	return tnio.NewError(tnio.ErrUnknownSegmentType, fmt.Sprintf("tag %q", tag), 0)
}

// Skip implements shape.Deserializer.
func (d *Deserializer) Skip() error {
	_, tag, size, err := d.next()
	if err != nil {
		return err
	}
	switch tag {
	case '!', ',', '#', '^', '~', ']', '}':
		d.input = d.input[size:]
		return nil
	}
	return tnio.NewError(tnio.ErrUnknownSegmentType, fmt.Sprintf("tag %q", tag), 0)
}

// Bool implements shape.Deserializer.
// Only the exact frames 4:true! and 5:false! are accepted.
func (d *Deserializer) Bool() (bool, error) {
	switch {
	case strings.HasPrefix(d.input, trueFrame):
		d.input = d.input[len(trueFrame):]
		return true, nil
	case strings.HasPrefix(d.input, falseFrame):
		d.input = d.input[len(falseFrame):]
		return false, nil
	}
	return false, tnio.NewError(tnio.ErrParsingBool, fmt.Sprintf("at %q", preview(d.input)), 0)
}

// Float32 implements shape.Deserializer. Floats are not supported and it always fails.
func (d *Deserializer) Float32() (float32, error) { return 0, d.unsupported("float32") }

// Float64 implements shape.Deserializer. Floats are not supported and it always fails.
func (d *Deserializer) Float64() (float64, error) { return 0, d.unsupported("float64") }

func (d *Deserializer) unsupported(what string) error {
	return tnio.NewError(tnio.ErrUnsupportedType, what+" cannot be decoded", 1)
}

// Str implements shape.Deserializer.
// The returned string shares memory with the input.
func (d *Deserializer) Str() (string, error) {
	payload, tag, size, err := d.next()
	if err != nil {
		return "", err
	}
	if tag != ',' {
		return "", tnio.NewError(tnio.ErrParsingString, fmt.Sprintf("found tag %q", tag), 0)
	}

	d.input = d.input[size:]
	return payload, nil
}

// Bytes implements shape.Deserializer.
// Unlike Str, it returns a copy.
func (d *Deserializer) Bytes() ([]byte, error) {
	s, err := d.Str()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Option implements shape.Deserializer.
func (d *Deserializer) Option() (bool, error) {
	if strings.HasPrefix(d.input, unitFrame) {
		d.input = d.input[len(unitFrame):]
		return false, nil
	}
	return true, nil
}

// Unit implements shape.Deserializer.
func (d *Deserializer) Unit() error {
	if !strings.HasPrefix(d.input, unitFrame) {
		return tnio.NewError(tnio.ErrParsingUnit, fmt.Sprintf("at %q", preview(d.input)), 0)
	}
	d.input = d.input[len(unitFrame):]
	return nil
}

// Seq implements shape.Deserializer.
func (d *Deserializer) Seq() (shape.SeqAccess, error) {
	payload, tag, size, err := d.next()
	if err != nil {
		return nil, err
	}
	if tag != ']' {
		return nil, tnio.NewError(tnio.ErrParsingSeq, fmt.Sprintf("found tag %q", tag), 0)
	}

	if err := d.enter(payload, d.input[size:]); err != nil {
		return nil, err
	}
	return seqAccess{d}, nil
}

// Map implements shape.Deserializer.
func (d *Deserializer) Map() (shape.MapAccess, error) {
	payload, tag, size, err := d.next()
	if err != nil {
		return nil, err
	}
	if tag != '}' {
		return nil, tnio.NewError(tnio.ErrParsingMap, fmt.Sprintf("found tag %q", tag), 0)
	}

	if err := d.enter(payload, d.input[size:]); err != nil {
		return nil, err
	}
	return mapAccess{d}, nil
}

// Enum implements shape.Deserializer.
//
// A bare string frame is a unit variant. A dict frame holding one pair is any other variant;
// the key is the variant name and the value its payload.
func (d *Deserializer) Enum() (shape.EnumAccess, error) {
	payload, tag, size, err := d.next()
	if err != nil {
		return nil, err
	}

	switch tag {
	case ',':
		// The payload is the name; narrow to nothing so stray payload reads fail.
		d.outer = append(d.outer, d.input[size:])
		d.input = ""
		d.bare++
		return &enumAccess{d: d, variant: payload, bare: true}, nil

	case '}':
		if err := d.enter(payload, d.input[size:]); err != nil {
			return nil, err
		}
		name, err := d.Str()
		if err != nil {
			return nil, err
		}
		return &enumAccess{d: d, variant: name}, nil
	}

	return nil, tnio.NewError(tnio.ErrParsingEnum, fmt.Sprintf("found tag %q", tag), 0)
}

type seqAccess struct {
	d *Deserializer
}

func (s seqAccess) Next() bool { return s.d.input != "" }
func (s seqAccess) End() error { return s.d.leave(tnio.ErrParsingSeq) }

type mapAccess struct {
	d *Deserializer
}

func (m mapAccess) Next() bool { return m.d.input != "" }
func (m mapAccess) End() error { return m.d.leave(tnio.ErrParsingMap) }

type enumAccess struct {
	d       *Deserializer
	variant string
	bare    bool
}

func (e *enumAccess) Variant() string { return e.variant }

func (e *enumAccess) Unit() error {
	if !e.bare {
		return tnio.NewError(tnio.ErrParsingUnitVariant, fmt.Sprintf("variant %q has a payload", e.variant), 0)
	}
	e.d.bare--
	return e.d.leave(tnio.ErrParsingEnum)
}

func (e *enumAccess) End() error {
	if e.bare {
		return tnio.NewError(tnio.ErrParsingEnum, fmt.Sprintf("variant %q has no payload", e.variant), 0)
	}
	return e.d.leave(tnio.ErrParsingEnum)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func preview(s string) string {
	if len(s) > 16 {
		return s[:16] + "..."
	}
	return s
}
