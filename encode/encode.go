// Package encode writes typed values as tnetstrings.
//
// A compound's length prefix comes before its content, but the length is only known once the content is written.
// Serializer solves this by staging each open compound in its own buffer.
// Opening a compound pushes a buffer; closing it pops the buffer and appends it, framed, to the buffer below.
package encode

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/stewi1014/tnets/frame"
	"github.com/stewi1014/tnets/shape"
	"github.com/stewi1014/tnets/tnio"
)

// variant marks a staged variant in the kinds stack.
const variant byte = 'v'

// stageSize is the initial capacity of a staging buffer.
const stageSize = 64

// New returns a new Serializer.
// Compounds may nest at most maxDepth deep; a negative maxDepth disables the limit.
func New(maxDepth int) *Serializer {
	return &Serializer{
		stack:    [][]byte{nil},
		maxDepth: maxDepth,
	}
}

// Serializer is a shape.Serializer writing to an in-memory buffer.
// It is not safe for concurrent use; each encode should use its own Serializer.
type Serializer struct {
	// stack[0] is the output, the rest are staging buffers of open compounds.
	stack [][]byte

	// kinds[i] is the closing tag of the compound staged in stack[i+1].
	kinds []byte

	maxDepth int
}

var _ shape.Serializer = (*Serializer)(nil)

// Output returns the encoded output.
// It returns tnio.ErrStackProblem if a compound is still open.
// The returned slice is reused after Reset.
func (s *Serializer) Output() ([]byte, error) {
	if len(s.stack) != 1 {
		return nil, tnio.NewError(tnio.ErrStackProblem, fmt.Sprintf("%v compounds left open", len(s.stack)-1), 0)
	}
	return s.stack[0], nil
}

// Reset discards all output and open compounds, keeping the output buffer for reuse.
func (s *Serializer) Reset() {
	for len(s.stack) > 1 {
		last := len(s.stack) - 1
		putBuffer(s.stack[last])
		s.stack = s.stack[:last]
	}
	s.stack[0] = s.stack[0][:0]
	s.kinds = s.kinds[:0]
}

func (s *Serializer) append(tag byte, payload []byte) {
	top := len(s.stack) - 1
	s.stack[top] = frame.Append(s.stack[top], tag, payload)
}

func (s *Serializer) appendString(tag byte, payload string) {
	top := len(s.stack) - 1
	s.stack[top] = frame.AppendString(s.stack[top], tag, payload)
}

func (s *Serializer) push(kind byte) error {
	if s.maxDepth >= 0 && len(s.kinds) >= s.maxDepth {
		return tnio.NewError(tnio.ErrNestingTooDeep, fmt.Sprintf("limit is %v", s.maxDepth), 1)
	}
	s.stack = append(s.stack, getBuffer(stageSize))
	s.kinds = append(s.kinds, kind)
	return nil
}

// pop closes the innermost compound, which must be of the given kind,
// and appends it to the enclosing buffer framed with tag.
func (s *Serializer) pop(kind, tag byte) error {
	if len(s.kinds) == 0 {
		return tnio.NewError(tnio.ErrStackProblem, "no compound is open", 1)
	}

	last := len(s.kinds) - 1
	if s.kinds[last] != kind {
		return tnio.NewError(tnio.ErrStackProblem, fmt.Sprintf("closing %q but %q is open", kind, s.kinds[last]), 1)
	}

	content := s.stack[last+1]
	s.stack = s.stack[:last+1]
	s.kinds = s.kinds[:last]

	s.append(tag, content)
	putBuffer(content)
	return nil
}

// Bool implements shape.Serializer.
func (s *Serializer) Bool(v bool) error {
	if v {
		s.appendString(frame.Bool, "true")
	} else {
		s.appendString(frame.Bool, "false")
	}
	return nil
}

// Int implements shape.Serializer.
func (s *Serializer) Int(v int64) error {
	var buff [20]byte
	s.append(frame.Int, strconv.AppendInt(buff[:0], v, 10))
	return nil
}

// Uint implements shape.Serializer.
func (s *Serializer) Uint(v uint64) error {
	var buff [20]byte
	s.append(frame.Int, strconv.AppendUint(buff[:0], v, 10))
	return nil
}

// Float32 implements shape.Serializer.
// The shortest decimal that reads back as v is written.
func (s *Serializer) Float32(v float32) error {
	var buff [64]byte
	s.append(frame.Float, strconv.AppendFloat(buff[:0], float64(v), 'f', -1, 32))
	return nil
}

// Float64 implements shape.Serializer.
func (s *Serializer) Float64(v float64) error {
	var buff [64]byte
	s.append(frame.Float, strconv.AppendFloat(buff[:0], v, 'f', -1, 64))
	return nil
}

// Str implements shape.Serializer.
func (s *Serializer) Str(v string) error {
	s.appendString(frame.String, v)
	return nil
}

// Bytes implements shape.Serializer.
func (s *Serializer) Bytes(b []byte) error {
	if !utf8.Valid(b) {
		return tnio.NewError(tnio.ErrNonUTF8Str, fmt.Sprintf("%v bytes", len(b)), 0)
	}
	s.append(frame.String, b)
	return nil
}

// Unit implements shape.Serializer.
func (s *Serializer) Unit() error {
	s.append(frame.Null, nil)
	return nil
}

// UnitVariant implements shape.Serializer.
// Unit variants are written as their name alone.
func (s *Serializer) UnitVariant(name string) error {
	return s.Str(name)
}

// BeginSeq implements shape.Serializer.
func (s *Serializer) BeginSeq() error { return s.push(frame.List) }

// EndSeq implements shape.Serializer.
func (s *Serializer) EndSeq() error { return s.pop(frame.List, frame.List) }

// BeginMap implements shape.Serializer.
func (s *Serializer) BeginMap() error { return s.push(frame.Dict) }

// EndMap implements shape.Serializer.
func (s *Serializer) EndMap() error { return s.pop(frame.Dict, frame.Dict) }

// BeginVariant implements shape.Serializer.
// The variant is staged as a dict holding a single pair of name and payload.
func (s *Serializer) BeginVariant(name string) error {
	if err := s.push(variant); err != nil {
		return err
	}
	return s.Str(name)
}

// EndVariant implements shape.Serializer.
// It returns tnio.ErrStackProblem unless exactly one payload was written since BeginVariant.
func (s *Serializer) EndVariant() error {
	if last := len(s.kinds) - 1; last >= 0 && s.kinds[last] == variant {
		// The stage holds the name frame first.
		if n := countFrames(s.stack[last+1]) - 1; n != 1 {
			return tnio.NewError(tnio.ErrStackProblem, fmt.Sprintf("variant holds %v payloads", n), 0)
		}
	}
	return s.pop(variant, frame.Dict)
}

// countFrames returns the number of top-level frames in staged, which the Serializer wrote.
func countFrames(staged []byte) (n int) {
	for len(staged) > 0 {
		_, _, rest, err := frame.Split(staged)
		if err != nil {
			break
		}
		staged = rest
		n++
	}
	return n
}
