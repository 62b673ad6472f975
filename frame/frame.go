// Package frame implements the tnetstring framing primitive.
//
// A frame is a decimal length, a colon, exactly that many payload bytes, and a single tag byte
// naming the kind of the payload:
//
//	frame   = length ":" payload tag
//	length  = 1*DIGIT
//	tag     = "!" / "," / "#" / "^" / "~" / "]" / "}"
//
// List and dict payloads are themselves a concatenation of frames with no separators.
package frame

import (
	"fmt"
	"strconv"

	"github.com/stewi1014/tnets/tnio"
)

// Tags.
const (
	Bool   byte = '!'
	String byte = ','
	Int    byte = '#'
	Float  byte = '^'
	Null   byte = '~'
	List   byte = ']'
	Dict   byte = '}'
)

// Separator ends the length prefix.
const Separator byte = ':'

const maxInt = int(^uint(0) >> 1)

// Split reads the frame at the front of data, returning its payload, its tag and the input following it.
// The payload is a sub-slice of data.
//
// A missing, empty or unparseable length prefix returns tnio.ErrUnableToParseInt,
// and a length greater than the remaining input returns tnio.ErrUnableToTake.
// The tag is not checked; see Known.
func Split(data []byte) (payload []byte, tag byte, rest []byte, err error) {
	n, i := 0, 0
	for ; i < len(data) && isDigit(data[i]); i++ {
		d := int(data[i] - '0')
		if n > (maxInt-d)/10 {
			return nil, 0, data, tnio.NewError(tnio.ErrUnableToParseInt, fmt.Sprintf("length prefix %q overflows int", data[:i+1]), 0)
		}
		n = n*10 + d
	}

	if i == 0 || i == len(data) || data[i] != Separator {
		return nil, 0, data, tnio.NewError(tnio.ErrUnableToParseInt, fmt.Sprintf("no length prefix in %q", preview(data)), 0)
	}

	body := data[i+1:]
	if len(body) <= n {
		return nil, 0, data, tnio.NewError(tnio.ErrUnableToTake, fmt.Sprintf("frame wants %v bytes and a tag but only %v bytes remain", n, len(body)), 0)
	}

	return body[:n:n], body[n], body[n+1:], nil
}

// Known returns true if tag is one of the tnetstring tags.
func Known(tag byte) bool {
	switch tag {
	case Bool, String, Int, Float, Null, List, Dict:
		return true
	}
	return false
}

// Append appends a frame holding payload with the given tag to dst.
func Append(dst []byte, tag byte, payload []byte) []byte {
	dst = strconv.AppendInt(dst, int64(len(payload)), 10)
	dst = append(dst, Separator)
	dst = append(dst, payload...)
	return append(dst, tag)
}

// AppendString is Append for string payloads.
func AppendString(dst []byte, tag byte, payload string) []byte {
	dst = strconv.AppendInt(dst, int64(len(payload)), 10)
	dst = append(dst, Separator)
	dst = append(dst, payload...)
	return append(dst, tag)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// preview returns the start of data for error messages.
func preview(data []byte) []byte {
	if len(data) > 16 {
		return data[:16]
	}
	return data
}
