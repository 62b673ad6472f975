// Package tnets encodes and decodes tnetstrings.
//
// A tnetstring is a decimal length, a colon, that many bytes of payload and a tag byte naming the payload's kind:
//
//	5:hello,                      string
//	3:123#                        integer
//	4:true!                       bool
//	0:~                           null
//	10:2:10#2:10#]                list
//	27:3:int,1:1#3:seq,8:1:a,1:b,]}  dict
//
// There are two ways in. Parse reads a frame into a value.Value tree when the shape of the input is not known ahead of time.
// Marshal and Unmarshal map Go values straight to and from the wire without building a tree, using reflection.
//
//	type Test struct {
//		Int uint32   `tnet:"int"`
//		Seq []string `tnet:"seq"`
//	}
//
//	var t Test
//	err := tnets.UnmarshalString("27:3:int,1:1#3:seq,8:1:a,1:b,]}", &t)
//
// Floats can be encoded, but the typed decoder does not support them; decoding a float always fails with tnio.ErrUnsupportedType.
// Use Parse to read floats.
//
// Enums and other types without a natural Go mapping implement Marshaler and Unmarshaler,
// writing and reading shapes directly.
//
// tnets/frame provides the framing primitive.
//
// tnets/value provides the untyped tree, its parser and encoder.
//
// tnets/encode and tnets/decode provide the typed serializer and deserializer.
//
// tnets/encodable provides the reflect-driven mapping of Go types onto shapes.
//
// tnets/tnio provides error types and the warnings sink.
package tnets

import (
	"io"

	"github.com/stewi1014/tnets/shape"
	"github.com/stewi1014/tnets/value"
)

type (
	// Marshaler is implemented by types that encode themselves.
	Marshaler = shape.Marshaler

	// Unmarshaler is implemented by types that decode themselves.
	Unmarshaler = shape.Unmarshaler

	// Serializer is given to Marshalers.
	Serializer = shape.Serializer

	// Deserializer is given to Unmarshalers.
	Deserializer = shape.Deserializer
)

// DefaultMaxDepth is the default limit on how deeply compounds may nest.
const DefaultMaxDepth = value.DefaultMaxDepth

var defaultConfig = new(Config)

// Parse parses the frame at the front of data into a value tree,
// returning the input following it.
func Parse(data []byte) (rest []byte, v value.Value, err error) {
	return defaultConfig.Parse(data)
}

// Marshal returns the tnetstring encoding of v.
func Marshal(v interface{}) ([]byte, error) {
	return defaultConfig.Marshal(v)
}

// MarshalString is Marshal returning a string.
func MarshalString(v interface{}) (string, error) {
	return defaultConfig.MarshalString(v)
}

// Unmarshal decodes the single frame in data into the value pointed to by v.
// It fails with tnio.ErrUnusedParseData if data holds more than one frame.
//
// data is copied once; decoded strings share memory with the copy.
func Unmarshal(data []byte, v interface{}) error {
	return defaultConfig.Unmarshal(data, v)
}

// UnmarshalString decodes the single frame in s into the value pointed to by v.
// Decoded strings are substrings of s.
func UnmarshalString(s string, v interface{}) error {
	return defaultConfig.UnmarshalString(s, v)
}

// EncodeTo writes the encoding of v to w.
func EncodeTo(w io.Writer, v interface{}) error {
	return NewEncoder(w, nil).Encode(v)
}
