// Package shape defines the interface between the tnetstring codec and the code that maps Go values onto it.
//
// The codec knows nothing about Go types. It only knows shapes: bools, integers, strings, sequences, maps, options
// and enum variants. A Serializer is driven by a caller writing shapes one at a time, and a Deserializer is asked
// for the shape the caller expects next. Package encodable is the reflect-driven caller used by tnets,
// and user types can take part directly by implementing Marshaler and Unmarshaler.
package shape

// Serializer writes shapes.
//
// Compounds are opened with a Begin method and closed with the matching End method;
// everything written in between becomes the compound's content.
// Variants are opened with BeginVariant, take exactly one value as their payload, and are closed with EndVariant.
// Unit variants need no payload and are written with UnitVariant.
type Serializer interface {
	Bool(v bool) error
	Int(v int64) error
	Uint(v uint64) error
	Float32(v float32) error
	Float64(v float64) error
	Str(v string) error

	// Bytes writes b as a string. It must be valid UTF-8.
	Bytes(b []byte) error

	// Unit writes the empty value, also used for None.
	Unit() error
	UnitVariant(name string) error

	BeginSeq() error
	EndSeq() error
	BeginMap() error
	EndMap() error
	BeginVariant(name string) error
	EndVariant() error
}

// Deserializer reads shapes.
//
// Each method consumes exactly one value when it succeeds.
// Strings returned by Str are views of the input and share its lifetime.
type Deserializer interface {
	// Any reads a value of whatever shape comes next, reporting it to v.
	Any(v Visitor) error

	// Skip discards the next value without interpreting its payload.
	Skip() error

	Bool() (bool, error)
	Int() (int, error)
	Int8() (int8, error)
	Int16() (int16, error)
	Int32() (int32, error)
	Int64() (int64, error)
	Uint() (uint, error)
	Uint8() (uint8, error)
	Uint16() (uint16, error)
	Uint32() (uint32, error)
	Uint64() (uint64, error)
	Uintptr() (uintptr, error)
	Float32() (float32, error)
	Float64() (float64, error)
	Str() (string, error)
	Bytes() ([]byte, error)

	// Option reports whether a value is present.
	// If it returns false the empty value has been consumed,
	// otherwise the caller must read the value.
	Option() (bool, error)
	Unit() error

	Seq() (SeqAccess, error)
	Map() (MapAccess, error)
	Enum() (EnumAccess, error)
}

// SeqAccess iterates the elements of a sequence.
//
//	seq, err := d.Seq()
//	...
//	for seq.Next() {
//		// read one element from d
//	}
//	return seq.End()
type SeqAccess interface {
	// Next returns true if another element remains.
	Next() bool

	// End finishes the sequence. It fails if elements remain unread.
	End() error
}

// MapAccess iterates the pairs of a map. Each iteration reads a key, then a value.
type MapAccess interface {
	Next() bool
	End() error
}

// EnumAccess is an enum variant being read.
//
// If the variant was written as a bare name, Unit completes it.
// Otherwise the variant's payload is read from the Deserializer and End completes it.
type EnumAccess interface {
	Variant() string
	Unit() error
	End() error
}

// Visitor receives the value read by Deserializer.Any.
//
// VisitSeq and VisitMap are given the open compound; they read its contents from d.
// The compound is finished by Any after they return.
type Visitor interface {
	VisitUnit() error
	VisitBool(v bool) error
	VisitStr(v string) error
	VisitInt(v int64) error
	VisitSeq(d Deserializer, seq SeqAccess) error
	VisitMap(d Deserializer, m MapAccess) error
}

// Marshaler is implemented by types that write themselves.
// It is how enums and newtype wrappers are expressed.
type Marshaler interface {
	MarshalTNet(s Serializer) error
}

// Unmarshaler is implemented by types that read themselves.
// UnmarshalTNet is called on a pointer receiver and must consume exactly one value.
type Unmarshaler interface {
	UnmarshalTNet(d Deserializer) error
}
