// Package value provides an untyped tree representation of tnetstrings.
//
// Parse reads one frame into a Value, and Encode writes a Value back out.
// A Value is one of Null, Bool, String, Int, Float, List or Dict; use a type switch to tell them apart.
package value

import "fmt"

// Kind is the kind of a Value.
type Kind uint8

// Kinds.
const (
	NullKind Kind = iota
	BoolKind
	StringKind
	IntKind
	FloatKind
	ListKind
	DictKind
)

var kindNames = [...]string{
	NullKind:   "null",
	BoolKind:   "bool",
	StringKind: "string",
	IntKind:    "int",
	FloatKind:  "float",
	ListKind:   "list",
	DictKind:   "dict",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Value is a node in a tnetstring tree.
// A tree exclusively owns its nodes; the grammar cannot express sharing or cycles.
type Value interface {
	Kind() Kind
}

type (
	// Null is the ~ value.
	Null struct{}

	// Bool is the ! value.
	Bool bool

	// String is the , value.
	String string

	// Int is the # value.
	Int int64

	// Float is the ^ value.
	Float float64

	// List is the ] value.
	List []Value

	// Dict is the } value. Keys are unique; when a frame repeats a key the last one wins.
	Dict map[string]Value
)

// Kind implements Value.
func (Null) Kind() Kind { return NullKind }

// Kind implements Value.
func (Bool) Kind() Kind { return BoolKind }

// Kind implements Value.
func (String) Kind() Kind { return StringKind }

// Kind implements Value.
func (Int) Kind() Kind { return IntKind }

// Kind implements Value.
func (Float) Kind() Kind { return FloatKind }

// Kind implements Value.
func (List) Kind() Kind { return ListKind }

// Kind implements Value.
func (Dict) Kind() Kind { return DictKind }
