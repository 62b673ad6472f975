package encodable

import (
	"fmt"
	"reflect"

	"github.com/stewi1014/tnets/shape"
	"github.com/stewi1014/tnets/tnio"
)

func isMarshaler(ty reflect.Type) bool {
	return ty.Implements(marshalerType) || reflect.PointerTo(ty).Implements(marshalerType)
}

func isUnmarshaler(ty reflect.Type) bool {
	return ty.Implements(unmarshalerType) || reflect.PointerTo(ty).Implements(unmarshalerType)
}

// NewMarshaler returns a new Encodable for types implementing shape.Marshaler or shape.Unmarshaler.
// If ty only implements one of them, the other direction uses the Encodable for ty's kind.
func NewMarshaler(ty reflect.Type, config Config, src Source) *Marshaler {
	e := &Marshaler{
		ty:           ty,
		marshals:     isMarshaler(ty),
		ptrMarshal:   !ty.Implements(marshalerType),
		unmarshals:   isUnmarshaler(ty),
		ptrUnmarshal: !ty.Implements(unmarshalerType),
	}

	if !e.marshals && !e.unmarshals {
		panic(tnio.NewError(tnio.ErrBadType, fmt.Sprintf("%v implements neither shape.Marshaler nor shape.Unmarshaler", ty), 0))
	}

	if !e.marshals || !e.unmarshals {
		e.kind = newKind(ty, config, src)
	}

	return e
}

// Marshaler is an Encodable for types that encode themselves.
// Enums are written this way, using the variant methods of shape.Serializer and shape.Deserializer.Enum.
type Marshaler struct {
	ty                       reflect.Type
	marshals, ptrMarshal     bool
	unmarshals, ptrUnmarshal bool

	// kind handles the direction the type does not implement.
	kind Encodable
}

// Type implements Encodable.
func (e *Marshaler) Type() reflect.Type { return e.ty }

// Encode implements Encodable.
func (e *Marshaler) Encode(v reflect.Value, s shape.Serializer) error {
	if !e.marshals {
		return e.kind.Encode(v, s)
	}

	if e.ptrMarshal {
		if !v.CanAddr() {
			cp := reflect.New(e.ty).Elem()
			cp.Set(v)
			v = cp
		}
		v = v.Addr()
	}

	return v.Interface().(shape.Marshaler).MarshalTNet(s)
}

// Decode implements Encodable.
func (e *Marshaler) Decode(v reflect.Value, d shape.Deserializer) error {
	if !e.unmarshals {
		return e.kind.Decode(v, d)
	}

	if e.ptrUnmarshal {
		if !v.CanAddr() {
			return tnio.NewError(tnio.ErrBadType, fmt.Sprintf("cannot take the address of %v to unmarshal it", e.ty), 0)
		}
		v = v.Addr()
	}

	return v.Interface().(shape.Unmarshaler).UnmarshalTNet(d)
}
