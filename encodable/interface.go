package encodable

import (
	"fmt"
	"reflect"

	"github.com/stewi1014/tnets/shape"
	"github.com/stewi1014/tnets/tnio"
)

// NewInterface returns a new interface Encodable.
func NewInterface(ty reflect.Type, src Source) *Interface {
	if ty.Kind() != reflect.Interface {
		panic(tnio.NewError(tnio.ErrBadType, fmt.Sprintf("%v is not an interface", ty), 0))
	}

	return &Interface{
		ty:  ty,
		src: src,
	}
}

// Interface is an Encodable for interface types.
//
// Encoding writes the dynamic value with an Encodable for its type, fetched from the Source at encode time;
// a nil interface is written as null.
//
// Decoding into the empty interface uses the shape of the input:
// null decodes to nil, bools to bool, strings to string, integers to int64,
// lists to []interface{} and dicts to map[string]interface{}.
// Other interface types can only be decoded into if they already hold a non-nil pointer,
// in which case the pointed-to value is decoded into.
type Interface struct {
	ty  reflect.Type
	src Source
}

// Type implements Encodable.
func (e *Interface) Type() reflect.Type { return e.ty }

// Encode implements Encodable.
func (e *Interface) Encode(v reflect.Value, s shape.Serializer) error {
	if v.IsNil() {
		return s.Unit()
	}

	elem := v.Elem()
	return (*e.src.NewEncodable(elem.Type(), nil)).Encode(elem, s)
}

// Decode implements Encodable.
func (e *Interface) Decode(v reflect.Value, d shape.Deserializer) error {
	if e.ty.NumMethod() == 0 {
		var a anyVisitor
		if err := d.Any(&a); err != nil {
			return err
		}

		if a.v == nil {
			v.Set(reflect.Zero(e.ty))
		} else {
			v.Set(reflect.ValueOf(a.v))
		}
		return nil
	}

	if !v.IsNil() && v.Elem().Kind() == reflect.Ptr && !v.Elem().IsNil() {
		target := v.Elem().Elem()
		return (*e.src.NewEncodable(target.Type(), nil)).Decode(target, d)
	}

	return tnio.NewError(tnio.ErrBadType, fmt.Sprintf("cannot decode into %v without a concrete value", e.ty), 0)
}

// anyVisitor builds the Go value for whatever shape it is given.
type anyVisitor struct {
	v interface{}
}

func (a *anyVisitor) VisitUnit() error {
	a.v = nil
	return nil
}

func (a *anyVisitor) VisitBool(v bool) error {
	a.v = v
	return nil
}

func (a *anyVisitor) VisitStr(v string) error {
	a.v = v
	return nil
}

func (a *anyVisitor) VisitInt(v int64) error {
	a.v = v
	return nil
}

func (a *anyVisitor) VisitSeq(d shape.Deserializer, seq shape.SeqAccess) error {
	list := []interface{}{}
	for seq.Next() {
		var elem anyVisitor
		if err := d.Any(&elem); err != nil {
			return err
		}
		list = append(list, elem.v)
	}
	a.v = list
	return nil
}

func (a *anyVisitor) VisitMap(d shape.Deserializer, m shape.MapAccess) error {
	dict := map[string]interface{}{}
	for m.Next() {
		key, err := d.Str()
		if err != nil {
			return err
		}

		var val anyVisitor
		if err := d.Any(&val); err != nil {
			return err
		}
		dict[key] = val.v
	}
	a.v = dict
	return nil
}
