package encodable

import (
	"fmt"
	"reflect"

	"github.com/stewi1014/tnets/shape"
	"github.com/stewi1014/tnets/tnio"
)

// NewBool returns a new bool Encodable.
func NewBool(ty reflect.Type) *Bool {
	if ty.Kind() != reflect.Bool {
		panic(tnio.NewError(tnio.ErrBadType, fmt.Sprintf("%v is not a bool", ty), 0))
	}
	return &Bool{ty: ty}
}

// Bool is an Encodable for bools.
type Bool struct {
	ty reflect.Type
}

// Type implements Encodable.
func (e *Bool) Type() reflect.Type { return e.ty }

// Encode implements Encodable.
func (e *Bool) Encode(v reflect.Value, s shape.Serializer) error {
	return s.Bool(v.Bool())
}

// Decode implements Encodable.
func (e *Bool) Decode(v reflect.Value, d shape.Deserializer) error {
	b, err := d.Bool()
	if err != nil {
		return err
	}
	v.SetBool(b)
	return nil
}

// NewInt returns a new signed integer Encodable.
func NewInt(ty reflect.Type) *Int {
	switch ty.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &Int{ty: ty}
	}
	panic(tnio.NewError(tnio.ErrBadType, fmt.Sprintf("%v is not a signed integer", ty), 0))
}

// Int is an Encodable for signed integers of every width.
// Decoding accumulates in the type's own width, so out of range values wrap.
type Int struct {
	ty reflect.Type
}

// Type implements Encodable.
func (e *Int) Type() reflect.Type { return e.ty }

// Encode implements Encodable.
func (e *Int) Encode(v reflect.Value, s shape.Serializer) error {
	return s.Int(v.Int())
}

// Decode implements Encodable.
func (e *Int) Decode(v reflect.Value, d shape.Deserializer) error {
	var n int64
	var err error

	switch e.ty.Kind() {
	case reflect.Int:
		var i int
		i, err = d.Int()
		n = int64(i)
	case reflect.Int8:
		var i int8
		i, err = d.Int8()
		n = int64(i)
	case reflect.Int16:
		var i int16
		i, err = d.Int16()
		n = int64(i)
	case reflect.Int32:
		var i int32
		i, err = d.Int32()
		n = int64(i)
	default:
		n, err = d.Int64()
	}

	if err != nil {
		return err
	}
	v.SetInt(n)
	return nil
}

// NewUint returns a new unsigned integer Encodable.
func NewUint(ty reflect.Type) *Uint {
	switch ty.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return &Uint{ty: ty}
	}
	panic(tnio.NewError(tnio.ErrBadType, fmt.Sprintf("%v is not an unsigned integer", ty), 0))
}

// Uint is an Encodable for unsigned integers of every width.
type Uint struct {
	ty reflect.Type
}

// Type implements Encodable.
func (e *Uint) Type() reflect.Type { return e.ty }

// Encode implements Encodable.
func (e *Uint) Encode(v reflect.Value, s shape.Serializer) error {
	return s.Uint(v.Uint())
}

// Decode implements Encodable.
func (e *Uint) Decode(v reflect.Value, d shape.Deserializer) error {
	var n uint64
	var err error

	switch e.ty.Kind() {
	case reflect.Uint:
		var u uint
		u, err = d.Uint()
		n = uint64(u)
	case reflect.Uint8:
		var u uint8
		u, err = d.Uint8()
		n = uint64(u)
	case reflect.Uint16:
		var u uint16
		u, err = d.Uint16()
		n = uint64(u)
	case reflect.Uint32:
		var u uint32
		u, err = d.Uint32()
		n = uint64(u)
	case reflect.Uintptr:
		var u uintptr
		u, err = d.Uintptr()
		n = uint64(u)
	default:
		n, err = d.Uint64()
	}

	if err != nil {
		return err
	}
	v.SetUint(n)
	return nil
}

// NewFloat returns a new float Encodable.
func NewFloat(ty reflect.Type) *Float {
	if ty.Kind() != reflect.Float32 && ty.Kind() != reflect.Float64 {
		panic(tnio.NewError(tnio.ErrBadType, fmt.Sprintf("%v is not a float", ty), 0))
	}
	return &Float{ty: ty}
}

// Float is an Encodable for floats.
// Floats can be encoded, but decoding them is not supported and always fails.
type Float struct {
	ty reflect.Type
}

// Type implements Encodable.
func (e *Float) Type() reflect.Type { return e.ty }

// Encode implements Encodable.
func (e *Float) Encode(v reflect.Value, s shape.Serializer) error {
	if e.ty.Kind() == reflect.Float32 {
		return s.Float32(float32(v.Float()))
	}
	return s.Float64(v.Float())
}

// Decode implements Encodable.
func (e *Float) Decode(v reflect.Value, d shape.Deserializer) error {
	var f float64
	var err error
	if e.ty.Kind() == reflect.Float32 {
		var f32 float32
		f32, err = d.Float32()
		f = float64(f32)
	} else {
		f, err = d.Float64()
	}

	if err != nil {
		return err
	}
	v.SetFloat(f)
	return nil
}

// NewString returns a new string Encodable.
func NewString(ty reflect.Type) *String {
	if ty.Kind() != reflect.String {
		panic(tnio.NewError(tnio.ErrBadType, fmt.Sprintf("%v is not a string", ty), 0))
	}
	return &String{ty: ty}
}

// String is an Encodable for strings.
// Decoded strings share memory with the decoder's input.
type String struct {
	ty reflect.Type
}

// Type implements Encodable.
func (e *String) Type() reflect.Type { return e.ty }

// Encode implements Encodable.
func (e *String) Encode(v reflect.Value, s shape.Serializer) error {
	return s.Str(v.String())
}

// Decode implements Encodable.
func (e *String) Decode(v reflect.Value, d shape.Deserializer) error {
	str, err := d.Str()
	if err != nil {
		return err
	}
	v.SetString(str)
	return nil
}

// NewBytes returns a new byte slice Encodable.
func NewBytes(ty reflect.Type) *Bytes {
	if ty.Kind() != reflect.Slice || ty.Elem().Kind() != reflect.Uint8 {
		panic(tnio.NewError(tnio.ErrBadType, fmt.Sprintf("%v is not a byte slice", ty), 0))
	}
	return &Bytes{ty: ty}
}

// Bytes is an Encodable for byte slices. They are written as strings, and must hold valid UTF-8.
type Bytes struct {
	ty reflect.Type
}

// Type implements Encodable.
func (e *Bytes) Type() reflect.Type { return e.ty }

// Encode implements Encodable.
func (e *Bytes) Encode(v reflect.Value, s shape.Serializer) error {
	return s.Bytes(v.Bytes())
}

// Decode implements Encodable.
func (e *Bytes) Decode(v reflect.Value, d shape.Deserializer) error {
	b, err := d.Bytes()
	if err != nil {
		return err
	}
	v.SetBytes(b)
	return nil
}

// NewUnit returns a new unit Encodable.
func NewUnit(ty reflect.Type) *Unit {
	if ty.Kind() != reflect.Struct || ty.NumField() != 0 {
		panic(tnio.NewError(tnio.ErrBadType, fmt.Sprintf("%v is not an empty struct", ty), 0))
	}
	return &Unit{ty: ty}
}

// Unit is an Encodable for empty structs, which are written as null.
type Unit struct {
	ty reflect.Type
}

// Type implements Encodable.
func (e *Unit) Type() reflect.Type { return e.ty }

// Encode implements Encodable.
func (e *Unit) Encode(v reflect.Value, s shape.Serializer) error {
	return s.Unit()
}

// Decode implements Encodable.
func (e *Unit) Decode(v reflect.Value, d shape.Deserializer) error {
	return d.Unit()
}
