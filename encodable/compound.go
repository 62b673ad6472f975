package encodable

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/stewi1014/tnets/shape"
	"github.com/stewi1014/tnets/tnio"
)

// NewPointer returns a new pointer Encodable.
func NewPointer(ty reflect.Type, src Source) *Pointer {
	if ty.Kind() != reflect.Ptr {
		panic(tnio.NewError(tnio.ErrBadType, fmt.Sprintf("%v is not a pointer", ty), 0))
	}

	return &Pointer{
		ty:   ty,
		elem: src.NewEncodable(ty.Elem(), nil),
	}
}

// Pointer encodes pointers as options; a nil pointer is written as null,
// and anything else is written as the value it points to.
type Pointer struct {
	ty   reflect.Type
	elem *Encodable
}

// Type implements Encodable.
func (e *Pointer) Type() reflect.Type { return e.ty }

// Encode implements Encodable.
func (e *Pointer) Encode(v reflect.Value, s shape.Serializer) error {
	if v.IsNil() {
		return s.Unit()
	}
	return (*e.elem).Encode(v.Elem(), s)
}

// Decode implements Encodable.
// If the pointer is already non-nil, the value it points to is decoded into.
func (e *Pointer) Decode(v reflect.Value, d shape.Deserializer) error {
	some, err := d.Option()
	if err != nil {
		return err
	}

	if !some {
		v.Set(reflect.Zero(e.ty))
		return nil
	}

	if v.IsNil() {
		v.Set(reflect.New(e.ty.Elem()))
	}
	return (*e.elem).Decode(v.Elem(), d)
}

// NewSlice returns a new slice Encodable.
func NewSlice(ty reflect.Type, src Source) *Slice {
	if ty.Kind() != reflect.Slice {
		panic(tnio.NewError(tnio.ErrBadType, fmt.Sprintf("%v is not a slice", ty), 0))
	}

	return &Slice{
		ty:   ty,
		elem: src.NewEncodable(ty.Elem(), nil),
	}
}

// Slice is an Encodable for slices.
type Slice struct {
	ty   reflect.Type
	elem *Encodable
}

// Type implements Encodable.
func (e *Slice) Type() reflect.Type { return e.ty }

// Encode implements Encodable.
// nil and empty slices are both written as an empty list.
func (e *Slice) Encode(v reflect.Value, s shape.Serializer) error {
	if err := s.BeginSeq(); err != nil {
		return err
	}

	for i := 0; i < v.Len(); i++ {
		if err := (*e.elem).Encode(v.Index(i), s); err != nil {
			return err
		}
	}

	return s.EndSeq()
}

// Decode implements Encodable.
// The slice's existing backing array is reused if it is large enough.
// A nil slice decodes to a non-nil one, even from an empty list.
func (e *Slice) Decode(v reflect.Value, d shape.Deserializer) error {
	seq, err := d.Seq()
	if err != nil {
		return err
	}

	if v.IsNil() {
		v.Set(reflect.MakeSlice(e.ty, 0, 0))
	} else {
		v.SetLen(0)
	}

	zero := reflect.Zero(e.ty.Elem())
	for i := 0; seq.Next(); i++ {
		if i < v.Cap() {
			v.SetLen(i + 1)
			v.Index(i).Set(zero)
		} else {
			v.Set(reflect.Append(v, zero))
		}

		if err := (*e.elem).Decode(v.Index(i), d); err != nil {
			return err
		}
	}

	return seq.End()
}

// NewArray returns a new array Encodable.
func NewArray(ty reflect.Type, src Source) *Array {
	if ty.Kind() != reflect.Array {
		panic(tnio.NewError(tnio.ErrBadType, fmt.Sprintf("%v is not an array", ty), 0))
	}

	return &Array{
		ty:   ty,
		elem: src.NewEncodable(ty.Elem(), nil),
	}
}

// Array is an Encodable for arrays.
// Arrays are written as lists, and decoding requires exactly as many elements as the array holds.
type Array struct {
	ty   reflect.Type
	elem *Encodable
}

// Type implements Encodable.
func (e *Array) Type() reflect.Type { return e.ty }

// Encode implements Encodable.
func (e *Array) Encode(v reflect.Value, s shape.Serializer) error {
	if err := s.BeginSeq(); err != nil {
		return err
	}

	for i := 0; i < e.ty.Len(); i++ {
		if err := (*e.elem).Encode(v.Index(i), s); err != nil {
			return err
		}
	}

	return s.EndSeq()
}

// Decode implements Encodable.
func (e *Array) Decode(v reflect.Value, d shape.Deserializer) error {
	seq, err := d.Seq()
	if err != nil {
		return err
	}

	i := 0
	for ; seq.Next(); i++ {
		if i >= e.ty.Len() {
			return tnio.NewError(tnio.ErrParsingSeq, fmt.Sprintf("too many elements for %v", e.ty), 0)
		}
		if err := (*e.elem).Decode(v.Index(i), d); err != nil {
			return err
		}
	}

	if i != e.ty.Len() {
		return tnio.NewError(tnio.ErrParsingSeq, fmt.Sprintf("%v elements for %v", i, e.ty), 0)
	}

	return seq.End()
}

// NewMap returns a new map Encodable.
func NewMap(ty reflect.Type, src Source) *Map {
	if ty.Kind() != reflect.Map {
		panic(tnio.NewError(tnio.ErrBadType, fmt.Sprintf("%v is not a map", ty), 0))
	}

	return &Map{
		ty:  ty,
		key: src.NewEncodable(ty.Key(), nil),
		val: src.NewEncodable(ty.Elem(), nil),
	}
}

// Map is an Encodable for maps.
// Entries are written in ascending key order so equal maps encode identically.
type Map struct {
	ty       reflect.Type
	key, val *Encodable
}

// Type implements Encodable.
func (e *Map) Type() reflect.Type { return e.ty }

// Encode implements Encodable.
func (e *Map) Encode(v reflect.Value, s shape.Serializer) error {
	if err := s.BeginMap(); err != nil {
		return err
	}

	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return lessKey(keys[i], keys[j]) })

	for _, key := range keys {
		if err := (*e.key).Encode(key, s); err != nil {
			return err
		}
		if err := (*e.val).Encode(v.MapIndex(key), s); err != nil {
			return err
		}
	}

	return s.EndMap()
}

// Decode implements Encodable.
// Entries are added to the existing map, if there is one.
func (e *Map) Decode(v reflect.Value, d shape.Deserializer) error {
	m, err := d.Map()
	if err != nil {
		return err
	}

	if v.IsNil() {
		v.Set(reflect.MakeMap(e.ty))
	}

	for m.Next() {
		key := reflect.New(e.ty.Key()).Elem()
		if err := (*e.key).Decode(key, d); err != nil {
			return err
		}

		val := reflect.New(e.ty.Elem()).Elem()
		if err := (*e.val).Decode(val, d); err != nil {
			return err
		}

		v.SetMapIndex(key, val)
	}

	return m.End()
}

// lessKey orders map keys; numerically for numbers and lexically for strings.
func lessKey(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.String:
		return a.String() < b.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() < b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() < b.Float()
	case reflect.Bool:
		return !a.Bool() && b.Bool()
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

// NewStruct returns a new struct Encodable.
func NewStruct(ty reflect.Type, config Config, src Source) *Struct {
	if ty.Kind() != reflect.Struct {
		panic(tnio.NewError(tnio.ErrBadType, fmt.Sprintf("%v is not a struct", ty), 0))
	}

	e := &Struct{
		ty:     ty,
		byName: make(map[string]int),
	}

	for _, field := range structFields(ty, config.structTag()) {
		e.byName[field.name] = len(e.fields)
		field.enc = src.NewEncodable(ty.Field(field.index).Type, nil)
		e.fields = append(e.fields, field)
	}

	return e
}

// Struct is an Encodable for structs. Structs are written as dicts of field name to value.
//
// Fields are written in declaration order. Exported fields are named by the struct tag
// (see DefaultStructTag) or by their Go name, and the tag value "-" skips a field.
// When decoding, keys naming no field are skipped and fields with no key are left unchanged.
type Struct struct {
	ty     reflect.Type
	fields []structField
	byName map[string]int
}

type structField struct {
	name  string
	index int
	enc   *Encodable
}

func structFields(ty reflect.Type, tagKey string) []structField {
	var fields []structField
	seen := make(map[string]bool)

	for i := 0; i < ty.NumField(); i++ {
		field := ty.Field(i)

		tag, tagged := field.Tag.Lookup(tagKey)
		if tag == "-" {
			continue
		}

		if field.PkgPath != "" {
			if tagged {
				fmt.Fprintf(tnio.Warnings, "%v tag on unexported field %v in %v is ignored\n", tagKey, field.Name, ty)
			}
			continue
		}

		name := field.Name
		if tagged {
			tagName, opts, _ := strings.Cut(tag, ",")
			if opts != "" {
				fmt.Fprintf(tnio.Warnings, "unknown %v tag options %q on field %v in %v\n", tagKey, opts, field.Name, ty)
			}
			if tagName != "" {
				name = tagName
			}
		}

		if seen[name] {
			fmt.Fprintf(tnio.Warnings, "field %v in %v reuses the name %q and is skipped\n", field.Name, ty, name)
			continue
		}
		seen[name] = true

		fields = append(fields, structField{name: name, index: i})
	}

	return fields
}

// Type implements Encodable.
func (e *Struct) Type() reflect.Type { return e.ty }

// Encode implements Encodable.
func (e *Struct) Encode(v reflect.Value, s shape.Serializer) error {
	if err := s.BeginMap(); err != nil {
		return err
	}

	for _, field := range e.fields {
		if err := s.Str(field.name); err != nil {
			return err
		}
		if err := (*field.enc).Encode(v.Field(field.index), s); err != nil {
			return err
		}
	}

	return s.EndMap()
}

// Decode implements Encodable.
func (e *Struct) Decode(v reflect.Value, d shape.Deserializer) error {
	m, err := d.Map()
	if err != nil {
		return err
	}

	for m.Next() {
		name, err := d.Str()
		if err != nil {
			return err
		}

		i, ok := e.byName[name]
		if !ok {
			if err := d.Skip(); err != nil {
				return err
			}
			continue
		}

		field := e.fields[i]
		if err := (*field.enc).Decode(v.Field(field.index), d); err != nil {
			return err
		}
	}

	return m.End()
}
