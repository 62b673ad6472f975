package encodable

import (
	"reflect"

	"github.com/stewi1014/tnets/shape"
)

var (
	marshalerType   = reflect.TypeOf(new(shape.Marshaler)).Elem()
	unmarshalerType = reflect.TypeOf(new(shape.Unmarshaler)).Elem()
)
