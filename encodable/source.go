package encodable

import (
	"fmt"
	"reflect"

	"github.com/stewi1014/tnets/shape"
	"github.com/stewi1014/tnets/tnio"
)

// Source is a generator of Encodables. Compound type Encodables take Source as an argument upon creation,
// and use it for the generation of their element types, either during creation or during encoding and decoding.
//
// Source is responsible for resolving recursive types if needed.
// There are a few implementations of Source in this package, and wrapping Sources that provide different features is encouraged.
// CachingSource for example has no idea how to encode a type, but it wraps a Source which does and adds caching and recursion handling.
type Source interface {
	// NewEncodable returns a new Encodable to be used to serialise the given type.
	//
	// It returns a pointer to an Encodable so that it can be filled in after it is handed out,
	// which is how recursive types are resolved. Callers must not dereference it until their own creation is complete.
	//
	// The Source passed to NewEncodable must be passed to the Encodable that it creates. It is used by wrapping Sources to pass themselves
	// to new Encodables so they don't lose control of element Encodable generation. A nil Source means the receiver.
	NewEncodable(ty reflect.Type, source Source) *Encodable
}

// SourceFromFunc creates a source from a function.
// It will substitute itself if NewEncodable() is called with a nil source.
func SourceFromFunc(source func(reflect.Type, Source) Encodable) Source {
	return funcSource{newEncodable: source}
}

type funcSource struct {
	newEncodable func(reflect.Type, Source) Encodable
}

func (s funcSource) NewEncodable(ty reflect.Type, source Source) *Encodable {
	if source == nil {
		source = s
	}
	enc := s.newEncodable(ty, source)
	return &enc
}

// NewDefaultSource returns a Source creating Encodables with New and the given config.
func NewDefaultSource(config Config) Source {
	return SourceFromFunc(func(ty reflect.Type, src Source) Encodable {
		return New(ty, config, src)
	})
}

// NewCachingSource returns a new CachingSource, using source for cache misses.
func NewCachingSource(source Source) *CachingSource {
	return &CachingSource{
		cache:  make(map[reflect.Type]*Encodable),
		Source: source,
	}
}

// CachingSource provides a cache of Encodables.
//
// A type is cached before its Encodable is built, so a recursive type given this Source
// receives its own, not yet finished, Encodable when it asks for itself.
// CachingSource is not thread safe.
type CachingSource struct {
	cache map[reflect.Type]*Encodable
	Source
}

// NewEncodable implements Source.
func (src *CachingSource) NewEncodable(ty reflect.Type, parent Source) *Encodable {
	if enc, ok := src.cache[ty]; ok {
		return enc
	}

	if parent == nil {
		parent = src
	}

	enc := new(Encodable)
	src.cache[ty] = enc
	*enc = *src.Source.NewEncodable(ty, parent)
	return enc
}

// New returns a new Encodable for ty, using src for its elements.
//
// Types implementing shape.Marshaler or shape.Unmarshaler, directly or through a pointer, encode themselves.
// Kinds that have no tnetstring form, such as channels and functions, get an Encodable that always errors.
func New(ty reflect.Type, config Config, src Source) Encodable {
	switch ty.Kind() {
	case reflect.Ptr:
		return NewPointer(ty, src)
	case reflect.Interface:
		return NewInterface(ty, src)
	}

	if isMarshaler(ty) || isUnmarshaler(ty) {
		return NewMarshaler(ty, config, src)
	}

	return newKind(ty, config, src)
}

// newKind returns the Encodable for ty's kind, ignoring any methods.
func newKind(ty reflect.Type, config Config, src Source) Encodable {
	switch ty.Kind() {
	case reflect.Bool:
		return NewBool(ty)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt(ty)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NewUint(ty)
	case reflect.Float32, reflect.Float64:
		return NewFloat(ty)
	case reflect.String:
		return NewString(ty)
	case reflect.Slice:
		if ty.Elem().Kind() == reflect.Uint8 {
			return NewBytes(ty)
		}
		return NewSlice(ty, src)
	case reflect.Array:
		return NewArray(ty, src)
	case reflect.Map:
		return NewMap(ty, src)
	case reflect.Struct:
		if ty.NumField() == 0 {
			return NewUnit(ty)
		}
		return NewStruct(ty, config, src)
	}

	return Unsupported{ty: ty}
}

// Unsupported is the Encodable for types with no tnetstring form.
// It returns tnio.ErrBadType from every call.
type Unsupported struct {
	ty reflect.Type
}

// Type implements Encodable.
func (e Unsupported) Type() reflect.Type { return e.ty }

// Encode implements Encodable.
func (e Unsupported) Encode(reflect.Value, shape.Serializer) error { return e.err() }

// Decode implements Encodable.
func (e Unsupported) Decode(reflect.Value, shape.Deserializer) error { return e.err() }

func (e Unsupported) err() error {
	return tnio.NewError(tnio.ErrBadType, fmt.Sprintf("%v has no tnetstring representation", e.ty), 1)
}
