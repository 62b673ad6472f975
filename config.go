package tnets

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/stewi1014/tnets/decode"
	"github.com/stewi1014/tnets/encodable"
	"github.com/stewi1014/tnets/encode"
	"github.com/stewi1014/tnets/tnio"
	"github.com/stewi1014/tnets/value"
)

// Config defines configuration for encoding and decoding.
// The zero value, and a nil *Config, use the defaults.
type Config struct {
	// MaxDepth limits how deeply compounds may nest, failing with tnio.ErrNestingTooDeep beyond it.
	// Zero means DefaultMaxDepth, and a negative value disables the limit.
	MaxDepth int

	// StructTag is the struct tag key naming struct fields. Empty means "tnet".
	StructTag string
}

func (c *Config) copyAndFill() *Config {
	config := new(Config)
	if c != nil {
		*config = *c
	}

	if config.MaxDepth == 0 {
		config.MaxDepth = DefaultMaxDepth
	}

	if config.StructTag == "" {
		config.StructTag = encodable.DefaultStructTag
	}

	return config
}

type encodableKey struct {
	ty        reflect.Type
	structTag string
}

// encodables holds a *encodable.Concurrent for each encodableKey.
var encodables sync.Map

// encodable returns the shared Encodable for ty. c must be filled.
func (c *Config) encodable(ty reflect.Type) encodable.Encodable {
	key := encodableKey{ty: ty, structTag: c.StructTag}
	if enc, ok := encodables.Load(key); ok {
		return enc.(*encodable.Concurrent)
	}

	encConfig := encodable.Config{StructTag: c.StructTag}
	enc, _ := encodables.LoadOrStore(key, encodable.NewConcurrent(func() encodable.Encodable {
		// Each copy gets its own cache; Interface Encodables fill it at encode time.
		return *encodable.NewCachingSource(encodable.NewDefaultSource(encConfig)).NewEncodable(ty, nil)
	}))
	return enc.(*encodable.Concurrent)
}

// Parse is Parse using c.
func (c *Config) Parse(data []byte) (rest []byte, v value.Value, err error) {
	config := c.copyAndFill()
	return value.ParseDepth(data, config.MaxDepth)
}

// Marshal is Marshal using c.
func (c *Config) Marshal(v interface{}) ([]byte, error) {
	config := c.copyAndFill()

	s := encode.New(config.MaxDepth)
	if err := config.encode(reflect.ValueOf(v), s); err != nil {
		return nil, err
	}

	return s.Output()
}

// MarshalString is MarshalString using c.
func (c *Config) MarshalString(v interface{}) (string, error) {
	buff, err := c.Marshal(v)
	return string(buff), err
}

func (c *Config) encode(v reflect.Value, s *encode.Serializer) error {
	if !v.IsValid() {
		return s.Unit()
	}
	return c.encodable(v.Type()).Encode(v, s)
}

// Unmarshal is Unmarshal using c.
func (c *Config) Unmarshal(data []byte, v interface{}) error {
	return c.UnmarshalString(string(data), v)
}

// UnmarshalString is UnmarshalString using c.
func (c *Config) UnmarshalString(s string, v interface{}) error {
	config := c.copyAndFill()

	ptr := reflect.ValueOf(v)
	if ptr.Kind() != reflect.Ptr {
		return tnio.NewError(tnio.ErrBadType, fmt.Sprintf("cannot decode into %T, values must be passed by reference", v), 0)
	}
	if ptr.IsNil() {
		return tnio.NewError(tnio.ErrNilPointer, fmt.Sprintf("cannot decode into nil %T", v), 0)
	}

	d := decode.New(s, config.MaxDepth)
	if err := config.encodable(ptr.Type().Elem()).Decode(ptr.Elem(), d); err != nil {
		return err
	}

	return d.Finish()
}
