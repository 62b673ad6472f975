// Package encodable maps Go values onto tnetstring shapes using reflection.
//
// An Encodable encodes and decodes one Go type. Encodables are built by a Source, which compound Encodables
// also use to get Encodables for their elements. The generation of an Encodable tree is slow relative to its use,
// so trees should be cached and reused; see CachingSource and Concurrent.
package encodable

// A few notes to keep in mind while developing this package.
//
// Element Encodables are held as *Encodable, and must not be dereferenced while the parent is being built.
// A recursive type hands out its own Encodable before it is finished; the pointer is filled in afterwards.
//
// Values passed to Decode are always settable. Values passed to Encode may not be addressable.

import (
	"reflect"

	"github.com/stewi1014/tnets/shape"
)

// DefaultStructTag is the struct tag used to name and skip struct fields when Config.StructTag is empty.
//
//	type T struct {
//		Name   string `tnet:"name"` // encoded under "name"
//		Secret string `tnet:"-"`    // skipped
//		Other  int                  // encoded under "Other"
//	}
const DefaultStructTag = "tnet"

// Config holds settings for the generation of Encodables.
type Config struct {
	// StructTag is the struct tag key read for field names. Empty means DefaultStructTag.
	StructTag string
}

func (c Config) structTag() string {
	if c.StructTag == "" {
		return DefaultStructTag
	}
	return c.StructTag
}

// Encodable is an encoder and decoder for a specific type.
//
// Encodables are not thread safe.
// Use Concurrent or higher level functions if concurrency is needed.
type Encodable interface {
	// Type returns the type that the Encodable encodes.
	Type() reflect.Type

	// Encode writes v to s. v must be of the Encodable's type.
	Encode(v reflect.Value, s shape.Serializer) error

	// Decode reads from d into v. v must be of the Encodable's type and settable.
	Decode(v reflect.Value, d shape.Deserializer) error
}
