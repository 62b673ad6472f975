package encodable

import (
	"reflect"
	"sync"

	"github.com/stewi1014/tnets/shape"
)

// NewConcurrent returns a thread safe Encodable, using newFunc to create Encodables as needed.
func NewConcurrent(newFunc func() Encodable) *Concurrent {
	return &Concurrent{
		new: newFunc,
	}
}

// Concurrent is a thread safe encodable.
// It functions as a drop in replacement for Encodables, keeping a cache of Encodables, only allowing a single call at a time on any one Encodable.
// If all cached Encodables are busy in a call, it creates a new Encodable, and calls it; it never blocks.
type Concurrent struct {
	new func() Encodable

	// encodersMutex must only be held while encoders is modified, never across a call.
	encodersMutex sync.Mutex
	encoders      []Encodable
}

// Type implements Encodable.
func (e *Concurrent) Type() reflect.Type {
	enc := e.get()
	defer e.put(enc)

	return enc.Type()
}

// Encode implements Encodable.
func (e *Concurrent) Encode(v reflect.Value, s shape.Serializer) error {
	enc := e.get()
	defer e.put(enc)

	return enc.Encode(v, s)
}

// Decode implements Encodable.
func (e *Concurrent) Decode(v reflect.Value, d shape.Deserializer) error {
	enc := e.get()
	defer e.put(enc)

	return enc.Decode(v, d)
}

// get returns an Encodable, releasing ownership to the caller.
func (e *Concurrent) get() Encodable {
	e.encodersMutex.Lock()
	l := len(e.encoders)
	if l > 0 {
		enc := e.encoders[l-1]
		e.encoders = e.encoders[:l-1]
		e.encodersMutex.Unlock()
		return enc
	}
	e.encodersMutex.Unlock()
	return e.new()
}

// ownership of enc is passed to put, no more calls can be made.
func (e *Concurrent) put(enc Encodable) {
	e.encodersMutex.Lock()
	e.encoders = append(e.encoders, enc)
	e.encodersMutex.Unlock()
}
