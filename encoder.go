package tnets

import (
	"io"
	"reflect"
	"sync"

	"github.com/stewi1014/tnets/encode"
	"github.com/stewi1014/tnets/tnio"
)

// NewEncoder returns a new Encoder writing to w.
// If config is nil, the defaults are used.
func NewEncoder(w io.Writer, config *Config) *Encoder {
	config = config.copyAndFill()
	return &Encoder{
		w:      w,
		config: config,
		s:      encode.New(config.MaxDepth),
	}
}

// Encoder writes tnetstrings to an io.Writer, one frame per call to Encode.
// It is safe for concurrent use.
type Encoder struct {
	w      io.Writer
	config *Config

	mutex sync.Mutex
	s     *encode.Serializer
}

// Encode writes the encoding of v.
// Nothing is written if encoding fails; if the writer fails, the error is a tnio.IOError.
func (e *Encoder) Encode(v interface{}) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.s.Reset()
	if err := e.config.encode(reflect.ValueOf(v), e.s); err != nil {
		return err
	}

	out, err := e.s.Output()
	if err != nil {
		return err
	}

	return tnio.Write(out, e.w)
}
