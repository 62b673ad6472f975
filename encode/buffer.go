package encode

import (
	"math/bits"
	"sync"
)

// buffers[i] holds buffers with a capacity of at least 1<<i.
var buffers [32]sync.Pool

func init() {
	for i := range buffers {
		size := 1 << i
		buffers[i].New = func() interface{} {
			return make([]byte, 0, size)
		}
	}
}

// getBuffer returns an empty buffer with a capacity of at least n from the pool.
func getBuffer(n int) []byte {
	if n < 1 {
		n = 1
	}

	i := bits.Len(uint(n - 1))
	if i >= len(buffers) {
		return make([]byte, 0, n)
	}
	return buffers[i].Get().([]byte)[:0]
}

// putBuffer places a buffer in the pool.
func putBuffer(buff []byte) {
	if cap(buff) == 0 {
		return
	}

	i := bits.Len(uint(cap(buff))) - 1
	if i >= len(buffers) {
		return
	}
	buffers[i].Put(buff[:0])
}
