package pool

import "sync"

// Scratch-slice pool holding reusable []byte buffers.
var (
	bytesSlicePool = sync.Pool{
		New: func() any { return &[]byte{} },
	}
)

// GetByteSlice retrieves and resizes a []byte from the pool.
//
// The returned slice has length equal to size. The caller must invoke the
// returned cleanup function (typically via defer) to return it.
func GetByteSlice(size int) ([]byte, func()) {
	ptr, _ := bytesSlicePool.Get().(*[]byte)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]byte, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { bytesSlicePool.Put(ptr) }
}
