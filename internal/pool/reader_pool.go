package pool

import (
	"sync"

	"github.com/replaycore/s2demo/bitstream"
)

// readerPool reuses *bitstream.Reader instances across demo commands: the
// Parser borrows one per packet body to walk its sub-messages (spec C13).
var readerPool = sync.Pool{
	New: func() any { return &bitstream.Reader{} },
}

// GetReader retrieves a Reader from the pool and binds it to data.
//
// The caller must invoke the returned cleanup function (typically via
// defer) once the Reader is no longer needed.
func GetReader(data []byte) (*bitstream.Reader, func()) {
	r, _ := readerPool.Get().(*bitstream.Reader)
	r.Reset(data)
	return r, func() { readerPool.Put(r) }
}
