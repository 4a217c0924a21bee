// Package pool provides sync.Pool-backed byte buffer and scratch-slice reuse
// for the hot decode path, where a fresh allocation per tick or per command
// would dominate runtime.
package pool

import "sync"

// Default and max sizes for the pooled command/packet buffers. Command
// bodies (CDemoPacket, CDemoFullPacket) are usually a few KB; packet-entities
// sub-messages are smaller but far more frequent.
const (
	CmdBufferDefaultSize     = 1024 * 16   // 16KiB
	CmdBufferMaxThreshold    = 1024 * 512  // 512KiB
	PacketBufferDefaultSize  = 1024 * 4    // 4KiB
	PacketBufferMaxThreshold = 1024 * 128  // 128KiB
)

// ByteBuffer is a reusable, growable byte slice wrapper.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Reset empties the buffer while retaining its backing array.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Len returns the number of bytes currently held.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// MustWrite appends data, growing the backing array if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can accept requiredBytes more bytes without a
// further reallocation. It grows by CmdBufferDefaultSize, or by 25% of the
// current capacity once that capacity exceeds 4*CmdBufferDefaultSize, and
// always by at least requiredBytes, to amortize the cost of repeated
// per-cmd appends.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := CmdBufferDefaultSize
	if cap(bb.B) > 4*CmdBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// SetLength resizes the buffer to exactly n bytes, growing if necessary.
func (bb *ByteBuffer) SetLength(n int) {
	if n > cap(bb.B) {
		bb.Grow(n - len(bb.B))
	}
	bb.B = bb.B[:n]
}

// ByteBufferPool pools ByteBuffers of a given default size, discarding
// buffers that have grown past maxThreshold to avoid memory bloat from one
// unusually large command.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of ByteBuffers.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool, or discards it if oversized.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}
	bb.Reset()
	p.pool.Put(bb)
}

var (
	cmdBufferPool    = NewByteBufferPool(CmdBufferDefaultSize, CmdBufferMaxThreshold)
	packetBufferPool = NewByteBufferPool(PacketBufferDefaultSize, PacketBufferMaxThreshold)
)

// GetCmdBuffer retrieves a ByteBuffer sized for a decompressed cmd body.
func GetCmdBuffer() *ByteBuffer { return cmdBufferPool.Get() }

// PutCmdBuffer returns a cmd body buffer to its pool.
func PutCmdBuffer(bb *ByteBuffer) { cmdBufferPool.Put(bb) }

// GetPacketBuffer retrieves a ByteBuffer sized for a packet sub-message.
func GetPacketBuffer() *ByteBuffer { return packetBufferPool.Get() }

// PutPacketBuffer returns a packet sub-message buffer to its pool.
func PutPacketBuffer(bb *ByteBuffer) { packetBufferPool.Put(bb) }
