package bitstream

import "github.com/replaycore/s2demo/errs"

// Byte-stream LEB128 decoders (C2), used for cmd headers and other places
// that are byte-aligned rather than mid-bitstream. MSB of each byte is the
// continuation flag; at most 5 bytes for a 32-bit value and 10 for 64-bit.
const (
	maxVarint32Bytes = 5
	maxVarint64Bytes = 10
)

// ByteReader is a single-byte stream interface. *bytes.Reader and
// *bufio.Reader both satisfy it. UvarintStream does not take a ByteReader;
// it reads through a next func instead.
type ByteReader interface {
	ReadByte() (byte, error)
}

// UvarintStream decodes an unsigned LEB128 varint from a byte stream,
// reading one byte at a time via next. It returns errs.ErrMalformedVarint
// if the continuation bit is still set after maxBytes bytes.
func UvarintStream(next func() (byte, bool), maxBytes int) (uint64, int, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxBytes; i++ {
		b, ok := next()
		if !ok {
			return 0, i, errs.ErrUnexpectedEOF
		}
		result |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
	}
	return 0, maxBytes, errs.ErrMalformedVarint
}

// Uvarint32Stream decodes a 32-bit unsigned varint (max 5 bytes).
func Uvarint32Stream(next func() (byte, bool)) (uint32, int, error) {
	v, n, err := UvarintStream(next, maxVarint32Bytes)
	return uint32(v), n, err
}

// Uvarint64Stream decodes a 64-bit unsigned varint (max 10 bytes).
func Uvarint64Stream(next func() (byte, bool)) (uint64, int, error) {
	return UvarintStream(next, maxVarint64Bytes)
}

// ZigZagDecode32 reverses the zig-zag mapping used for signed varints:
// (n>>1) xor -(n&1).
func ZigZagDecode32(n uint32) int32 {
	return int32(n>>1) ^ -int32(n&1)
}

// ZigZagDecode64 is the 64-bit form of ZigZagDecode32.
func ZigZagDecode64(n uint64) int64 {
	return int64(n>>1) ^ -int64(n&1)
}

// ZigZagEncode32 is the inverse of ZigZagDecode32, provided for tests that
// need to construct round-trip fixtures.
func ZigZagEncode32(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

// ZigZagEncode64 is the inverse of ZigZagDecode64.
func ZigZagEncode64(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

// --- Bitstream-embedded varint readers (byte-aligned use within a Reader) ---

// UVarint32 reads an unsigned LEB128 varint (up to 5 bytes) directly from
// the bit-level Reader, byte-aligned at the current position.
func (r *Reader) UVarint32() uint32 {
	v, _ := r.uvarint(maxVarint32Bytes)
	return uint32(v)
}

// UVarint64 reads an unsigned LEB128 varint (up to 10 bytes) from the Reader.
func (r *Reader) UVarint64() uint64 {
	v, _ := r.uvarint(maxVarint64Bytes)
	return v
}

func (r *Reader) uvarint(maxBytes int) (uint64, int) {
	var result uint64
	var shift uint
	for i := 0; i < maxBytes; i++ {
		b := r.ReadByte()
		result |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return result, i + 1
		}
		shift += 7
	}
	r.overflowed = true
	return result, maxBytes
}

// Varint32 reads a zig-zag encoded signed 32-bit varint.
func (r *Reader) Varint32() int32 { return ZigZagDecode32(r.UVarint32()) }

// Varint64 reads a zig-zag encoded signed 64-bit varint.
func (r *Reader) Varint64() int64 { return ZigZagDecode64(r.UVarint64()) }
