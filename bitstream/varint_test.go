package bitstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeUvarint(v uint64) []byte {
	var out []byte
	for v >= 0x80 {
		out = append(out, byte(v)|0x80)
		v >>= 7
	}
	out = append(out, byte(v))
	return out
}

func TestUvarintStream_RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, 1 << 40, ^uint64(0)}
	for _, v := range values {
		encoded := encodeUvarint(v)
		i := 0
		next := func() (byte, bool) {
			if i >= len(encoded) {
				return 0, false
			}
			b := encoded[i]
			i++
			return b, true
		}
		got, _, err := Uvarint64Stream(next)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestUvarintStream_Malformed(t *testing.T) {
	encoded := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}
	i := 0
	next := func() (byte, bool) {
		if i >= len(encoded) {
			return 0, false
		}
		b := encoded[i]
		i++
		return b, true
	}
	_, _, err := Uvarint64Stream(next)
	require.Error(t, err)
}

func TestZigZag_RoundTrip32(t *testing.T) {
	values := []int32{0, -1, 1, -2, 2, 1000, -1000, 2147483647, -2147483648}
	for _, v := range values {
		assert.Equal(t, v, ZigZagDecode32(ZigZagEncode32(v)))
	}
}

func TestZigZag_RoundTrip64(t *testing.T) {
	values := []int64{0, -1, 1, -2, 2, 1 << 40, -(1 << 40)}
	for _, v := range values {
		assert.Equal(t, v, ZigZagDecode64(ZigZagEncode64(v)))
	}
}

func TestReader_UVarint32(t *testing.T) {
	r := NewReader(encodeUvarint(300))
	assert.Equal(t, uint32(300), r.UVarint32())
	require.NoError(t, r.Finish())
}

func TestReader_Varint32_ZigZag(t *testing.T) {
	r := NewReader(encodeUvarint(ZigZagEncode32Uint(-5)))
	assert.Equal(t, int32(-5), r.Varint32())
}

// ZigZagEncode32Uint is a tiny test helper bridging the int32 encoder to an
// unsigned value for the byte-stream encoder above.
func ZigZagEncode32Uint(v int32) uint64 {
	return uint64(ZigZagEncode32(v))
}
