// Package seekindex builds and persists a sparse tick -> byte-offset index
// for a demo stream, so Parser.RunToTick can rebase a backward seek at the
// nearest known DemFullPacket instead of re-reading from the start (spec
// §4.13's "implementations may cache FullPacket offsets for faster backward
// seeks").
package seekindex

import (
	"fmt"

	"github.com/replaycore/s2demo/errs"
)

// Codec compresses and decompresses the serialized index body. The
// interface and its four implementations are grounded directly on the
// teacher's compress.Codec family (compress/codec.go, noop.go, lz4.go,
// s2.go, zstd.go): one Compress/Decompress pair, four interchangeable
// codecs keyed by a small type byte rather than the teacher's
// format.CompressionType (this module has no mebo-style payload format to
// share the enum with).
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// CodecID identifies which Codec produced an on-disk index so Load can
// pick the matching Decompress implementation without the caller having
// to remember which one Save used.
type CodecID uint8

const (
	CodecNone CodecID = iota + 1
	CodecLZ4
	CodecS2
	CodecZstd
)

func (id CodecID) String() string {
	switch id {
	case CodecNone:
		return "none"
	case CodecLZ4:
		return "lz4"
	case CodecS2:
		return "s2"
	case CodecZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// NewCodec returns the built-in Codec for id.
func NewCodec(id CodecID) (Codec, error) {
	switch id {
	case CodecNone:
		return NoopCodec{}, nil
	case CodecLZ4:
		return LZ4Codec{}, nil
	case CodecS2:
		return S2Codec{}, nil
	case CodecZstd:
		return ZstdCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: codec id %d", errs.ErrUnknownCodec, id)
	}
}
