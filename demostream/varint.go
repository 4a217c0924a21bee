package demostream

import (
	"encoding/binary"
	"io"

	"github.com/replaycore/s2demo/errs"
)

// readUvarint decodes one byte-stream LEB128 varint from r, the same
// encoding bitstream.Reader.UVarint64 reads off a bit cursor (spec C2),
// here read directly off an io.Reader since file-stream command framing is
// always byte-aligned. Returns the decoded value and the number of bytes
// consumed, so callers can accumulate CmdHeader.HeaderSize.
func readUvarint(r io.Reader) (uint64, int, error) {
	var result uint64
	var shift uint
	var b [1]byte
	for i := 0; i < binary.MaxVarintLen64; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, i, err
		}
		result |= uint64(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
	}
	return 0, binary.MaxVarintLen64, errs.ErrMalformedVarint
}
