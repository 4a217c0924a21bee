package seekindex

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/replaycore/s2demo/errs"
)

// indexMagic tags a saved index file so Load can reject a file that is
// not one of these (or was truncated before the header finished).
const indexMagic uint32 = 0x53324958 // "S2IX"

const entrySize = 4 + 8 + 1 // Tick + Offset + Kind

// Save compresses and writes idx to path using codec, in a small header
// (magic, codec id, entry count) followed by the compressed entry table.
// The conventional path is the demo file's path with a ".s2idx" suffix.
func Save(path string, idx *Index, id CodecID) error {
	codec, err := NewCodec(id)
	if err != nil {
		return err
	}

	body := make([]byte, 0, idx.Len()*entrySize)
	for _, e := range idx.Entries() {
		var buf [entrySize]byte
		binary.LittleEndian.PutUint32(buf[0:4], uint32(e.Tick))
		binary.LittleEndian.PutUint64(buf[4:12], uint64(e.Offset))
		buf[12] = e.Kind
		body = append(body, buf[:]...)
	}

	compressed, err := codec.Compress(body)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrCompression, err)
	}

	var header [9]byte
	binary.LittleEndian.PutUint32(header[0:4], indexMagic)
	header[4] = byte(id)
	binary.LittleEndian.PutUint32(header[5:9], uint32(idx.Len()))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(header[:]); err != nil {
		return err
	}
	if _, err := f.Write(compressed); err != nil {
		return err
	}
	return nil
}

// Load reads and decompresses an index previously written by Save.
func Load(path string) (*Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < 9 {
		return nil, fmt.Errorf("%w: truncated header", errs.ErrBadIndexMagic)
	}

	magic := binary.LittleEndian.Uint32(raw[0:4])
	if magic != indexMagic {
		return nil, errs.ErrBadIndexMagic
	}
	id := CodecID(raw[4])
	count := binary.LittleEndian.Uint32(raw[5:9])

	codec, err := NewCodec(id)
	if err != nil {
		return nil, err
	}

	body, err := codec.Decompress(raw[9:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompression, err)
	}
	if len(body) != int(count)*entrySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrIndexEntrySize, int(count)*entrySize, len(body))
	}

	idx := &Index{entries: make([]Entry, count)}
	for i := range idx.entries {
		off := i * entrySize
		idx.entries[i] = Entry{
			Tick:   int32(binary.LittleEndian.Uint32(body[off : off+4])),
			Offset: int64(binary.LittleEndian.Uint64(body[off+4 : off+12])),
			Kind:   body[off+12],
		}
	}
	return idx, nil
}
