package demostream

import (
	"context"
	"encoding/binary"
	"io"

	"github.com/golang/snappy"

	"github.com/replaycore/s2demo/errs"
	"github.com/replaycore/s2demo/protowire2"
)

var _ DemoStream = (*FileStream)(nil)

var fileMagic = [8]byte{'P', 'B', 'D', 'E', 'M', 'S', '2', 0}

// FileStream reads a recorded .dem file (spec §3/§4.11): an 8-byte magic,
// two little-endian i32 trailer offsets, then a run of varint-framed
// commands whose high bit marks a Snappy-compressed body.
type FileStream struct {
	r   io.ReadSeeker
	pos int64

	startPos          int64
	fileInfoOffset    int32
	spawnGroupsOffset int32
	streamLen         int64

	totalTicks       int32
	totalTicksCached bool

	buf []byte
}

// OpenFile validates the magic and trailer header, leaving the stream
// positioned at the first command.
func OpenFile(r io.ReadSeeker) (*FileStream, error) {
	fs := &FileStream{r: r}

	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, errs.ErrBadMagic
	}
	if magic != fileMagic {
		return nil, errs.ErrBadMagic
	}
	fs.pos = 8

	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, errs.ErrUnexpectedEOF
	}
	fs.pos += 8
	fs.fileInfoOffset = int32(binary.LittleEndian.Uint32(hdr[0:4]))
	fs.spawnGroupsOffset = int32(binary.LittleEndian.Uint32(hdr[4:8]))

	fs.startPos = fs.pos

	streamLen, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	fs.streamLen = streamLen
	if _, err := r.Seek(fs.pos, io.SeekStart); err != nil {
		return nil, err
	}

	return fs, nil
}

func (fs *FileStream) ReadCmdHeader(ctx context.Context) (CmdHeader, error) {
	if err := ctx.Err(); err != nil {
		return CmdHeader{}, err
	}

	rawKind, n1, err := readUvarint(fs.r)
	if err != nil {
		return CmdHeader{}, err
	}
	tickU, n2, err := readUvarint(fs.r)
	if err != nil {
		return CmdHeader{}, err
	}
	sizeU, n3, err := readUvarint(fs.r)
	if err != nil {
		return CmdHeader{}, err
	}

	headerSize := n1 + n2 + n3
	fs.pos += int64(headerSize)

	return CmdHeader{
		Kind:       CmdKind(rawKind &^ compressedFlag),
		Compressed: rawKind&compressedFlag != 0,
		Tick:       int32(tickU),
		BodySize:   uint32(sizeU),
		HeaderSize: headerSize,
	}, nil
}

func (fs *FileStream) ReadCmd(ctx context.Context, hdr CmdHeader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cap(fs.buf) < int(hdr.BodySize) {
		fs.buf = make([]byte, hdr.BodySize)
	}
	buf := fs.buf[:hdr.BodySize]
	if _, err := io.ReadFull(fs.r, buf); err != nil {
		return nil, errs.ErrUnexpectedEOF
	}
	fs.pos += int64(hdr.BodySize)

	body := buf
	if hdr.Compressed {
		out, err := snappy.Decode(nil, buf)
		if err != nil {
			return nil, errs.ErrCompression
		}
		body = out
	}

	if hdr.Kind == CmdSendTables {
		// File framing wraps the embedded CsvcMsgFlattenedSerializer payload
		// in an outer CDemoSendTables protobuf (a single bytes field);
		// unwrap it here so every DemoStream implementation hands the
		// Parser a body ready for serializer.Build, the same contract the
		// broadcast streams satisfy by stripping their 4-byte skip prefix.
		var msg protowire2.SendTables
		if err := msg.Decode(body); err != nil {
			return nil, err
		}
		return msg.Data, nil
	}
	return body, nil
}

func (fs *FileStream) SkipCmd(ctx context.Context, hdr CmdHeader) error {
	if _, err := fs.r.Seek(int64(hdr.BodySize), io.SeekCurrent); err != nil {
		return err
	}
	fs.pos += int64(hdr.BodySize)
	return nil
}

func (fs *FileStream) UnreadCmdHeader(hdr CmdHeader) error {
	newPos := fs.pos - int64(hdr.HeaderSize)
	if _, err := fs.r.Seek(newPos, io.SeekStart); err != nil {
		return err
	}
	fs.pos = newPos
	return nil
}

func (fs *FileStream) Seek(ctx context.Context, pos int64) error {
	if _, err := fs.r.Seek(pos, io.SeekStart); err != nil {
		return err
	}
	fs.pos = pos
	return nil
}

func (fs *FileStream) StreamPosition() int64 { return fs.pos }
func (fs *FileStream) StreamLen() int64      { return fs.streamLen }
func (fs *FileStream) IsAtEOF() bool         { return fs.pos >= fs.streamLen }
func (fs *FileStream) StartPosition() int64  { return fs.startPos }

// TotalTicks seeks to the trailing DemFileInfo command, decodes its
// playback_ticks field, and restores the stream's prior position. The
// result is cached since file_info_offset never changes.
func (fs *FileStream) TotalTicks() (int32, bool) {
	if fs.totalTicksCached {
		return fs.totalTicks, true
	}
	if fs.fileInfoOffset == 0 {
		return 0, false
	}

	savedPos := fs.pos
	ctx := context.Background()
	defer fs.Seek(ctx, savedPos)

	if err := fs.Seek(ctx, int64(fs.fileInfoOffset)); err != nil {
		return 0, false
	}
	hdr, err := fs.ReadCmdHeader(ctx)
	if err != nil {
		return 0, false
	}
	body, err := fs.ReadCmd(ctx, hdr)
	if err != nil {
		return 0, false
	}

	var info protowire2.FileInfo
	if err := info.Decode(body); err != nil {
		return 0, false
	}

	fs.totalTicks = info.PlaybackTicks
	fs.totalTicksCached = true
	return fs.totalTicks, true
}
