package demostream

import (
	"context"
	"io"
)

var _ DemoStream = (*BroadcastFileStream)(nil)

// BroadcastFileStream reads a saved capture of a broadcast fragment stream
// (spec §4.11's broadcast-file variant): the same {u8, u32 LE, u8, u32 LE}
// framing the live HTTP broadcast uses, concatenated into one seekable
// file, with no file header and no compression flag.
type BroadcastFileStream struct {
	frameReader
	seeker    io.Seeker
	streamLen int64
}

// OpenBroadcastFile wraps a seekable reader positioned at the start of the
// fragment stream.
func OpenBroadcastFile(r io.ReadSeeker) (*BroadcastFileStream, error) {
	streamLen, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return &BroadcastFileStream{
		frameReader: frameReader{r: r},
		seeker:      r,
		streamLen:   streamLen,
	}, nil
}

func (s *BroadcastFileStream) ReadCmdHeader(ctx context.Context) (CmdHeader, error) {
	if err := ctx.Err(); err != nil {
		return CmdHeader{}, err
	}
	return s.frameReader.readCmdHeader()
}

func (s *BroadcastFileStream) ReadCmd(ctx context.Context, hdr CmdHeader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.frameReader.readCmd(hdr)
}

func (s *BroadcastFileStream) SkipCmd(ctx context.Context, hdr CmdHeader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.frameReader.skipCmd(hdr)
}

func (s *BroadcastFileStream) UnreadCmdHeader(hdr CmdHeader) error {
	newPos := s.pos - int64(hdr.HeaderSize)
	if _, err := s.seeker.Seek(newPos, io.SeekStart); err != nil {
		return err
	}
	s.pos = newPos
	return nil
}

func (s *BroadcastFileStream) Seek(ctx context.Context, pos int64) error {
	if _, err := s.seeker.Seek(pos, io.SeekStart); err != nil {
		return err
	}
	s.pos = pos
	return nil
}

func (s *BroadcastFileStream) StreamPosition() int64 { return s.pos }
func (s *BroadcastFileStream) StreamLen() int64      { return s.streamLen }
func (s *BroadcastFileStream) IsAtEOF() bool         { return s.pos >= s.streamLen }
func (s *BroadcastFileStream) StartPosition() int64  { return 0 }
func (s *BroadcastFileStream) TotalTicks() (int32, bool) {
	return 0, false
}
