package demostream

import (
	"encoding/binary"
	"io"

	"github.com/replaycore/s2demo/errs"
)

// broadcastHeaderSize is the fixed framing size shared by the broadcast-file
// and broadcast-HTTP encodings: u8 cmd, u32 LE tick, u8 reserved, u32 LE
// body-size.
const broadcastHeaderSize = 10

// frameReader parses the broadcast wire framing off any io.Reader. It is
// embedded by BroadcastFileStream (backed by a seekable file) and
// HTTPBroadcastStream (backed by a growing in-memory fragment buffer); both
// share identical header/body decoding and the CDemoSendTables skip-prefix
// quirk, differing only in how bytes get into r.
type frameReader struct {
	r   io.Reader
	pos int64
	buf []byte
}

func (f *frameReader) readCmdHeader() (CmdHeader, error) {
	var raw [broadcastHeaderSize]byte
	if _, err := io.ReadFull(f.r, raw[:]); err != nil {
		return CmdHeader{}, err
	}
	f.pos += broadcastHeaderSize
	return CmdHeader{
		Kind:       CmdKind(raw[0]),
		Tick:       int32(binary.LittleEndian.Uint32(raw[1:5])),
		BodySize:   binary.LittleEndian.Uint32(raw[6:10]),
		HeaderSize: broadcastHeaderSize,
	}, nil
}

// readCmd consumes hdr's body. A CDemoSendTables body in broadcast framing
// begins with 4 skip bytes before the embedded CsvcMsgFlattenedSerializer
// message (spec §4.11); those bytes are stripped here so every DemoStream
// implementation hands the Parser an already-unwrapped body.
func (f *frameReader) readCmd(hdr CmdHeader) ([]byte, error) {
	if cap(f.buf) < int(hdr.BodySize) {
		f.buf = make([]byte, hdr.BodySize)
	}
	buf := f.buf[:hdr.BodySize]
	if _, err := io.ReadFull(f.r, buf); err != nil {
		return nil, errs.ErrUnexpectedEOF
	}
	f.pos += int64(hdr.BodySize)

	if hdr.Kind == CmdSendTables && len(buf) >= 4 {
		return buf[4:], nil
	}
	return buf, nil
}

func (f *frameReader) skipCmd(hdr CmdHeader) error {
	if s, ok := f.r.(io.Seeker); ok {
		if _, err := s.Seek(int64(hdr.BodySize), io.SeekCurrent); err != nil {
			return err
		}
		f.pos += int64(hdr.BodySize)
		return nil
	}
	if _, err := io.CopyN(io.Discard, f.r, int64(hdr.BodySize)); err != nil {
		return err
	}
	f.pos += int64(hdr.BodySize)
	return nil
}
