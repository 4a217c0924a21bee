package demostream

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeBroadcastCmd appends one broadcast-framed command: u8 cmd, u32 LE
// tick, u8 reserved, u32 LE body-size, body.
func writeBroadcastCmd(buf []byte, kind CmdKind, tick int32, body []byte) []byte {
	buf = append(buf, byte(kind))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(tick))
	buf = append(buf, 0)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(body)))
	buf = append(buf, body...)
	return buf
}

func TestBroadcastFileStream_ReadCmd(t *testing.T) {
	var raw []byte
	raw = writeBroadcastCmd(raw, CmdPacket, 42, []byte("payload"))

	bs, err := OpenBroadcastFile(bytes.NewReader(raw))
	require.NoError(t, err)

	ctx := context.Background()
	hdr, err := bs.ReadCmdHeader(ctx)
	require.NoError(t, err)
	assert.Equal(t, CmdPacket, hdr.Kind)
	assert.EqualValues(t, 42, hdr.Tick)
	assert.EqualValues(t, len("payload"), hdr.BodySize)

	body, err := bs.ReadCmd(ctx, hdr)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))
}

func TestBroadcastFileStream_SendTablesSkipsFourBytes(t *testing.T) {
	inner := []byte{0xAA, 0xBB, 0xCC}
	body := append([]byte{0, 0, 0, 0}, inner...)

	var raw []byte
	raw = writeBroadcastCmd(raw, CmdSendTables, 0, body)

	bs, err := OpenBroadcastFile(bytes.NewReader(raw))
	require.NoError(t, err)

	ctx := context.Background()
	hdr, err := bs.ReadCmdHeader(ctx)
	require.NoError(t, err)
	got, err := bs.ReadCmd(ctx, hdr)
	require.NoError(t, err)
	assert.Equal(t, inner, got)
}

func TestBroadcastFileStream_IsAtEOF(t *testing.T) {
	var raw []byte
	raw = writeBroadcastCmd(raw, CmdStop, 0, nil)

	bs, err := OpenBroadcastFile(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.False(t, bs.IsAtEOF())

	ctx := context.Background()
	hdr, err := bs.ReadCmdHeader(ctx)
	require.NoError(t, err)
	_, err = bs.ReadCmd(ctx, hdr)
	require.NoError(t, err)
	assert.True(t, bs.IsAtEOF())
}
