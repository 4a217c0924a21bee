package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/replaycore/s2demo/demostream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedStream serves a fixed list of command bodies, then cancels its own
// context once exhausted, mimicking an HTTP broadcast that never reports
// EOF on its own and must instead be stopped by the caller.
type fixedStream struct {
	bodies [][]byte
	pos    int
	cancel context.CancelFunc
}

func (s *fixedStream) ReadCmdHeader(ctx context.Context) (demostream.CmdHeader, error) {
	return demostream.CmdHeader{Kind: demostream.CmdPacket, BodySize: uint32(len(s.bodies[s.pos]))}, nil
}

func (s *fixedStream) ReadCmd(ctx context.Context, hdr demostream.CmdHeader) ([]byte, error) {
	body := s.bodies[s.pos]
	s.pos++
	if s.pos >= len(s.bodies) {
		s.cancel()
	}
	return body, nil
}

func (s *fixedStream) SkipCmd(ctx context.Context, hdr demostream.CmdHeader) error { return nil }
func (s *fixedStream) UnreadCmdHeader(hdr demostream.CmdHeader) error              { return nil }
func (s *fixedStream) Seek(ctx context.Context, pos int64) error                  { return nil }
func (s *fixedStream) StreamPosition() int64                                      { return 0 }
func (s *fixedStream) StreamLen() int64                                           { return -1 }
func (s *fixedStream) IsAtEOF() bool                                              { return false }
func (s *fixedStream) StartPosition() int64                                       { return 0 }
func (s *fixedStream) TotalTicks() (int32, bool)                                  { return 0, false }

func TestDrainToFile_WritesBodiesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := &fixedStream{
		bodies: [][]byte{[]byte("one"), []byte("two"), []byte("three")},
		cancel: cancel,
	}

	var buf bytes.Buffer
	n, err := drainToFile(ctx, stream, &buf)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "onetwothree", buf.String())
}

func TestDrainToFile_PropagatesReadError(t *testing.T) {
	stream := &erroringStream{}
	var buf bytes.Buffer
	n, err := drainToFile(context.Background(), stream, &buf)
	assert.Zero(t, n)
	assert.Error(t, err)
}

type erroringStream struct{ fixedStream }

func (s *erroringStream) ReadCmdHeader(context.Context) (demostream.CmdHeader, error) {
	return demostream.CmdHeader{}, io.ErrUnexpectedEOF
}
