// Package demostream implements spec C11's uniform command-iteration
// protocol over the three sources a Source 2 replay or broadcast can come
// from: a recorded .dem file, a saved broadcast-fragment capture, and a
// live chunked HTTP broadcast. All three speak the same CmdHeader/body
// cycle to the Parser; only how that cycle is framed on the wire differs.
package demostream

import "context"

// CmdKind identifies a demo command. Numeric values follow the public
// EDemoCommands enumeration used by every known Source 2 demo reader
// (community-documented, not retrieved from the example pack); spec.md
// treats the protobuf/command-kind wire definitions as an external
// collaborator assumed available.
type CmdKind int32

const (
	CmdStop                CmdKind = 0
	CmdFileHeader          CmdKind = 1
	CmdFileInfo            CmdKind = 2
	CmdSyncTick            CmdKind = 3
	CmdSendTables          CmdKind = 4
	CmdClassInfo           CmdKind = 5
	CmdStringTables        CmdKind = 6
	CmdPacket              CmdKind = 7
	CmdSignonPacket        CmdKind = 8
	CmdConsoleCmd          CmdKind = 9
	CmdCustomData          CmdKind = 10
	CmdCustomDataCallbacks CmdKind = 11
	CmdUserCmd             CmdKind = 12
	CmdFullPacket          CmdKind = 13
	CmdSaveGame            CmdKind = 14
	CmdSpawnGroups         CmdKind = 15
	CmdAnimationData       CmdKind = 16
)

// compressedFlag is the high bit Set on a file stream's command byte when
// its body is Snappy-compressed (spec §3's CmdHeader note, file encoding
// only; broadcast framing never compresses).
const compressedFlag = 0x40

// CmdHeader is the decoded form of one command's framing, independent of
// which wire encoding produced it.
type CmdHeader struct {
	Kind       CmdKind
	Compressed bool
	Tick       int32
	BodySize   uint32
	// HeaderSize is the number of stream bytes this header itself occupied,
	// letting UnreadCmdHeader rewind without separate seek arithmetic.
	HeaderSize int
}

// DemoStream is the shared command-iteration interface spec C11 describes.
// Every method that can block on I/O takes a context so callers can cancel
// an in-flight file read or HTTP fetch; this is the idiomatic Go rendition
// of spec §5's "cancellation by dropping the stream".
type DemoStream interface {
	// ReadCmdHeader decodes the next command's header without consuming its
	// body.
	ReadCmdHeader(ctx context.Context) (CmdHeader, error)
	// ReadCmd consumes hdr's body and returns it, decompressed if
	// hdr.Compressed and with any stream-specific framing quirks (e.g. the
	// broadcast CDemoSendTables 4-byte skip prefix) already stripped. The
	// returned slice is only valid until the next ReadCmd call.
	ReadCmd(ctx context.Context, hdr CmdHeader) ([]byte, error)
	// SkipCmd discards hdr's body without decoding it.
	SkipCmd(ctx context.Context, hdr CmdHeader) error
	// UnreadCmdHeader rewinds the stream by hdr.HeaderSize bytes, so the
	// next ReadCmdHeader call re-reads the same header. Only valid
	// immediately after the ReadCmdHeader call that produced hdr.
	UnreadCmdHeader(hdr CmdHeader) error
	// Seek moves to an absolute byte offset previously observed via
	// StreamPosition. Not every stream supports this (HTTP broadcasts are
	// an infinite forward-only bytestream); such streams return
	// errs.ErrTransport.
	Seek(ctx context.Context, pos int64) error
	// StreamPosition returns the current absolute byte offset.
	StreamPosition() int64
	// StreamLen returns the total stream length, or -1 if unknown/unbounded.
	StreamLen() int64
	// IsAtEOF reports whether the stream has been fully consumed. Always
	// false for the HTTP broadcast stream.
	IsAtEOF() bool
	// StartPosition returns the byte offset of the first command, i.e.
	// where Reset should seek back to.
	StartPosition() int64
	// TotalTicks returns the demo's total tick count if the stream carries
	// that metadata (file streams only, from the trailing DemFileInfo
	// command), and whether it was available.
	TotalTicks() (int32, bool)
}
