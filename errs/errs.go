// Package errs declares the sentinel errors shared across the decoding
// pipeline, grouped by the error taxonomy the system distinguishes: Format,
// Truncation, Compression, Schema, Baseline, Transport, and Visitor errors.
// Callers wrap these with fmt.Errorf("...: %w", ...) to attach the tick,
// cmd kind, or fragment number at the point of failure.
package errs

import "errors"

// Format errors: malformed bytes that do not match the expected wire shape.
var (
	ErrBadMagic             = errors.New("s2demo: bad demo file magic")
	ErrUnknownCmdKind       = errors.New("s2demo: unknown command kind")
	ErrMalformedVarint      = errors.New("s2demo: malformed varint")
	ErrBadWireType          = errors.New("s2demo: unexpected protobuf wire type")
	ErrUnknownArrayLenIdent = errors.New("s2demo: unknown named array length identifier")
	ErrUnexpectedToken      = errors.New("s2demo: unexpected token in type expression")
	ErrUnknownStringTable   = errors.New("s2demo: string table update references an unknown table id")
)

// Truncation errors: the stream ended before a read completed.
var (
	ErrOverflow       = errors.New("s2demo: bit reader overflow")
	ErrUnexpectedEOF  = errors.New("s2demo: unexpected end of stream")
	ErrShortBuffer    = errors.New("s2demo: destination buffer too short")
)

// Compression errors.
var (
	ErrCompression      = errors.New("s2demo: decompression failed")
	ErrUnknownCodec     = errors.New("s2demo: unknown compression codec")
	ErrDecompressedSize = errors.New("s2demo: decompressed size mismatch")
)

// Schema errors: the serializer graph could not be built or resolved.
var (
	ErrUnknownSymbol        = errors.New("s2demo: unknown symbol index")
	ErrMissingSerializer    = errors.New("s2demo: missing serializer for class")
	ErrUnresolvedFieldPath  = errors.New("s2demo: unresolved field path")
	ErrSerializerCycle      = errors.New("s2demo: cyclic serializer reference")
	ErrHashCollision        = errors.New("s2demo: hash collision detected")
	ErrUnimplementedDecoder = errors.New("s2demo: unimplemented field decoder")
)

// Baseline errors.
var (
	ErrMissingBaseline = errors.New("s2demo: missing instance baseline for class id")
	ErrBadBaselineKey  = errors.New("s2demo: non-decimal instance baseline key")
)

// Transport errors: HTTP broadcast fetch failures.
var (
	ErrTransport     = errors.New("s2demo: transport error")
	ErrFragmentGone  = errors.New("s2demo: broadcast fragment no longer available")
	ErrRetryExceeded = errors.New("s2demo: retry budget exceeded")
)

// Entity/runtime errors.
var (
	ErrEntityNotFound    = errors.New("s2demo: entity not found")
	ErrEntityAlreadyLive = errors.New("s2demo: entity already exists")
)

// Seek/index errors.
var (
	ErrBadIndexMagic = errors.New("s2demo: bad seek index magic")
	ErrIndexEntrySize = errors.New("s2demo: malformed seek index entry")
)
