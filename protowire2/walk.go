// Package protowire2 decodes the handful of protobuf message shapes the
// demo/broadcast formats embed, without pulling in generated .pb.go code:
// full protobuf support is an external, out-of-scope collaborator (per the
// decoding pipeline's own scope), but command framing and several inbound
// control messages still need their bytes unwrapped to reach this module's
// own bitstream payloads. Built directly on protowire's low-level tag/value
// primitives.
package protowire2

import (
	"github.com/replaycore/s2demo/errs"
	"google.golang.org/protobuf/encoding/protowire"
)

// field is one decoded (number, type, raw-value) triple from a single pass
// over a message's bytes.
type field struct {
	num protowire.Number
	typ protowire.Type
	val []byte
	u64 uint64
}

// walk invokes fn once per top-level field in b, in wire order. fn's val is
// only meaningful for BytesType fields; u64 carries Varint/Fixed32/Fixed64
// payloads widened to 64 bits.
func walk(b []byte, fn func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errs.ErrBadWireType
		}
		b = b[n:]

		var f field
		f.num, f.typ = num, typ

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return errs.ErrMalformedVarint
			}
			f.u64 = v
			b = b[n:]
		case protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return errs.ErrBadWireType
			}
			f.u64 = uint64(v)
			b = b[n:]
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return errs.ErrBadWireType
			}
			f.u64 = v
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return errs.ErrBadWireType
			}
			f.val = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return errs.ErrBadWireType
			}
			b = b[n:]
			continue
		}

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}
