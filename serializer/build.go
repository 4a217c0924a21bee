package serializer

import (
	"encoding/binary"
	"fmt"

	"github.com/replaycore/s2demo/errs"
	"github.com/replaycore/s2demo/fielddecoder"
	"github.com/replaycore/s2demo/internal/collision"
	"github.com/replaycore/s2demo/internal/hashid"
	"github.com/replaycore/s2demo/protowire2"
	"github.com/replaycore/s2demo/vartype"
)

// Build decodes a CDemoSendTables body (spec C6): a leading varint giving the
// byte length of an embedded CsvcMsgFlattenedSerializer message, followed by
// that message's bytes. The returned Registry is immutable and safe for
// concurrent reads.
func Build(body []byte) (*Registry, error) {
	size, n := binary.Uvarint(body)
	if n <= 0 {
		return nil, errs.ErrMalformedVarint
	}
	body = body[n:]
	if uint64(len(body)) < size {
		return nil, errs.ErrUnexpectedEOF
	}
	body = body[:size]

	var msg protowire2.CsvcMsgFlattenedSerializer
	if err := msg.Decode(body); err != nil {
		return nil, err
	}

	symbol := func(idx int32) (string, error) {
		if idx < 0 || int(idx) >= len(msg.Symbols) {
			return "", errs.ErrUnknownSymbol
		}
		return msg.Symbols[idx], nil
	}

	parser := vartype.NewParser()
	fields := make([]*Field, len(msg.Fields))
	for i, pf := range msg.Fields {
		varTypeStr, err := symbol(pf.VarTypeSym)
		if err != nil {
			return nil, err
		}
		varName, err := symbol(pf.VarNameSym)
		if err != nil {
			return nil, err
		}
		expr, err := parser.Parse(varTypeStr)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", varName, err)
		}

		meta := &fielddecoder.FieldMeta{
			VarName:                varName,
			VarNameHash:            hashid.FieldKey(varName),
			BitCount:               int(pf.BitCount),
			LowValue:               pf.LowValue,
			HighValue:              pf.HighValue,
			EncodeFlags:            uint32(pf.EncodeFlags),
			HasFieldSerializerName: pf.HasFieldSerializerName,
		}
		if pf.HasVarEncoder {
			enc, err := symbol(pf.VarEncoderSym)
			if err != nil {
				return nil, err
			}
			meta.VarEncoder = enc
		}

		fm, err := fielddecoder.Resolve(expr, meta)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", varName, err)
		}

		f := &Field{
			Name:     varName,
			NameHash: meta.VarNameHash,
			VarType:  expr,
			Decoder:  fm.Decoder,
			Special:  fm.Special,
		}
		if pf.HasFieldSerializerName {
			childName, err := symbol(pf.FieldSerializerNameSym)
			if err != nil {
				return nil, err
			}
			f.HasChildSerializer = true
			f.childSerializerHash = hashid.NetworkNameHashString(childName)
		}
		fields[i] = f
	}

	tracker := collision.NewTracker()
	reg := &Registry{byNameHash: make(map[uint64]*Serializer, len(msg.Serializers))}
	serializers := make([]*Serializer, len(msg.Serializers))
	for i, ps := range msg.Serializers {
		name, err := symbol(ps.SerializerNameSym)
		if err != nil {
			return nil, err
		}
		nameHash := hashid.NetworkNameHashString(name)
		if err := tracker.Track(nameHash, name); err != nil {
			return nil, err
		}

		sf := make([]*Field, len(ps.FieldIndices))
		for j, idx := range ps.FieldIndices {
			if idx < 0 || int(idx) >= len(fields) {
				return nil, errs.ErrUnknownSymbol
			}
			sf[j] = fields[idx]
		}
		s := &Serializer{Name: name, NameHash: nameHash, Version: ps.SerializerVersion, Fields: sf}
		serializers[i] = s
		reg.byNameHash[nameHash] = s
	}

	for _, f := range fields {
		if !f.HasChildSerializer {
			continue
		}
		child, ok := reg.byNameHash[f.childSerializerHash]
		if !ok {
			return nil, errs.ErrMissingSerializer
		}
		f.SetChild(child)
	}

	if err := detectCycles(serializers); err != nil {
		return nil, err
	}

	return reg, nil
}

// detectCycles walks the serializer-name reference graph depth-first,
// rejecting any serializer that reaches itself through nested field
// children. Spec forbids cycles in this graph outright.
func detectCycles(serializers []*Serializer) error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[*Serializer]int, len(serializers))

	var visit func(s *Serializer) error
	visit = func(s *Serializer) error {
		switch color[s] {
		case gray:
			return errs.ErrSerializerCycle
		case black:
			return nil
		}
		color[s] = gray
		for _, f := range s.Fields {
			if f.HasChildSerializer && f.child != nil {
				if err := visit(f.child); err != nil {
					return err
				}
			}
		}
		color[s] = black
		return nil
	}

	for _, s := range serializers {
		if err := visit(s); err != nil {
			return err
		}
	}
	return nil
}
