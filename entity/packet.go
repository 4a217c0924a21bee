package entity

import (
	"github.com/replaycore/s2demo/bitstream"
	"github.com/replaycore/s2demo/entityclass"
	"github.com/replaycore/s2demo/errs"
	"github.com/replaycore/s2demo/fieldvalue"
	"github.com/replaycore/s2demo/protowire2"
	"github.com/replaycore/s2demo/serializer"
)

// Visitor receives one callback per entity lifecycle transition while a
// packet-entities message is applied. Returning an error aborts the parse.
type Visitor interface {
	OnEntity(update UpdateType, ent *Entity) error
}

// HandlePacketEntities implements spec C12's per-tick protocol: walk
// updated_entries delta-encoded entity indices, dispatching each to
// EnterPVS/DeltaEnt/LeavePVS handling against the live Entities table.
func HandlePacketEntities(
	entities *Entities,
	classes *entityclass.Table,
	baseline *entityclass.Baseline,
	serializers *serializer.Registry,
	msg *protowire2.PacketEntities,
	visitor Visitor,
) error {
	br := bitstream.NewReader(msg.EntityData)
	entIdx := int32(-1)

	for i := int32(0); i < msg.UpdatedEntries; i++ {
		entIdx += int32(br.UBitVar()) + 1
		hdr := ParseDeltaHeader(br)

		switch hdr.Type {
		case UpdateEnterPVS:
			if err := handleEnterPVS(entities, classes, baseline, serializers, entIdx, br, visitor); err != nil {
				return err
			}
		case UpdateLeavePVS:
			if hdr.Delete {
				ent, ok := entities.byIndex[entIdx]
				delete(entities.byIndex, entIdx)
				if ok && visitor != nil {
					if err := visitor.OnEntity(UpdateLeavePVS, ent); err != nil {
						return err
					}
				}
			}
		case UpdateDeltaEnt:
			ent, ok := entities.byIndex[entIdx]
			if !ok {
				return errs.ErrEntityNotFound
			}
			if err := applyFieldsFn(ent, ent.Serializer, br); err != nil {
				return err
			}
			if visitor != nil {
				if err := visitor.OnEntity(UpdateDeltaEnt, ent); err != nil {
					return err
				}
			}
		}
	}

	return br.Finish()
}

func handleEnterPVS(
	entities *Entities,
	classes *entityclass.Table,
	baseline *entityclass.Baseline,
	serializers *serializer.Registry,
	entIdx int32,
	br *bitstream.Reader,
	visitor Visitor,
) error {
	classID := int32(br.ReadBits(classes.ClassIDBits()))
	serial := uint32(br.ReadBits(17))
	br.UVarint32() // unknown field, semantics undocumented; read and discard per spec

	nameHash, ok := classes.NetworkNameHash(classID)
	if !ok {
		return errs.ErrEntityNotFound
	}
	ser, ok := serializers.GetByName(nameHash)
	if !ok {
		return errs.ErrMissingSerializer
	}

	ent := &Entity{
		Index:       entIdx,
		ClassID:     classID,
		Serial:      serial,
		Serializer:  ser,
		FieldValues: make(map[uint64]fieldvalue.Value),
	}

	base, ok := baseline.Get(int(classID))
	if !ok {
		return errs.ErrMissingBaseline
	}
	baseReader := bitstream.NewReader(base)
	if err := applyFieldsFn(ent, ser, baseReader); err != nil {
		return err
	}
	if err := applyFieldsFn(ent, ser, br); err != nil {
		return err
	}

	entities.byIndex[entIdx] = ent
	if visitor != nil {
		return visitor.OnEntity(UpdateEnterPVS, ent)
	}
	return nil
}
