package entity

import (
	"encoding/binary"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/replaycore/s2demo/bitstream"
	"github.com/replaycore/s2demo/entityclass"
	"github.com/replaycore/s2demo/errs"
	"github.com/replaycore/s2demo/fieldvalue"
	"github.com/replaycore/s2demo/internal/hashid"
	"github.com/replaycore/s2demo/protowire2"
	"github.com/replaycore/s2demo/serializer"
	"github.com/replaycore/s2demo/stringtable"
)

// encodeEnterPVS builds entity_data for one EnterPVS transition at index
// idx: a ubitvar delta selecting idx, the 2-bit EnterPVS header, a
// class-id field sized to zero bits (single-class table), a 17-bit serial,
// and a one-byte reserved varint.
func encodeEnterPVS(idx int32, serial uint32) []byte {
	w := &bitWriter{}
	encodeUBitVarDelta(w, uint32(idx))
	w.writeBits(0, 1) // bit0
	w.writeBits(1, 1) // bit1 -> EnterPVS
	w.writeBits(uint64(serial), 17)
	w.writeBits(0, 8) // reserved varint byte, value 0
	return w.buf
}

func encodeDeltaEnt(idx int32) []byte {
	w := &bitWriter{}
	encodeUBitVarDelta(w, uint32(idx))
	w.writeBits(0, 1)
	w.writeBits(0, 1) // DeltaEnt
	return w.buf
}

func encodeLeavePVSDelete(idx int32) []byte {
	w := &bitWriter{}
	encodeUBitVarDelta(w, uint32(idx))
	w.writeBits(1, 1) // bit0 -> LeavePVS
	w.writeBits(1, 1) // delete bit
	return w.buf
}

// encodeUBitVarDelta writes v through the 8-bit-continuation branch of
// UBitVar, valid for any v in [16, 4095].
func encodeUBitVarDelta(w *bitWriter, v uint32) {
	low4 := v & 0x0f
	high := v >> 4
	base6 := uint64(low4) | 0x20 // top two bits = 10 selects the 8-bit continuation
	w.writeBits(base6, 6)
	w.writeBits(uint64(high), 8)
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func withSizePrefix(msg []byte) []byte {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], uint64(len(msg)))
	return append(append([]byte{}, buf[:n]...), msg...)
}

// singleClassRegistry builds a real Registry, through serializer.Build, for
// one root serializer "CBasePlayer" with a single uint32 field m_iHealth.
// The lifecycle test never decodes that field for real (apply_fields is
// stubbed), but the registry lookup by class network-name hash must
// succeed, so a synthetic-but-real CsvcMsgFlattenedSerializer body is
// needed rather than a handwritten struct (Registry has no exported
// constructor outside Build).
func singleClassRegistry(t *testing.T) *serializer.Registry {
	t.Helper()
	// symbols: 0="m_iHealth", 1="uint32", 2="CBasePlayer"
	raw := appendBytesField(nil, 1, []byte("m_iHealth"))
	raw = appendBytesField(raw, 1, []byte("uint32"))
	raw = appendBytesField(raw, 1, []byte("CBasePlayer"))

	field := appendVarintField(nil, 1, 1)
	field = appendVarintField(field, 2, 0)
	raw = appendBytesField(raw, 3, field)

	ser := appendVarintField(nil, 1, 2)
	ser = appendVarintField(ser, 2, 1)
	ser = appendVarintField(ser, 3, 0)
	raw = appendBytesField(raw, 2, ser)

	reg, err := serializer.Build(withSizePrefix(raw))
	require.NoError(t, err)
	return reg
}

func (w *bitWriter) writeBit(b int) { w.writeBits(uint64(b), 1) }

func (w *bitWriter) writeCString(s string) {
	for i := 0; i < len(s); i++ {
		w.writeBits(uint64(s[i]), 8)
	}
	w.writeBits(0, 8)
}

// encodeVariableValueEntry writes one string-table entry row (index += 1,
// literal key, variable-size value: a 17-bit byte count followed by the raw
// bytes) in the bit layout table.update expects for a table with no flags
// and usingVarintBitcounts=false.
func encodeVariableValueEntry(key string, value []byte) []byte {
	w := &bitWriter{}
	w.writeBit(1) // index += 1
	w.writeBit(1) // has key
	w.writeBit(0) // not key-history referenced
	w.writeCString(key)
	w.writeBit(1) // has value
	w.writeBits(uint64(len(value)), 17)
	for _, b := range value {
		w.writeBits(uint64(b), 8)
	}
	return w.buf
}

// realBaseline builds an actual "instancebaseline" string table (via
// stringtable.Create, the same decode path Parser uses against the wire)
// holding a buffer for classID, and Refreshes baseline from it, mirroring
// spec §8's S6 scenario of applying a real baseline buffer to a freshly
// created entity.
func realBaseline(t *testing.T, classID int, value []byte) *entityclass.Baseline {
	t.Helper()
	tbl, err := stringtable.Create(&protowire2.CreateStringTable{
		Name:       "instancebaseline",
		NumEntries: 1,
		StringData: encodeVariableValueEntry(strconv.Itoa(classID), value),
	})
	require.NoError(t, err)

	baseline := entityclass.NewBaseline()
	require.NoError(t, baseline.Refresh(tbl))
	return baseline
}

type fakeVisitor struct {
	events []UpdateType
	last   *Entity
}

func (f *fakeVisitor) OnEntity(update UpdateType, ent *Entity) error {
	f.events = append(f.events, update)
	f.last = ent
	return nil
}

// TestHandlePacketEntities_S6Lifecycle exercises EnterPVS -> DeltaEnt ->
// LeavePVS|DELETE against a single class with a stubbed apply_fields so the
// test can inject deterministic field values without hand-encoding a real
// Huffman field-path bitstream for the delta bodies themselves. The
// baseline is a real "instancebaseline" string table built through
// stringtable.Create and entityclass.Baseline.Refresh, so EnterPVS seeds
// m_iHealth=100 from that buffer (spec §8's S6 scenario: apply_fields(entity,
// BitReader(instance_baseline.get(class_id))) before the entity's own wire
// delta) and applyFieldsFn fires once for the baseline, once for EnterPVS's
// own delta, and once for the DeltaEnt.
func TestHandlePacketEntities_S6Lifecycle(t *testing.T) {
	orig := applyFieldsFn
	defer func() { applyFieldsFn = orig }()

	healthKey := hashid.FieldKey("m_iHealth")
	callCount := 0
	applyFieldsFn = func(ent *Entity, ser *serializer.Serializer, br *bitstream.Reader) error {
		callCount++
		switch callCount {
		case 1: // baseline buffer
			ent.FieldValues[healthKey] = fieldvalue.I64(100)
		case 2: // EnterPVS's own delta
			ent.FieldValues[healthKey] = fieldvalue.I64(90)
		case 3: // DeltaEnt
			ent.FieldValues[healthKey] = fieldvalue.I64(80)
		}
		return nil
	}

	classes := entityclass.Build(&protowire2.ClassInfo{Classes: []protowire2.ClassInfoEntry{
		{ClassID: 0, NetworkName: "CBasePlayer"},
	}})
	baseline := realBaseline(t, 0, []byte{0x64, 0x00, 0x00, 0x00}) // content unused, stub ignores br
	reg := singleClassRegistry(t)

	entities := NewEntities()
	visitor := &fakeVisitor{}

	require.NoError(t, HandlePacketEntities(entities, classes, baseline, reg, &protowire2.PacketEntities{
		UpdatedEntries: 1,
		EntityData:     encodeEnterPVS(42, 5),
	}, visitor))

	ent, ok := entities.Get(42)
	require.True(t, ok)
	v, _ := ent.FieldValues[healthKey].AsI64()
	assert.EqualValues(t, 90, v)
	assert.Equal(t, 2, callCount)
	assert.Equal(t, []UpdateType{UpdateEnterPVS}, visitor.events)

	require.NoError(t, HandlePacketEntities(entities, classes, baseline, reg, &protowire2.PacketEntities{
		UpdatedEntries: 1,
		EntityData:     encodeDeltaEnt(42),
	}, visitor))
	ent, ok = entities.Get(42)
	require.True(t, ok)
	v, _ = ent.FieldValues[healthKey].AsI64()
	assert.EqualValues(t, 80, v)

	require.NoError(t, HandlePacketEntities(entities, classes, baseline, reg, &protowire2.PacketEntities{
		UpdatedEntries: 1,
		EntityData:     encodeLeavePVSDelete(42),
	}, visitor))
	_, ok = entities.Get(42)
	assert.False(t, ok)
	assert.Equal(t, []UpdateType{UpdateEnterPVS, UpdateDeltaEnt, UpdateLeavePVS}, visitor.events)
}

// TestHandlePacketEntities_EnterPVSMissingBaselineIsFatal exercises spec
// §7's Baseline error category: EnterPVS for a known class id with no
// instancebaseline entry must fail the parse rather than silently creating
// the entity with only its own wire delta applied.
func TestHandlePacketEntities_EnterPVSMissingBaselineIsFatal(t *testing.T) {
	orig := applyFieldsFn
	defer func() { applyFieldsFn = orig }()
	applyFieldsFn = func(ent *Entity, ser *serializer.Serializer, br *bitstream.Reader) error { return nil }

	classes := entityclass.Build(&protowire2.ClassInfo{Classes: []protowire2.ClassInfoEntry{
		{ClassID: 0, NetworkName: "CBasePlayer"},
	}})
	baseline := entityclass.NewBaseline() // never Refresh'd: no class has a baseline
	reg := singleClassRegistry(t)

	entities := NewEntities()
	err := HandlePacketEntities(entities, classes, baseline, reg, &protowire2.PacketEntities{
		UpdatedEntries: 1,
		EntityData:     encodeEnterPVS(42, 5),
	}, nil)

	require.ErrorIs(t, err, errs.ErrMissingBaseline)
	_, ok := entities.Get(42)
	assert.False(t, ok)
}
