package protowire2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendFixed32Field(b []byte, num protowire.Number, v uint32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, v)
}

func TestSendTables_Decode(t *testing.T) {
	raw := appendBytesField(nil, 1, []byte("schema-bytes"))
	var m SendTables
	require.NoError(t, m.Decode(raw))
	assert.Equal(t, []byte("schema-bytes"), m.Data)
}

func TestClassInfo_Decode(t *testing.T) {
	entry := appendVarintField(nil, 1, 42)
	entry = appendBytesField(entry, 2, []byte("CDOTA_PlayerResource"))
	raw := appendBytesField(nil, 1, entry)

	var m ClassInfo
	require.NoError(t, m.Decode(raw))
	require.Len(t, m.Classes, 1)
	assert.EqualValues(t, 42, m.Classes[0].ClassID)
	assert.Equal(t, "CDOTA_PlayerResource", m.Classes[0].NetworkName)
}

func TestFlattenedSerializer_Decode(t *testing.T) {
	raw := appendBytesField(nil, 1, []byte("m_iHealth"))
	raw = appendBytesField(raw, 1, []byte("int32"))

	field := appendVarintField(nil, 1, 1) // var_type_sym -> "int32"
	field = appendVarintField(field, 2, 0) // var_name_sym -> "m_iHealth"
	raw = appendBytesField(raw, 3, field)

	ser := appendVarintField(nil, 1, 0)
	ser = appendVarintField(ser, 3, 0)
	raw = appendBytesField(raw, 2, ser)

	var m CsvcMsgFlattenedSerializer
	require.NoError(t, m.Decode(raw))
	require.Len(t, m.Symbols, 2)
	require.Len(t, m.Fields, 1)
	require.Len(t, m.Serializers, 1)
	assert.EqualValues(t, 1, m.Fields[0].VarTypeSym)
	assert.EqualValues(t, 0, m.Fields[0].VarNameSym)
	assert.Equal(t, []int32{0}, m.Serializers[0].FieldIndices)
}

func TestFlattenedSerializerField_LowHighValue(t *testing.T) {
	field := appendFixed32Field(nil, 4, 0)
	field = appendFixed32Field(field, 5, 0x40800000) // 4.0
	raw := appendBytesField(nil, 3, field)

	var m CsvcMsgFlattenedSerializer
	require.NoError(t, m.Decode(raw))
	require.Len(t, m.Fields, 1)
	assert.Equal(t, float32(0), m.Fields[0].LowValue)
	assert.Equal(t, float32(4), m.Fields[0].HighValue)
}

func TestCreateStringTable_Decode(t *testing.T) {
	raw := appendBytesField(nil, 1, []byte("instancebaseline"))
	raw = appendVarintField(raw, 2, 256)
	raw = appendVarintField(raw, 3, 10)
	raw = appendBytesField(raw, 8, []byte{0x01, 0x02, 0x03})

	var m CreateStringTable
	require.NoError(t, m.Decode(raw))
	assert.Equal(t, "instancebaseline", m.Name)
	assert.EqualValues(t, 256, m.MaxEntries)
	assert.EqualValues(t, 10, m.NumEntries)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, m.StringData)
}

func TestPacketEntities_Decode(t *testing.T) {
	raw := appendVarintField(nil, 1, 4096)
	raw = appendVarintField(raw, 3, 1)
	raw = appendBytesField(raw, 7, []byte{0xAA, 0xBB})

	var m PacketEntities
	require.NoError(t, m.Decode(raw))
	assert.EqualValues(t, 4096, m.MaxEntries)
	assert.True(t, m.IsDelta)
	assert.Equal(t, []byte{0xAA, 0xBB}, m.EntityData)
}

func TestPacket_Decode_Field3(t *testing.T) {
	raw := appendBytesField(nil, 3, []byte{0x01, 0x02})
	var m Packet
	require.NoError(t, m.Decode(raw))
	assert.Equal(t, []byte{0x01, 0x02}, m.Data)
}

func TestNetTick_Decode(t *testing.T) {
	raw := appendVarintField(nil, 1, 12345)
	var m NetTick
	require.NoError(t, m.Decode(raw))
	assert.EqualValues(t, 12345, m.Tick)
}

func TestWalk_UnknownFieldSkipped(t *testing.T) {
	raw := appendVarintField(nil, 99, 7)
	raw = appendVarintField(raw, 1, 12345)
	var m NetTick
	require.NoError(t, m.Decode(raw))
	assert.EqualValues(t, 12345, m.Tick)
}
