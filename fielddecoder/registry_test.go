package fielddecoder

import (
	"testing"

	"github.com/replaycore/s2demo/vartype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *vartype.Expr {
	t.Helper()
	expr, err := vartype.NewParser().Parse(src)
	require.NoError(t, err)
	return expr
}

func TestResolve_PlainUint32(t *testing.T) {
	fm, err := Resolve(mustParse(t, "uint32"), &FieldMeta{})
	require.NoError(t, err)
	assert.Equal(t, SpecialNone, fm.Special.Kind)
	assert.IsType(t, u32Decoder{}, fm.Decoder)
}

func TestResolve_CHandleArray(t *testing.T) {
	fm, err := Resolve(mustParse(t, "CHandle<CBaseEntity>[24]"), &FieldMeta{})
	require.NoError(t, err)
	assert.Equal(t, SpecialFixedArray, fm.Special.Kind)
	assert.Equal(t, 24, fm.Special.ArrayLen)
	assert.IsType(t, u32Decoder{}, fm.Decoder)
}

func TestResolve_CharArrayIsString(t *testing.T) {
	fm, err := Resolve(mustParse(t, "char[256]"), &FieldMeta{})
	require.NoError(t, err)
	assert.Equal(t, SpecialNone, fm.Special.Kind)
	assert.IsType(t, stringDecoder{}, fm.Decoder)
}

func TestResolve_Pointer(t *testing.T) {
	fm, err := Resolve(mustParse(t, "CDOTAGameManager*"), &FieldMeta{})
	require.NoError(t, err)
	assert.Equal(t, SpecialPointer, fm.Special.Kind)
	assert.IsType(t, boolDecoder{}, fm.Decoder)
}

func TestResolve_NetworkUtlVectorBaseWithSerializer(t *testing.T) {
	fm, err := Resolve(mustParse(t, "CNetworkUtlVectorBase<CHandle<CBaseEntity>>"), &FieldMeta{HasFieldSerializerName: true})
	require.NoError(t, err)
	assert.Equal(t, SpecialDynamicSerializerVector, fm.Special.Kind)
}

func TestResolve_NetworkUtlVectorBaseWithoutSerializer(t *testing.T) {
	fm, err := Resolve(mustParse(t, "CNetworkUtlVectorBase<uint32>"), &FieldMeta{})
	require.NoError(t, err)
	assert.Equal(t, SpecialDynamicArray, fm.Special.Kind)
	assert.IsType(t, u32Decoder{}, fm.Decoder)
}

func TestResolve_ExceptionalFieldNames(t *testing.T) {
	fm, err := Resolve(mustParse(t, "uint32"), &FieldMeta{VarName: "m_SpeechBubbles"})
	require.NoError(t, err)
	assert.Equal(t, SpecialDynamicSerializerVector, fm.Special.Kind)
}

func TestResolve_Fixed64Uint64(t *testing.T) {
	fm, err := Resolve(mustParse(t, "uint64"), &FieldMeta{VarEncoder: "fixed64"})
	require.NoError(t, err)
	assert.IsType(t, u64Decoder{}, fm.Decoder)
}
