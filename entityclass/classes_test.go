package entityclass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replaycore/s2demo/internal/hashid"
	"github.com/replaycore/s2demo/protowire2"
)

func TestBuild_NetworkNameHashAndBits(t *testing.T) {
	info := &protowire2.ClassInfo{Classes: []protowire2.ClassInfoEntry{
		{ClassID: 0, NetworkName: "CBaseEntity"},
		{ClassID: 1, NetworkName: "CBasePlayer"},
		{ClassID: 2, NetworkName: "CDOTAPlayer"},
	}}
	table := Build(info)
	assert.Equal(t, 3, table.Count())

	hash, ok := table.NetworkNameHash(1)
	require.True(t, ok)
	assert.Equal(t, hashid.NetworkNameHashString("CBasePlayer"), hash)

	// ceil(log2(3)) == 2
	assert.Equal(t, 2, table.ClassIDBits())
}

func TestClassIDBits_SingleClass(t *testing.T) {
	assert.Equal(t, 0, classIDBits(1))
}

func TestClassIDBits_PowerOfTwo(t *testing.T) {
	assert.Equal(t, 2, classIDBits(4))
	assert.Equal(t, 3, classIDBits(5))
}

func TestNetworkNameHash_OutOfRange(t *testing.T) {
	table := Build(&protowire2.ClassInfo{})
	_, ok := table.NetworkNameHash(5)
	assert.False(t, ok)
}
