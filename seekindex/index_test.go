package seekindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex_AddAndLen(t *testing.T) {
	idx := New()
	assert.Equal(t, 0, idx.Len())

	idx.Add(Entry{Tick: 10, Offset: 100, Kind: 1})
	idx.Add(Entry{Tick: 20, Offset: 200, Kind: 1})
	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, []Entry{{Tick: 10, Offset: 100, Kind: 1}, {Tick: 20, Offset: 200, Kind: 1}}, idx.Entries())
}

func TestIndex_Reset(t *testing.T) {
	idx := New()
	idx.Add(Entry{Tick: 10, Offset: 100, Kind: 1})
	idx.Reset()
	assert.Equal(t, 0, idx.Len())
}

func TestIndex_Nearest(t *testing.T) {
	idx := New()
	idx.Add(Entry{Tick: 0, Offset: 0, Kind: 1})
	idx.Add(Entry{Tick: 100, Offset: 1000, Kind: 1})
	idx.Add(Entry{Tick: 200, Offset: 2000, Kind: 1})

	e, ok := idx.Nearest(150)
	assert.True(t, ok)
	assert.Equal(t, int32(100), e.Tick)

	e, ok = idx.Nearest(200)
	assert.True(t, ok)
	assert.Equal(t, int32(200), e.Tick)

	e, ok = idx.Nearest(500)
	assert.True(t, ok)
	assert.Equal(t, int32(200), e.Tick)

	_, ok = idx.Nearest(-1)
	assert.False(t, ok)
}

func TestIndex_Nearest_Empty(t *testing.T) {
	idx := New()
	_, ok := idx.Nearest(10)
	assert.False(t, ok)
}
