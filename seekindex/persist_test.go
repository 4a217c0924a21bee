package seekindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replaycore/s2demo/errs"
)

func buildTestIndex() *Index {
	idx := New()
	idx.Add(Entry{Tick: 0, Offset: 128, Kind: 7})
	idx.Add(Entry{Tick: 64, Offset: 4096, Kind: 7})
	idx.Add(Entry{Tick: 128, Offset: 8192, Kind: 7})
	return idx
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, id := range []CodecID{CodecNone, CodecLZ4, CodecS2, CodecZstd} {
		path := filepath.Join(t.TempDir(), "demo.s2idx")
		idx := buildTestIndex()

		require.NoError(t, Save(path, idx, id))

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, idx.Entries(), loaded.Entries())
	}
}

func TestSaveLoad_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.s2idx")
	idx := New()

	require.NoError(t, Save(path, idx, CodecLZ4))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestLoad_BadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.s2idx")
	require.NoError(t, os.WriteFile(path, []byte("not an index at all"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, errs.ErrBadIndexMagic)
}

func TestLoad_TruncatedHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.s2idx")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, errs.ErrBadIndexMagic)
}

func TestSave_UnknownCodec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.s2idx")
	err := Save(path, buildTestIndex(), CodecID(99))
	assert.Error(t, err)
}
