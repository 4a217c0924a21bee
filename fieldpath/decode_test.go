package fieldpath

import (
	"testing"

	"github.com/replaycore/s2demo/bitstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAll_PlusOneTwice(t *testing.T) {
	w := &bitWriterMSB{}
	writeOp(w, opPlusOne)
	writeOp(w, opPlusOne)
	writeOp(w, opFieldPathEncodeFinish)

	br := bitstream.NewReader(w.buf)
	paths := ReadAll(br)
	require.NoError(t, br.Finish())

	require.Len(t, paths, 2)
	assert.Equal(t, int32(0), paths[0].At(0))
	assert.Equal(t, int32(1), paths[1].At(0))
}

func TestReadAll_PushAndPlus(t *testing.T) {
	w := &bitWriterMSB{}
	writeOp(w, opPushOneLeftDeltaZeroRightNonZero)
	w.writeBit(1)      // UBitVarFP cascade flag -> take 2-bit payload
	w.writeBits(2, 2) // payload value 2
	writeOp(w, opPlusTwo)
	writeOp(w, opFieldPathEncodeFinish)

	br := bitstream.NewReader(w.buf)
	paths := ReadAll(br)
	require.NoError(t, br.Finish())

	require.Len(t, paths, 2)
	assert.Equal(t, 1, paths[0].Len()-1)
	assert.Equal(t, int32(2), paths[0].At(1))
	assert.Equal(t, int32(4), paths[1].At(1))
}

func TestReadAll_EmptyStreamJustFinish(t *testing.T) {
	w := &bitWriterMSB{}
	writeOp(w, opFieldPathEncodeFinish)

	br := bitstream.NewReader(w.buf)
	paths := ReadAll(br)
	require.NoError(t, br.Finish())
	assert.Empty(t, paths)
}
