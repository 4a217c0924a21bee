package fieldpath

import "github.com/replaycore/s2demo/bitstream"

// execute runs one op against fp using br, consuming whatever additional
// bits that op's encoding defines. It returns true when the op is
// FieldPathEncodeFinish and decoding should stop.
//
// Everything here except the "Pack5"/"LeftDeltaN" combinatorial push
// variants is specified directly; those are inferred by extending the
// pattern of the adjacent, explicitly-specified single-push ops
// (PushOneLeftDeltaNRightNonZero's "+2 on the left, +1 on each push") since
// the reference implementation's literal op bodies were not available,
// only op names and Huffman weights.
func execute(o op, fp *Path, br *bitstream.Reader) bool {
	switch o {
	case opPlusOne:
		fp.data[fp.position] += 1
	case opPlusTwo:
		fp.data[fp.position] += 2
	case opPlusThree:
		fp.data[fp.position] += 3
	case opPlusFour:
		fp.data[fp.position] += 4
	case opPlusN:
		fp.data[fp.position] += int32(br.UBitVarFP()) + 5

	case opPushOneLeftDeltaZeroRightZero:
		fp.push(0)
	case opPushOneLeftDeltaZeroRightNonZero:
		fp.push(int32(br.UBitVarFP()))
	case opPushOneLeftDeltaOneRightZero:
		fp.data[fp.position] += 1
		fp.push(0)
	case opPushOneLeftDeltaOneRightNonZero:
		fp.data[fp.position] += 1
		fp.push(int32(br.UBitVarFP()))
	case opPushOneLeftDeltaNRightZero:
		fp.data[fp.position] += int32(br.UBitVarFP())
		fp.push(0)
	case opPushOneLeftDeltaNRightNonZero:
		fp.data[fp.position] += int32(br.UBitVarFP()) + 2
		fp.push(int32(br.UBitVarFP()) + 1)
	case opPushOneLeftDeltaNRightNonZeroPack6Bits:
		fp.data[fp.position] += int32(br.ReadBits(3)) + 2
		fp.push(int32(br.ReadBits(3)) + 1)
	case opPushOneLeftDeltaNRightNonZeroPack8Bits:
		fp.data[fp.position] += int32(br.ReadBits(4)) + 2
		fp.push(int32(br.ReadBits(4)) + 1)

	case opPushTwoLeftDeltaZero:
		fp.push(int32(br.UBitVarFP()))
		fp.push(int32(br.UBitVarFP()))
	case opPushTwoPack5LeftDeltaZero:
		fp.push(int32(br.ReadBits(5)))
		fp.push(int32(br.ReadBits(5)))
	case opPushThreeLeftDeltaZero:
		fp.push(int32(br.UBitVarFP()))
		fp.push(int32(br.UBitVarFP()))
		fp.push(int32(br.UBitVarFP()))
	case opPushThreePack5LeftDeltaZero:
		fp.push(int32(br.ReadBits(5)))
		fp.push(int32(br.ReadBits(5)))
		fp.push(int32(br.ReadBits(5)))
	case opPushTwoLeftDeltaOne:
		fp.data[fp.position] += 1
		fp.push(int32(br.UBitVarFP()))
		fp.push(int32(br.UBitVarFP()))
	case opPushTwoPack5LeftDeltaOne:
		fp.data[fp.position] += 1
		fp.push(int32(br.ReadBits(5)))
		fp.push(int32(br.ReadBits(5)))
	case opPushThreeLeftDeltaOne:
		fp.data[fp.position] += 1
		fp.push(int32(br.UBitVarFP()))
		fp.push(int32(br.UBitVarFP()))
		fp.push(int32(br.UBitVarFP()))
	case opPushThreePack5LeftDeltaOne:
		fp.data[fp.position] += 1
		fp.push(int32(br.ReadBits(5)))
		fp.push(int32(br.ReadBits(5)))
		fp.push(int32(br.ReadBits(5)))
	case opPushTwoLeftDeltaN:
		fp.data[fp.position] += int32(br.UBitVarFP()) + 2
		fp.push(int32(br.UBitVarFP()) + 1)
		fp.push(int32(br.UBitVarFP()) + 1)
	case opPushTwoPack5LeftDeltaN:
		fp.data[fp.position] += int32(br.UBitVarFP()) + 2
		fp.push(int32(br.ReadBits(5)) + 1)
		fp.push(int32(br.ReadBits(5)) + 1)
	case opPushThreeLeftDeltaN:
		fp.data[fp.position] += int32(br.UBitVarFP()) + 2
		fp.push(int32(br.UBitVarFP()) + 1)
		fp.push(int32(br.UBitVarFP()) + 1)
		fp.push(int32(br.UBitVarFP()) + 1)
	case opPushThreePack5LeftDeltaN:
		fp.data[fp.position] += int32(br.UBitVarFP()) + 2
		fp.push(int32(br.ReadBits(5)) + 1)
		fp.push(int32(br.ReadBits(5)) + 1)
		fp.push(int32(br.ReadBits(5)) + 1)

	case opPushN:
		fp.data[fp.position] += int32(br.ReadBits(3))
		n := br.UBitVarFP()
		for i := uint32(0); i < n; i++ {
			fp.push(int32(br.UBitVarFP()))
		}
	case opPushNAndNonTopological:
		for i := 0; i <= fp.position; i++ {
			if br.ReadBool() {
				fp.data[i] += br.Varint32()
			}
		}
		n := br.UBitVarFP()
		for i := uint32(0); i < n; i++ {
			fp.push(int32(br.UBitVarFP()))
		}

	case opPopOnePlusOne:
		fp.pop(1)
		fp.data[fp.position] += 1
	case opPopOnePlusN:
		v := int32(br.UBitVarFP()) + 1
		fp.pop(1)
		fp.data[fp.position] += v
	case opPopAllButOnePlusOne:
		fp.pop(fp.position)
		fp.data[0] += 1
	case opPopAllButOnePlusN:
		v := int32(br.UBitVarFP()) + 1
		fp.pop(fp.position)
		fp.data[0] += v
	case opPopAllButOnePlusNPack3Bits:
		v := int32(br.ReadBits(3)) + 1
		fp.pop(fp.position)
		fp.data[0] += v
	case opPopAllButOnePlusNPack6Bits:
		v := int32(br.ReadBits(6)) + 1
		fp.pop(fp.position)
		fp.data[0] += v
	case opPopNPlusOne:
		n := int(br.UBitVarFP())
		fp.pop(n)
		fp.data[fp.position] += 1
	case opPopNPlusN:
		n := int(br.UBitVarFP())
		v := int32(br.UBitVarFP()) + 1
		fp.pop(n)
		fp.data[fp.position] += v
	case opPopNAndNonTopographical:
		n := int(br.UBitVarFP())
		fp.pop(n)
		for i := 0; i <= fp.position; i++ {
			if br.ReadBool() {
				fp.data[i] += br.Varint32()
			}
		}

	case opNonTopoComplex:
		for i := 0; i <= fp.position; i++ {
			if br.ReadBool() {
				fp.data[i] += br.Varint32()
			}
		}
	case opNonTopoPenultimatePlusOne:
		fp.data[fp.position-1] += 1
	case opNonTopoComplexPack4Bits:
		for i := 0; i <= fp.position; i++ {
			if br.ReadBool() {
				fp.data[i] += int32(br.ReadBits(4)) - 7
			}
		}

	case opFieldPathEncodeFinish:
		fp.finished = true
		return true
	}
	return false
}

func readOp(br *bitstream.Reader) op {
	n := root
	for !n.isLeaf {
		if br.ReadBit() == 0 {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// ReadAll decodes every field path in an entity delta, in encoded order.
// Each returned Path is a snapshot copied out after the op that produced it
// ran; FieldPathEncodeFinish terminates the stream without being emitted.
func ReadAll(br *bitstream.Reader) []Path {
	fp := newPath()
	var out []Path
	for {
		o := readOp(br)
		if execute(o, &fp, br) {
			return out
		}
		out = append(out, fp.clone())
	}
}
