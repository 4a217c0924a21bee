package fieldpath

// op identifies one of the 40 field-path operations. Values are indices into
// opNames and opWeights and have no meaning outside this package; the wire
// code for each op is assigned by the static Huffman tree built in
// huffman.go, not by this numbering.
type op int

const (
	opPlusOne op = iota
	opPlusTwo
	opPlusThree
	opPlusFour
	opPlusN
	opPushOneLeftDeltaZeroRightZero
	opPushOneLeftDeltaZeroRightNonZero
	opPushOneLeftDeltaOneRightZero
	opPushOneLeftDeltaOneRightNonZero
	opPushOneLeftDeltaNRightZero
	opPushOneLeftDeltaNRightNonZero
	opPushOneLeftDeltaNRightNonZeroPack6Bits
	opPushOneLeftDeltaNRightNonZeroPack8Bits
	opPushTwoLeftDeltaZero
	opPushTwoPack5LeftDeltaZero
	opPushThreeLeftDeltaZero
	opPushThreePack5LeftDeltaZero
	opPushTwoLeftDeltaOne
	opPushTwoPack5LeftDeltaOne
	opPushThreeLeftDeltaOne
	opPushThreePack5LeftDeltaOne
	opPushTwoLeftDeltaN
	opPushTwoPack5LeftDeltaN
	opPushThreeLeftDeltaN
	opPushThreePack5LeftDeltaN
	opPushN
	opPushNAndNonTopological
	opPopOnePlusOne
	opPopOnePlusN
	opPopAllButOnePlusOne
	opPopAllButOnePlusN
	opPopAllButOnePlusNPack3Bits
	opPopAllButOnePlusNPack6Bits
	opPopNPlusOne
	opPopNPlusN
	opPopNAndNonTopographical
	opNonTopoComplex
	opNonTopoPenultimatePlusOne
	opNonTopoComplexPack4Bits
	opFieldPathEncodeFinish

	numOps = int(opFieldPathEncodeFinish) + 1
)

// opNames and opWeights are taken verbatim, in order, from the reference
// decoder's reverse-engineered Huffman weight table (names and weights
// recovered from disassembly of the shipped game). Reordering this table
// changes the assigned Huffman codes, so it must track the order the weights
// were recovered in, not alphabetical or any other convenience order.
var opNames = [numOps]string{
	"PlusOne",
	"PlusTwo",
	"PlusThree",
	"PlusFour",
	"PlusN",
	"PushOneLeftDeltaZeroRightZero",
	"PushOneLeftDeltaZeroRightNonZero",
	"PushOneLeftDeltaOneRightZero",
	"PushOneLeftDeltaOneRightNonZero",
	"PushOneLeftDeltaNRightZero",
	"PushOneLeftDeltaNRightNonZero",
	"PushOneLeftDeltaNRightNonZeroPack6Bits",
	"PushOneLeftDeltaNRightNonZeroPack8Bits",
	"PushTwoLeftDeltaZero",
	"PushTwoPack5LeftDeltaZero",
	"PushThreeLeftDeltaZero",
	"PushThreePack5LeftDeltaZero",
	"PushTwoLeftDeltaOne",
	"PushTwoPack5LeftDeltaOne",
	"PushThreeLeftDeltaOne",
	"PushThreePack5LeftDeltaOne",
	"PushTwoLeftDeltaN",
	"PushTwoPack5LeftDeltaN",
	"PushThreeLeftDeltaN",
	"PushThreePack5LeftDeltaN",
	"PushN",
	"PushNAndNonTopological",
	"PopOnePlusOne",
	"PopOnePlusN",
	"PopAllButOnePlusOne",
	"PopAllButOnePlusN",
	"PopAllButOnePlusNPack3Bits",
	"PopAllButOnePlusNPack6Bits",
	"PopNPlusOne",
	"PopNPlusN",
	"PopNAndNonTopographical",
	"NonTopoComplex",
	"NonTopoPenultimatePlusOne",
	"NonTopoComplexPack4Bits",
	"FieldPathEncodeFinish",
}

var opWeights = [numOps]uint32{
	36271,
	10334,
	1375,
	646,
	4128,
	35,
	3,
	521,
	2942,
	560,
	471,
	10530,
	251,
	1,
	1,
	1,
	1,
	1,
	1,
	1,
	1,
	1,
	1,
	1,
	1,
	1,
	310,
	2,
	1,
	1837,
	149,
	300,
	634,
	1,
	1,
	1,
	76,
	271,
	99,
	25474,
}
