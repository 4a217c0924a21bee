package fielddecoder

import (
	"math"

	"github.com/replaycore/s2demo/bitstream"
)

// Encode flag bits for QuantizedFloat, as networked in FlattenedSerializerField.encode_flags.
const (
	flagRoundDown          uint32 = 1
	flagRoundUp            uint32 = 2
	flagEncodeZeroExactly  uint32 = 4
	flagEncodeIntsExactly  uint32 = 8
)

// quantizedFloat is a range-mapped fixed-point float decoder: a bit_count-
// wide unsigned integer linearly mapped onto [low, high], with edge cases
// (exactly low/high/zero) optionally shortcut to a single flag bit so those
// common values round-trip exactly despite the quantization.
type quantizedFloat struct {
	bitCount    int
	low, high   float32
	flags       uint32
	multiplier  float32
	highLowMult float32
}

var highLowMultCandidates = [...]float64{0.9999, 0.99, 0.9, 0.8, 0.7}

// assignRangeMultiplier mirrors AssignRangeMultiplier in public/dt_send.cpp:
// the encoder's base multiplier is high_value/range, squeezed down by the
// candidate list when float precision would otherwise let high_low_mult*range
// overshoot high_value and push the quantized integer out of bit_count's range.
func assignRangeMultiplier(bitCount int, rangeVal float64) float64 {
	var highValue float64
	if bitCount == 32 {
		highValue = float64(uint32(0xFFFFFFFE))
	} else {
		highValue = float64((uint64(1) << uint(bitCount)) - 1)
	}

	highLowMult := highValue / rangeVal
	if math.Abs(rangeVal) <= 0.001 {
		highLowMult = highValue
	}

	if highLowMult*rangeVal > highValue {
		for _, m := range highLowMultCandidates {
			highLowMult = (highValue / rangeVal) * m
			if highLowMult*rangeVal <= highValue {
				break
			}
		}
	}
	return highLowMult
}

func newQuantizedFloat(bitCount int, low, high float32, flags uint32) (*quantizedFloat, error) {
	if bitCount <= 0 || bitCount > 32 {
		bitCount = 32
	}

	// 1. clear ENCODE_ZERO_EXACTLY if a zero edge already carries its own
	// rounding flag (low==0 with ROUNDDOWN, or high==0 with ROUNDUP), which
	// already pins that edge.
	if (low == 0 && flags&flagRoundDown != 0) || (high == 0 && flags&flagRoundUp != 0) {
		flags &^= flagEncodeZeroExactly
	}

	// 2. ENCODE_ZERO_EXACTLY on a range with a zero edge is folded into that
	// edge's rounding flag: ROUNDDOWN when low==0, ROUNDUP when high==0.
	if low == 0 && flags&flagEncodeZeroExactly != 0 {
		flags |= flagRoundDown
		flags &^= flagEncodeZeroExactly
	}
	if high == 0 && flags&flagEncodeZeroExactly != 0 {
		flags |= flagRoundUp
		flags &^= flagEncodeZeroExactly
	}

	// 3. ENCODE_ZERO_EXACTLY only makes sense if the range straddles zero.
	if !(low < 0 && high > 0) {
		flags &^= flagEncodeZeroExactly
	}

	// 4. ENCODE_INTEGERS_EXACTLY overrides the other flags and widens
	// bit_count until the quantized range can exactly represent every
	// integer in [low, high].
	if flags&flagEncodeIntsExactly != 0 {
		flags &^= flagRoundDown | flagRoundUp | flagEncodeZeroExactly
		trueRange := math.Abs(float64(high) - float64(low))
		if trueRange < 1 {
			trueRange = 1
		}
		neededBits := int(math.Ceil(math.Log2(trueRange))) + 1
		for bitCount < neededBits {
			bitCount++
		}
	}

	quanta := uint64(1) << uint(bitCount)

	if flags&flagRoundDown != 0 {
		offset := (high - low) / float32(quanta)
		high -= offset
	}
	if flags&flagRoundUp != 0 {
		offset := (high - low) / float32(quanta)
		low += offset
	}

	multiplier := float32(1.0 / float64(quanta-1))
	highLowMult := assignRangeMultiplier(bitCount, float64(high)-float64(low))

	qf := &quantizedFloat{
		bitCount:    bitCount,
		low:         low,
		high:        high,
		flags:       flags,
		multiplier:  multiplier,
		highLowMult: float32(highLowMult),
	}

	// 7. drop any flag whose edge doesn't round-trip exactly through the
	// chosen multiplier, so the decode fast paths stay honest.
	if flags&flagRoundDown != 0 && !qf.roundTrips(qf.low) {
		qf.flags &^= flagRoundDown
	}
	if flags&flagRoundUp != 0 && !qf.roundTrips(qf.high) {
		qf.flags &^= flagRoundUp
	}
	if flags&flagEncodeZeroExactly != 0 && !qf.roundTrips(0) {
		qf.flags &^= flagEncodeZeroExactly
	}

	return qf, nil
}

// roundTrips mirrors the reference encoder's quantize(): it maps v through
// the candidate-selected highLowMult (not the raw (quanta-1) range
// multiplier) to find the bit pattern the encoder would have chosen, then
// decodes that pattern back the same way Decode does.
func (qf *quantizedFloat) roundTrips(v float32) bool {
	i := int64((v - qf.low) * qf.highLowMult)
	got := qf.low + (qf.high-qf.low)*float32(i)*qf.multiplier
	return got == v
}

// Decode reads one quantized float: a fast-path presence bit for each
// surviving edge flag, otherwise bit_count raw bits linearly mapped onto
// [low, high].
func (qf *quantizedFloat) Decode(br *bitstream.Reader) float32 {
	if qf.flags&flagRoundDown != 0 {
		if br.ReadBool() {
			return qf.low
		}
	}
	if qf.flags&flagRoundUp != 0 {
		if br.ReadBool() {
			return qf.high
		}
	}
	if qf.flags&flagEncodeZeroExactly != 0 {
		if br.ReadBool() {
			return 0
		}
	}

	u := br.ReadBits(qf.bitCount)
	return qf.low + (qf.high-qf.low)*float32(u)*qf.multiplier
}
