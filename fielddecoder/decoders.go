package fielddecoder

import (
	"github.com/replaycore/s2demo/bitstream"
	"github.com/replaycore/s2demo/errs"
	"github.com/replaycore/s2demo/fieldvalue"
)

// Decoder reads one field value from a bit stream. Implementations never
// retain br past the call; scratch byte buffers (string decoding) are
// caller-owned.
type Decoder interface {
	Decode(br *bitstream.Reader, meta *FieldMeta) (fieldvalue.Value, error)
}

type i32Decoder struct{}

func (i32Decoder) Decode(br *bitstream.Reader, _ *FieldMeta) (fieldvalue.Value, error) {
	return fieldvalue.I64(int64(br.Varint32())), nil
}

type i64Decoder struct{}

func (i64Decoder) Decode(br *bitstream.Reader, _ *FieldMeta) (fieldvalue.Value, error) {
	return fieldvalue.I64(br.Varint64()), nil
}

type u32Decoder struct{}

func (u32Decoder) Decode(br *bitstream.Reader, _ *FieldMeta) (fieldvalue.Value, error) {
	return fieldvalue.U64(uint64(br.UVarint32())), nil
}

// u64Decoder reads a varint, unless the field's var_encoder is "fixed64", in
// which case it reads 8 little-endian bytes directly.
type u64Decoder struct{}

func (u64Decoder) Decode(br *bitstream.Reader, meta *FieldMeta) (fieldvalue.Value, error) {
	if meta != nil && meta.VarEncoder == "fixed64" {
		var buf [8]byte
		br.ReadBytes(buf[:])
		v := uint64(buf[0]) | uint64(buf[1])<<8 | uint64(buf[2])<<16 | uint64(buf[3])<<24 |
			uint64(buf[4])<<32 | uint64(buf[5])<<40 | uint64(buf[6])<<48 | uint64(buf[7])<<56
		return fieldvalue.U64(v), nil
	}
	return fieldvalue.U64(br.UVarint64()), nil
}

type boolDecoder struct{}

func (boolDecoder) Decode(br *bitstream.Reader, _ *FieldMeta) (fieldvalue.Value, error) {
	return fieldvalue.Bool(br.ReadBool()), nil
}

// f32Decoder implements the cascade spec names for float32/GameTime_t:
// simulation-time fields use a scaled varint, "coord"-encoded fields use
// bitcoord, wide/absent bit_count falls back to a raw float, and everything
// else goes through QuantizedFloat.
type f32Decoder struct{}

func decodeF32(br *bitstream.Reader, meta *FieldMeta) (float32, error) {
	if meta.VarName == "m_flSimulationTime" || meta.VarName == "m_flAnimTime" {
		return float32(br.UVarint32()) * tickInterval, nil
	}
	if meta.VarEncoder == "coord" {
		return br.BitCoord(), nil
	}
	if meta.BitCount == 0 || meta.BitCount >= 32 {
		return br.BitFloat(), nil
	}
	return decodeQuantizedFloat(br, meta)
}

func (f32Decoder) Decode(br *bitstream.Reader, meta *FieldMeta) (fieldvalue.Value, error) {
	v, err := decodeF32(br, meta)
	if err != nil {
		return fieldvalue.Value{}, err
	}
	return fieldvalue.F32(v), nil
}

type quantizedFloatDecoder struct{}

func (quantizedFloatDecoder) Decode(br *bitstream.Reader, meta *FieldMeta) (fieldvalue.Value, error) {
	v, err := decodeQuantizedFloat(br, meta)
	if err != nil {
		return fieldvalue.Value{}, err
	}
	return fieldvalue.F32(v), nil
}

func decodeQuantizedFloat(br *bitstream.Reader, meta *FieldMeta) (float32, error) {
	qf, err := newQuantizedFloat(meta.BitCount, meta.LowValue, meta.HighValue, meta.EncodeFlags)
	if err != nil {
		return 0, err
	}
	return qf.Decode(br), nil
}

type qangleDecoder struct{}

func (qangleDecoder) Decode(br *bitstream.Reader, meta *FieldMeta) (fieldvalue.Value, error) {
	if meta.VarEncoder == "qangle_pitch_yaw" {
		var v [3]float32
		v[0] = br.BitAngle(meta.BitCount)
		v[1] = br.BitAngle(meta.BitCount)
		return fieldvalue.QAngle(v), nil
	}
	if meta.BitCount == 0 {
		var v [3]float32
		hasX := br.ReadBool()
		hasY := br.ReadBool()
		hasZ := br.ReadBool()
		if hasX {
			v[0] = br.BitCoord()
		}
		if hasY {
			v[1] = br.BitCoord()
		}
		if hasZ {
			v[2] = br.BitCoord()
		}
		return fieldvalue.QAngle(v), nil
	}
	return fieldvalue.Value{}, errs.ErrUnimplementedDecoder
}

type vec3Decoder struct{}

func (vec3Decoder) Decode(br *bitstream.Reader, meta *FieldMeta) (fieldvalue.Value, error) {
	var v [3]float32
	for i := range v {
		f, err := decodeF32(br, meta)
		if err != nil {
			return fieldvalue.Value{}, err
		}
		v[i] = f
	}
	return fieldvalue.Vector3(v), nil
}

type vec2Decoder struct{}

func (vec2Decoder) Decode(br *bitstream.Reader, meta *FieldMeta) (fieldvalue.Value, error) {
	var v [2]float32
	for i := range v {
		f, err := decodeF32(br, meta)
		if err != nil {
			return fieldvalue.Value{}, err
		}
		v[i] = f
	}
	return fieldvalue.Vector2(v), nil
}

type vec4Decoder struct{}

func (vec4Decoder) Decode(br *bitstream.Reader, meta *FieldMeta) (fieldvalue.Value, error) {
	var v [4]float32
	for i := range v {
		f, err := decodeF32(br, meta)
		if err != nil {
			return fieldvalue.Value{}, err
		}
		v[i] = f
	}
	return fieldvalue.Vector4(v), nil
}

// stringDecoder reads a 9-bit length prefix followed by that many bytes.
// Contents are not guaranteed UTF-8; some fields carry opaque serialized
// binary under a string-shaped wire type.
type stringDecoder struct{}

func (stringDecoder) Decode(br *bitstream.Reader, _ *FieldMeta) (fieldvalue.Value, error) {
	length := int(br.ReadBits(9))
	out := make([]byte, length)
	br.ReadBitsInto(out, length*8)
	return fieldvalue.String(out), nil
}
