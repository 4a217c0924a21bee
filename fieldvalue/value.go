// Package fieldvalue holds the decoded runtime representation of a
// networked entity field: a small closed set of kinds, collapsed from the
// wider set of wire integer widths (int8/16/32/64 all become I64; the
// unsigned family all become U64) since narrower storage buys nothing once
// the value is off the wire.
package fieldvalue

// Kind discriminates which field of Value is populated.
type Kind int

const (
	KindI64 Kind = iota
	KindU64
	KindF32
	KindBool
	KindVector3
	KindVector2
	KindVector4
	KindQAngle
	KindString
)

// Value is a decoded field value. Only the member matching Kind is valid;
// callers switch on Kind or use the As* accessors.
//
// Strings are not guaranteed to be valid UTF-8: some fields (e.g. Deadlock's
// CCitadelPlayerPawn.m_sHeroBuildSerialized) carry opaque serialized bytes
// in a CUtlString field. Callers that need text should decode lossily.
type Value struct {
	Kind Kind

	i64  int64
	u64  uint64
	f32  float32
	b    bool
	vec3 [3]float32
	vec2 [2]float32
	vec4 [4]float32
	str  []byte
}

func I64(v int64) Value    { return Value{Kind: KindI64, i64: v} }
func U64(v uint64) Value   { return Value{Kind: KindU64, u64: v} }
func F32(v float32) Value  { return Value{Kind: KindF32, f32: v} }
func Bool(v bool) Value    { return Value{Kind: KindBool, b: v} }
func Vector3(v [3]float32) Value { return Value{Kind: KindVector3, vec3: v} }
func Vector2(v [2]float32) Value { return Value{Kind: KindVector2, vec2: v} }
func Vector4(v [4]float32) Value { return Value{Kind: KindVector4, vec4: v} }
func QAngle(v [3]float32) Value  { return Value{Kind: KindQAngle, vec3: v} }
func String(v []byte) Value { return Value{Kind: KindString, str: v} }

func (v Value) AsI64() (int64, bool)       { return v.i64, v.Kind == KindI64 }
func (v Value) AsU64() (uint64, bool)      { return v.u64, v.Kind == KindU64 }
func (v Value) AsF32() (float32, bool)     { return v.f32, v.Kind == KindF32 }
func (v Value) AsBool() (bool, bool)       { return v.b, v.Kind == KindBool }
func (v Value) AsVector2() ([2]float32, bool) { return v.vec2, v.Kind == KindVector2 }
func (v Value) AsVector4() ([4]float32, bool) { return v.vec4, v.Kind == KindVector4 }

// AsVector3 also matches QAngle, since both store three floats and the
// reference implementation treats them interchangeably for this purpose.
func (v Value) AsVector3() ([3]float32, bool) {
	return v.vec3, v.Kind == KindVector3 || v.Kind == KindQAngle
}

func (v Value) AsBytes() ([]byte, bool) { return v.str, v.Kind == KindString }
