// Package fielddecoder maps a parsed var_type AST plus field metadata onto
// a concrete value decoder, and implements the QuantizedFloat fixed-point
// codec used by several of those decoders.
package fielddecoder

// FieldMeta is the subset of a FlattenedSerializerField's attributes the
// decoder-selection cascade and QuantizedFloat precomputation need. The
// serializer package builds one of these per field while interning the
// schema graph; fielddecoder never reaches back into that package to avoid
// an import cycle (serializer is the one that calls Resolve).
type FieldMeta struct {
	VarName     string
	VarNameHash uint64
	VarEncoder  string
	BitCount    int
	LowValue    float32
	HighValue   float32
	EncodeFlags uint32

	// HasFieldSerializerName reports whether the field also names a child
	// serializer (field_serializer_name_hash is set), which changes how
	// CNetworkUtlVectorBase<T> and friends are resolved.
	HasFieldSerializerName bool
}

const tickInterval = 1.0 / 30.0
