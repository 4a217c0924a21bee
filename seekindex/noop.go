package seekindex

// NoopCodec bypasses compression entirely. Useful for small indexes where
// the framing overhead of a real codec outweighs the savings, and as a
// baseline when measuring the others.
type NoopCodec struct{}

var _ Codec = NoopCodec{}

func (NoopCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (NoopCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
