package seekindex

// ZstdCodec compresses index bodies with Zstandard, for the best ratio at
// the cost of slower compression. Best suited to indexes built once and
// reused across many playback sessions, where the `seek` CLI subcommand
// persists the index to a `<path>.s2idx` side-car file.
//
// Implemented in zstd_cgo.go (github.com/valyala/gozstd, cgo, higher
// ratio) and zstd_pure.go (github.com/klauspost/compress/zstd, pure Go,
// portable default), selected by build tag exactly as the teacher splits
// its own zstd backend: zstd_cgo.go builds only with the "nobuild" tag and
// zstd_pure.go builds whenever that tag is absent.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}
