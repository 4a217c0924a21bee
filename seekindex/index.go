package seekindex

// Entry records one DemFullPacket sighting: the tick it carries, the byte
// offset of its CmdHeader in the demo stream, and the raw command kind
// (so a restored index can be validated against the stream it indexes).
type Entry struct {
	Tick   int32
	Offset int64
	Kind   uint8
}

// Index is the in-memory sparse seek table a Parser builds incrementally
// as it encounters DemFullPacket commands. Entries are appended in
// stream order, so RunToTick can binary-search Tick to find the nearest
// entry at or before a target tick.
type Index struct {
	entries []Entry
}

// New returns an empty Index.
func New() *Index {
	return &Index{}
}

// Add appends e. Callers (the Parser) are responsible for only calling
// this on DemFullPacket sightings, where e.Tick is monotonically
// non-decreasing.
func (idx *Index) Add(e Entry) {
	idx.entries = append(idx.entries, e)
}

// Len returns the number of recorded entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Entries returns the recorded entries in stream order. The returned
// slice is owned by the Index; callers must not mutate it.
func (idx *Index) Entries() []Entry {
	return idx.entries
}

// Reset discards all recorded entries, called by Parser.Reset to rebuild
// the index from scratch on the next pass (or kept, if the caller
// prefers reusing a saved index via Load).
func (idx *Index) Reset() {
	idx.entries = idx.entries[:0]
}

// Nearest returns the entry with the greatest Tick <= targetTick, or
// false if no such entry exists (the caller must fall back to
// re-reading from the stream's start).
func (idx *Index) Nearest(targetTick int32) (Entry, bool) {
	lo, hi := 0, len(idx.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		if idx.entries[mid].Tick <= targetTick {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return Entry{}, false
	}
	return idx.entries[lo-1], true
}
