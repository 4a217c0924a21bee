// Package collision tracks name-to-hash assignments made while building the
// serializer graph, surfacing a hash collision
// between two distinct names as an error instead of silently letting the
// second name shadow the first.
package collision

import "github.com/replaycore/s2demo/errs"

// Tracker records hash -> name assignments for one build pass.
type Tracker struct {
	names map[uint64]string
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{names: make(map[uint64]string)}
}

// Track records that hash identifies name. It returns errs.ErrHashCollision
// if hash was already bound to a different name, and is a no-op (not an
// error) if the same name is registered again under the same hash.
func (t *Tracker) Track(hash uint64, name string) error {
	if existing, ok := t.names[hash]; ok {
		if existing != name {
			return errs.ErrHashCollision
		}
		return nil
	}
	t.names[hash] = name
	return nil
}

// Count returns the number of distinct hashes tracked.
func (t *Tracker) Count() int { return len(t.names) }
