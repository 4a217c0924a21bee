// Package entity implements the packet-entities delta protocol (spec C12):
// EnterPVS/DeltaEnt/LeavePVS lifecycle transitions, each mutating per-entity
// field-value maps through a FieldPath-driven walk of the flattened
// serializer tree.
package entity

import (
	"github.com/replaycore/s2demo/fieldvalue"
	"github.com/replaycore/s2demo/serializer"
)

// Entity is one live networked object: a dense index, its class, and the
// current value of every field the demo has sent for it so far.
type Entity struct {
	Index       int32
	ClassID     int32
	Serial      uint32
	Serializer  *serializer.Serializer
	FieldValues map[uint64]fieldvalue.Value
}

// Entities is the tick-driven table of currently live entities, keyed by
// their dense wire index.
type Entities struct {
	byIndex map[int32]*Entity
}

// NewEntities creates an empty table sized for a typical match's entity
// count.
func NewEntities() *Entities {
	return &Entities{byIndex: make(map[int32]*Entity, 20480)}
}

// Get returns the live entity at index, if any.
func (e *Entities) Get(index int32) (*Entity, bool) {
	ent, ok := e.byIndex[index]
	return ent, ok
}

// Len returns the number of currently live entities.
func (e *Entities) Len() int { return len(e.byIndex) }

// Reset clears every live entity, used by Parser.Reset (spec C13).
func (e *Entities) Reset() {
	e.byIndex = make(map[int32]*Entity, 20480)
}
