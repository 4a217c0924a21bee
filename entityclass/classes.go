// Package entityclass tracks the class-id -> network-name-hash table built
// from CDemoClassInfo (spec C9), and the per-class instance baseline byte
// buffers carried in the "instancebaseline" string table (spec C10).
package entityclass

import (
	"math/bits"

	"github.com/replaycore/s2demo/internal/hashid"
	"github.com/replaycore/s2demo/protowire2"
)

// Table is the build-once class-id -> network-name-hash mapping, plus the
// bit width of the class-id field in entity-create messages.
type Table struct {
	names []uint64 // indexed by class id
	bits  int
}

// Build constructs a Table from a decoded CDemoClassInfo; class_id is taken
// to be the position of each entry in declaration order.
func Build(info *protowire2.ClassInfo) *Table {
	t := &Table{names: make([]uint64, len(info.Classes))}
	for idx, c := range info.Classes {
		t.names[idx] = hashid.NetworkNameHashString(c.NetworkName)
	}
	t.bits = classIDBits(len(t.names))
	return t
}

// classIDBits returns ceil(log2(count)), the width of the class-id bitfield
// entity-create messages encode. A single-class demo (count==1) still needs
// zero bits, matching ceil(log2(1))==0.
func classIDBits(count int) int {
	if count <= 1 {
		return 0
	}
	return bits.Len(uint(count - 1))
}

// NetworkNameHash returns the hash stored for classID, or 0/false if out of
// range.
func (t *Table) NetworkNameHash(classID int32) (uint64, bool) {
	if classID < 0 || int(classID) >= len(t.names) {
		return 0, false
	}
	return t.names[classID], true
}

// ClassIDBits returns the bit width used to read a class id off the wire.
func (t *Table) ClassIDBits() int { return t.bits }

// Count returns the number of known classes.
func (t *Table) Count() int { return len(t.names) }
