// Package serializer interns the FlattenedSerializer graph carried in a
// CDemoSendTables command: classes resolve to ordered field lists, and a
// field may itself name a child serializer by hash, forming a tree that
// entity decoding walks one FieldPath segment at a time.
package serializer

import (
	"github.com/replaycore/s2demo/fielddecoder"
	"github.com/replaycore/s2demo/vartype"
)

// Field is one interned FlattenedSerializerField. Immutable after Build
// returns; shared by pointer across every serializer that references it.
type Field struct {
	Name     string
	NameHash uint64
	VarType  *vartype.Expr
	Decoder  fielddecoder.Decoder
	Special  fielddecoder.SpecialDescriptor

	HasChildSerializer bool
	childSerializerHash uint64
	child              *Serializer
}

// Child returns the field's nested serializer, if it has one. Only valid
// after Build has fully resolved the graph.
func (f *Field) Child() (*Serializer, bool) {
	if !f.HasChildSerializer {
		return nil, false
	}
	return f.child, true
}

// SetChild links a nested serializer to this field. Build calls this once
// per field while resolving field_serializer_name_hash references; exported
// so callers assembling a Field outside of Build (tests, tooling) can do
// the same without reaching into an unexported field.
func (f *Field) SetChild(child *Serializer) {
	f.HasChildSerializer = true
	f.child = child
}
