package entity

import (
	"strconv"

	"github.com/replaycore/s2demo/bitstream"
	"github.com/replaycore/s2demo/errs"
	"github.com/replaycore/s2demo/fielddecoder"
	"github.com/replaycore/s2demo/fieldpath"
	"github.com/replaycore/s2demo/internal/hashid"
	"github.com/replaycore/s2demo/serializer"
)

// applyFieldsFn decodes every field path in br against root's field tree,
// mutating ent.FieldValues in place (spec C12's apply_fields). Package
// level so lifecycle tests can substitute a stub and exercise
// EnterPVS/DeltaEnt/LeavePVS control flow without hand-encoding a real
// Huffman field-path bitstream.
var applyFieldsFn = applyFields

func applyFields(ent *Entity, root *serializer.Serializer, br *bitstream.Reader) error {
	for _, fp := range fieldpath.ReadAll(br) {
		if err := applyOnePath(ent, root, &fp, br); err != nil {
			return err
		}
	}
	return nil
}

// applyOnePath walks one decoded field path through nested serializers,
// array/vector indices, and array element types, decoding exactly one value
// off br and storing it under a path-derived key. Nested field names are
// joined with '.', and array and vector element indices are appended in
// brackets (e.g. "m_items[3]") so that repeated elements address distinct
// map slots, matching the
// indexed-name convention the wider Source demo-parsing ecosystem uses for
// this precomputed field_key scheme.
func applyOnePath(ent *Entity, root *serializer.Serializer, fp *fieldpath.Path, br *bitstream.Reader) error {
	ser := root
	name := make([]byte, 0, 32)
	n := fp.Len()
	i := 0

	for i < n {
		field := ser.FieldAt(int(fp.At(i)))
		if field == nil {
			return errs.ErrUnresolvedFieldPath
		}
		if len(name) > 0 {
			name = append(name, '.')
		}
		name = append(name, field.Name...)
		i++

		switch field.Special.Kind {
		case fielddecoder.SpecialFixedArray, fielddecoder.SpecialDynamicArray:
			if i < n {
				name = appendIndex(name, int(fp.At(i)))
				i++
			}
			return decodeLeaf(ent, field, name, br)

		case fielddecoder.SpecialDynamicSerializerVector:
			if i < n {
				name = appendIndex(name, int(fp.At(i)))
				i++
			}
			if child, ok := field.Child(); ok && i < n {
				ser = child
				continue
			}
			return decodeLeaf(ent, field, name, br)

		default:
			if child, ok := field.Child(); ok && i < n {
				ser = child
				continue
			}
			return decodeLeaf(ent, field, name, br)
		}
	}
	return errs.ErrUnresolvedFieldPath
}

func appendIndex(name []byte, idx int) []byte {
	name = append(name, '[')
	name = append(name, strconv.Itoa(idx)...)
	name = append(name, ']')
	return name
}

func decodeLeaf(ent *Entity, field *serializer.Field, name []byte, br *bitstream.Reader) error {
	meta := &fielddecoder.FieldMeta{VarName: field.Name}
	val, err := field.Decoder.Decode(br, meta)
	if err != nil {
		return err
	}
	ent.FieldValues[hashid.FieldKey(string(name))] = val
	return nil
}
