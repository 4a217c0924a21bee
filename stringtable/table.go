// Package stringtable implements the create/update protocol for Source 2's
// networked string tables: the "instancebaseline" table, downloadables,
// user info, and similar small key/value tables broadcast over the demo
// stream's control messages.
package stringtable

import (
	"github.com/golang/snappy"

	"github.com/replaycore/s2demo/bitstream"
	"github.com/replaycore/s2demo/errs"
	"github.com/replaycore/s2demo/protowire2"
)

// Entry is one string table row: a key is always present once an index has
// been touched, a value is optional.
type Entry struct {
	Index int32
	Key   []byte
	Value []byte
}

// Table holds one string table's current state plus the control parameters
// that govern how create/update bodies are decoded.
type Table struct {
	Name string

	maxEntries           int32
	userDataFixedSize    bool
	userDataSize         int32
	userDataSizeBits     int32
	flags                int32
	usingVarintBitcounts bool

	entries map[int32]*Entry

	keyHist   [32][5]byte
	keyHistWI int
}

// New creates an empty table with no entries.
func New(name string) *Table {
	return &Table{Name: name, entries: make(map[int32]*Entry)}
}

// Entries returns a snapshot slice of the table's current entries, index
// order not guaranteed.
func (t *Table) Entries() []*Entry {
	out := make([]*Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	return out
}

// Get returns the entry at index, if present.
func (t *Table) Get(index int32) (*Entry, bool) {
	e, ok := t.entries[index]
	return e, ok
}

// Create builds a fresh Table from a CsvcMsgCreateStringTable, optionally
// Snappy-decompressing the payload before running the shared update
// routine over num_entries rows.
func Create(msg *protowire2.CreateStringTable) (*Table, error) {
	t := New(msg.Name)
	t.maxEntries = msg.MaxEntries
	t.userDataFixedSize = msg.UserDataFixedSize
	t.userDataSize = msg.UserDataSize
	t.userDataSizeBits = msg.UserDataSizeBits
	t.flags = msg.Flags
	t.usingVarintBitcounts = msg.UsingVarintBitcounts

	data := msg.StringData
	if msg.DataCompressed {
		decoded, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, errs.ErrCompression
		}
		data = decoded
	}

	if err := t.update(data, msg.NumEntries); err != nil {
		return nil, err
	}
	return t, nil
}

// Update applies a CsvcMsgUpdateStringTable body to the table in place.
func (t *Table) Update(msg *protowire2.UpdateStringTable) error {
	return t.update(msg.StringData, msg.NumChangedEntries)
}

func (t *Table) update(data []byte, numEntries int32) error {
	br := bitstream.NewReader(data)
	index := int32(-1)

	for i := int32(0); i < numEntries; i++ {
		if br.ReadBool() {
			index++
		} else {
			index = int32(br.UVarint32()) + 1 + index
		}

		var key []byte
		if br.ReadBool() {
			if br.ReadBool() {
				base := 0
				if t.keyHistWI > 32 {
					base = t.keyHistWI & 31
				}
				pos := (base + int(br.ReadBits(5))) & 31
				lenPrefix := int(br.ReadBits(5))
				if lenPrefix > 5 {
					lenPrefix = 5
				}
				buf := make([]byte, lenPrefix)
				copy(buf, t.keyHist[pos][:lenPrefix])

				var suffix [1024]byte
				n := br.ReadString(suffix[:], false)
				buf = append(buf, suffix[:n]...)
				key = buf
			} else {
				var raw [1024]byte
				n := br.ReadString(raw[:], false)
				key = append([]byte{}, raw[:n]...)
			}

			var prefix [5]byte
			copy(prefix[:], key)
			t.keyHist[t.keyHistWI&31] = prefix
			t.keyHistWI++
		}

		var value []byte
		if br.ReadBool() {
			if t.userDataFixedSize {
				value = make([]byte, t.userDataSize)
				br.ReadBitsInto(value, int(t.userDataSizeBits))
			} else {
				compressed := false
				if t.flags&0x1 != 0 {
					compressed = br.ReadBool()
				}
				var size int
				if t.usingVarintBitcounts {
					size = int(br.UBitVar())
				} else {
					size = int(br.ReadBits(17))
				}
				value = make([]byte, size)
				br.ReadBytes(value)
				if compressed {
					decoded, err := snappy.Decode(nil, value)
					if err != nil {
						return errs.ErrCompression
					}
					value = decoded
				}
			}
		}

		entry, ok := t.entries[index]
		if !ok {
			entry = &Entry{Index: index}
			t.entries[index] = entry
		}
		if key != nil {
			entry.Key = key
		}
		if value != nil {
			entry.Value = value
		}
	}

	if err := br.Finish(); err != nil {
		return err
	}
	return nil
}
