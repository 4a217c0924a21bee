package entityclass

import (
	"github.com/replaycore/s2demo/errs"
	"github.com/replaycore/s2demo/stringtable"
)

// Baseline holds the default byte pattern for a freshly created entity of
// each class, indexed by class id and grown on demand. Populated from the
// string table named "instancebaseline".
type Baseline struct {
	buffers [][]byte
}

// NewBaseline creates an empty Baseline.
func NewBaseline() *Baseline {
	return &Baseline{}
}

// Refresh rebuilds the baseline table from the current contents of the
// "instancebaseline" string table. Every entry's key is an ASCII decimal
// class id; its value is the shared baseline buffer for that class.
func (b *Baseline) Refresh(table *stringtable.Table) error {
	for _, e := range table.Entries() {
		if e.Key == nil {
			continue
		}
		classID, err := parseDecimal(e.Key)
		if err != nil {
			return err
		}
		for classID >= len(b.buffers) {
			b.buffers = append(b.buffers, nil)
		}
		b.buffers[classID] = e.Value
	}
	return nil
}

// Get returns the baseline buffer for classID, if one has been set.
func (b *Baseline) Get(classID int) ([]byte, bool) {
	if classID < 0 || classID >= len(b.buffers) {
		return nil, false
	}
	buf := b.buffers[classID]
	return buf, buf != nil
}

// parseDecimal parses an ASCII-decimal class id key, failing fatally on any
// non-digit byte per spec ("unknown/malformed decimals are fatal").
func parseDecimal(key []byte) (int, error) {
	if len(key) == 0 {
		return 0, errs.ErrBadBaselineKey
	}
	n := 0
	for _, c := range key {
		if c < '0' || c > '9' {
			return 0, errs.ErrBadBaselineKey
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
