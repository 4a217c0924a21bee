package entity

import "github.com/replaycore/s2demo/bitstream"

// UpdateType is the kind of lifecycle transition a packet-entities delta
// header selects for one entity index.
type UpdateType int

const (
	UpdateDeltaEnt UpdateType = iota
	UpdateEnterPVS
	UpdateLeavePVS
)

// DeltaHeader is the decoded 2-bit update-type prefix preceding each
// entity's delta in a packet-entities message.
type DeltaHeader struct {
	Type   UpdateType
	Delete bool
}

// ParseDeltaHeader reads the 2-bit update-type selector: bit0=0,bit1=0 ->
// DeltaEnt; bit0=0,bit1=1 -> EnterPVS; bit0=1 -> LeavePVS, with bit1
// marking whether the entity is also being destroyed.
func ParseDeltaHeader(br *bitstream.Reader) DeltaHeader {
	if br.ReadBool() {
		return DeltaHeader{Type: UpdateLeavePVS, Delete: br.ReadBool()}
	}
	if br.ReadBool() {
		return DeltaHeader{Type: UpdateEnterPVS}
	}
	return DeltaHeader{Type: UpdateDeltaEnt}
}
