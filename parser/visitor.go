package parser

import (
	"github.com/replaycore/s2demo/demostream"
	"github.com/replaycore/s2demo/entity"
)

// Visitor receives callbacks as the Parser advances through a demo stream
// (spec C13). All hooks are optional in spirit — embed NoopVisitor to pick
// up no-op defaults and override only the ones a caller needs. Returning a
// non-nil error from any hook aborts parsing; the error propagates out of
// the Run/RunToEnd/RunToTick call that triggered it.
type Visitor interface {
	entity.Visitor

	// OnCmd fires once per top-level demo command, after the Parser has
	// handled it.
	OnCmd(hdr demostream.CmdHeader, data []byte) error
	// OnPacket fires for each inner sub-message of a DemPacket/
	// DemSignonPacket/DemFullPacket except SvcPacketEntities (reported via
	// OnEntity), including the SvcCreateStringTable, SvcUpdateStringTable
	// and NetTick messages the Parser also applies itself.
	OnPacket(kind uint32, data []byte) error
	// OnTickEnd fires once per NetTick sub-message, after the Parser's
	// internal clock has advanced.
	OnTickEnd() error
}

// NoopVisitor implements Visitor with no-op methods.
type NoopVisitor struct{}

func (NoopVisitor) OnEntity(entity.UpdateType, *entity.Entity) error { return nil }
func (NoopVisitor) OnCmd(demostream.CmdHeader, []byte) error         { return nil }
func (NoopVisitor) OnPacket(uint32, []byte) error                    { return nil }
func (NoopVisitor) OnTickEnd() error                                 { return nil }

var _ Visitor = NoopVisitor{}
