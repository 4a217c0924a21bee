// Package parser implements spec C13's top-level command dispatch loop: a
// single-threaded driver that reads CmdHeader/body pairs off a
// demostream.DemoStream, maintains the live schema/class/string-table/
// entity state those commands describe, and invokes a Visitor's hooks as
// it goes.
package parser

import (
	"context"
	"fmt"

	"github.com/replaycore/s2demo/demostream"
	"github.com/replaycore/s2demo/entity"
	"github.com/replaycore/s2demo/entityclass"
	"github.com/replaycore/s2demo/errs"
	"github.com/replaycore/s2demo/gametime"
	"github.com/replaycore/s2demo/internal/pool"
	"github.com/replaycore/s2demo/protowire2"
	"github.com/replaycore/s2demo/seekindex"
	"github.com/replaycore/s2demo/serializer"
	"github.com/replaycore/s2demo/stringtable"
)

// Option configures a Parser at construction time, the same functional-
// options idiom the teacher uses for demostream.HTTPOption.
type Option func(*Parser)

// WithTickInterval sets the tick interval the Parser's gametime.Clock uses
// to convert ticks to seconds. NetTick sub-messages advance the clock's
// tick but do not change this interval.
func WithTickInterval(interval float32) Option {
	return func(p *Parser) { p.clock = gametime.NewClock(interval) }
}

// WithSeekIndex attaches a seek index the Parser records DemFullPacket
// offsets into, and that RunToTick consults to rebase a backward seek
// instead of re-reading the stream from its start.
func WithSeekIndex(idx *seekindex.Index) Option {
	return func(p *Parser) { p.index = idx }
}

// Parser is spec C13's driver.
type Parser struct {
	stream  demostream.DemoStream
	visitor Visitor
	clock   *gametime.Clock

	serializers *serializer.Registry
	classes     *entityclass.Table
	baseline    *entityclass.Baseline
	entities    *entity.Entities

	tables       []*stringtable.Table
	tablesByName map[string]int

	index *seekindex.Index

	sendTablesSeen bool
}

// FromStream constructs a Parser driving stream and reporting to visitor.
// A nil visitor is replaced with NoopVisitor.
func FromStream(stream demostream.DemoStream, visitor Visitor, opts ...Option) *Parser {
	if visitor == nil {
		visitor = NoopVisitor{}
	}
	p := &Parser{
		stream:       stream,
		visitor:      visitor,
		clock:        gametime.NewClock(0),
		baseline:     entityclass.NewBaseline(),
		entities:     entity.NewEntities(),
		tablesByName: make(map[string]int),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Clock returns the Parser's current demo-time clock.
func (p *Parser) Clock() *gametime.Clock { return p.clock }

// Entities returns the live entity table, valid for the lifetime of the
// Parser (mutated on every subsequent Run call).
func (p *Parser) Entities() *entity.Entities { return p.entities }

// RunToEnd drives the stream until it reports EOF or a DemStop command is
// reached.
func (p *Parser) RunToEnd(ctx context.Context) error {
	return p.Run(ctx, func(demostream.CmdHeader) bool { return false })
}

// RunToTick drives the stream until a processed command's tick reaches
// targetTick. If a seek index is attached and the clock is already past
// targetTick, the stream first seeks to the index's nearest entry at or
// before targetTick (or, with no such entry, resets to the start) and
// replays forward from there, per spec §4.13's "implementations may cache
// FullPacket offsets for faster backward seeks" note. Without a seek index
// the stream is never rewound; it keeps reading forward from its current
// position.
func (p *Parser) RunToTick(ctx context.Context, targetTick int32) error {
	if p.index != nil && p.clock.Tick() > targetTick {
		if entry, ok := p.index.Nearest(targetTick); ok {
			if err := p.rebaseAt(ctx, entry); err != nil {
				return err
			}
		} else {
			if err := p.Reset(ctx); err != nil {
				return err
			}
		}
	}
	return p.Run(ctx, func(hdr demostream.CmdHeader) bool {
		return hdr.Tick >= targetTick
	})
}

// rebaseAt seeks the stream to entry's offset and resets every piece of
// state that a DemFullPacket fully re-establishes, without discarding the
// interned serializer/class tables (those never change mid-stream).
func (p *Parser) rebaseAt(ctx context.Context, entry seekindex.Entry) error {
	if err := p.stream.Seek(ctx, entry.Offset); err != nil {
		return err
	}
	p.entities.Reset()
	p.tables = nil
	p.tablesByName = make(map[string]int)
	p.clock.Advance(entry.Tick)
	return nil
}

// Reset seeks back to the stream's start position and clears all mutable
// state (Entities, InstanceBaseline, StringTables), reusing the interned
// FlattenedSerializers and EntityClasses tables built from the demo's
// fixed schema commands (spec §4.13's reset contract).
func (p *Parser) Reset(ctx context.Context) error {
	if err := p.stream.Seek(ctx, p.stream.StartPosition()); err != nil {
		return err
	}
	p.entities.Reset()
	p.baseline = entityclass.NewBaseline()
	p.tables = nil
	p.tablesByName = make(map[string]int)
	p.clock = gametime.NewClock(p.clock.TickInterval())
	if p.index != nil {
		p.index.Reset()
	}
	return nil
}

// Run drives the stream command by command until it is exhausted, a
// DemStop command is reached, or stop returns true for a processed
// command's header.
func (p *Parser) Run(ctx context.Context, stop func(demostream.CmdHeader) bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.stream.IsAtEOF() {
			return nil
		}

		hdr, err := p.stream.ReadCmdHeader(ctx)
		if err != nil {
			return err
		}
		if hdr.Kind == demostream.CmdStop {
			return nil
		}

		if err := p.dispatch(ctx, hdr); err != nil {
			return fmt.Errorf("tick %d cmd %d: %w", hdr.Tick, hdr.Kind, err)
		}

		if stop(hdr) {
			return nil
		}
	}
}

func (p *Parser) dispatch(ctx context.Context, hdr demostream.CmdHeader) error {
	switch hdr.Kind {
	case demostream.CmdSendTables:
		return p.handleSendTables(ctx, hdr)
	case demostream.CmdClassInfo:
		return p.handleClassInfo(ctx, hdr)
	case demostream.CmdPacket, demostream.CmdSignonPacket:
		return p.handlePacket(ctx, hdr)
	case demostream.CmdFullPacket:
		return p.handleFullPacket(ctx, hdr)
	default:
		data, err := p.stream.ReadCmd(ctx, hdr)
		if err != nil {
			return err
		}
		return p.visitor.OnCmd(hdr, data)
	}
}

// handleSendTables builds the FlattenedSerializer registry once; a second
// DemSendTables in the same stream is ignored, matching spec §4.13.
func (p *Parser) handleSendTables(ctx context.Context, hdr demostream.CmdHeader) error {
	data, err := p.stream.ReadCmd(ctx, hdr)
	if err != nil {
		return err
	}
	if p.sendTablesSeen {
		return p.visitor.OnCmd(hdr, data)
	}

	reg, err := serializer.Build(data)
	if err != nil {
		return err
	}
	p.serializers = reg
	p.sendTablesSeen = true
	return p.visitor.OnCmd(hdr, data)
}

// handleClassInfo builds the EntityClasses table, refreshing instance
// baselines immediately if the "instancebaseline" string table already
// exists (it may have been created before or after DemClassInfo).
func (p *Parser) handleClassInfo(ctx context.Context, hdr demostream.CmdHeader) error {
	data, err := p.stream.ReadCmd(ctx, hdr)
	if err != nil {
		return err
	}

	info, err := demostream.DecodeClassInfo(data)
	if err != nil {
		return err
	}
	p.classes = entityclass.Build(&info)

	if idx, ok := p.tablesByName["instancebaseline"]; ok {
		if err := p.baseline.Refresh(p.tables[idx]); err != nil {
			return err
		}
	}
	return p.visitor.OnCmd(hdr, data)
}

// handleFullPacket decodes a full string-table snapshot plus an embedded
// packet, records a seek-index entry for this offset, and then processes
// the packet exactly as handlePacket would.
func (p *Parser) handleFullPacket(ctx context.Context, hdr demostream.CmdHeader) error {
	offset := p.stream.StreamPosition() - int64(hdr.HeaderSize)

	data, err := p.stream.ReadCmd(ctx, hdr)
	if err != nil {
		return err
	}

	full, err := demostream.DecodeFullPacket(data)
	if err != nil {
		return err
	}

	if p.index != nil {
		p.index.Add(seekindex.Entry{Tick: hdr.Tick, Offset: offset, Kind: uint8(hdr.Kind)})
	}

	if len(full.StringTableData) > 0 {
		var snapshot protowire2.StringTables
		if err := snapshot.Decode(full.StringTableData); err != nil {
			return err
		}
		p.tables = nil
		p.tablesByName = make(map[string]int)
		for _, msg := range snapshot.Tables {
			if err := p.registerTable(&msg); err != nil {
				return err
			}
		}
	}

	if len(full.PacketData) > 0 {
		if err := p.dispatchSubMessages(full.PacketData); err != nil {
			return err
		}
	}

	return p.visitor.OnCmd(hdr, data)
}

// handlePacket splits a DemPacket/DemSignonPacket body into its inner
// sub-message stream and dispatches each sub-message.
func (p *Parser) handlePacket(ctx context.Context, hdr demostream.CmdHeader) error {
	data, err := p.stream.ReadCmd(ctx, hdr)
	if err != nil {
		return err
	}

	pkt, err := demostream.DecodePacket(data)
	if err != nil {
		return err
	}

	if err := p.dispatchSubMessages(pkt.Data); err != nil {
		return err
	}
	return p.visitor.OnCmd(hdr, data)
}

// dispatchSubMessages walks the repeated (cmd, size, bytes) loop spec
// §4.13 describes for a packet body, dispatching each known sub-message
// kind and handing everything else to the visitor.
func (p *Parser) dispatchSubMessages(body []byte) error {
	br, done := pool.GetReader(body)
	defer done()

	for br.BitsRemaining() >= 8 {
		cmd := br.UBitVar()
		size := br.UVarint32()

		buf := make([]byte, size)
		br.ReadBytes(buf)

		if err := p.dispatchNetMessage(cmd, buf); err != nil {
			return err
		}
	}
	return br.Finish()
}

func (p *Parser) dispatchNetMessage(cmd uint32, data []byte) error {
	switch cmd {
	case netMsgCreateStringTable:
		var msg protowire2.CreateStringTable
		if err := msg.Decode(data); err != nil {
			return err
		}
		return p.handleCreateStringTable(&msg, cmd, data)
	case netMsgUpdateStringTable:
		var msg protowire2.UpdateStringTable
		if err := msg.Decode(data); err != nil {
			return err
		}
		return p.handleUpdateStringTable(&msg, cmd, data)
	case netMsgPacketEntities:
		var msg protowire2.PacketEntities
		if err := msg.Decode(data); err != nil {
			return err
		}
		return p.handlePacketEntities(&msg)
	case netMsgTick:
		var msg protowire2.NetTick
		if err := msg.Decode(data); err != nil {
			return err
		}
		return p.handleNetTick(&msg, cmd, data)
	default:
		return p.visitor.OnPacket(cmd, data)
	}
}

func (p *Parser) handleCreateStringTable(msg *protowire2.CreateStringTable, cmd uint32, data []byte) error {
	if err := p.registerTable(msg); err != nil {
		return err
	}
	return p.visitor.OnPacket(cmd, data)
}

func (p *Parser) registerTable(msg *protowire2.CreateStringTable) error {
	table, err := stringtable.Create(msg)
	if err != nil {
		return err
	}
	p.tablesByName[msg.Name] = len(p.tables)
	p.tables = append(p.tables, table)

	if msg.Name == "instancebaseline" && p.classes != nil {
		return p.baseline.Refresh(table)
	}
	return nil
}

func (p *Parser) handleUpdateStringTable(msg *protowire2.UpdateStringTable, cmd uint32, data []byte) error {
	if int(msg.TableID) < 0 || int(msg.TableID) >= len(p.tables) {
		return fmt.Errorf("%w: id %d", errs.ErrUnknownStringTable, msg.TableID)
	}
	table := p.tables[msg.TableID]
	if err := table.Update(msg); err != nil {
		return err
	}

	if table.Name == "instancebaseline" && p.classes != nil {
		if err := p.baseline.Refresh(table); err != nil {
			return err
		}
	}
	return p.visitor.OnPacket(cmd, data)
}

func (p *Parser) handlePacketEntities(msg *protowire2.PacketEntities) error {
	if p.classes == nil || p.serializers == nil {
		return errs.ErrMissingSerializer
	}
	return entity.HandlePacketEntities(p.entities, p.classes, p.baseline, p.serializers, msg, p.visitor)
}

func (p *Parser) handleNetTick(msg *protowire2.NetTick, cmd uint32, data []byte) error {
	p.clock.Advance(int32(msg.Tick))
	if err := p.visitor.OnPacket(cmd, data); err != nil {
		return err
	}
	return p.visitor.OnTickEnd()
}
