package parser

// Net-message kind ids used inside a DemPacket/DemSignonPacket/DemFullPacket
// sub-message stream (spec §4.13's `(cmd, size, bytes)` loop). These follow
// the CS2 NET_Messages/SVC_Messages enum values as commonly mirrored across
// the OSS demo-parsing ecosystem (the same "public-protocol-knowledge, not
// pack-grounded" caveat protowire2/messages.go documents for its field
// numbers); no .proto source was present in the retrieved pack to check
// them against directly.
const (
	netMsgTick               = 4
	netMsgCreateStringTable  = 44
	netMsgUpdateStringTable  = 45
	netMsgPacketEntities     = 55
)
