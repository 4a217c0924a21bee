package demostream

import "github.com/replaycore/s2demo/protowire2"

// The decode_cmd_* family from spec C11's interface: thin wrappers handing
// a ReadCmd body to the matching protowire2 struct. These are free
// functions rather than DemoStream methods since decoding is independent
// of which stream produced the bytes. DecodeSendTables is not part of this
// set: every DemoStream implementation's ReadCmd already unwraps a
// CmdSendTables body down to the bytes serializer.Build expects directly.

func DecodeClassInfo(data []byte) (protowire2.ClassInfo, error) {
	var msg protowire2.ClassInfo
	err := msg.Decode(data)
	return msg, err
}

func DecodePacket(data []byte) (protowire2.Packet, error) {
	var msg protowire2.Packet
	err := msg.Decode(data)
	return msg, err
}

func DecodeFullPacket(data []byte) (protowire2.FullPacket, error) {
	var msg protowire2.FullPacket
	err := msg.Decode(data)
	return msg, err
}
