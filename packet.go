package srarq

import (
	"encoding/binary"
	"fmt"
)

// Message is a fixed size unit of application data handed to the sender.
type Message struct {
	Data [PayloadSize]byte
}

// Packet is the single wire format shared by data packets and
// acknowledgments. Data packets carry NotInUse in AckNum, acknowledgments
// carry NotInUse in SeqNum.
type Packet struct {
	SeqNum   int
	AckNum   int
	Payload  [PayloadSize]byte
	Checksum int
}

func computeChecksum(p Packet) int {
	sum := p.SeqNum + p.AckNum
	for _, b := range p.Payload {
		sum += int(b)
	}
	return sum
}

func isCorrupted(p Packet) bool {
	return p.Checksum != computeChecksum(p)
}

func (p Packet) isAck() bool {
	return p.SeqNum == NotInUse
}

func (p Packet) String() string {
	if p.isAck() {
		return fmt.Sprintf("ack %d", p.AckNum)
	}
	return fmt.Sprintf("data %d %q", p.SeqNum, p.Payload[:])
}

func makeDataPacket(seqNum int, data [PayloadSize]byte) Packet {
	p := Packet{SeqNum: seqNum, AckNum: NotInUse, Payload: data}
	p.Checksum = computeChecksum(p)
	return p
}

// makeAckPacket builds the acknowledgment for a sequence number. The
// payload stays zeroed, the sender never reads it.
func makeAckPacket(ackNum int) Packet {
	p := Packet{SeqNum: NotInUse, AckNum: ackNum}
	p.Checksum = computeChecksum(p)
	return p
}

func bytesToInt32(buffer []byte) int {
	return int(int32(binary.BigEndian.Uint32(buffer)))
}

func int32ToBytes(buffer []byte, value int) {
	binary.BigEndian.PutUint32(buffer, uint32(int32(value)))
}

// Marshal encodes the packet into its fixed length wire representation.
func (p Packet) Marshal() []byte {
	buffer := make([]byte, PacketSize)
	int32ToBytes(buffer[seqNumPosition.Start:seqNumPosition.End], p.SeqNum)
	int32ToBytes(buffer[ackNumPosition.Start:ackNumPosition.End], p.AckNum)
	copy(buffer[payloadPosition.Start:payloadPosition.End], p.Payload[:])
	int32ToBytes(buffer[checksumPosition.Start:checksumPosition.End], p.Checksum)
	return buffer
}

// UnmarshalPacket decodes a packet from its wire representation. The
// carried checksum is taken as is, verification happens on receipt.
func UnmarshalPacket(buffer []byte) (Packet, error) {
	if len(buffer) != PacketSize {
		return Packet{}, fmt.Errorf("invalid packet length %d, expected %d", len(buffer), PacketSize)
	}
	p := Packet{
		SeqNum:   bytesToInt32(buffer[seqNumPosition.Start:seqNumPosition.End]),
		AckNum:   bytesToInt32(buffer[ackNumPosition.Start:ackNumPosition.End]),
		Checksum: bytesToInt32(buffer[checksumPosition.Start:checksumPosition.End]),
	}
	copy(p.Payload[:], buffer[payloadPosition.Start:payloadPosition.End])
	return p, nil
}
