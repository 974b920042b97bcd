package srarq

import "time"

const (
	// WindowSize is the number of packets either side handles in flight.
	WindowSize = 6
	// SeqSpace is the size of the circular sequence number space. It must
	// be at least twice WindowSize so the receiver can always tell a new
	// packet from a retransmission of an old one.
	SeqSpace = 16
	// PayloadSize is the fixed payload length carried by every packet.
	PayloadSize = 20
	// NotInUse marks a header field that carries no value.
	NotInUse = -1
)

const (
	headerLength = 12
	// PacketSize is the marshaled length of a packet.
	PacketSize = headerLength + PayloadSize
)

type StatusCode int

const (
	Success StatusCode = iota
	WindowFull
	Corrupted
	StaleAck
	DuplicateAck
	DuplicateData
	OutOfWindow
)

func (code StatusCode) String() string {
	switch code {
	case Success:
		return "success"
	case WindowFull:
		return "windowFull"
	case Corrupted:
		return "corrupted"
	case StaleAck:
		return "staleAck"
	case DuplicateAck:
		return "duplicateAck"
	case DuplicateData:
		return "duplicateData"
	case OutOfWindow:
		return "outOfWindow"
	}
	return "unknown"
}

type position struct {
	Start int
	End   int
}

var seqNumPosition = position{0, 4}
var ackNumPosition = position{4, 8}
var payloadPosition = position{8, 8 + PayloadSize}
var checksumPosition = position{8 + PayloadSize, headerLength + PayloadSize}

// RetransmissionTimeout matches the fixed round trip time of the simulated
// channel.
var RetransmissionTimeout = 16 * time.Second
