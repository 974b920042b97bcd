package srarq

import "time"

// Network carries packets toward the peer entity. Implementations decide
// what happens on the way, the protocol core only ever learns about loss
// through its timeout.
type Network interface {
	Transmit(p Packet)
}

// Timer is a single restartable countdown. Each entity owns at most one,
// anchored to its oldest unacknowledged packet.
type Timer interface {
	Start(d time.Duration)
	Stop()
}

// Application consumes delivered payloads, exactly once and in order.
type Application interface {
	Deliver(payload [PayloadSize]byte)
}

// inWindow reports whether seq lies in the circular interval [start, end).
// The interval may wrap around the top of the sequence space, an empty
// interval (start == end) contains nothing.
func inWindow(seq, start, end int) bool {
	if start <= end {
		return seq >= start && seq < end
	}
	return seq >= start || seq < end
}

func nextSeqNum(seq int) int {
	return (seq + 1) % SeqSpace
}

func seqDistance(from, to int) int {
	return (to - from + SeqSpace) % SeqSpace
}
