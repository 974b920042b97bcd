package srarq

// ReceiverStats counts what arrived at the receiving side.
type ReceiverStats struct {
	Received      int
	Delivered     int
	DuplicateData int
	Corrupted     int
	OutOfWindow   int
}

// Receiver is the receiving half of the protocol. It acknowledges every
// intact data packet it can place, buffers the ones that arrive ahead of a
// gap and releases payloads to the application strictly in order.
type Receiver struct {
	window recvWindow
	net    Network
	app    Application
	stats  ReceiverStats
}

func NewReceiver(net Network, app Application) *Receiver {
	r := &Receiver{net: net, app: app}
	r.Init()
	return r
}

// Init resets the delivery point and the counters.
func (r *Receiver) Init() {
	r.window.reset()
	r.stats = ReceiverStats{}
}

// OnPacket processes a data packet. Corrupted packets are dropped without
// an acknowledgment. Packets in the current window are always acknowledged,
// buffered if new, and every payload up to the first gap is delivered.
// Packets from the previous window get their acknowledgment repeated but
// are never delivered again.
func (r *Receiver) OnPacket(p Packet) StatusCode {
	if isCorrupted(p) {
		r.stats.Corrupted++
		return Corrupted
	}
	r.stats.Received++
	if p.SeqNum < 0 || p.SeqNum >= SeqSpace {
		r.stats.OutOfWindow++
		return OutOfWindow
	}
	switch {
	case r.window.inCurrentWindow(p.SeqNum):
		r.net.Transmit(makeAckPacket(p.SeqNum))
		if !r.window.isNew(p.SeqNum) {
			r.stats.DuplicateData++
			return DuplicateData
		}
		r.window.insert(p)
		for _, ready := range r.window.removeSequence() {
			r.app.Deliver(ready.Payload)
			r.stats.Delivered++
		}
		return Success
	case r.window.inPreviousWindow(p.SeqNum):
		r.net.Transmit(makeAckPacket(p.SeqNum))
		r.stats.DuplicateData++
		return DuplicateData
	default:
		r.stats.OutOfWindow++
		return OutOfWindow
	}
}

// Stats returns a copy of the current counters.
func (r *Receiver) Stats() ReceiverStats {
	return r.stats
}
