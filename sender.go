package srarq

// SenderStats counts the protocol events a sender has seen. Anomalies are
// absorbed by the protocol and only surface here.
type SenderStats struct {
	Sent          int
	Resent        int
	WindowFull    int
	AcksReceived  int
	NewAcks       int
	DuplicateAcks int
	CorruptedAcks int
	StaleAcks     int
}

// Sender is the transmitting half of the protocol. It accepts application
// messages while its window has room and keeps one retransmission timer,
// always anchored to the oldest unacknowledged packet.
type Sender struct {
	window sendWindow
	net    Network
	timer  Timer
	stats  SenderStats
}

func NewSender(net Network, timer Timer) *Sender {
	s := &Sender{net: net, timer: timer}
	s.Init()
	return s
}

// Init resets the window and the counters. The timer is left untouched.
func (s *Sender) Init() {
	s.window.reset()
	s.stats = SenderStats{}
}

// Submit hands a message to the protocol. A message offered while the
// window is full is rejected, not queued, the caller retries later.
func (s *Sender) Submit(m Message) StatusCode {
	if s.window.isFull() {
		s.stats.WindowFull++
		return WindowFull
	}
	p := makeDataPacket(s.window.next, m.Data)
	wasEmpty := s.window.isEmpty()
	s.window.insert(p)
	s.net.Transmit(p)
	if wasEmpty {
		s.timer.Start(RetransmissionTimeout)
	}
	s.stats.Sent++
	return Success
}

// OnAck processes an acknowledgment. Corrupted, stale and duplicate ACKs
// change nothing beyond their counters. A first ACK for the packet at base
// slides the window and rearms the timer for the new oldest packet, if any.
func (s *Sender) OnAck(p Packet) StatusCode {
	if isCorrupted(p) {
		s.stats.CorruptedAcks++
		return Corrupted
	}
	s.stats.AcksReceived++
	if p.AckNum < 0 || p.AckNum >= SeqSpace || !s.window.contains(p.AckNum) {
		s.stats.StaleAcks++
		return StaleAck
	}
	if s.window.isAcked(p.AckNum) {
		s.stats.DuplicateAcks++
		return DuplicateAck
	}
	s.window.markAcked(p.AckNum)
	s.stats.NewAcks++
	if p.AckNum == s.window.base {
		s.timer.Stop()
		s.window.slide()
		if !s.window.isEmpty() {
			s.timer.Start(RetransmissionTimeout)
		}
	}
	return Success
}

// OnTimeout retransmits the packet at base, and only that one, then rearms
// the timer. With an empty window it does nothing, the timer discipline
// never lets that happen.
func (s *Sender) OnTimeout() {
	if s.window.isEmpty() {
		return
	}
	s.net.Transmit(s.window.oldest())
	s.stats.Resent++
	s.timer.Start(RetransmissionTimeout)
}

// InFlight is the number of sent but not yet cumulatively acknowledged
// packets.
func (s *Sender) InFlight() int {
	return s.window.inFlight()
}

// Stats returns a copy of the current counters.
func (s *Sender) Stats() SenderStats {
	return s.stats
}
