package srarq

// sendWindow tracks a sender's in-flight packets. Slots are indexed by
// sequence number modulo SeqSpace and reused once base moves past them.
type sendWindow struct {
	buffer [SeqSpace]Packet
	acked  [SeqSpace]bool
	base   int
	next   int
}

func (win *sendWindow) reset() {
	win.base = 0
	win.next = 0
	for i := range win.acked {
		win.acked[i] = false
		win.buffer[i] = Packet{}
	}
}

// inFlight is always in [0, WindowSize].
func (win *sendWindow) inFlight() int {
	return seqDistance(win.base, win.next)
}

func (win *sendWindow) isFull() bool {
	return win.inFlight() == WindowSize
}

func (win *sendWindow) isEmpty() bool {
	return win.base == win.next
}

// insert assumes the caller checked isFull.
func (win *sendWindow) insert(p Packet) {
	win.buffer[p.SeqNum%SeqSpace] = p
	win.acked[p.SeqNum%SeqSpace] = false
	win.next = nextSeqNum(win.next)
}

// oldest returns the packet at base, the only one ever retransmitted.
func (win *sendWindow) oldest() Packet {
	return win.buffer[win.base]
}

func (win *sendWindow) contains(seqNum int) bool {
	return inWindow(seqNum, win.base, win.next)
}

func (win *sendWindow) isAcked(seqNum int) bool {
	return win.acked[seqNum%SeqSpace]
}

func (win *sendWindow) markAcked(seqNum int) {
	win.acked[seqNum%SeqSpace] = true
}

// slide advances base over the consecutively acknowledged slots, clearing
// each flag for reuse.
func (win *sendWindow) slide() int {
	moved := 0
	for !win.isEmpty() && win.acked[win.base] {
		win.acked[win.base] = false
		win.base = nextSeqNum(win.base)
		moved++
	}
	return moved
}
