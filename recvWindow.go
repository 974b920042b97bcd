package srarq

// recvWindow buffers packets that arrive ahead of the delivery point until
// the sequence at base shows up, then releases the contiguous run in order.
type recvWindow struct {
	buffer   [SeqSpace]Packet
	occupied [SeqSpace]bool
	base     int
}

func (win *recvWindow) reset() {
	win.base = 0
	for i := range win.occupied {
		win.occupied[i] = false
		win.buffer[i] = Packet{}
	}
}

// inCurrentWindow reports whether the sequence number is one the receiver
// still waits for.
func (win *recvWindow) inCurrentWindow(seqNum int) bool {
	return inWindow(seqNum, win.base, (win.base+WindowSize)%SeqSpace)
}

// inPreviousWindow reports whether the sequence number was delivered
// already and only needs its acknowledgment repeated.
func (win *recvWindow) inPreviousWindow(seqNum int) bool {
	prevStart := (win.base - WindowSize + SeqSpace) % SeqSpace
	return inWindow(seqNum, prevStart, win.base)
}

func (win *recvWindow) isNew(seqNum int) bool {
	return !win.occupied[seqNum%SeqSpace]
}

func (win *recvWindow) insert(p Packet) {
	win.buffer[p.SeqNum%SeqSpace] = p
	win.occupied[p.SeqNum%SeqSpace] = true
}

// removeSequence releases the contiguous run of buffered packets starting
// at base, nil while the packet at base is still missing.
func (win *recvWindow) removeSequence() []Packet {
	if !win.occupied[win.base] {
		return nil
	}
	var ret []Packet
	for win.occupied[win.base] {
		ret = append(ret, win.buffer[win.base])
		win.occupied[win.base] = false
		win.buffer[win.base] = Packet{}
		win.base = nextSeqNum(win.base)
	}
	return ret
}
