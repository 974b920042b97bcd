package srarq

import "time"

type fakeNetwork struct {
	transmitted []Packet
}

func (net *fakeNetwork) Transmit(p Packet) {
	net.transmitted = append(net.transmitted, p)
}

func (net *fakeNetwork) last() Packet {
	return net.transmitted[len(net.transmitted)-1]
}

func (net *fakeNetwork) reset() {
	net.transmitted = nil
}

type fakeTimer struct {
	running bool
	starts  int
	stops   int
}

func (t *fakeTimer) Start(time.Duration) {
	t.running = true
	t.starts++
}

func (t *fakeTimer) Stop() {
	t.running = false
	t.stops++
}

type fakeApp struct {
	delivered [][PayloadSize]byte
}

func (app *fakeApp) Deliver(payload [PayloadSize]byte) {
	app.delivered = append(app.delivered, payload)
}

func fillPayload(letter byte) [PayloadSize]byte {
	var payload [PayloadSize]byte
	for i := range payload {
		payload[i] = letter
	}
	return payload
}

func makeMessage(letter byte) Message {
	return Message{Data: fillPayload(letter)}
}

func corruptChecksum(p Packet) Packet {
	p.Checksum++
	return p
}
