package srarq

import "github.com/smallnest/ringbuffer"

// MessageSource produces the outbound application traffic for a run.
type MessageSource interface {
	// Next returns the next message to submit, or false when the source
	// is exhausted.
	Next() (Message, bool)
	// Requeue hands back a message the sender rejected.
	Requeue(m Message)
}

// GeneratorSource emits a fixed number of messages, each payload filled
// with a single letter cycling through the alphabet. Rejected messages are
// dropped, like an application that cannot pause.
type GeneratorSource struct {
	count int
	sent  int
}

func NewGeneratorSource(count int) *GeneratorSource {
	return &GeneratorSource{count: count}
}

func (gen *GeneratorSource) Next() (Message, bool) {
	if gen.sent >= gen.count {
		return Message{}, false
	}
	var m Message
	letter := byte('a' + gen.sent%26)
	for i := range m.Data {
		m.Data[i] = letter
	}
	gen.sent++
	return m, true
}

func (gen *GeneratorSource) Requeue(Message) {}

// StreamSource chunks a byte stream into fixed size messages, the last
// chunk zero padded. Rejected messages are staged again, so the stream
// survives window full rejections without gaps.
type StreamSource struct {
	staging *ringbuffer.RingBuffer
	pending []Message
}

func NewStreamSource(data []byte) *StreamSource {
	staging := ringbuffer.New(len(data) + PayloadSize)
	_, _ = staging.Write(data)
	return &StreamSource{staging: staging}
}

func (src *StreamSource) Next() (Message, bool) {
	if n := len(src.pending); n > 0 {
		m := src.pending[n-1]
		src.pending = src.pending[:n-1]
		return m, true
	}
	if src.staging.IsEmpty() {
		return Message{}, false
	}
	var m Message
	n, err := src.staging.Read(m.Data[:])
	if err != nil || n == 0 {
		return Message{}, false
	}
	return m, true
}

func (src *StreamSource) Requeue(m Message) {
	src.pending = append(src.pending, m)
}

// StreamSink reassembles delivered payloads back into a byte stream.
type StreamSink struct {
	ring *ringbuffer.RingBuffer
}

// NewStreamSink sizes the sink for the given stream length, rounded up to
// whole payloads.
func NewStreamSink(streamLen int) *StreamSink {
	chunks := (streamLen + PayloadSize - 1) / PayloadSize
	capacity := chunks * PayloadSize
	if capacity == 0 {
		capacity = PayloadSize
	}
	return &StreamSink{ring: ringbuffer.New(capacity)}
}

func (sink *StreamSink) Deliver(payload [PayloadSize]byte) {
	_, _ = sink.ring.Write(payload[:])
}

// Bytes drains up to n reassembled bytes, trimming the final padding.
func (sink *StreamSink) Bytes(n int) []byte {
	out := make([]byte, n)
	read, _ := sink.ring.Read(out)
	return out[:read]
}
