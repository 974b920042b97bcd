package srarq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratorCyclesLetters(t *testing.T) {
	gen := NewGeneratorSource(3)
	for i := 0; i < 3; i++ {
		m, ok := gen.Next()
		assert.True(t, ok)
		assert.Equal(t, fillPayload(byte('a'+i)), m.Data)
	}
	_, ok := gen.Next()
	assert.False(t, ok)
}

func TestGeneratorDropsRequeued(t *testing.T) {
	gen := NewGeneratorSource(1)
	m, ok := gen.Next()
	assert.True(t, ok)
	gen.Requeue(m)
	_, ok = gen.Next()
	assert.False(t, ok)
}

func TestStreamSourceChunksAndPads(t *testing.T) {
	data := []byte("0123456789012345678901234")
	src := NewStreamSource(data)

	first, ok := src.Next()
	assert.True(t, ok)
	assert.Equal(t, data[:PayloadSize], first.Data[:])

	second, ok := src.Next()
	assert.True(t, ok)
	var want [PayloadSize]byte
	copy(want[:], data[PayloadSize:])
	assert.Equal(t, want, second.Data)

	_, ok = src.Next()
	assert.False(t, ok)
}

func TestStreamSourceRequeueComesBackFirst(t *testing.T) {
	data := []byte("abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJKLMN")
	src := NewStreamSource(data)

	first, _ := src.Next()
	src.Requeue(first)
	again, ok := src.Next()
	assert.True(t, ok)
	assert.Equal(t, first, again)

	second, ok := src.Next()
	assert.True(t, ok)
	assert.Equal(t, data[PayloadSize:2*PayloadSize], second.Data[:])
}

func TestStreamSinkRoundtrip(t *testing.T) {
	data := []byte("round and round the ring buffer goes")
	sink := NewStreamSink(len(data))
	for off := 0; off < len(data); off += PayloadSize {
		var chunk [PayloadSize]byte
		copy(chunk[:], data[off:])
		sink.Deliver(chunk)
	}
	assert.Equal(t, data, sink.Bytes(len(data)))
}

func TestEmptyStreamSource(t *testing.T) {
	src := NewStreamSource(nil)
	_, ok := src.Next()
	assert.False(t, ok)
}
