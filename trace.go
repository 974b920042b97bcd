package srarq

import (
	"log"
	"os"
)

// Trace levels. Level 1 prints protocol events, 2 adds window state
// transitions, 3 adds the emulator's internal decisions.
const (
	TraceOff = iota
	TraceEvents
	TraceState
	TraceInternal
)

type tracer struct {
	level  int
	logger *log.Logger
}

func newTracer(level int) *tracer {
	return &tracer{level: level, logger: log.New(os.Stdout, "", 0)}
}

func (t *tracer) printf(level int, format string, v ...interface{}) {
	if t == nil || t.level < level {
		return
	}
	t.logger.Printf(format, v...)
}
