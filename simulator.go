package srarq

import (
	"container/heap"
	"math/rand"
	"time"
)

type eventKind int

const (
	evMessageArrival eventKind = iota
	evPacketArrival
	evTimerFire
)

type entityID int

const (
	entityA entityID = iota
	entityB
)

func (id entityID) String() string {
	if id == entityA {
		return "A"
	}
	return "B"
}

type event struct {
	at       time.Duration
	kind     eventKind
	entity   entityID
	packet   Packet
	order    int
	canceled bool
}

// eventQueue orders events by virtual time, insertion order breaks ties.
type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].order < q[j].order
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *eventQueue) Push(x interface{}) {
	*q = append(*q, x.(*event))
}

func (q *eventQueue) Pop() interface{} {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return ev
}

// Report summarizes a finished run.
type Report struct {
	Clock       time.Duration
	Submitted   int
	Accepted    int
	Transmitted int
	Lost        int
	Corrupted   int
	Sender      SenderStats
	Receiver    ReceiverStats
}

// Simulator drives one sender and one receiver over an unreliable channel
// with a virtual clock. The channel may lose or corrupt packets but never
// reorders them, each direction delivers in transmission order. All
// randomness comes from one seeded source, equal configs give equal runs.
type Simulator struct {
	cfg   Config
	rng   *rand.Rand
	trace *tracer

	queue eventQueue
	now   time.Duration
	order int

	sender   *Sender
	receiver *Receiver
	source   MessageSource
	sink     Application

	timers      [2]*event
	lastArrival [2]time.Duration

	acceptedLog  [][PayloadSize]byte
	deliveredLog [][PayloadSize]byte

	submitted   int
	transmitted int
	lost        int
	corrupted   int
}

// NewSimulator wires a fresh sender and receiver to the simulated channel.
// The sink may be nil, delivered payloads are recorded either way.
func NewSimulator(cfg Config, source MessageSource, sink Application) *Simulator {
	sim := &Simulator{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		trace:  newTracer(cfg.Trace),
		source: source,
		sink:   sink,
	}
	sim.sender = NewSender(&simNetwork{sim: sim, from: entityA}, &simTimer{sim: sim, entity: entityA})
	sim.receiver = NewReceiver(&simNetwork{sim: sim, from: entityB}, &simApplication{sim: sim})
	return sim
}

// Run processes events until none remain, then reports. The run terminates
// once the source is exhausted and every accepted packet got through.
func (sim *Simulator) Run() Report {
	sim.scheduleNextArrival()
	for sim.queue.Len() > 0 {
		ev := heap.Pop(&sim.queue).(*event)
		if ev.canceled {
			continue
		}
		sim.now = ev.at
		switch ev.kind {
		case evMessageArrival:
			sim.handleMessageArrival()
		case evPacketArrival:
			sim.handlePacketArrival(ev)
		case evTimerFire:
			sim.handleTimerFire(ev)
		}
	}
	return Report{
		Clock:       sim.now,
		Submitted:   sim.submitted,
		Accepted:    len(sim.acceptedLog),
		Transmitted: sim.transmitted,
		Lost:        sim.lost,
		Corrupted:   sim.corrupted,
		Sender:      sim.sender.Stats(),
		Receiver:    sim.receiver.Stats(),
	}
}

// Delivered returns the payloads handed to the application, in order.
func (sim *Simulator) Delivered() [][PayloadSize]byte {
	return sim.deliveredLog
}

// Accepted returns the payloads the sender took responsibility for.
func (sim *Simulator) Accepted() [][PayloadSize]byte {
	return sim.acceptedLog
}

func (sim *Simulator) schedule(at time.Duration, kind eventKind, entity entityID, p Packet) *event {
	ev := &event{at: at, kind: kind, entity: entity, packet: p, order: sim.order}
	sim.order++
	heap.Push(&sim.queue, ev)
	return ev
}

func (sim *Simulator) scheduleNextArrival() {
	gap := time.Duration(sim.rng.Float64() * 2 * sim.cfg.Interarrival * float64(time.Second))
	sim.schedule(sim.now+gap, evMessageArrival, entityA, Packet{})
}

func (sim *Simulator) handleMessageArrival() {
	m, ok := sim.source.Next()
	if !ok {
		sim.trace.printf(TraceInternal, "sim: source exhausted")
		return
	}
	sim.submitted++
	status := sim.sender.Submit(m)
	if status == Success {
		sim.acceptedLog = append(sim.acceptedLog, m.Data)
	} else {
		sim.trace.printf(TraceEvents, "A: submit rejected, %s", status)
		sim.source.Requeue(m)
	}
	sim.trace.printf(TraceState, "A: %d in flight", sim.sender.InFlight())
	sim.scheduleNextArrival()
}

func (sim *Simulator) handlePacketArrival(ev *event) {
	if ev.entity == entityA {
		status := sim.sender.OnAck(ev.packet)
		sim.trace.printf(TraceEvents, "A: %s, %s", ev.packet, status)
		sim.trace.printf(TraceState, "A: %d in flight", sim.sender.InFlight())
		return
	}
	status := sim.receiver.OnPacket(ev.packet)
	sim.trace.printf(TraceEvents, "B: %s, %s", ev.packet, status)
}

func (sim *Simulator) handleTimerFire(ev *event) {
	sim.timers[ev.entity] = nil
	if ev.entity == entityA {
		sim.trace.printf(TraceEvents, "A: timeout")
		sim.sender.OnTimeout()
	}
}

// transmit pushes a packet into the channel. Loss and corruption are
// decided here, the arrival keeps each direction in order by never being
// scheduled before the previous one.
func (sim *Simulator) transmit(from entityID, p Packet) {
	sim.transmitted++
	dest := entityB
	if from == entityB {
		dest = entityA
	}
	sim.trace.printf(TraceState, "sim: %s transmits %s", from, p)
	if sim.rng.Float64() < sim.cfg.Loss {
		sim.lost++
		sim.trace.printf(TraceState, "sim: %s lost", p)
		return
	}
	if sim.rng.Float64() < sim.cfg.Corrupt {
		p = sim.corruptPacket(p)
		sim.corrupted++
		sim.trace.printf(TraceState, "sim: %s corrupted in transit", p)
	}
	arrive := sim.now
	if sim.lastArrival[dest] > arrive {
		arrive = sim.lastArrival[dest]
	}
	arrive += time.Duration((1 + sim.rng.Float64()*9) * float64(time.Second))
	sim.lastArrival[dest] = arrive
	sim.schedule(arrive, evPacketArrival, dest, p)
	sim.trace.printf(TraceInternal, "sim: arrival at %s scheduled for %v", dest, arrive)
}

// corruptPacket flips one byte of the wire image, mostly in the payload,
// never in the checksum field.
func (sim *Simulator) corruptPacket(p Packet) Packet {
	buffer := p.Marshal()
	x := sim.rng.Float64()
	switch {
	case x < 0.75:
		buffer[payloadPosition.Start] ^= 0xff
	case x < 0.875:
		buffer[seqNumPosition.End-1] ^= 0xff
	default:
		buffer[ackNumPosition.End-1] ^= 0xff
	}
	mangled, _ := UnmarshalPacket(buffer)
	return mangled
}

func (sim *Simulator) startTimer(entity entityID, d time.Duration) {
	if sim.timers[entity] != nil {
		sim.trace.printf(TraceEvents, "sim: warning: timer for %s already running", entity)
		return
	}
	sim.timers[entity] = sim.schedule(sim.now+d, evTimerFire, entity, Packet{})
}

func (sim *Simulator) stopTimer(entity entityID) {
	if sim.timers[entity] == nil {
		sim.trace.printf(TraceEvents, "sim: warning: no timer running for %s", entity)
		return
	}
	sim.timers[entity].canceled = true
	sim.timers[entity] = nil
}

type simNetwork struct {
	sim  *Simulator
	from entityID
}

func (net *simNetwork) Transmit(p Packet) {
	net.sim.transmit(net.from, p)
}

type simTimer struct {
	sim    *Simulator
	entity entityID
}

func (t *simTimer) Start(d time.Duration) {
	t.sim.startTimer(t.entity, d)
}

func (t *simTimer) Stop() {
	t.sim.stopTimer(t.entity)
}

type simApplication struct {
	sim *Simulator
}

func (app *simApplication) Deliver(payload [PayloadSize]byte) {
	app.sim.deliveredLog = append(app.sim.deliveredLog, payload)
	if app.sim.sink != nil {
		app.sim.sink.Deliver(payload)
	}
	app.sim.trace.printf(TraceEvents, "B: delivered %q", payload[:])
}
