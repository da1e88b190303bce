package tunemill

import "time"

// Engine is the top-level object that owns the animation player, the state
// machine, the event queue and the device model. A host calls Tick once
// per frame with the elapsed seconds; everything happens synchronously
// inside that call and nothing is shared across goroutines.
type Engine struct {
	player   *Player
	machine  *Machine
	device   *Device
	resolver Resolver
	queue    EventQueue
	diag     Diagnostics
	store    EventSink

	injectQueue []injectedInput
	runner      *ScriptRunner

	elapsed float64
	ticks   uint64
}

// NewEngine creates an engine that writes animated values through resolver
// and runs the states described by table. A nil table means DefaultTable.
func NewEngine(resolver Resolver, table *TransitionTable) *Engine {
	if table == nil {
		table = DefaultTable()
	}
	e := &Engine{resolver: resolver, device: NewDevice()}
	e.player = NewPlayer(resolver, &e.queue, &e.diag)
	e.machine = NewMachine(table, e.player, &e.queue, &e.diag)
	return e
}

// Player returns the animation player.
func (e *Engine) Player() *Player { return e.player }

// Machine returns the state machine.
func (e *Engine) Machine() *Machine { return e.machine }

// Device returns the device model.
func (e *Engine) Device() *Device { return e.device }

// State returns the active state.
func (e *Engine) State() AppState { return e.machine.Current() }

// Diagnostics returns the live counters.
func (e *Engine) Diagnostics() *Diagnostics { return &e.diag }

// Elapsed returns the total seconds ticked so far.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// Ticks returns how many times Tick ran.
func (e *Engine) Ticks() uint64 { return e.ticks }

// SetEventSink sets the optional receiver of drained events.
func (e *Engine) SetEventSink(sink EventSink) {
	e.store = sink
}

// SetLogger replaces the stderr logger. Pass DiscardLogger to silence it.
func (e *Engine) SetLogger(l Logger) {
	e.diag.logger = l
}

// SetDebugMode enables or disables debug mode. When enabled, transitions
// and redundant requests are logged as info and per-tick timing stats are
// printed.
func (e *Engine) SetDebugMode(enabled bool) {
	e.diag.debug = enabled
}

// Start enters the initial state and delivers the resulting events. Tick
// calls it on first use.
func (e *Engine) Start() {
	if e.machine.Started() {
		return
	}
	e.machine.Start()
	e.drain()
}

// Tick advances the engine by dt seconds: scripted and injected inputs are
// applied, every timeline is advanced and written, then queued events are
// delivered to the sink and the state machine in order.
func (e *Engine) Tick(dt float32) {
	e.Start()
	if dt < 0 || dt != dt {
		dt = 0
	}
	e.ticks++
	e.elapsed += float64(dt)

	if e.runner != nil {
		e.runner.step(e)
	}
	e.processInjectedInput()

	var stats tickStats
	var t0 time.Time
	debug := e.diag.debug
	if debug {
		t0 = time.Now()
		stats.completions = e.diag.Completions
		stats.transitions = e.diag.Transitions
	}

	e.player.Update(dt)

	if debug {
		stats.playerTime = time.Since(t0)
		stats.events = e.queue.Len()
		t0 = time.Now()
	}

	e.drain()
	e.device.update(dt, e.resolver)

	if debug {
		stats.drainTime = time.Since(t0)
		stats.active = e.player.Len()
		stats.completions = e.diag.Completions - stats.completions
		stats.transitions = e.diag.Transitions - stats.transitions
		e.debugCheckActive()
		e.debugLog(stats)
	}
}

// drain delivers every queued event. Completion events that carry a
// payload are claimed by the state machine as raw state requests.
func (e *Engine) drain() {
	for {
		ev, ok := e.queue.Pop()
		if !ok {
			return
		}
		if e.store != nil {
			e.store.EmitEvent(ev)
		}
		if ev.Type == EventCompletion {
			e.diag.infof("animation on %q completed", ev.Target)
			if ev.HasPayload {
				_ = e.machine.RequestRaw(ev.Payload)
			}
		}
	}
}
