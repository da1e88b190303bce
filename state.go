package tunemill

import (
	"fmt"
	"strings"
)

// AppState is one screen of the device front-end. Exactly one is active.
type AppState int

const (
	StateSplash AppState = iota
	StateHome
	StateStepSequencer
	StateEditTrack
	StateEditPitch
	StateModeExecution
	StateGenerator

	stateCount
)

var stateNames = [stateCount]string{
	StateSplash:        "Splash",
	StateHome:          "Home",
	StateStepSequencer: "StepSequencer",
	StateEditTrack:     "EditTrack",
	StateEditPitch:     "EditPitch",
	StateModeExecution: "ModeExecution",
	StateGenerator:     "Generator",
}

func (s AppState) String() string {
	if s.Valid() {
		return stateNames[s]
	}
	return fmt.Sprintf("AppState(%d)", int(s))
}

// Valid reports whether s is one of the defined states.
func (s AppState) Valid() bool {
	return s >= 0 && s < stateCount
}

// States returns every state in ordinal order.
func States() []AppState {
	out := make([]AppState, stateCount)
	for i := range out {
		out[i] = AppState(i)
	}
	return out
}

// DecodeState converts a raw ordinal, such as a completion payload, into a
// state. Out-of-range values yield ErrInvalidStateRequest.
func DecodeState(raw int) (AppState, error) {
	s := AppState(raw)
	if !s.Valid() {
		return StateSplash, fmt.Errorf("%w: no such state: %d", ErrInvalidStateRequest, raw)
	}
	return s, nil
}

// ParseAppState matches a state name ignoring case, '-', '_' and spaces, so
// "step-sequencer", "StepSequencer" and "step_sequencer" are equivalent.
func ParseAppState(name string) (AppState, error) {
	key := normalizeStateName(name)
	for i, n := range stateNames {
		if strings.ToLower(n) == key {
			return AppState(i), nil
		}
	}
	return StateSplash, fmt.Errorf("tunemill: %w %q", ErrUnknownState, name)
}

func normalizeStateName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// ExitPolicy decides what happens to a state's animations when the machine
// leaves it.
type ExitPolicy uint8

const (
	ExitCancel  ExitPolicy = iota // drop the state's entries without completion events
	ExitPersist                   // let them run to completion under the next state
)

func (p ExitPolicy) String() string {
	switch p {
	case ExitCancel:
		return "cancel"
	case ExitPersist:
		return "persist"
	default:
		return fmt.Sprintf("ExitPolicy(%d)", uint8(p))
	}
}

// Arm is a timeline started on a target whenever its state is entered.
type Arm struct {
	Target   TargetID
	Timeline *Timeline
}

// EntryContext is passed to an EntryAction.
type EntryContext struct {
	From, To AppState
	Player   *Player
	// Armed holds the handles of the state's Arm list, in order.
	Armed []Handle
}

// PlayOwned starts tl on target owned by the state being entered.
func (c *EntryContext) PlayOwned(target TargetID, tl *Timeline) Handle {
	return c.Player.PlayOwned(c.To, target, tl)
}

// EntryAction runs synchronously, exactly once per transition into a state.
type EntryAction func(ctx *EntryContext)

// StateConfig declares how a state is entered and left.
type StateConfig struct {
	Exit  ExitPolicy
	Arm   []Arm
	Entry EntryAction
}

// TransitionTable maps every state to its configuration. The zero config
// cancels on exit, arms nothing and has no entry action.
type TransitionTable struct {
	Initial AppState
	states  [stateCount]StateConfig
}

// NewTransitionTable returns an empty table starting in StateSplash.
func NewTransitionTable() *TransitionTable {
	return &TransitionTable{Initial: StateSplash}
}

// Config returns the configuration of s.
func (t *TransitionTable) Config(s AppState) StateConfig {
	if !s.Valid() {
		return StateConfig{}
	}
	return t.states[s]
}

// Set replaces the configuration of s. The setters ignore invalid states.
func (t *TransitionTable) Set(s AppState, cfg StateConfig) *TransitionTable {
	if !s.Valid() {
		return t
	}
	t.states[s] = cfg
	return t
}

// On sets the entry action of s.
func (t *TransitionTable) On(s AppState, action EntryAction) *TransitionTable {
	if !s.Valid() {
		return t
	}
	t.states[s].Entry = action
	return t
}

// SetExit sets the exit policy of s.
func (t *TransitionTable) SetExit(s AppState, p ExitPolicy) *TransitionTable {
	if !s.Valid() {
		return t
	}
	t.states[s].Exit = p
	return t
}

// Arm adds a timeline started on target whenever s is entered.
func (t *TransitionTable) Arm(s AppState, target TargetID, tl *Timeline) *TransitionTable {
	if !s.Valid() {
		return t
	}
	t.states[s].Arm = append(t.states[s].Arm, Arm{Target: target, Timeline: tl})
	return t
}

// Machine is the application state machine. Transitions are immediate and
// synchronous: the previous state's exit policy is applied, the new state's
// timelines are armed, its entry action runs once, and an EventTransition
// is queued.
type Machine struct {
	current AppState
	started bool
	table   *TransitionTable
	player  *Player
	queue   *EventQueue
	diag    *Diagnostics
}

// NewMachine creates a machine over table that arms timelines on player.
// queue and diag may be nil.
func NewMachine(table *TransitionTable, player *Player, queue *EventQueue, diag *Diagnostics) *Machine {
	if table == nil {
		table = NewTransitionTable()
	}
	if diag == nil {
		diag = &Diagnostics{}
	}
	return &Machine{current: table.Initial, table: table, player: player, queue: queue, diag: diag}
}

// Current returns the active state.
func (m *Machine) Current() AppState { return m.current }

// Started reports whether the initial state has been entered.
func (m *Machine) Started() bool { return m.started }

// Start enters the initial state. Later calls do nothing.
func (m *Machine) Start() {
	if m.started {
		return
	}
	m.started = true
	m.enter(m.current, m.current)
}

// Request asks for a transition to s. It returns an error wrapping
// ErrInvalidStateRequest or ErrRedundantStateRequest when nothing happens;
// both are also counted and logged, so tick-time callers may ignore them.
func (m *Machine) Request(s AppState) error {
	if !s.Valid() {
		return m.reject(fmt.Errorf("%w: no such state: %d", ErrInvalidStateRequest, int(s)))
	}
	m.Start()
	if s == m.current {
		m.diag.RedundantStateRequests++
		err := fmt.Errorf("%w: already in state %v", ErrRedundantStateRequest, s)
		m.diag.infof("%v", err)
		m.pushDiagnostic(err)
		return err
	}

	from := m.current
	if m.table.Config(from).Exit == ExitCancel {
		m.player.CancelOwned(from)
	}
	m.current = s
	m.diag.Transitions++
	m.diag.infof("switching from %v to %v", from, s)
	m.enter(from, s)
	if m.queue != nil {
		m.queue.Push(Event{Type: EventTransition, From: from, To: s})
	}
	return nil
}

// RequestRaw decodes raw into a state and requests it. Out-of-range values
// never panic; they are reported and the current state is kept.
func (m *Machine) RequestRaw(raw int) error {
	s, err := DecodeState(raw)
	if err != nil {
		return m.reject(err)
	}
	return m.Request(s)
}

func (m *Machine) reject(err error) error {
	m.diag.InvalidStateRequests++
	m.diag.warnf("%v (current %v)", err, m.current)
	m.pushDiagnostic(err)
	return err
}

func (m *Machine) pushDiagnostic(err error) {
	if m.queue != nil {
		m.queue.Push(Event{Type: EventDiagnostic, From: m.current, To: m.current, Err: err})
	}
}

func (m *Machine) enter(from, to AppState) {
	cfg := m.table.Config(to)
	ctx := EntryContext{From: from, To: to, Player: m.player}
	if len(cfg.Arm) > 0 {
		ctx.Armed = make([]Handle, 0, len(cfg.Arm))
		for _, a := range cfg.Arm {
			ctx.Armed = append(ctx.Armed, m.player.PlayOwned(to, a.Target, a.Timeline))
		}
	}
	if cfg.Entry != nil {
		cfg.Entry(&ctx)
	}
}
