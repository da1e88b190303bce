package tunemill

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) contains(sub string) bool {
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

func newTestEngine(table *TransitionTable) (*Engine, *Targets, *[]Event) {
	targets := DefaultTargets()
	if table == nil {
		table = DefaultTable()
	}
	e := NewEngine(targets, table)
	e.SetLogger(DiscardLogger)
	var events []Event
	e.SetEventSink(EventSinkFunc(func(ev Event) { events = append(events, ev) }))
	return e, targets, &events
}

func countEvents(events []Event, typ EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

// TestSplashScenario drives a wordmark fade at 10 Hz: hold, fade out,
// hold, fade back in, then hand over to Home.
func TestSplashScenario(t *testing.T) {
	e, targets, events := newTestEngine(NewTransitionTable())
	logo := targets.Register("logo")
	logo.SetProperty(PropertyColor, ColorValue(ColorWhite))

	tl := Sequence().
		Delay(0.5).
		ColorTween(0.25, EaseCubicIn, PropertyColor, ColorWhite, ColorNullWhite).
		Delay(2.0).
		ColorTween(0.25, EaseCubicOut, PropertyColor, ColorNullWhite, ColorWhite).
		Payload(int(StateHome)).
		MustBuild()
	e.Player().Play("logo", tl)

	alpha := func() float64 { return logo.Color(PropertyColor, ColorBlue).A }

	var prev float64
	for tick := 1; tick <= 30; tick++ {
		e.Tick(0.1)
		a := alpha()
		switch {
		case tick <= 5:
			if math.Abs(a-1) > 1e-6 {
				t.Errorf("tick %d: alpha %v, want unchanged 1", tick, a)
			}
		case tick == 6 || tick == 7:
			if a <= 0 || a >= 1 {
				t.Errorf("tick %d: alpha %v, want fading", tick, a)
			}
			if tick == 7 && a >= prev {
				t.Errorf("tick 7: alpha %v did not decrease from %v", a, prev)
			}
		case tick >= 8 && tick <= 27:
			if a != 0 {
				t.Errorf("tick %d: alpha %v, want transparent", tick, a)
			}
		case tick == 28 || tick == 29:
			if a <= 0 || a >= 1 {
				t.Errorf("tick %d: alpha %v, want fading back", tick, a)
			}
		}
		if tick < 30 {
			if e.State() != StateSplash {
				t.Fatalf("tick %d: state %v before completion", tick, e.State())
			}
			if n := countEvents(*events, EventCompletion); n != 0 {
				t.Fatalf("tick %d: %d completions before total duration", tick, n)
			}
		}
		prev = a
	}

	if got := logo.Color(PropertyColor, ColorBlue); got != ColorWhite {
		t.Errorf("final color = %+v, want white", got)
	}
	if e.State() != StateHome {
		t.Errorf("state = %v after completion, want Home", e.State())
	}
	if n := countEvents(*events, EventCompletion); n != 1 {
		t.Errorf("completions = %d, want 1", n)
	}
	if n := countEvents(*events, EventTransition); n != 1 {
		t.Errorf("transitions = %d, want 1", n)
	}

	for i := 0; i < 10; i++ {
		e.Tick(0.1)
	}
	if n := countEvents(*events, EventCompletion); n != 1 {
		t.Errorf("completion re-emitted: %d", n)
	}
}

func TestDefaultFlowReachesHome(t *testing.T) {
	e, targets, events := newTestEngine(nil)
	bg, _ := targets.Get(TargetBackground)
	grid, _ := targets.Get(TargetGrid)
	text, _ := targets.Get(TargetMainText)

	for i := 0; i < 11; i++ {
		e.Tick(0.25)
	}
	if e.State() != StateSplash {
		t.Fatalf("state = %v at 2.75s, want Splash", e.State())
	}
	e.Tick(0.25)
	if e.State() != StateHome {
		t.Fatalf("state = %v at 3s, want Home", e.State())
	}
	if got := text.Color(PropertyTextColor, ColorBlue); got.A != 0 {
		t.Errorf("main text alpha = %v after splash, want 0", got.A)
	}

	for i := 0; i < 4; i++ {
		e.Tick(0.25)
	}
	if got := bg.Color(PropertyBackgroundColor, ColorBlue); got != ColorGrey {
		t.Errorf("background = %+v, want grey", got)
	}
	if got := grid.Scalar(PropertyAlpha, -1); got != 1 {
		t.Errorf("grid alpha = %v, want 1", got)
	}
	if n := countEvents(*events, EventTransition); n != 1 {
		t.Errorf("transitions = %d, want 1", n)
	}
	if d := e.Diagnostics(); d.Transitions != 1 || d.InvalidStateRequests != 0 {
		t.Errorf("diagnostics: %s", d)
	}
}

func TestEngineStartIsLazy(t *testing.T) {
	e, _, _ := newTestEngine(nil)
	if e.Machine().Started() {
		t.Fatal("engine started before first tick")
	}
	e.Tick(0)
	if !e.Machine().Started() {
		t.Fatal("first tick should start the machine")
	}
	if e.Player().Len() != 2 {
		t.Errorf("Len = %d, want the two splash timelines", e.Player().Len())
	}
}

func TestEngineIgnoresBadDelta(t *testing.T) {
	e, _, _ := newTestEngine(nil)
	e.Tick(-1)
	e.Tick(float32(math.NaN()))
	if e.Elapsed() != 0 {
		t.Errorf("Elapsed = %v, want 0", e.Elapsed())
	}
	if e.Ticks() != 2 {
		t.Errorf("Ticks = %d, want 2", e.Ticks())
	}
}

func TestInjectedRequests(t *testing.T) {
	e, _, events := newTestEngine(nil)
	e.InjectState(StateStepSequencer)
	e.Tick(1.0 / 60)
	if e.State() != StateStepSequencer {
		t.Fatalf("state = %v, want StepSequencer", e.State())
	}
	// Splash cancels on exit: its payload never fires.
	if e.Player().Len() != 0 {
		t.Errorf("Len = %d after leaving Splash", e.Player().Len())
	}

	e.InjectState(StateStepSequencer)
	e.InjectRequest(999)
	e.InjectRequest(-1)
	e.Tick(1.0 / 60)
	if e.State() != StateStepSequencer {
		t.Errorf("state changed to %v", e.State())
	}
	d := e.Diagnostics()
	if d.RedundantStateRequests != 1 || d.InvalidStateRequests != 2 {
		t.Errorf("diagnostics: %s", d)
	}
	if n := countEvents(*events, EventDiagnostic); n != 3 {
		t.Errorf("diagnostic events = %d, want 3", n)
	}

	for i := 0; i < 300; i++ {
		e.Tick(1.0 / 60)
	}
	if e.State() != StateStepSequencer {
		t.Errorf("cancelled splash payload switched state to %v", e.State())
	}
}

func TestInjectedRotationAndNote(t *testing.T) {
	e, targets, _ := newTestEngine(nil)
	e.Device().CursorTarget = TargetCursor
	cursor, _ := targets.Get(TargetCursor)

	e.InjectRotation(2)
	e.InjectRotation(0)
	e.InjectNote(NoteFromKey(69))
	e.Tick(0.05)

	dev := e.Device()
	if dev.RotationDegrees != 30 {
		t.Errorf("RotationDegrees = %d, want 30", dev.RotationDegrees)
	}
	if !dev.HasNote || dev.LastNote.Scientific != "A4" || dev.InputVoltage != 0.75 {
		t.Errorf("note state: %+v", dev.LastNote)
	}
	if !dev.Turning() {
		t.Error("cursor should still be turning")
	}

	e.Tick(0.5)
	want := 30 * math.Pi / 180
	if got := cursor.Scalar(PropertyRotation, -1); math.Abs(got-want) > 1e-5 {
		t.Errorf("cursor rotation = %v, want %v", got, want)
	}
}

func TestDebugModeLogs(t *testing.T) {
	e, _, _ := newTestEngine(nil)
	l := &recordingLogger{}
	e.SetLogger(l)
	e.SetDebugMode(true)

	e.InjectState(StateHome)
	e.Tick(0.1)
	e.InjectState(StateHome)
	e.Tick(0.1)

	if !l.contains("switching from Splash to Home") {
		t.Errorf("missing transition log in %q", l.lines)
	}
	if !l.contains("tick 2") {
		t.Errorf("missing tick stats in %q", l.lines)
	}
	if !l.contains("already in state Home") {
		t.Errorf("missing redundant request log in %q", l.lines)
	}
}

func TestWarningsLogWithoutDebug(t *testing.T) {
	e, _, _ := newTestEngine(nil)
	l := &recordingLogger{}
	e.SetLogger(l)

	e.Tick(0.1)
	e.Tick(0.1)
	if len(l.lines) != 0 {
		t.Errorf("non-debug engine logged %q", l.lines)
	}

	e.InjectRequest(999)
	e.Tick(0.1)
	if !l.contains("warn:") || !l.contains("999") {
		t.Errorf("invalid request not logged as warning: %q", l.lines)
	}
}
