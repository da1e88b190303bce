package tunemill

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action string `json:"action"`
	State  string `json:"state,omitempty"`
	Value  int    `json:"value,omitempty"`
	Steps  int    `json:"steps,omitempty"`
	Key    uint8  `json:"key,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner feeds scripted input to an Engine one step per tick, for
// headless runs and automated checks. Attach it with SetScriptRunner.
//
// Actions:
//
//	{"action": "request", "state": "home"}   explicit state request by name
//	{"action": "raw", "value": 999}          explicit request by raw ordinal
//	{"action": "rotate", "steps": -2}        turn the handle
//	{"action": "note", "key": 69}            play a MIDI key
//	{"action": "wait", "frames": 30}         idle for a number of ticks
//	{"action": "expect", "state": "home"}    record a failure unless in state
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadScript parses a JSON script and returns a ScriptRunner ready to be
// attached to an Engine via SetScriptRunner.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "request", "expect":
			if _, err := ParseAppState(st.State); err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
		case "note":
			if st.Key > MaxKey {
				return nil, fmt.Errorf("parse script: step %d: key %d out of range 0-%d", i, st.Key, MaxKey)
			}
		case "raw", "rotate", "wait":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScriptRunner attaches a runner. Its step method is called from Tick
// before injected input is processed.
func (e *Engine) SetScriptRunner(runner *ScriptRunner) {
	e.runner = runner
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Failures returns the messages of failed expect steps.
func (r *ScriptRunner) Failures() []string {
	return r.failures
}

// step advances the runner by one tick. Called from Engine.Tick.
func (r *ScriptRunner) step(e *Engine) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "request":
		s, _ := ParseAppState(st.State)
		e.InjectState(s)
	case "raw":
		e.InjectRequest(st.Value)
	case "rotate":
		e.InjectRotation(st.Steps)
	case "note":
		e.InjectNote(NoteFromKey(st.Key))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "expect":
		s, _ := ParseAppState(st.State)
		if cur := e.State(); cur != s {
			r.failures = append(r.failures, fmt.Sprintf("step %d: expected state %v, got %v at %.3fs", r.cursor-1, s, cur, e.Elapsed()))
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
