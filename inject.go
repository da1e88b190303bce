package tunemill

type inputKind uint8

const (
	inputRequest inputKind = iota
	inputRotation
	inputNote
)

// injectedInput is one external input event queued for the next tick.
type injectedInput struct {
	kind  inputKind
	raw   int
	steps int
	note  Note
}

// InjectRequest queues an explicit state request by raw ordinal. It is
// decoded and applied at the start of the next Tick; undecodable values
// are reported and ignored.
func (e *Engine) InjectRequest(raw int) {
	e.injectQueue = append(e.injectQueue, injectedInput{kind: inputRequest, raw: raw})
}

// InjectState queues an explicit request for s.
func (e *Engine) InjectState(s AppState) {
	e.InjectRequest(int(s))
}

// InjectRotation queues a handle turn of steps detents.
func (e *Engine) InjectRotation(steps int) {
	if steps == 0 {
		return
	}
	e.injectQueue = append(e.injectQueue, injectedInput{kind: inputRotation, steps: steps})
}

// InjectNote queues a played note.
func (e *Engine) InjectNote(n Note) {
	e.injectQueue = append(e.injectQueue, injectedInput{kind: inputNote, note: n})
}

// processInjectedInput applies every queued input in order. Requests go
// through the state machine; errors are already counted and logged there.
func (e *Engine) processInjectedInput() {
	for i := range e.injectQueue {
		in := e.injectQueue[i]
		switch in.kind {
		case inputRequest:
			_ = e.machine.RequestRaw(in.raw)
		case inputRotation:
			e.device.Rotate(in.steps)
		case inputNote:
			e.device.SetNote(in.note)
		}
	}
	clear(e.injectQueue)
	e.injectQueue = e.injectQueue[:0]
}
