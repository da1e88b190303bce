package tunemill

// Target is a writable set of animated properties, such as a text's color
// or the cursor's rotation.
type Target interface {
	SetProperty(p Property, v Value)
}

// Resolver looks up targets by identifier. It is consulted on every tick,
// so entries hold a weak reference: once a target stops resolving, the
// entries bound to it are dropped.
type Resolver interface {
	Resolve(id TargetID) (Target, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(id TargetID) (Target, bool)

// Resolve calls f(id).
func (f ResolverFunc) Resolve(id TargetID) (Target, bool) { return f(id) }

// Handle identifies one playing timeline. Handles are generational: a
// handle whose entry finished or was cancelled never matches a later entry
// that reuses the same slot. The zero Handle matches nothing.
type Handle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.generation == 0 }

type slot struct {
	generation uint32
	pos        int // index into Player.entries, -1 when free
}

type entry struct {
	handle Handle
	target TargetID
	owner  AppState
	owned  bool
	cursor Cursor
}

// Player advances every active timeline by the tick delta and writes the
// interpolated values to their targets. Entries are updated in insertion
// order; a timeline that finishes its final repetition queues exactly one
// EventCompletion and leaves the active set.
//
// There is no global animation manager. The Engine owns one Player and
// calls Update once per tick.
type Player struct {
	entries  []entry
	slots    []slot
	free     []uint32
	resolver Resolver
	queue    *EventQueue
	diag     *Diagnostics
}

// NewPlayer creates a player that resolves targets with r and pushes
// completion events to q. q and d may be nil.
func NewPlayer(r Resolver, q *EventQueue, d *Diagnostics) *Player {
	if d == nil {
		d = &Diagnostics{}
	}
	return &Player{resolver: r, queue: q, diag: d}
}

// Play starts tl on target and returns its handle.
func (p *Player) Play(target TargetID, tl *Timeline) Handle {
	return p.add(entry{target: target, cursor: tl.Start()})
}

// PlayOwned starts tl on target on behalf of a state. The state's exit
// policy decides whether the entry survives leaving that state.
func (p *Player) PlayOwned(owner AppState, target TargetID, tl *Timeline) Handle {
	return p.add(entry{target: target, owner: owner, owned: true, cursor: tl.Start()})
}

func (p *Player) add(e entry) Handle {
	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		idx = uint32(len(p.slots))
		p.slots = append(p.slots, slot{pos: -1})
	}
	s := &p.slots[idx]
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	s.pos = len(p.entries)
	e.handle = Handle{index: idx, generation: s.generation}
	p.entries = append(p.entries, e)
	return e.handle
}

func (p *Player) lookup(h Handle) (int, bool) {
	if h.IsZero() || int(h.index) >= len(p.slots) {
		return 0, false
	}
	s := p.slots[h.index]
	if s.generation != h.generation || s.pos < 0 {
		return 0, false
	}
	return s.pos, true
}

func (p *Player) release(h Handle) {
	p.slots[h.index].pos = -1
	p.free = append(p.free, h.index)
}

// Active reports whether h is still playing.
func (p *Player) Active(h Handle) bool {
	_, ok := p.lookup(h)
	return ok
}

// Len returns the number of active entries.
func (p *Player) Len() int { return len(p.entries) }

// Elapsed returns how far h has played. ok is false once h is inactive.
func (p *Player) Elapsed(h Handle) (elapsed float64, ok bool) {
	pos, ok := p.lookup(h)
	if !ok {
		return 0, false
	}
	return p.entries[pos].cursor.Elapsed(), true
}

// Cancel removes h from the active set without emitting a completion
// event. It reports whether h was active.
func (p *Player) Cancel(h Handle) bool {
	pos, ok := p.lookup(h)
	if !ok {
		return false
	}
	p.removeAt(pos)
	p.diag.Cancellations++
	return true
}

// CancelOwned cancels every entry owned by state s and returns how many
// were removed.
func (p *Player) CancelOwned(s AppState) int {
	n := 0
	w := 0
	for i := range p.entries {
		e := &p.entries[i]
		if e.owned && e.owner == s {
			p.release(e.handle)
			n++
			continue
		}
		if w != i {
			p.entries[w] = *e
		}
		p.slots[p.entries[w].handle.index].pos = w
		w++
	}
	p.truncate(w)
	p.diag.Cancellations += n
	return n
}

// Clear cancels everything.
func (p *Player) Clear() {
	for i := range p.entries {
		p.release(p.entries[i].handle)
	}
	p.diag.Cancellations += len(p.entries)
	p.truncate(0)
}

func (p *Player) removeAt(pos int) {
	p.release(p.entries[pos].handle)
	copy(p.entries[pos:], p.entries[pos+1:])
	p.truncate(len(p.entries) - 1)
	for i := pos; i < len(p.entries); i++ {
		p.slots[p.entries[i].handle.index].pos = i
	}
}

func (p *Player) truncate(n int) {
	clear(p.entries[n:])
	p.entries = p.entries[:n]
}

// Update advances every entry by dt seconds. Entries whose target no
// longer resolves are dropped without an event.
func (p *Player) Update(dt float32) {
	w := 0
	for i := range p.entries {
		e := &p.entries[i]
		if !p.step(e, dt) {
			p.release(e.handle)
			continue
		}
		if w != i {
			p.entries[w] = *e
		}
		p.slots[p.entries[w].handle.index].pos = w
		w++
	}
	p.truncate(w)
}

// step advances one entry and reports whether it stays active.
func (p *Player) step(e *entry, dt float32) bool {
	target, ok := p.resolver.Resolve(e.target)
	if !ok || target == nil {
		p.diag.UnresolvedTargets++
		p.diag.warnf("%v: %q, dropping animation", ErrUnresolvedTarget, e.target)
		return false
	}

	prev := e.cursor.Elapsed()
	ratio, index, done := e.cursor.Advance(dt)
	tl := e.cursor.Timeline()
	iteration := e.cursor.Iteration()

	p.applyCrossed(target, tl, prev, e.cursor.Elapsed(), iteration, index)

	if seg := &tl.segments[index]; seg.Kind == SegmentTween {
		target.SetProperty(seg.Property, seg.Value(ratio))
	}

	if !done {
		return true
	}
	p.diag.Completions++
	if p.queue != nil {
		payload, has := tl.Payload()
		p.queue.Push(Event{
			Type:       EventCompletion,
			Handle:     e.handle,
			Target:     e.target,
			Payload:    payload,
			HasPayload: has,
		})
	}
	return false
}

// applyCrossed writes the end value of every tween segment that finished
// strictly inside (prev, cur], except the segment the cursor now sits in.
// Only the last two repetitions are visited since earlier writes would be
// overwritten anyway.
func (p *Player) applyCrossed(target Target, tl *Timeline, prev, cur float64, iteration, index int) {
	if tl.total <= 0 || cur <= prev {
		return
	}
	first := int(prev / tl.total)
	if iteration-first > 1 {
		first = iteration - 1
	}
	for k := first; k <= iteration; k++ {
		base := float64(k) * tl.total
		for i := range tl.segments {
			seg := &tl.segments[i]
			if seg.Kind != SegmentTween || (k == iteration && i == index) {
				continue
			}
			end := base + tl.starts[i] + float64(seg.Duration)
			if end > prev && end <= cur {
				target.SetProperty(seg.Property, seg.To)
			}
		}
	}
}
