package tunemill

import (
	"fmt"
	"math"
	"sort"
)

// SegmentKind distinguishes delay segments from tween segments.
type SegmentKind uint8

const (
	SegmentDelay SegmentKind = iota // holds for Duration, writes nothing
	SegmentTween                    // interpolates From to To over Duration
)

// Segment is one timed step of a Timeline. Durations are in seconds.
type Segment struct {
	Kind     SegmentKind
	Duration float32
	Easing   Easing
	Property Property
	From, To Value
}

// Delay returns a segment that waits without changing any value. A zero
// duration is allowed.
func Delay(seconds float32) Segment {
	return Segment{Kind: SegmentDelay, Duration: seconds}
}

// Tween returns a segment that interpolates property p from one value to
// another. The duration must be positive.
func Tween(seconds float32, e Easing, p Property, from, to Value) Segment {
	return Segment{Kind: SegmentTween, Duration: seconds, Easing: e, Property: p, From: from, To: to}
}

// ColorTween is Tween for colors.
func ColorTween(seconds float32, e Easing, p Property, from, to Color) Segment {
	return Tween(seconds, e, p, ColorValue(from), ColorValue(to))
}

// Value returns the segment's value at ratio r in [0, 1]. Delays return
// the zero Value.
func (s *Segment) Value(r float32) Value {
	if s.Kind != SegmentTween {
		return Value{}
	}
	return Interpolate(s.From, s.To, s.Easing, r)
}

// Timeline is an immutable sequence of segments, optionally repeated, that
// carries a completion payload. Build one with NewTimeline or Sequence.
type Timeline struct {
	segments   []Segment
	starts     []float64 // prefix sums of segment durations
	total      float64
	repeat     int
	payload    int
	hasPayload bool
}

// NewTimeline builds a timeline that runs once and carries no payload.
func NewTimeline(segments ...Segment) (*Timeline, error) {
	return Sequence(segments...).Build()
}

// TimelineBuilder composes a Timeline step by step.
type TimelineBuilder struct {
	segments   []Segment
	repeat     int
	payload    int
	hasPayload bool
}

// Sequence starts a builder with the given segments.
func Sequence(segments ...Segment) *TimelineBuilder {
	b := &TimelineBuilder{repeat: 1}
	b.segments = append(b.segments, segments...)
	return b
}

// Then appends a segment.
func (b *TimelineBuilder) Then(s Segment) *TimelineBuilder {
	b.segments = append(b.segments, s)
	return b
}

// Delay appends a delay segment.
func (b *TimelineBuilder) Delay(seconds float32) *TimelineBuilder {
	return b.Then(Delay(seconds))
}

// Tween appends a tween segment.
func (b *TimelineBuilder) Tween(seconds float32, e Easing, p Property, from, to Value) *TimelineBuilder {
	return b.Then(Tween(seconds, e, p, from, to))
}

// ColorTween appends a color tween segment.
func (b *TimelineBuilder) ColorTween(seconds float32, e Easing, p Property, from, to Color) *TimelineBuilder {
	return b.Then(ColorTween(seconds, e, p, from, to))
}

// Repeat sets how many times the timeline plays. Only the last repetition
// emits a completion event.
func (b *TimelineBuilder) Repeat(n int) *TimelineBuilder {
	b.repeat = n
	return b
}

// Payload sets the value carried by the completion event.
func (b *TimelineBuilder) Payload(p int) *TimelineBuilder {
	b.payload = p
	b.hasPayload = true
	return b
}

// Build validates the segments and returns the timeline. Any violation
// yields an error wrapping ErrInvalidTimeline and no timeline.
func (b *TimelineBuilder) Build() (*Timeline, error) {
	if len(b.segments) == 0 {
		return nil, fmt.Errorf("tunemill: %w: no segments", ErrInvalidTimeline)
	}
	if b.repeat < 1 {
		return nil, fmt.Errorf("tunemill: %w: repeat count %d < 1", ErrInvalidTimeline, b.repeat)
	}
	tl := &Timeline{
		segments:   make([]Segment, len(b.segments)),
		starts:     make([]float64, len(b.segments)),
		repeat:     b.repeat,
		payload:    b.payload,
		hasPayload: b.hasPayload,
	}
	copy(tl.segments, b.segments)
	for i := range tl.segments {
		s := &tl.segments[i]
		d := float64(s.Duration)
		switch {
		case math.IsNaN(d) || math.IsInf(d, 0):
			return nil, fmt.Errorf("tunemill: %w: segment %d has duration %v", ErrInvalidTimeline, i, s.Duration)
		case s.Kind == SegmentTween && d <= 0:
			return nil, fmt.Errorf("tunemill: %w: tween segment %d has non-positive duration %v", ErrInvalidTimeline, i, s.Duration)
		case s.Kind == SegmentDelay && d < 0:
			return nil, fmt.Errorf("tunemill: %w: delay segment %d has negative duration %v", ErrInvalidTimeline, i, s.Duration)
		case s.Kind != SegmentDelay && s.Kind != SegmentTween:
			return nil, fmt.Errorf("tunemill: %w: segment %d has unknown kind %d", ErrInvalidTimeline, i, s.Kind)
		}
		tl.starts[i] = tl.total
		tl.total += d
	}
	return tl, nil
}

// MustBuild is like Build but panics on error. For static tables.
func (b *TimelineBuilder) MustBuild() *Timeline {
	tl, err := b.Build()
	if err != nil {
		panic(err)
	}
	return tl
}

// Duration returns the length of one repetition in seconds.
func (tl *Timeline) Duration() float64 { return tl.total }

// TotalDuration returns the length of all repetitions in seconds.
func (tl *Timeline) TotalDuration() float64 { return tl.total * float64(tl.repeat) }

// Repeat returns the repetition count.
func (tl *Timeline) Repeat() int { return tl.repeat }

// Len returns the number of segments.
func (tl *Timeline) Len() int { return len(tl.segments) }

// Segment returns a copy of segment i.
func (tl *Timeline) Segment(i int) Segment { return tl.segments[i] }

// Payload returns the completion payload and whether one was set.
func (tl *Timeline) Payload() (int, bool) { return tl.payload, tl.hasPayload }

// segmentAt finds the segment covering local time (within one repetition)
// and the ratio inside it. Zero-length segments are only returned when
// nothing else starts at the same instant.
func (tl *Timeline) segmentAt(local float64) (int, float32) {
	i := sort.Search(len(tl.starts), func(i int) bool { return tl.starts[i] > local }) - 1
	if i < 0 {
		i = 0
	}
	d := float64(tl.segments[i].Duration)
	if d <= 0 {
		return i, 1
	}
	r := (local - tl.starts[i]) / d
	if r < 0 {
		r = 0
	} else if r > 1 {
		r = 1
	}
	return i, float32(r)
}

// Cursor is the playback state of a Timeline: the elapsed time across all
// repetitions. The zero Cursor is not usable; create one with Start.
type Cursor struct {
	tl      *Timeline
	elapsed float64
}

// Start returns a cursor positioned at the beginning of the timeline.
func (tl *Timeline) Start() Cursor {
	return Cursor{tl: tl}
}

// Timeline returns the timeline the cursor plays.
func (c *Cursor) Timeline() *Timeline { return c.tl }

// Elapsed returns the time played so far, clamped to the total duration.
func (c *Cursor) Elapsed() float64 { return c.elapsed }

// Complete reports whether the final repetition has ended.
func (c *Cursor) Complete() bool { return c.elapsed >= c.tl.TotalDuration() }

// Iteration returns the zero-based repetition being played.
func (c *Cursor) Iteration() int {
	it, _ := c.position()
	return it
}

// Advance moves the cursor forward by dt seconds and reports the current
// segment index, the ratio within it, and whether the timeline is complete.
// Negative or NaN deltas do not move the cursor.
func (c *Cursor) Advance(dt float32) (ratio float32, index int, complete bool) {
	if dt > 0 {
		c.elapsed += float64(dt)
	}
	if limit := c.tl.TotalDuration(); c.elapsed > limit {
		c.elapsed = limit
	}
	_, local := c.position()
	index, ratio = c.tl.segmentAt(local)
	return ratio, index, c.Complete()
}

// position splits elapsed time into repetition and local time.
func (c *Cursor) position() (iteration int, local float64) {
	tl := c.tl
	if tl.total <= 0 {
		return tl.repeat - 1, 0
	}
	if c.Complete() {
		return tl.repeat - 1, tl.total
	}
	iteration = int(c.elapsed / tl.total)
	if iteration >= tl.repeat {
		iteration = tl.repeat - 1
	}
	return iteration, c.elapsed - float64(iteration)*tl.total
}
