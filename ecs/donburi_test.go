package ecs

import (
	"math"
	"testing"

	"github.com/phanxgames/tunemill"

	"github.com/yohamta/donburi"
)

func fade() *tunemill.Timeline {
	return tunemill.Sequence().
		ColorTween(1, tunemill.EaseLinear, tunemill.PropertyTextColor, tunemill.ColorWhite, tunemill.ColorNullWhite).
		MustBuild()
}

func TestResolverWritesComponents(t *testing.T) {
	world := donburi.NewWorld()
	r := NewResolver(world)
	e := NewTarget(world, tunemill.ColorWhite)
	r.Bind("logo", e)

	target, ok := r.Resolve("logo")
	if !ok {
		t.Fatal("bound entity did not resolve")
	}
	target.SetProperty(tunemill.PropertyRotation, tunemill.ScalarValue(1.5))
	target.SetProperty(tunemill.PropertyAlpha, tunemill.ScalarValue(0.25))
	target.SetProperty(tunemill.PropertyBackgroundColor, tunemill.ColorValue(tunemill.ColorBlue))
	target.SetProperty("unknown", tunemill.ScalarValue(9))

	entry := world.Entry(e)
	if got := RotationComponent.Get(entry).Radians; got != 1.5 {
		t.Errorf("rotation = %v, want 1.5", got)
	}
	if got := AlphaComponent.Get(entry).Value; got != 0.25 {
		t.Errorf("alpha = %v, want 0.25", got)
	}
	if got := *ColorComponent.Get(entry); got != tunemill.ColorBlue {
		t.Errorf("color = %+v, want blue", got)
	}
}

func TestResolverSkipsMissingComponents(t *testing.T) {
	world := donburi.NewWorld()
	r := NewResolver(world)
	e := world.Create(ColorComponent)
	r.Bind("swatch", e)

	target, _ := r.Resolve("swatch")
	target.SetProperty(tunemill.PropertyRotation, tunemill.ScalarValue(1))
	target.SetProperty(tunemill.PropertyColor, tunemill.ColorValue(tunemill.ColorGrey))

	entry := world.Entry(e)
	if entry.HasComponent(RotationComponent) {
		t.Error("rotation component was added")
	}
	if got := *ColorComponent.Get(entry); got != tunemill.ColorGrey {
		t.Errorf("color = %+v, want grey", got)
	}
}

func TestResolverUnbound(t *testing.T) {
	world := donburi.NewWorld()
	r := NewResolver(world)
	if _, ok := r.Resolve("nothing"); ok {
		t.Error("unbound id resolved")
	}
	e := NewTarget(world, tunemill.ColorWhite)
	r.Bind("x", e)
	if got, ok := r.Entity("x"); !ok || got != e {
		t.Errorf("Entity = %v, %v", got, ok)
	}
	r.Unbind("x")
	if _, ok := r.Resolve("x"); ok {
		t.Error("unbound id still resolves")
	}
}

func TestEngineAnimatesEntity(t *testing.T) {
	world := donburi.NewWorld()
	r := NewResolver(world)
	e := NewTarget(world, tunemill.ColorWhite)
	r.Bind("logo", e)

	engine := tunemill.NewEngine(r, tunemill.NewTransitionTable())
	engine.SetLogger(tunemill.DiscardLogger)
	engine.Player().Play("logo", fade())

	engine.Tick(0.5)
	got := ColorComponent.Get(world.Entry(e)).A
	if math.Abs(got-0.5) > 1e-6 {
		t.Errorf("alpha after 0.5s = %v, want 0.5", got)
	}
}

func TestRemovedEntityDropsAnimation(t *testing.T) {
	world := donburi.NewWorld()
	r := NewResolver(world)
	e := NewTarget(world, tunemill.ColorWhite)
	r.Bind("logo", e)

	engine := tunemill.NewEngine(r, tunemill.NewTransitionTable())
	engine.SetLogger(tunemill.DiscardLogger)
	var completions int
	engine.SetEventSink(tunemill.EventSinkFunc(func(ev tunemill.Event) {
		if ev.Type == tunemill.EventCompletion {
			completions++
		}
	}))
	h := engine.Player().Play("logo", fade())

	engine.Tick(0.25)
	world.Remove(e)
	engine.Tick(0.25)
	engine.Tick(1)

	if engine.Player().Active(h) {
		t.Error("animation on removed entity still active")
	}
	if completions != 0 {
		t.Errorf("completions = %d, want 0", completions)
	}
	if engine.Diagnostics().UnresolvedTargets != 1 {
		t.Errorf("UnresolvedTargets = %d, want 1", engine.Diagnostics().UnresolvedTargets)
	}
}

func TestSinkPublishesEvents(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewSink(world)

	var received []tunemill.Event
	EngineEventType.Subscribe(world, func(w donburi.World, e tunemill.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(tunemill.Event{Type: tunemill.EventCompletion, Target: "logo", Payload: 1, HasPayload: true})
	sink.EmitEvent(tunemill.Event{Type: tunemill.EventTransition, From: tunemill.StateSplash, To: tunemill.StateHome})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	EngineEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e0 := received[0]; e0.Type != tunemill.EventCompletion || e0.Target != "logo" || e0.Payload != 1 {
		t.Errorf("event 0: %+v", e0)
	}
	if e1 := received[1]; e1.Type != tunemill.EventTransition || e1.To != tunemill.StateHome {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestSinkReceivesEngineTransitions(t *testing.T) {
	world := donburi.NewWorld()
	r := NewResolver(world)
	for _, id := range []tunemill.TargetID{tunemill.TargetMainText, tunemill.TargetSubText, tunemill.TargetBackground, tunemill.TargetGrid} {
		r.Bind(id, NewTarget(world, tunemill.ColorNullWhite))
	}
	engine := tunemill.NewEngine(r, nil)
	engine.SetLogger(tunemill.DiscardLogger)
	engine.SetEventSink(NewSink(world))

	var transitions []tunemill.Event
	EngineEventType.Subscribe(world, func(w donburi.World, e tunemill.Event) {
		if e.Type == tunemill.EventTransition {
			transitions = append(transitions, e)
		}
	})

	for i := 0; i < 12; i++ {
		engine.Tick(0.25)
		EngineEventType.ProcessEvents(world)
	}
	if len(transitions) != 1 || transitions[0].From != tunemill.StateSplash || transitions[0].To != tunemill.StateHome {
		t.Errorf("transitions = %+v", transitions)
	}
}
