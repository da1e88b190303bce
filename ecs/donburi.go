package ecs

import (
	"github.com/phanxgames/tunemill"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Rotation is the component written for tunemill.PropertyRotation.
type Rotation struct {
	Radians float64
}

// Alpha is the component written for tunemill.PropertyAlpha.
type Alpha struct {
	Value float64
}

// Components written by the resolver. Color receives every color property
// (color, text.color, background.color).
var (
	ColorComponent    = donburi.NewComponentType[tunemill.Color]()
	RotationComponent = donburi.NewComponentType[Rotation]()
	AlphaComponent    = donburi.NewComponentType[Alpha]()
)

// EngineEventType is the Donburi event type for tunemill engine events.
// Subscribe to this in your ECS systems to receive completions, transitions
// and diagnostics.
var EngineEventType = events.NewEventType[tunemill.Event]()

// NewTarget creates an entity carrying all three animated components,
// starting at color c, no rotation and full alpha.
func NewTarget(world donburi.World, c tunemill.Color) donburi.Entity {
	e := world.Create(ColorComponent, RotationComponent, AlphaComponent)
	entry := world.Entry(e)
	ColorComponent.SetValue(entry, c)
	AlphaComponent.SetValue(entry, Alpha{Value: 1})
	return e
}

// Resolver maps target identifiers to entities of one world.
type Resolver struct {
	world    donburi.World
	bindings map[tunemill.TargetID]donburi.Entity
}

// NewResolver creates a resolver over world.
func NewResolver(world donburi.World) *Resolver {
	return &Resolver{world: world, bindings: make(map[tunemill.TargetID]donburi.Entity)}
}

// Bind points id at entity e, replacing any previous binding.
func (r *Resolver) Bind(id tunemill.TargetID, e donburi.Entity) {
	r.bindings[id] = e
}

// Unbind forgets id.
func (r *Resolver) Unbind(id tunemill.TargetID) {
	delete(r.bindings, id)
}

// Entity returns the entity bound to id.
func (r *Resolver) Entity(id tunemill.TargetID) (donburi.Entity, bool) {
	e, ok := r.bindings[id]
	return e, ok
}

// Resolve implements tunemill.Resolver. An id resolves only while its
// entity is still valid in the world.
func (r *Resolver) Resolve(id tunemill.TargetID) (tunemill.Target, bool) {
	e, ok := r.bindings[id]
	if !ok || !r.world.Valid(e) {
		return nil, false
	}
	return entityTarget{entry: r.world.Entry(e)}, true
}

type entityTarget struct {
	entry *donburi.Entry
}

// SetProperty writes v into the matching component. Properties without a
// matching component on the entity are ignored.
func (t entityTarget) SetProperty(p tunemill.Property, v tunemill.Value) {
	switch p {
	case tunemill.PropertyRotation:
		if t.entry.HasComponent(RotationComponent) {
			RotationComponent.SetValue(t.entry, Rotation{Radians: v.Scalar()})
		}
	case tunemill.PropertyAlpha:
		if t.entry.HasComponent(AlphaComponent) {
			AlphaComponent.SetValue(t.entry, Alpha{Value: v.Scalar()})
		}
	case tunemill.PropertyColor, tunemill.PropertyTextColor, tunemill.PropertyBackgroundColor:
		if t.entry.HasComponent(ColorComponent) {
			ColorComponent.SetValue(t.entry, v.Color())
		}
	}
}

type donburiSink struct {
	world donburi.World
}

// NewSink creates an EventSink backed by a Donburi world. Engine events are
// published to EngineEventType and can be consumed with events.Subscribe
// and ProcessEvents.
func NewSink(world donburi.World) tunemill.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event tunemill.Event) {
	EngineEventType.Publish(s.world, event)
}
