// Package ecs provides ECS adapters for tunemill.
//
// [NewResolver] lets animations write into [Donburi] entities: bind a
// TargetID to an entity and the player writes the Color, Rotation and Alpha
// components on every tick. Bindings are weak: once the entity is removed
// from the world, its animations are dropped.
//
// [NewSink] bridges engine events (completions, transitions, diagnostics)
// into the world as typed events. Subscribe to [EngineEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	resolver := ecs.NewResolver(world)
//	resolver.Bind(tunemill.TargetMainText, ecs.NewTarget(world, tunemill.ColorNullWhite))
//	engine := tunemill.NewEngine(resolver, nil)
//	engine.SetEventSink(ecs.NewSink(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
