// Package tunemill is the animation and state-transition engine behind the
// TUNE MILL device front-end.
//
// The engine is driven by a host loop (an Ebitengine game, a terminal
// screen, a test) that calls [Engine.Tick] once per frame with the elapsed
// seconds. Everything happens synchronously inside that call: there are no
// goroutines and no locks.
//
// # Quick start
//
//	targets := tunemill.DefaultTargets()
//	engine := tunemill.NewEngine(targets, tunemill.DefaultTable())
//	for running {
//		engine.Tick(1.0 / 60)
//		text, _ := targets.Get(tunemill.TargetMainText)
//		draw(text.Color(tunemill.PropertyTextColor, tunemill.ColorNullWhite))
//	}
//
// # Timelines
//
// A [Timeline] is an immutable sequence of delay and tween segments built
// with [Sequence] or [NewTimeline]:
//
//	tl, err := tunemill.Sequence().
//		Delay(0.5).
//		ColorTween(0.25, tunemill.EaseCubicIn, tunemill.PropertyTextColor, tunemill.ColorWhite, tunemill.ColorNullWhite).
//		Payload(int(tunemill.StateHome)).
//		Build()
//
// Tween durations must be positive; [ErrInvalidTimeline] is returned
// otherwise. Colors are blended linearly as 4-vectors (see [Interpolate]),
// shaped by an [Easing] curve from [gween].
//
// # Playback
//
// The [Player] binds timelines to targets by [TargetID]. Targets are looked
// up through a [Resolver] on every tick; when a target disappears its
// animations are dropped silently and counted in [Diagnostics]. A timeline
// that finishes queues one [EventCompletion] carrying its payload.
//
// # States
//
// The [Machine] holds the active [AppState]. A completion payload or an
// explicit request ([Engine.InjectState], [Engine.InjectRequest]) switches
// state immediately; the [TransitionTable] declares, per state, the
// timelines armed on entry, an optional entry callback, and whether the
// state's animations are cancelled or kept when it is left. Tables can be
// written in YAML and loaded with [LoadTable].
//
// Adapters live in sub-packages: ecs (Donburi worlds as targets and event
// sinks), midiin (hardware controller messages), ebitenhost and termhost
// (ready-made host loops).
//
// [gween]: https://github.com/tanema/gween
package tunemill
