package tunemill

import "errors"

var (
	// ErrInvalidTimeline is returned when a timeline is built from segments
	// that violate duration constraints. No partial timeline is produced.
	ErrInvalidTimeline = errors.New("invalid timeline")

	// ErrUnresolvedTarget marks an entry whose target no longer resolves.
	// The player drops such entries without an event; it only shows up in
	// Diagnostics and the log.
	ErrUnresolvedTarget = errors.New("unresolved target")

	// ErrInvalidStateRequest is returned when a request does not decode to
	// a known AppState. The current state is preserved.
	ErrInvalidStateRequest = errors.New("invalid state request")

	// ErrRedundantStateRequest is returned when the requested state is
	// already active.
	ErrRedundantStateRequest = errors.New("redundant state request")

	ErrUnknownEasing = errors.New("unknown easing")
	ErrUnknownState  = errors.New("unknown state")
	ErrUnknownColor  = errors.New("unknown color")
)
