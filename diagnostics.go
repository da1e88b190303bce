package tunemill

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger is the logging sink. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// defaultLogger writes to stderr with the package prefix.
var defaultLogger Logger = log.New(os.Stderr, "[tunemill] ", 0)

// DiscardLogger drops everything.
var DiscardLogger Logger = log.New(io.Discard, "", 0)

// Diagnostics counts tick-time conditions that are recovered locally and
// never interrupt the tick loop. The host reads it through
// Engine.Diagnostics.
type Diagnostics struct {
	UnresolvedTargets      int
	InvalidStateRequests   int
	RedundantStateRequests int
	Completions            int
	Cancellations          int
	Transitions            int

	logger Logger
	debug  bool
}

func (d *Diagnostics) log() Logger {
	if d.logger == nil {
		return defaultLogger
	}
	return d.logger
}

// warnf always logs.
func (d *Diagnostics) warnf(format string, args ...any) {
	d.log().Printf("warn: "+format, args...)
}

// infof logs only in debug mode.
func (d *Diagnostics) infof(format string, args ...any) {
	if !d.debug {
		return
	}
	d.log().Printf("info: "+format, args...)
}

// String summarizes the counters.
func (d *Diagnostics) String() string {
	return fmt.Sprintf("completions: %d | cancellations: %d | transitions: %d | unresolved: %d | invalid: %d | redundant: %d",
		d.Completions, d.Cancellations, d.Transitions,
		d.UnresolvedTargets, d.InvalidStateRequests, d.RedundantStateRequests)
}

// tickStats holds per-tick timing and counts. Only populated in debug mode.
type tickStats struct {
	playerTime  time.Duration
	drainTime   time.Duration
	active      int
	events      int
	completions int
	transitions int
}

// debugLog prints per-tick stats.
func (e *Engine) debugLog(stats tickStats) {
	if !e.diag.debug {
		return
	}
	e.diag.log().Printf("tick %d | player: %v | drain: %v | active: %d | events: %d | completions: %d | transitions: %d",
		e.ticks, stats.playerTime, stats.drainTime, stats.active, stats.events, stats.completions, stats.transitions)
}

// debugMaxActive is the active-entry count above which a debug warning is
// printed once per tick.
const debugMaxActive = 256

func (e *Engine) debugCheckActive() {
	if n := e.player.Len(); n > debugMaxActive {
		e.diag.warnf("%d active animations (threshold %d)", n, debugMaxActive)
	}
}
