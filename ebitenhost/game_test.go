package ebitenhost

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/tunemill"
)

func TestWheelAccumulator(t *testing.T) {
	var w wheelAccumulator
	if got := w.add(1); got != 1 {
		t.Errorf("one notch = %d, want 1", got)
	}
	if got := w.add(-2); got != -2 {
		t.Errorf("two notches back = %d, want -2", got)
	}

	// Trackpad deltas accumulate until a whole detent is reached.
	steps := 0
	for i := 0; i < 4; i++ {
		steps += w.add(0.3)
	}
	if steps != 1 {
		t.Errorf("4 x 0.3 = %d steps, want 1", steps)
	}
	if got := w.add(math.NaN()); got != 0 {
		t.Errorf("NaN delta = %d, want 0", got)
	}
}

func TestStateForKey(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want tunemill.AppState
		ok   bool
	}{
		{ebiten.Key1, tunemill.StateSplash, true},
		{ebiten.Key2, tunemill.StateHome, true},
		{ebiten.Key7, tunemill.StateGenerator, true},
		{ebiten.Key8, 0, false},
		{ebiten.KeyA, 0, false},
	}
	for _, tt := range tests {
		got, ok := stateForKey(tt.key)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("stateForKey(%v) = (%v, %v), want (%v, %v)", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width != 480 || cfg.Height != 480 || cfg.Title == "" {
		t.Errorf("DefaultConfig = %+v", cfg)
	}
}

func TestTickDelta(t *testing.T) {
	tests := []struct {
		tps  int
		want float32
	}{
		{60, 1.0 / 60},
		{120, 1.0 / 120},
		{ebiten.SyncWithFPS, 1.0 / 60},
		{0, 1.0 / 60},
	}
	for _, tt := range tests {
		if got := tickDelta(tt.tps); math.Abs(float64(got-tt.want)) > 1e-9 {
			t.Errorf("tickDelta(%d) = %v, want %v", tt.tps, got, tt.want)
		}
	}
}
