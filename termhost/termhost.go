// Package termhost runs a tunemill engine in a terminal with tcell and
// draws the stock scene with true-color cells.
//
// Controls: keys 1-7 request a state, the mouse wheel or the left/right
// arrows turn the handle, q or Escape quits.
package termhost

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/tunemill"
)

// DefaultFrameInterval ticks at roughly 60 Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// Config holds loop settings.
type Config struct {
	FrameInterval time.Duration

	// BeforeTick runs on the loop goroutine before every engine tick.
	BeforeTick func(e *tunemill.Engine)
	// Done ends the loop when it returns true.
	Done func() bool
}

// Host draws an engine's targets onto a tcell screen.
type Host struct {
	screen  tcell.Screen
	engine  *tunemill.Engine
	targets *tunemill.Targets
	cfg     Config
}

// New creates a host on an initialized screen.
func New(screen tcell.Screen, engine *tunemill.Engine, targets *tunemill.Targets, cfg Config) *Host {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	if engine.Device().CursorTarget == "" {
		engine.Device().CursorTarget = tunemill.TargetCursor
	}
	return &Host{screen: screen, engine: engine, targets: targets, cfg: cfg}
}

// Run opens the terminal, runs the loop until the user quits or ctx is
// done, and restores the terminal.
func Run(ctx context.Context, engine *tunemill.Engine, targets *tunemill.Targets, cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("termhost: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("termhost: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.Clear()

	return New(screen, engine, targets, cfg).Loop(ctx)
}

// Loop ticks the engine on a ticker and handles input until quit.
func (h *Host) Loop(ctx context.Context) error {
	ticker := time.NewTicker(h.cfg.FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go h.screen.ChannelEvents(events, quit)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !h.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			h.Step(float32(dt))
			if h.cfg.Done != nil && h.cfg.Done() {
				return nil
			}
		}
	}
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			h.engine.InjectRotation(-1)
		case tcell.KeyRight:
			h.engine.InjectRotation(1)
		case tcell.KeyRune:
			r := ev.Rune()
			switch {
			case r == 'q':
				return false
			case r >= '1' && r <= '7':
				h.engine.InjectState(tunemill.AppState(r - '1'))
			}
		}
	case *tcell.EventMouse:
		btn := ev.Buttons()
		if btn&tcell.WheelUp != 0 {
			h.engine.InjectRotation(1)
		}
		if btn&tcell.WheelDown != 0 {
			h.engine.InjectRotation(-1)
		}
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

// Step ticks the engine by dt seconds and redraws.
func (h *Host) Step(dt float32) {
	if h.cfg.BeforeTick != nil {
		h.cfg.BeforeTick(h.engine)
	}
	h.engine.Tick(dt)
	h.Draw()
}

// Draw renders the current property values.
func (h *Host) Draw() {
	w, ht := h.screen.Size()
	bg := h.color(tunemill.TargetBackground, tunemill.PropertyBackgroundColor, tunemill.ColorBlack)
	bg.A = 1
	base := tcell.StyleDefault.Background(rgb(bg))

	h.screen.Fill(' ', base)
	h.drawGrid(w, ht, bg, base)

	cx, cy := w/2, ht/2
	h.drawText("TUNE MILL", cx, cy-1, tunemill.TargetMainText, bg, base)
	h.drawText("TM", cx, cy+1, tunemill.TargetSubText, bg, base)
	if h.engine.State() != tunemill.StateSplash {
		h.drawCursor(cx, cy, bg, base)
	}

	status := h.engine.State().String()
	dev := h.engine.Device()
	status += fmt.Sprintf("  %d°", dev.RotationDegrees)
	if dev.HasNote {
		status += "  " + dev.LastNote.Scientific
	}
	h.put(0, ht-1, status, base.Foreground(rgb(tunemill.ColorLightGrey)))

	h.screen.Show()
}

func (h *Host) color(id tunemill.TargetID, p tunemill.Property, def tunemill.Color) tunemill.Color {
	set, ok := h.targets.Get(id)
	if !ok {
		return def
	}
	return set.Color(p, def)
}

func (h *Host) drawGrid(w, ht int, bg tunemill.Color, base tcell.Style) {
	alpha := 0.0
	if set, ok := h.targets.Get(tunemill.TargetGrid); ok {
		alpha = set.Scalar(tunemill.PropertyAlpha, 0)
	}
	if alpha <= 0 {
		return
	}
	c := tunemill.ColorGrey
	c.A = alpha
	style := base.Foreground(rgb(over(c, bg)))
	for y := 1; y < ht-1; y += 2 {
		for x := 2; x < w; x += 4 {
			h.screen.SetContent(x, y, '·', nil, style)
		}
	}
}

func (h *Host) drawText(s string, cx, y int, id tunemill.TargetID, bg tunemill.Color, base tcell.Style) {
	c := h.color(id, tunemill.PropertyTextColor, tunemill.ColorNullWhite)
	if c.A <= 0 {
		return
	}
	h.put(cx-len(s)/2, y, s, base.Foreground(rgb(over(c, bg))).Bold(true))
}

// drawCursor places a dot on an ellipse around the center. Terminal cells
// are about twice as tall as wide, so the horizontal radius is doubled.
func (h *Host) drawCursor(cx, cy int, bg tunemill.Color, base tcell.Style) {
	angle := h.engine.Device().CursorAngle()
	c := tunemill.ColorBlue
	if set, ok := h.targets.Get(tunemill.TargetCursor); ok {
		angle = set.Scalar(tunemill.PropertyRotation, angle)
		c = set.Color(tunemill.PropertyColor, c)
	}
	const radius = 3
	x := cx + int(math.Round(2*radius*math.Sin(angle)))
	y := cy - int(math.Round(radius*math.Cos(angle)))
	h.screen.SetContent(x, y, '●', nil, base.Foreground(rgb(over(c, bg))))
}

func (h *Host) put(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// over composites c onto an opaque background. Terminals have no alpha.
func over(c, bg tunemill.Color) tunemill.Color {
	a := c.A
	c.A = 1
	return tunemill.LerpColor(bg, c, a)
}

func rgb(c tunemill.Color) tcell.Color {
	return tcell.NewRGBColor(
		int32(math.Round(c.R*255)),
		int32(math.Round(c.G*255)),
		int32(math.Round(c.B*255)),
	)
}
