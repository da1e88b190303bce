// Package ebitenhost runs a tunemill engine inside an Ebitengine window and
// draws the stock scene: background, grid, the TUNE MILL wordmark and the
// rotary cursor.
//
// Controls: keys 1-7 request a state, the mouse wheel turns the handle,
// Escape quits.
package ebitenhost

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/tunemill"
)

// Config holds window and overlay settings.
type Config struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool

	// BeforeTick runs on the game goroutine before every engine tick, for
	// draining input sources such as a MIDI decoder.
	BeforeTick func(e *tunemill.Engine)
	// Done ends the run loop when it returns true.
	Done func() bool
}

// DefaultConfig is a square 480x480 window.
func DefaultConfig() Config {
	return Config{Title: "TUNE MILL", Width: 480, Height: 480}
}

const (
	mainTextSize = 48
	subTextSize  = 18
	gridSpacing  = 24
	cursorLength = 60
	cursorWidth  = 4
)

// Game implements ebiten.Game over an engine and the property sets it
// animates.
type Game struct {
	engine  *tunemill.Engine
	targets *tunemill.Targets
	cfg     Config

	mainFace *text.GoTextFace
	subFace  *text.GoTextFace
	cursor   *ebiten.Image
	fps      *fpsOverlay
	wheel    wheelAccumulator
}

// New creates a game. The engine should resolve targets through targets,
// normally tunemill.DefaultTargets.
func New(engine *tunemill.Engine, targets *tunemill.Targets, cfg Config) (*Game, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		def := DefaultConfig()
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	mainFace, err := loadFace(mainTextSize)
	if err != nil {
		return nil, err
	}
	subFace, err := loadFace(subTextSize)
	if err != nil {
		return nil, err
	}
	cursor := ebiten.NewImage(cursorWidth, cursorLength)
	cursor.Fill(color.White)

	g := &Game{
		engine:   engine,
		targets:  targets,
		cfg:      cfg,
		mainFace: mainFace,
		subFace:  subFace,
		cursor:   cursor,
	}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	if engine.Device().CursorTarget == "" {
		engine.Device().CursorTarget = tunemill.TargetCursor
	}
	return g, nil
}

// Run opens the window and blocks until it is closed.
func Run(engine *tunemill.Engine, targets *tunemill.Targets, cfg Config) error {
	g, err := New(engine, targets, cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("ebitenhost: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for _, key := range justPressedStateKeys() {
		if s, ok := stateForKey(key); ok {
			g.engine.InjectState(s)
		}
	}
	_, dy := ebiten.Wheel()
	if steps := g.wheel.add(dy); steps != 0 {
		g.engine.InjectRotation(steps)
	}

	if g.cfg.BeforeTick != nil {
		g.cfg.BeforeTick(g.engine)
	}
	dt := tickDelta(ebiten.TPS())
	g.engine.Tick(dt)

	if g.fps != nil {
		g.fps.update(float64(dt), g.engine)
	}
	if g.cfg.Done != nil && g.cfg.Done() {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	w := float32(g.cfg.Width)
	h := float32(g.cfg.Height)

	screen.Fill(g.color(tunemill.TargetBackground, tunemill.PropertyBackgroundColor, tunemill.ColorBlack).RGBA())
	g.drawGrid(screen, w, h)
	g.drawText(screen, "TUNE MILL", g.mainFace, tunemill.TargetMainText, float64(w)/2, float64(h)/2-mainTextSize/2)
	g.drawText(screen, "TM", g.subFace, tunemill.TargetSubText, float64(w)/2, float64(h)/2+mainTextSize/2)

	if g.engine.State() != tunemill.StateSplash {
		g.drawCursor(screen, float64(w)/2, float64(h)/2)
	}

	ebitenutil.DebugPrintAt(screen, g.engine.State().String(), 4, int(h)-16)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func (g *Game) color(id tunemill.TargetID, p tunemill.Property, def tunemill.Color) tunemill.Color {
	set, ok := g.targets.Get(id)
	if !ok {
		return def
	}
	return set.Color(p, def)
}

func (g *Game) drawGrid(screen *ebiten.Image, w, h float32) {
	alpha := 0.0
	if set, ok := g.targets.Get(tunemill.TargetGrid); ok {
		alpha = set.Scalar(tunemill.PropertyAlpha, 0)
	}
	if alpha <= 0 {
		return
	}
	c := tunemill.ColorGrey
	c.A = alpha * 0.6
	clr := c.RGBA()
	for x := float32(gridSpacing); x < w; x += gridSpacing {
		vector.StrokeLine(screen, x, 0, x, h, 1, clr, false)
	}
	for y := float32(gridSpacing); y < h; y += gridSpacing {
		vector.StrokeLine(screen, 0, y, w, y, 1, clr, false)
	}
}

func (g *Game) drawText(screen *ebiten.Image, s string, face *text.GoTextFace, id tunemill.TargetID, cx, cy float64) {
	c := g.color(id, tunemill.PropertyTextColor, tunemill.ColorNullWhite)
	if c.A <= 0 {
		return
	}
	tw, th := text.Measure(s, face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx-tw/2, cy-th/2)
	op.ColorScale.ScaleWithColor(c.RGBA())
	text.Draw(screen, s, face, op)
}

func (g *Game) drawCursor(screen *ebiten.Image, cx, cy float64) {
	angle := g.engine.Device().CursorAngle()
	c := tunemill.ColorBlue
	if set, ok := g.targets.Get(tunemill.TargetCursor); ok {
		angle = set.Scalar(tunemill.PropertyRotation, angle)
		c = set.Color(tunemill.PropertyColor, c)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-cursorWidth/2, -cursorLength)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(c.RGBA())
	screen.DrawImage(g.cursor, op)

	vector.DrawFilledCircle(screen, float32(cx), float32(cy), cursorWidth, c.RGBA(), true)
}

// wheelAccumulator turns fractional wheel deltas (trackpads) into whole
// detents. Scrolling up turns the handle clockwise.
type wheelAccumulator struct {
	acc float64
}

func (w *wheelAccumulator) add(dy float64) int {
	if dy == 0 || math.IsNaN(dy) {
		return 0
	}
	w.acc += dy
	steps := int(w.acc)
	w.acc -= float64(steps)
	return steps
}

// tickDelta is the seconds per Update call. With ebiten.SyncWithFPS the TPS
// is not fixed, so a 60 Hz step is assumed.
func tickDelta(tps int) float32 {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return float32(1 / float64(tps))
}
