package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/tunemill"
)

// fpsOverlay displays FPS, TPS and the engine's active animation count.
// It is redrawn every ~0.5 seconds.
type fpsOverlay struct {
	img   *ebiten.Image
	since float64
}

func newFPSOverlay() *fpsOverlay {
	// 120x48 is enough for three short lines.
	return &fpsOverlay{img: ebiten.NewImage(120, 48), since: 0.5}
}

func (f *fpsOverlay) update(dt float64, e *tunemill.Engine) {
	f.since += dt
	if f.since < 0.5 {
		return
	}
	f.since = 0

	f.img.Clear()
	// Semi-transparent background for readability
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nActive: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), e.Player().Len()))
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(4, 4)
	screen.DrawImage(f.img, op)
}
