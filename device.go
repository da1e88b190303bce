package tunemill

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RotationStepDegrees is how far one encoder detent (or mouse-wheel notch)
// turns the handle.
const RotationStepDegrees = 15

// cursorTurnDuration is how long the cursor takes to catch up with the
// handle after it moves.
const cursorTurnDuration float32 = 0.2

// Device mirrors the hardware controls: the rotary handle, the CV input and
// the last played note. The on-screen cursor follows the handle with an
// eased turn and is written to CursorTarget's PropertyRotation each tick.
type Device struct {
	// RotationDegrees is the handle angle in [0, 360).
	RotationDegrees int
	// InputVoltage is the control voltage of the last note, 1 V/oct.
	InputVoltage float32
	// LastNote is the most recent note received; valid when HasNote.
	LastNote Note
	HasNote  bool

	// CursorTarget receives the cursor angle in radians. Empty disables it.
	CursorTarget TargetID

	cursorAngle float64
	cursorTween *gween.Tween
	cursorEase  ease.TweenFunc
}

// NewDevice returns a device with the handle at 0 degrees.
func NewDevice() *Device {
	return &Device{cursorEase: ease.OutCubic}
}

// NormalizeDegrees wraps any angle into [0, 360).
func NormalizeDegrees(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// SetRotationDegrees sets the handle angle, wrapping it into [0, 360), and
// starts turning the cursor toward it along the shorter arc.
func (d *Device) SetRotationDegrees(deg int) {
	d.RotationDegrees = NormalizeDegrees(deg)
	goal := float64(d.RotationDegrees) * math.Pi / 180
	delta := math.Remainder(goal-d.cursorAngle, 2*math.Pi)
	fn := d.cursorEase
	if fn == nil {
		fn = ease.OutCubic
	}
	d.cursorTween = gween.New(float32(d.cursorAngle), float32(d.cursorAngle+delta), cursorTurnDuration, fn)
}

// Rotate turns the handle by steps detents; negative steps turn it back.
func (d *Device) Rotate(steps int) {
	d.SetRotationDegrees(d.RotationDegrees + steps*RotationStepDegrees)
}

// SetNote records a played note and its control voltage.
func (d *Device) SetNote(n Note) {
	d.LastNote = n
	d.HasNote = true
	d.InputVoltage = n.ControlVoltage
}

// CursorAngle returns the current cursor angle in radians. It may leave
// [0, 2π) while turning across 0.
func (d *Device) CursorAngle() float64 {
	return d.cursorAngle
}

// Turning reports whether the cursor is still catching up with the handle.
func (d *Device) Turning() bool {
	return d.cursorTween != nil
}

// update advances the cursor turn and writes the angle to CursorTarget.
// Called from Engine.Tick.
func (d *Device) update(dt float32, r Resolver) {
	if d.cursorTween != nil {
		val, done := d.cursorTween.Update(dt)
		d.cursorAngle = float64(val)
		if done {
			d.cursorAngle = math.Mod(d.cursorAngle, 2*math.Pi)
			if d.cursorAngle < 0 {
				d.cursorAngle += 2 * math.Pi
			}
			d.cursorTween = nil
		}
	}
	if d.CursorTarget == "" || r == nil {
		return
	}
	if t, ok := r.Resolve(d.CursorTarget); ok && t != nil {
		t.SetProperty(PropertyRotation, ScalarValue(d.cursorAngle))
	}
}
