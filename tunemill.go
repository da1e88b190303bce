package tunemill

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Device palette.
var (
	ColorWhite     = mustHex("#F2F2F7")
	ColorLightGrey = mustHex("#8E8E93")
	ColorGrey      = mustHex("#3A3A3C")
	ColorBlack     = mustHex("#1C1C1E")
	ColorBlue      = mustHex("#0A84FF")

	// ColorNullWhite is ColorWhite with zero alpha. Fading text between
	// ColorWhite and ColorNullWhite keeps the hue fixed.
	ColorNullWhite = Color{ColorWhite.R, ColorWhite.G, ColorWhite.B, 0}
)

// ParseHex parses "#RRGGBB" or "#RRGGBBAA". The leading '#' is optional.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("tunemill: invalid hex color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("tunemill: invalid hex color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

func mustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// RGBA converts the color to a premultiplied 8-bit color for renderers.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(math.Round(clamp01(c.R) * a * 255)),
		G: uint8(math.Round(clamp01(c.G) * a * 255)),
		B: uint8(math.Round(clamp01(c.B) * a * 255)),
		A: uint8(math.Round(a * 255)),
	}
}

// Hex formats the color as "#RRGGBBAA".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X",
		uint8(math.Round(clamp01(c.R)*255)),
		uint8(math.Round(clamp01(c.G)*255)),
		uint8(math.Round(clamp01(c.B)*255)),
		uint8(math.Round(clamp01(c.A)*255)))
}

// Value is the 4-component vector every animated property is blended in.
// Colors map R,G,B,A to X,Y,Z,W; scalars use X only.
type Value struct {
	X, Y, Z, W float64
}

// ColorValue wraps a color as a Value.
func ColorValue(c Color) Value {
	return Value{c.R, c.G, c.B, c.A}
}

// ScalarValue wraps a scalar as a Value.
func ScalarValue(f float64) Value {
	return Value{X: f}
}

// Color returns the value as a color.
func (v Value) Color() Color {
	return Color{v.X, v.Y, v.Z, v.W}
}

// Scalar returns the first component.
func (v Value) Scalar() float64 {
	return v.X
}

// TargetID names an addressable target (a text, a panel, the cursor).
type TargetID string

// Property identifies which field of a target a tween writes.
type Property string

const (
	PropertyColor           Property = "color"
	PropertyTextColor       Property = "text.color"
	PropertyBackgroundColor Property = "background.color"
	PropertyRotation        Property = "rotation"
	PropertyAlpha           Property = "alpha"
)

// EventType identifies a kind of engine event.
type EventType uint8

const (
	EventCompletion EventType = iota // a timeline finished its final repetition
	EventTransition                  // the state machine switched state
	EventDiagnostic                  // a tick-time condition was recovered locally
)

func (t EventType) String() string {
	switch t {
	case EventCompletion:
		return "completion"
	case EventTransition:
		return "transition"
	case EventDiagnostic:
		return "diagnostic"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(t))
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
