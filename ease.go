package tunemill

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

// Easing selects a shaping curve for a tween. Every curve is monotonic on
// [0, 1] with f(0) = 0 and f(1) = 1.
type Easing uint8

const (
	EaseLinear Easing = iota
	EaseQuadIn
	EaseQuadOut
	EaseQuadInOut
	EaseCubicIn
	EaseCubicOut
	EaseCubicInOut
	EaseQuartIn
	EaseQuartOut
	EaseQuartInOut
	EaseQuintIn
	EaseQuintOut
	EaseQuintInOut
	EaseSineIn
	EaseSineOut
	EaseSineInOut
	EaseExpoIn
	EaseExpoOut
	EaseExpoInOut
	EaseCircIn
	EaseCircOut
	EaseCircInOut

	easingCount
)

// Overshooting curves (back, elastic, bounce) are left out: they are not
// monotonic.
var easingFuncs = [easingCount]ease.TweenFunc{
	EaseLinear:     ease.Linear,
	EaseQuadIn:     ease.InQuad,
	EaseQuadOut:    ease.OutQuad,
	EaseQuadInOut:  ease.InOutQuad,
	EaseCubicIn:    ease.InCubic,
	EaseCubicOut:   ease.OutCubic,
	EaseCubicInOut: ease.InOutCubic,
	EaseQuartIn:    ease.InQuart,
	EaseQuartOut:   ease.OutQuart,
	EaseQuartInOut: ease.InOutQuart,
	EaseQuintIn:    ease.InQuint,
	EaseQuintOut:   ease.OutQuint,
	EaseQuintInOut: ease.InOutQuint,
	EaseSineIn:     ease.InSine,
	EaseSineOut:    ease.OutSine,
	EaseSineInOut:  ease.InOutSine,
	EaseExpoIn:     ease.InExpo,
	EaseExpoOut:    ease.OutExpo,
	EaseExpoInOut:  ease.InOutExpo,
	EaseCircIn:     ease.InCirc,
	EaseCircOut:    ease.OutCirc,
	EaseCircInOut:  ease.InOutCirc,
}

var easingNames = [easingCount]string{
	EaseLinear:     "linear",
	EaseQuadIn:     "quad-in",
	EaseQuadOut:    "quad-out",
	EaseQuadInOut:  "quad-in-out",
	EaseCubicIn:    "cubic-in",
	EaseCubicOut:   "cubic-out",
	EaseCubicInOut: "cubic-in-out",
	EaseQuartIn:    "quart-in",
	EaseQuartOut:   "quart-out",
	EaseQuartInOut: "quart-in-out",
	EaseQuintIn:    "quint-in",
	EaseQuintOut:   "quint-out",
	EaseQuintInOut: "quint-in-out",
	EaseSineIn:     "sine-in",
	EaseSineOut:    "sine-out",
	EaseSineInOut:  "sine-in-out",
	EaseExpoIn:     "expo-in",
	EaseExpoOut:    "expo-out",
	EaseExpoInOut:  "expo-in-out",
	EaseCircIn:     "circ-in",
	EaseCircOut:    "circ-out",
	EaseCircInOut:  "circ-in-out",
}

// aliases accepted by ParseEasing in addition to the canonical names.
var easingAliases = map[string]Easing{
	"quadratic-in":       EaseQuadIn,
	"quadratic-out":      EaseQuadOut,
	"quadratic-in-out":   EaseQuadInOut,
	"quartic-in":         EaseQuartIn,
	"quartic-out":        EaseQuartOut,
	"quartic-in-out":     EaseQuartInOut,
	"quintic-in":         EaseQuintIn,
	"quintic-out":        EaseQuintOut,
	"quintic-in-out":     EaseQuintInOut,
	"exponential-in":     EaseExpoIn,
	"exponential-out":    EaseExpoOut,
	"exponential-in-out": EaseExpoInOut,
	"circular-in":        EaseCircIn,
	"circular-out":       EaseCircOut,
	"circular-in-out":    EaseCircInOut,
}

func (e Easing) String() string {
	if e < easingCount {
		return easingNames[e]
	}
	return fmt.Sprintf("Easing(%d)", uint8(e))
}

// ParseEasing maps a curve name such as "cubic-in-out" or "quintic-in-out"
// to an Easing. Matching ignores case and accepts '_' for '-'.
func ParseEasing(name string) (Easing, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, n := range easingNames {
		if n == key {
			return Easing(i), nil
		}
	}
	if e, ok := easingAliases[key]; ok {
		return e, nil
	}
	return EaseLinear, fmt.Errorf("tunemill: %w %q", ErrUnknownEasing, name)
}

// Apply maps normalized time t to normalized progress. t is clamped to
// [0, 1] and both endpoints are exact.
func (e Easing) Apply(t float32) float32 {
	if t <= 0 || t != t {
		return 0
	}
	if t >= 1 {
		return 1
	}
	fn := ease.Linear
	if e < easingCount {
		fn = easingFuncs[e]
	}
	v := fn(t, 0, 1, 1)
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
