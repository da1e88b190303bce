package tunemill

import (
	"errors"
	"math"
	"testing"
)

func approxValue(a, b Value, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol && math.Abs(a.W-b.W) <= tol
}

func TestInterpolateLinearIsComponentWise(t *testing.T) {
	start := Value{0.2, 0.4, 0.6, 1.0}
	end := Value{1.0, 0.0, 0.6, 0.0}
	for _, tt := range []float32{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
		got := Interpolate(start, end, EaseLinear, tt)
		f := float64(tt)
		want := Value{
			X: start.X + f*(end.X-start.X),
			Y: start.Y + f*(end.Y-start.Y),
			Z: start.Z + f*(end.Z-start.Z),
			W: start.W + f*(end.W-start.W),
		}
		if !approxValue(got, want, 1e-6) {
			t.Errorf("Interpolate(linear, %v) = %+v, want %+v", tt, got, want)
		}
	}
}

func TestInterpolateEndpointsExactForEveryEasing(t *testing.T) {
	start := ColorValue(ColorWhite)
	end := ColorValue(ColorNullWhite)
	for e := Easing(0); e < easingCount; e++ {
		if got := Interpolate(start, end, e, 0); got != start {
			t.Errorf("%v: t=0 gave %+v, want %+v", e, got, start)
		}
		if got := Interpolate(start, end, e, 1); got != end {
			t.Errorf("%v: t=1 gave %+v, want %+v", e, got, end)
		}
	}
}

func TestInterpolateClampsT(t *testing.T) {
	start := ScalarValue(10)
	end := ScalarValue(20)
	if got := Interpolate(start, end, EaseCubicInOut, -3); got != start {
		t.Errorf("t<0 gave %v, want start", got)
	}
	if got := Interpolate(start, end, EaseCubicInOut, 7); got != end {
		t.Errorf("t>1 gave %v, want end", got)
	}
	nan := float32(math.NaN())
	if got := Interpolate(start, end, EaseLinear, nan); got != start {
		t.Errorf("t=NaN gave %v, want start", got)
	}
}

func TestEasingMonotonic(t *testing.T) {
	for e := Easing(0); e < easingCount; e++ {
		prev := e.Apply(0)
		for i := 1; i <= 200; i++ {
			v := e.Apply(float32(i) / 200)
			if v < prev {
				t.Errorf("%v not monotonic at %d/200: %v < %v", e, i, v, prev)
				break
			}
			prev = v
		}
		if e.Apply(0) != 0 || e.Apply(1) != 1 {
			t.Errorf("%v endpoints = (%v, %v), want (0, 1)", e, e.Apply(0), e.Apply(1))
		}
	}
}

func TestEasingCurvesDiffer(t *testing.T) {
	// Cubic-in lags linear at the midpoint, cubic-out leads it.
	mid := float32(0.5)
	if EaseCubicIn.Apply(mid) >= EaseLinear.Apply(mid) {
		t.Errorf("cubic-in(0.5) = %v, want < 0.5", EaseCubicIn.Apply(mid))
	}
	if EaseCubicOut.Apply(mid) <= EaseLinear.Apply(mid) {
		t.Errorf("cubic-out(0.5) = %v, want > 0.5", EaseCubicOut.Apply(mid))
	}
}

func TestParseEasing(t *testing.T) {
	tests := []struct {
		name string
		want Easing
	}{
		{"linear", EaseLinear},
		{"cubic-in", EaseCubicIn},
		{"Cubic_In_Out", EaseCubicInOut},
		{"quintic-in-out", EaseQuintInOut},
		{"quint-in-out", EaseQuintInOut},
		{" sine-out ", EaseSineOut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEasing(tt.name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseEasing(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	if _, err := ParseEasing("elastic-in"); !errors.Is(err, ErrUnknownEasing) {
		t.Errorf("expected ErrUnknownEasing, got %v", err)
	}
}

func TestEasingStringRoundTrip(t *testing.T) {
	for e := Easing(0); e < easingCount; e++ {
		got, err := ParseEasing(e.String())
		if err != nil || got != e {
			t.Errorf("ParseEasing(%q) = %v, %v", e.String(), got, err)
		}
	}
}

func TestLerpColor(t *testing.T) {
	a := Color{R: 1, G: 0, B: 0, A: 1}
	b := Color{R: 0, G: 1, B: 0.5, A: 0.5}
	got := LerpColor(a, b, 0.5)
	want := Color{R: 0.5, G: 0.5, B: 0.25, A: 0.75}
	if math.Abs(got.R-want.R) > 1e-9 || math.Abs(got.G-want.G) > 1e-9 ||
		math.Abs(got.B-want.B) > 1e-9 || math.Abs(got.A-want.A) > 1e-9 {
		t.Errorf("LerpColor = %+v, want %+v", got, want)
	}
}
