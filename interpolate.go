package tunemill

// Interpolate blends start toward end at normalized time t using the easing
// curve. t is clamped to [0, 1]. Blending is linear per component of the
// 4-vector, so a color fade never passes through a foreign hue.
func Interpolate(start, end Value, e Easing, t float32) Value {
	if t <= 0 {
		return start
	}
	if t >= 1 {
		return end
	}
	return Lerp(start, end, float64(e.Apply(t)))
}

// Lerp blends a and b component-wise: a + f*(b-a).
func Lerp(a, b Value, f float64) Value {
	return Value{
		X: a.X + (b.X-a.X)*f,
		Y: a.Y + (b.Y-a.Y)*f,
		Z: a.Z + (b.Z-a.Z)*f,
		W: a.W + (b.W-a.W)*f,
	}
}

// LerpColor is Lerp for colors.
func LerpColor(a, b Color, f float64) Color {
	return Lerp(ColorValue(a), ColorValue(b), f).Color()
}
