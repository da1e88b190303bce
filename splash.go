package tunemill

// Targets of the stock scene.
const (
	TargetBackground TargetID = "background"
	TargetGrid       TargetID = "grid"
	TargetMainText   TargetID = "main-text"
	TargetSubText    TargetID = "sub-text"
	TargetCursor     TargetID = "cursor"
)

// DefaultTargets registers the stock scene's targets with their resting
// values: black background, invisible wordmark, blue cursor at 0 rad.
func DefaultTargets() *Targets {
	t := NewTargets()
	t.Register(TargetBackground).SetProperty(PropertyBackgroundColor, ColorValue(ColorBlack))
	t.Register(TargetGrid).SetProperty(PropertyAlpha, ScalarValue(0))
	t.Register(TargetMainText).SetProperty(PropertyTextColor, ColorValue(ColorNullWhite))
	sub := ColorLightGrey
	sub.A = 0
	t.Register(TargetSubText).SetProperty(PropertyTextColor, ColorValue(sub))
	cursor := t.Register(TargetCursor)
	cursor.SetProperty(PropertyColor, ColorValue(ColorBlue))
	cursor.SetProperty(PropertyRotation, ScalarValue(0))
	return t
}

// SplashTimeline fades text in from transparent to c, holds it, and fades
// it out again. The whole sequence lasts 3 seconds.
func SplashTimeline(c Color) *TimelineBuilder {
	faded := c
	faded.A = 0
	return Sequence().
		Delay(0.5).
		ColorTween(0.25, EaseCubicInOut, PropertyTextColor, faded, c).
		Delay(2.0).
		ColorTween(0.25, EaseCubicInOut, PropertyTextColor, c, faded)
}

// DefaultTable is the stock front-end flow. Splash shows the wordmark and
// hands over to Home when the main text's timeline completes; Home fades
// the background and grid in. Splash cancels its animations on exit, every
// other state lets them finish.
func DefaultTable() *TransitionTable {
	t := NewTransitionTable()
	t.Initial = StateSplash

	t.SetExit(StateSplash, ExitCancel)
	t.Arm(StateSplash, TargetMainText, SplashTimeline(ColorWhite).Payload(int(StateHome)).MustBuild())
	t.Arm(StateSplash, TargetSubText, SplashTimeline(ColorLightGrey).MustBuild())

	t.Arm(StateHome, TargetBackground, Sequence().
		ColorTween(0.5, EaseCubicInOut, PropertyBackgroundColor, ColorBlack, ColorGrey).
		MustBuild())
	t.Arm(StateHome, TargetGrid, Sequence().
		Delay(0.25).
		Tween(0.5, EaseQuintInOut, PropertyAlpha, ScalarValue(0), ScalarValue(1)).
		MustBuild())

	for _, s := range States() {
		if s != StateSplash {
			t.SetExit(s, ExitPersist)
		}
	}
	return t
}
