package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/tunemill"
)

// stateKeys maps the number row to states in ordinal order.
var stateKeys = [...]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.Key5, ebiten.Key6, ebiten.Key7,
}

func stateForKey(key ebiten.Key) (tunemill.AppState, bool) {
	for i, k := range stateKeys {
		if k == key {
			return tunemill.AppState(i), true
		}
	}
	return 0, false
}

func justPressedStateKeys() []ebiten.Key {
	var out []ebiten.Key
	for _, k := range stateKeys {
		if inpututil.IsKeyJustPressed(k) {
			out = append(out, k)
		}
	}
	return out
}
