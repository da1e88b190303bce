package tunemill

import (
	"fmt"
	"math"
)

var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Note describes a pitch the way the sequencer edits it.
type Note struct {
	Key uint8 // MIDI key number, 60 = C4
	// ControlVoltage is 1 V/oct with 0 V at C4.
	ControlVoltage float32
	// Scientific is the scientific pitch notation, e.g. "A4".
	Scientific string
	// Hertz is the equal-tempered frequency with A4 = 440 Hz, rounded.
	Hertz int16
}

// MaxKey is the highest MIDI key number, G9.
const MaxKey = 127

// NoteFromKey builds a Note from a MIDI key number. Keys above MaxKey are
// clamped to it.
func NoteFromKey(key uint8) Note {
	key = min(key, MaxKey)
	k := int(key)
	return Note{
		Key:            key,
		ControlVoltage: float32(k-60) / 12,
		Scientific:     fmt.Sprintf("%s%d", pitchClasses[k%12], k/12-1),
		Hertz:          int16(math.Round(440 * math.Pow(2, float64(k-69)/12))),
	}
}

func (n Note) String() string {
	return fmt.Sprintf("%s (%d Hz, %.3f V)", n.Scientific, n.Hertz, n.ControlVoltage)
}
