//go:build !cgo

package main

import (
	"errors"

	"github.com/phanxgames/tunemill/midiin"
)

func openMIDIPort(dec *midiin.Decoder, port string) (stop func(), err error) {
	// rtmidi needs cgo; without it no MIDI driver is registered
	return nil, errors.New("built without cgo, no MIDI driver available")
}
