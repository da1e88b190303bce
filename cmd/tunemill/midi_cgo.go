//go:build cgo

package main

import (
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/phanxgames/tunemill/midiin"
)

func openMIDIPort(dec *midiin.Decoder, port string) (stop func(), err error) {
	return dec.Open(port)
}
