// Package midiin turns messages from a hardware MIDI controller into engine
// input: program changes request states, a relative encoder turns the
// handle, and note-on messages set the current note.
//
// Driver callbacks arrive on their own goroutine. They are buffered in a
// channel and applied on the tick goroutine by Drain, so the engine itself
// is never touched concurrently.
package midiin

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/phanxgames/tunemill"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Omni accepts messages on every channel.
const Omni = -1

// DefaultEncoderCC is the controller number of the rotary encoder.
const DefaultEncoderCC = 16

const bufferSize = 256

// Config selects which messages the decoder reacts to.
type Config struct {
	// Channel is the zero-based MIDI channel, or Omni.
	Channel int
	// EncoderCC is the controller number sending relative encoder values
	// (1..63 clockwise, 65..127 counter-clockwise, two's complement style).
	EncoderCC uint8
}

// DefaultConfig listens on all channels with the encoder on CC 16.
func DefaultConfig() Config {
	return Config{Channel: Omni, EncoderCC: DefaultEncoderCC}
}

type timestampedMsg struct {
	timestampms int32
	msg         midi.Message
}

// Decoder buffers incoming messages and injects them into an engine.
type Decoder struct {
	cfg     Config
	events  chan timestampedMsg
	dropped atomic.Int64
}

// NewDecoder creates a decoder.
func NewDecoder(cfg Config) *Decoder {
	return &Decoder{cfg: cfg, events: make(chan timestampedMsg, bufferSize)}
}

// HandleMessage is the receive callback for midi.ListenTo. It never blocks:
// when the buffer is full the message is dropped and counted.
func (d *Decoder) HandleMessage(msg midi.Message, timestampms int32) {
	select {
	case d.events <- timestampedMsg{timestampms: timestampms, msg: msg}:
	default:
		d.dropped.Add(1)
	}
}

// Dropped returns how many messages were lost to a full buffer.
func (d *Decoder) Dropped() int64 {
	return d.dropped.Load()
}

// Listen starts receiving from in. Call stop to end it.
func (d *Decoder) Listen(in drivers.In) (stop func(), err error) {
	if in == nil {
		return nil, errors.New("midiin: no input port")
	}
	stop, err = midi.ListenTo(in, d.HandleMessage)
	if err != nil {
		return nil, fmt.Errorf("midiin: listening to %s failed: %w", in, err)
	}
	return stop, nil
}

// Open finds the input port called name and listens to it. A MIDI driver
// must be registered by the program (for example rtmididrv).
func (d *Decoder) Open(name string) (stop func(), err error) {
	in, err := midi.FindInPort(name)
	if err != nil {
		return nil, fmt.Errorf("midiin: can't find input %q: %w", name, err)
	}
	return d.Listen(in)
}

// Drain applies every buffered message to e as injected input and returns
// how many were consumed. Call it from the tick goroutine before Tick.
func (d *Decoder) Drain(e *tunemill.Engine) int {
	n := 0
	for {
		select {
		case m := <-d.events:
			n++
			d.apply(e, m.msg)
		default:
			return n
		}
	}
}

func (d *Decoder) accepts(channel uint8) bool {
	return d.cfg.Channel == Omni || int(channel) == d.cfg.Channel
}

func (d *Decoder) apply(e *tunemill.Engine, msg midi.Message) {
	var channel, a, b uint8
	switch {
	case msg.GetProgramChange(&channel, &a):
		if d.accepts(channel) {
			e.InjectRequest(int(a))
		}
	case msg.GetControlChange(&channel, &a, &b):
		if d.accepts(channel) && a == d.cfg.EncoderCC {
			e.InjectRotation(EncoderSteps(b))
		}
	case msg.GetNoteOn(&channel, &a, &b):
		if d.accepts(channel) {
			e.InjectNote(tunemill.NoteFromKey(a))
		}
	}
}

// EncoderSteps decodes a relative encoder value: 1..63 are clockwise
// detents, 65..127 counter-clockwise (127 is -1). 0 and 64 mean no motion.
func EncoderSteps(v uint8) int {
	switch {
	case v == 0 || v == 64:
		return 0
	case v < 64:
		return int(v)
	default:
		return int(v) - 128
	}
}
