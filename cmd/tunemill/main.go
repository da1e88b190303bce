// Command tunemill runs the TUNE MILL front-end in a window, in a terminal,
// or headless.
//
// Usage:
//
//	tunemill [-config tunemill.yaml] [-term] [-headless -frames 300] [-script run.json] [-midi "Port"] [-debug] [-fps]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/phanxgames/tunemill"
	"github.com/phanxgames/tunemill/ebitenhost"
	"github.com/phanxgames/tunemill/midiin"
	"github.com/phanxgames/tunemill/termhost"
)

// openMIDI is swapped out in tests.
var openMIDI = openMIDIPort

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run returns the process exit code. Everything it opens is closed before
// it returns.
func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("tunemill", flag.ContinueOnError)
	configPath := fs.String("config", "tunemill.yaml", "transition table (YAML); the built-in table is used when the file is missing")
	term := fs.Bool("term", false, "run in the terminal instead of a window")
	headless := fs.Bool("headless", false, "run without any display")
	frames := fs.Int("frames", 300, "ticks to run in headless mode (0 = until the script is done)")
	scriptPath := fs.String("script", "", "JSON input script")
	midiPort := fs.String("midi", "", "MIDI input port name")
	debug := fs.Bool("debug", false, "log transitions and per-tick stats")
	showFPS := fs.Bool("fps", false, "show the FPS overlay (window only)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	table, err := tunemill.LoadTableFile(*configPath)
	if err != nil {
		log.Print(err)
		return 1
	}

	targets := tunemill.DefaultTargets()
	engine := tunemill.NewEngine(targets, table)
	engine.SetDebugMode(*debug)

	var runner *tunemill.ScriptRunner
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Print(err)
			return 1
		}
		if runner, err = tunemill.LoadScript(data); err != nil {
			log.Print(err)
			return 1
		}
		engine.SetScriptRunner(runner)
	}

	var beforeTick func(*tunemill.Engine)
	if *midiPort != "" {
		dec := midiin.NewDecoder(midiin.DefaultConfig())
		stop, err := openMIDI(dec, *midiPort)
		if err != nil {
			log.Printf("midi disabled: %v", err)
		} else {
			defer stop()
			beforeTick = func(e *tunemill.Engine) { dec.Drain(e) }
		}
	}

	var done func() bool
	if runner != nil {
		done = runner.Done
	}

	switch {
	case *headless:
		runHeadless(stdout, engine, beforeTick, done, *frames)
	case *term:
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		err = termhost.Run(ctx, engine, targets, termhost.Config{BeforeTick: beforeTick, Done: done})
	default:
		cfg := ebitenhost.DefaultConfig()
		cfg.ShowFPS = *showFPS
		cfg.BeforeTick = beforeTick
		cfg.Done = done
		err = ebitenhost.Run(engine, targets, cfg)
	}
	if err != nil {
		log.Print(err)
		return 1
	}

	fmt.Fprintln(stdout, engine.Diagnostics())
	if runner != nil && len(runner.Failures()) > 0 {
		for _, f := range runner.Failures() {
			log.Print(f)
		}
		return 1
	}
	return 0
}

func runHeadless(w io.Writer, engine *tunemill.Engine, beforeTick func(*tunemill.Engine), done func() bool, frames int) {
	const dt = 1.0 / 60
	for i := 0; frames <= 0 || i < frames; i++ {
		if beforeTick != nil {
			beforeTick(engine)
		}
		engine.Tick(dt)
		if done != nil && done() {
			break
		}
		if frames <= 0 && done == nil {
			break
		}
	}
	fmt.Fprintf(w, "state %v after %d ticks (%.2fs)\n", engine.State(), engine.Ticks(), engine.Elapsed())
}
