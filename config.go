package tunemill

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// tableFile is the YAML form of a TransitionTable:
//
//	initial: splash
//	palette:
//	  accent: "#FF9F0A"
//	states:
//	  splash:
//	    exit: cancel
//	    animations:
//	      - target: main-text
//	        payload: home
//	        segments:
//	          - delay: 0.5
//	          - tween: 0.25
//	            easing: cubic-in-out
//	            property: text.color
//	            from: nullwhite
//	            to: white
type tableFile struct {
	Initial string               `yaml:"initial"`
	Palette map[string]string    `yaml:"palette"`
	States  map[string]stateFile `yaml:"states"`
}

type stateFile struct {
	Exit       string          `yaml:"exit"`
	Animations []animationFile `yaml:"animations"`
}

type animationFile struct {
	Target   string        `yaml:"target"`
	Payload  yaml.Node     `yaml:"payload"`
	Repeat   int           `yaml:"repeat"`
	Segments []segmentFile `yaml:"segments"`
}

type segmentFile struct {
	Delay    *float32  `yaml:"delay"`
	Tween    *float32  `yaml:"tween"`
	Easing   string    `yaml:"easing"`
	Property string    `yaml:"property"`
	From     yaml.Node `yaml:"from"`
	To       yaml.Node `yaml:"to"`
}

// builtinPalette holds the names usable in from/to without a palette entry.
var builtinPalette = map[string]Color{
	"white":     ColorWhite,
	"lightgrey": ColorLightGrey,
	"grey":      ColorGrey,
	"black":     ColorBlack,
	"blue":      ColorBlue,
	"nullwhite": ColorNullWhite,
}

func paletteKey(name string) string {
	return normalizeStateName(name)
}

// LoadTable parses a YAML transition table. Entry actions cannot be
// expressed in YAML; attach them afterwards with TransitionTable.On.
func LoadTable(data []byte) (*TransitionTable, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("tunemill: failed to parse transition table: %w", err)
	}

	palette := make(map[string]Color, len(builtinPalette)+len(f.Palette))
	for k, c := range builtinPalette {
		palette[k] = c
	}
	for name, hex := range f.Palette {
		c, err := ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("tunemill: palette %q: %w", name, err)
		}
		palette[paletteKey(name)] = c
	}

	t := NewTransitionTable()
	if f.Initial != "" {
		s, err := ParseAppState(f.Initial)
		if err != nil {
			return nil, fmt.Errorf("tunemill: initial: %w", err)
		}
		t.Initial = s
	}

	names := make([]string, 0, len(f.States))
	for name := range f.States {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s, err := ParseAppState(name)
		if err != nil {
			return nil, err
		}
		sf := f.States[name]
		switch strings.ToLower(strings.TrimSpace(sf.Exit)) {
		case "", "cancel":
			t.SetExit(s, ExitCancel)
		case "persist":
			t.SetExit(s, ExitPersist)
		default:
			return nil, fmt.Errorf("tunemill: state %v: unknown exit policy %q", s, sf.Exit)
		}
		for i, af := range sf.Animations {
			tl, err := af.build(palette)
			if err != nil {
				return nil, fmt.Errorf("tunemill: state %v animation %d: %w", s, i, err)
			}
			if af.Target == "" {
				return nil, fmt.Errorf("tunemill: state %v animation %d: missing target", s, i)
			}
			t.Arm(s, TargetID(af.Target), tl)
		}
	}
	return t, nil
}

// LoadTableFile reads a YAML transition table. A missing file yields
// DefaultTable.
func LoadTableFile(path string) (*TransitionTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultTable(), nil
		}
		return nil, fmt.Errorf("tunemill: failed to read %s: %w", path, err)
	}
	return LoadTable(data)
}

func (af *animationFile) build(palette map[string]Color) (*Timeline, error) {
	b := Sequence()
	if af.Repeat != 0 {
		b.Repeat(af.Repeat)
	}
	if af.Payload.Kind != 0 {
		p, err := parsePayload(af.Payload.Value)
		if err != nil {
			return nil, err
		}
		b.Payload(p)
	}
	for i, sf := range af.Segments {
		seg, err := sf.segment(palette)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		b.Then(seg)
	}
	return b.Build()
}

// parsePayload accepts a state name or a raw ordinal. Ordinals are not
// range-checked here; an out-of-range payload is reported when it fires.
func parsePayload(v string) (int, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return n, nil
	}
	s, err := ParseAppState(v)
	if err != nil {
		return 0, fmt.Errorf("payload: %w", err)
	}
	return int(s), nil
}

func (sf *segmentFile) segment(palette map[string]Color) (Segment, error) {
	switch {
	case sf.Delay != nil && sf.Tween != nil:
		return Segment{}, errors.New("both delay and tween set")
	case sf.Delay != nil:
		return Delay(*sf.Delay), nil
	case sf.Tween == nil:
		return Segment{}, errors.New("neither delay nor tween set")
	}

	e := EaseLinear
	if sf.Easing != "" {
		var err error
		if e, err = ParseEasing(sf.Easing); err != nil {
			return Segment{}, err
		}
	}
	prop := PropertyColor
	if sf.Property != "" {
		prop = Property(sf.Property)
	}
	from, err := parseValue(sf.From, palette)
	if err != nil {
		return Segment{}, fmt.Errorf("from: %w", err)
	}
	to, err := parseValue(sf.To, palette)
	if err != nil {
		return Segment{}, fmt.Errorf("to: %w", err)
	}
	return Tween(*sf.Tween, e, prop, from, to), nil
}

// parseValue resolves a palette name, a number, or a hex color.
func parseValue(n yaml.Node, palette map[string]Color) (Value, error) {
	if n.Kind == 0 {
		return Value{}, errors.New("missing value")
	}
	raw := strings.TrimSpace(n.Value)
	if c, ok := palette[paletteKey(raw)]; ok {
		return ColorValue(c), nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return ScalarValue(f), nil
	}
	if strings.HasPrefix(raw, "#") {
		c, err := ParseHex(raw)
		if err != nil {
			return Value{}, err
		}
		return ColorValue(c), nil
	}
	return Value{}, fmt.Errorf("%w %q", ErrUnknownColor, raw)
}
