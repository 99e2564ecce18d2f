// Package scheme derives window and navigation colours from a tonal palette.
//
// Every colour is a palette role queried at a tone chosen by the theme mode,
// so one palette serves both light and dark schemes.
package scheme

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/tonal/internal/colour"
)

// Mode selects a light or dark scheme.
type Mode int

const (
	// ModeAuto picks dark or light from the seed tone.
	ModeAuto Mode = iota
	// ModeDark is light text on a dark background.
	ModeDark
	// ModeLight is dark text on a light background.
	ModeLight
)

// String returns the string representation of a Mode.
func (m Mode) String() string {
	switch m {
	case ModeDark:
		return "dark"
	case ModeLight:
		return "light"
	case ModeAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseMode parses auto, dark or light.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return ModeAuto, nil
	case "dark":
		return ModeDark, nil
	case "light":
		return ModeLight, nil
	default:
		return ModeAuto, fmt.Errorf("invalid theme mode: %s (valid: auto, dark, light)", s)
	}
}

// Set implements pflag.Value.
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *Mode) Type() string {
	return "mode"
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	return m.Set(string(text))
}

// Resolve turns ModeAuto into a concrete mode. A seed lighter than tone 50
// gets a light scheme.
func (m Mode) Resolve(seed colour.HCT) Mode {
	if m != ModeAuto {
		return m
	}
	if seed.Tone > 50 {
		return ModeLight
	}
	return ModeDark
}

// Tones are the window tones for each mode.
type Tones struct {
	Light float64 `json:"light" toml:"light"`
	Dark  float64 `json:"dark" toml:"dark"`
}

// DefaultTones returns the default window tones.
func DefaultTones() Tones {
	return Tones{Light: 90, Dark: 10}
}

// Validate checks both tones are within [0, 100].
func (t Tones) Validate() error {
	if t.Light < 0 || t.Light > 100 {
		return fmt.Errorf("light tone must be within [0, 100], got %g", t.Light)
	}
	if t.Dark < 0 || t.Dark > 100 {
		return fmt.Errorf("dark tone must be within [0, 100], got %g", t.Dark)
	}
	return nil
}

// current returns the background tone for mode and the text tone opposite it.
func (t Tones) current(mode Mode) (background, text float64) {
	if mode == ModeDark {
		return t.Dark, t.Light
	}
	return t.Light, t.Dark
}

// Swatch is a palette role rendered at a tone.
type Swatch struct {
	Role string     `json:"role,omitempty" toml:"role,omitempty"`
	Tone float64    `json:"tone" toml:"tone"`
	Hex  string     `json:"hex" toml:"hex"`
	RGB  colour.RGB `json:"-" toml:"-"`
}

func swatch(p *colour.Palette, role colour.Role, tone float64) Swatch {
	tone = min(max(tone, 0), 100)
	rgb := p.RGB(role, tone)
	return Swatch{Role: role.String(), Tone: tone, Hex: rgb.Hex(), RGB: rgb}
}

func fixed(rgb colour.RGB) Swatch {
	return Swatch{Hex: rgb.Hex(), RGB: rgb, Tone: colour.RGBToHCT(rgb).Tone}
}

// Caption button colours for the close button, independent of the palette.
var (
	CloseHover   = colour.RGB{R: 0xc4, G: 0x2b, B: 0x1c}
	ClosePressed = colour.RGB{R: 0xa3, G: 0x24, B: 0x16}
)

// Window holds the colours of a window frame and its caption buttons.
type Window struct {
	Background   Swatch `json:"background" toml:"background"`
	Text         Swatch `json:"text" toml:"text"`
	Hover        Swatch `json:"hover" toml:"hover"`
	Pressed      Swatch `json:"pressed" toml:"pressed"`
	CloseHover   Swatch `json:"close_hover" toml:"close_hover"`
	ClosePressed Swatch `json:"close_pressed" toml:"close_pressed"`
}

// NewWindow derives window colours. Hover and pressed move 10 and 20 tones
// from the background towards the text: up in dark mode, down in light mode.
// mode must not be ModeAuto; resolve it first.
func NewWindow(p *colour.Palette, mode Mode, tones Tones) Window {
	bg, text := tones.current(mode)
	step := -10.0
	if mode == ModeDark {
		step = 10
	}

	return Window{
		Background:   swatch(p, colour.RoleNeutral, bg),
		Text:         swatch(p, colour.RoleNeutral, text),
		Hover:        swatch(p, colour.RoleNeutral, bg+step),
		Pressed:      swatch(p, colour.RoleNeutral, bg+2*step),
		CloseHover:   fixed(CloseHover),
		ClosePressed: fixed(ClosePressed),
	}
}

// Navigation holds the colours of a navigation view's tab buttons.
type Navigation struct {
	Text      Swatch `json:"text" toml:"text"`
	Icon      Swatch `json:"icon" toml:"icon"`
	Indicator Swatch `json:"indicator" toml:"indicator"`
	Hover     Swatch `json:"hover" toml:"hover"`
	Selected  Swatch `json:"selected" toml:"selected"`
}

// NewNavigation derives navigation colours at fixed tones.
func NewNavigation(p *colour.Palette, mode Mode) Navigation {
	if mode == ModeDark {
		return Navigation{
			Text:      swatch(p, colour.RoleNeutral, 90),
			Icon:      swatch(p, colour.RoleNeutral, 80),
			Indicator: swatch(p, colour.RoleAccent, 60),
			Hover:     swatch(p, colour.RoleNeutralAccent, 20),
			Selected:  swatch(p, colour.RoleNeutralAccent, 30),
		}
	}
	return Navigation{
		Text:      swatch(p, colour.RoleNeutral, 10),
		Icon:      swatch(p, colour.RoleNeutral, 20),
		Indicator: swatch(p, colour.RoleAccent, 40),
		Hover:     swatch(p, colour.RoleNeutralAccent, 95),
		Selected:  swatch(p, colour.RoleNeutralAccent, 90),
	}
}

// Scheme is a full window and navigation scheme for one mode.
type Scheme struct {
	Mode       Mode       `json:"mode" toml:"mode"`
	Seed       string     `json:"seed" toml:"seed"`
	Tones      Tones      `json:"tones" toml:"tones"`
	Window     Window     `json:"window" toml:"window"`
	Navigation Navigation `json:"navigation" toml:"navigation"`
}

// Build derives a scheme from p. ModeAuto is resolved against the seed.
func Build(p *colour.Palette, mode Mode, tones Tones) (Scheme, error) {
	if err := tones.Validate(); err != nil {
		return Scheme{}, err
	}
	mode = mode.Resolve(p.Seed())

	return Scheme{
		Mode:       mode,
		Seed:       colour.HCTToRGB(p.Seed()).Hex(),
		Tones:      tones,
		Window:     NewWindow(p, mode, tones),
		Navigation: NewNavigation(p, mode),
	}, nil
}

// ToJSON encodes the scheme as indented JSON.
func (s Scheme) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// ToTOML encodes the scheme as TOML.
func (s Scheme) ToTOML() ([]byte, error) {
	return toml.Marshal(s)
}

// Entries returns the scheme as ordered name/swatch pairs for text output.
func (s Scheme) Entries() []Entry {
	return []Entry{
		{"window.background", s.Window.Background},
		{"window.text", s.Window.Text},
		{"window.hover", s.Window.Hover},
		{"window.pressed", s.Window.Pressed},
		{"window.close_hover", s.Window.CloseHover},
		{"window.close_pressed", s.Window.ClosePressed},
		{"navigation.text", s.Navigation.Text},
		{"navigation.icon", s.Navigation.Icon},
		{"navigation.indicator", s.Navigation.Indicator},
		{"navigation.hover", s.Navigation.Hover},
		{"navigation.selected", s.Navigation.Selected},
	}
}

// Entry is a named swatch.
type Entry struct {
	Name   string
	Swatch Swatch
}
