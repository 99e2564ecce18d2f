package scheme

import (
	"encoding/json"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/tonal/internal/colour"
)

func testPalette() *colour.Palette {
	return colour.NewPaletteFromRGB(colour.RGB{R: 19, G: 149, B: 192})
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"dark", ModeDark, false},
		{"LIGHT", ModeLight, false},
		{"auto", ModeAuto, false},
		{"", ModeAuto, false},
		{"dim", ModeAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestModeResolve(t *testing.T) {
	if got := ModeAuto.Resolve(colour.HCT{Tone: 20}); got != ModeDark {
		t.Errorf("dark seed resolved to %s", got)
	}
	if got := ModeAuto.Resolve(colour.HCT{Tone: 80}); got != ModeLight {
		t.Errorf("light seed resolved to %s", got)
	}
	if got := ModeLight.Resolve(colour.HCT{Tone: 5}); got != ModeLight {
		t.Errorf("explicit mode overridden: %s", got)
	}
}

func TestTonesValidate(t *testing.T) {
	if err := DefaultTones().Validate(); err != nil {
		t.Errorf("default tones invalid: %v", err)
	}
	for _, tones := range []Tones{{Light: 101, Dark: 10}, {Light: 90, Dark: -1}} {
		if err := tones.Validate(); err == nil {
			t.Errorf("Validate(%+v) accepted out of range tones", tones)
		}
	}
}

func TestNewWindow(t *testing.T) {
	p := testPalette()
	tones := DefaultTones()

	tests := []struct {
		mode                     Mode
		bg, text, hover, pressed float64
	}{
		{ModeDark, 10, 90, 20, 30},
		{ModeLight, 90, 10, 80, 70},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			w := NewWindow(p, tt.mode, tones)
			check := func(name string, s Swatch, tone float64) {
				t.Helper()
				if s.Tone != tone {
					t.Errorf("%s tone = %v, want %v", name, s.Tone, tone)
				}
				if s.Role != "neutral" {
					t.Errorf("%s role = %q, want neutral", name, s.Role)
				}
				if want := p.RGB(colour.RoleNeutral, tone); s.RGB != want || s.Hex != want.Hex() {
					t.Errorf("%s = %s, want %s", name, s.Hex, want.Hex())
				}
			}
			check("background", w.Background, tt.bg)
			check("text", w.Text, tt.text)
			check("hover", w.Hover, tt.hover)
			check("pressed", w.Pressed, tt.pressed)

			if w.CloseHover.Hex != "#c42b1c" || w.ClosePressed.Hex != "#a32416" {
				t.Errorf("close button colours = %s, %s", w.CloseHover.Hex, w.ClosePressed.Hex)
			}
		})
	}
}

func TestWindowHoverMovesTowardText(t *testing.T) {
	p := testPalette()
	for _, mode := range []Mode{ModeDark, ModeLight} {
		w := NewWindow(p, mode, DefaultTones())
		bgDist := abs(w.Text.Tone - w.Background.Tone)
		if abs(w.Text.Tone-w.Hover.Tone) >= bgDist || abs(w.Text.Tone-w.Pressed.Tone) >= abs(w.Text.Tone-w.Hover.Tone) {
			t.Errorf("%s: hover/pressed do not approach the text tone: %+v", mode, w)
		}
	}
}

func TestWindowClampsTones(t *testing.T) {
	w := NewWindow(testPalette(), ModeDark, Tones{Light: 100, Dark: 95})
	if w.Hover.Tone != 100 || w.Pressed.Tone != 100 {
		t.Errorf("tones not clamped: hover %v pressed %v", w.Hover.Tone, w.Pressed.Tone)
	}
}

func TestNewNavigation(t *testing.T) {
	p := testPalette()

	tests := []struct {
		mode Mode
		want map[string]struct {
			role colour.Role
			tone float64
		}
	}{
		{ModeDark, map[string]struct {
			role colour.Role
			tone float64
		}{
			"text":      {colour.RoleNeutral, 90},
			"icon":      {colour.RoleNeutral, 80},
			"indicator": {colour.RoleAccent, 60},
			"hover":     {colour.RoleNeutralAccent, 20},
			"selected":  {colour.RoleNeutralAccent, 30},
		}},
		{ModeLight, map[string]struct {
			role colour.Role
			tone float64
		}{
			"text":      {colour.RoleNeutral, 10},
			"icon":      {colour.RoleNeutral, 20},
			"indicator": {colour.RoleAccent, 40},
			"hover":     {colour.RoleNeutralAccent, 95},
			"selected":  {colour.RoleNeutralAccent, 90},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			n := NewNavigation(p, tt.mode)
			got := map[string]Swatch{
				"text": n.Text, "icon": n.Icon, "indicator": n.Indicator,
				"hover": n.Hover, "selected": n.Selected,
			}
			for name, w := range tt.want {
				s := got[name]
				if s.Role != w.role.String() || s.Tone != w.tone {
					t.Errorf("%s = %s@%v, want %s@%v", name, s.Role, s.Tone, w.role, w.tone)
				}
				if s.RGB != p.RGB(w.role, w.tone) {
					t.Errorf("%s colour = %s", name, s.Hex)
				}
			}
		})
	}
}

func TestBuildSamePaletteBothModes(t *testing.T) {
	p := testPalette()
	before := p.Clone()

	dark, err := Build(p, ModeDark, DefaultTones())
	if err != nil {
		t.Fatalf("Build(dark) error = %v", err)
	}
	light, err := Build(p, ModeLight, DefaultTones())
	if err != nil {
		t.Fatalf("Build(light) error = %v", err)
	}

	if dark.Window.Background != light.Window.Text || dark.Window.Text != light.Window.Background {
		t.Error("dark and light windows should swap background and text")
	}
	if *p != *before {
		t.Error("Build mutated the palette")
	}
	if dark.Seed != "#1395c0" {
		t.Errorf("Seed = %s", dark.Seed)
	}

	auto, err := Build(p, ModeAuto, DefaultTones())
	if err != nil {
		t.Fatalf("Build(auto) error = %v", err)
	}
	if auto.Mode != ModeLight {
		t.Errorf("auto mode for tone %.1f seed = %s", p.Seed().Tone, auto.Mode)
	}

	if _, err := Build(p, ModeDark, Tones{Light: 200}); err == nil {
		t.Error("Build accepted invalid tones")
	}
}

func TestSchemeEncodings(t *testing.T) {
	s, err := Build(testPalette(), ModeDark, DefaultTones())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	t.Run("json", func(t *testing.T) {
		data, err := s.ToJSON()
		if err != nil {
			t.Fatalf("ToJSON() error = %v", err)
		}
		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded["mode"] != "dark" {
			t.Errorf("mode = %v", decoded["mode"])
		}
		window := decoded["window"].(map[string]any)
		bg := window["background"].(map[string]any)
		if bg["hex"] != s.Window.Background.Hex || bg["role"] != "neutral" {
			t.Errorf("window.background = %v", bg)
		}
		if _, ok := bg["RGB"]; ok {
			t.Error("RGB should not be encoded")
		}
	})

	t.Run("toml", func(t *testing.T) {
		data, err := s.ToTOML()
		if err != nil {
			t.Fatalf("ToTOML() error = %v", err)
		}
		var decoded Scheme
		if err := toml.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid TOML: %v\n%s", err, data)
		}
		if decoded.Mode != ModeDark {
			t.Errorf("mode = %s", decoded.Mode)
		}
		if decoded.Navigation.Indicator.Hex != s.Navigation.Indicator.Hex {
			t.Errorf("navigation.indicator = %s, want %s", decoded.Navigation.Indicator.Hex, s.Navigation.Indicator.Hex)
		}
		if decoded.Tones != s.Tones {
			t.Errorf("tones = %+v", decoded.Tones)
		}
	})
}

func TestEntries(t *testing.T) {
	s, err := Build(testPalette(), ModeLight, DefaultTones())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	entries := s.Entries()
	if len(entries) != 11 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].Name != "window.background" || entries[0].Swatch != s.Window.Background {
		t.Errorf("first entry = %+v", entries[0])
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
