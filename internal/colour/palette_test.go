package colour

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewPaletteRoles(t *testing.T) {
	seed := HCT{Hue: 120, Chroma: 50, Tone: 40}
	p := NewPalette(seed)

	tests := []struct {
		role Role
		want HCT
	}{
		{RoleMain, HCT{Hue: 120, Chroma: 35, Tone: 40}},
		{RoleSub, HCT{Hue: 120, Chroma: 17.5, Tone: 40}},
		{RoleNeutral, HCT{Hue: 120, Chroma: 8.75, Tone: 40}},
		{RoleNeutralAccent, HCT{Hue: 120, Chroma: 5.25, Tone: 40}},
		{RoleAccent, HCT{Hue: 180, Chroma: 21, Tone: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			got := p.Role(tt.role)
			if !approxEqual(got.Hue, tt.want.Hue) || !approxEqual(got.Chroma, tt.want.Chroma) || !approxEqual(got.Tone, tt.want.Tone) {
				t.Errorf("Role(%s) = %s, want %s", tt.role, got, tt.want)
			}
		})
	}

	if p.Seed() != seed {
		t.Errorf("Seed() = %s, want %s", p.Seed(), seed)
	}
}

func TestPaletteAccentHueWrap(t *testing.T) {
	tests := []struct {
		name      string
		seedHue   float64
		wantAccnt float64
	}{
		{name: "no wrap", seedHue: 200, wantAccnt: 260},
		{name: "just below boundary", seedHue: 299.5, wantAccnt: 359.5},
		{name: "on boundary", seedHue: 300, wantAccnt: 0},
		{name: "wraps", seedHue: 310, wantAccnt: 10},
		{name: "near full turn", seedHue: 359, wantAccnt: 59},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPalette(HCT{Hue: tt.seedHue, Chroma: 40, Tone: 50})
			if got := p.Role(RoleAccent).Hue; !approxEqual(got, tt.wantAccnt) {
				t.Errorf("accent hue = %v, want %v", got, tt.wantAccnt)
			}
		})
	}
}

func TestPaletteColorUsesCallerTone(t *testing.T) {
	p := NewPaletteFromRGB(RGB{19, 149, 192})

	for _, r := range Roles() {
		for _, tone := range []float64{0, 10, 50, 90, 100} {
			got := p.Color(r, tone)
			role := p.Role(r)
			if got.Hue != role.Hue || got.Chroma != role.Chroma || got.Tone != tone {
				t.Errorf("Color(%s, %v) = %s, want hue/chroma of %s at tone %v", r, tone, got, role, tone)
			}
		}
	}
}

func TestPaletteDeterminism(t *testing.T) {
	a := NewPaletteFromRGB(RGB{19, 149, 192})
	b := NewPaletteFromRGB(RGB{19, 149, 192})

	for _, r := range Roles() {
		if a.Role(r) != b.Role(r) {
			t.Errorf("Role(%s) differs: %s vs %s", r, a.Role(r), b.Role(r))
		}
		for _, tone := range []float64{10, 50, 90} {
			if a.RGB(r, tone) != b.RGB(r, tone) {
				t.Errorf("RGB(%s, %v) differs", r, tone)
			}
		}
	}
}

func TestPaletteSetSeedRecomputesAllRoles(t *testing.T) {
	p := NewPalette(HCT{Hue: 10, Chroma: 20, Tone: 30})
	p.SetSeed(HCT{Hue: 250, Chroma: 80, Tone: 70})
	fresh := NewPalette(HCT{Hue: 250, Chroma: 80, Tone: 70})

	for _, r := range Roles() {
		if p.Role(r) != fresh.Role(r) {
			t.Errorf("after SetSeed Role(%s) = %s, want %s", r, p.Role(r), fresh.Role(r))
		}
	}

	p.SetSeedRGB(RGB{19, 149, 192})
	if p.Seed() != RGBToHCT(RGB{19, 149, 192}) {
		t.Errorf("SetSeedRGB did not convert seed: %s", p.Seed())
	}
}

func TestPaletteScenarioLightDarkPair(t *testing.T) {
	p := NewPaletteFromRGB(RGB{19, 149, 192})

	main := p.Color(RoleMain, 50)
	accent := p.Color(RoleAccent, 50)
	if d := HueDistance(main.Hue, accent.Hue); math.Abs(d-60) > 1e-6 {
		t.Errorf("main/accent hue distance = %v, want 60", d)
	}

	mainRGB := p.RGB(RoleMain, 50)
	accentRGB := p.RGB(RoleAccent, 50)
	if mainRGB == accentRGB {
		t.Errorf("main and accent render identically: %s", mainRGB)
	}
	if mainRGB != (RGB{0, 129, 169}) {
		t.Errorf("RGB(main, 50) = %s, want rgb(0, 129, 169)", mainRGB)
	}
	if accentRGB != (RGB{123, 114, 148}) {
		t.Errorf("RGB(accent, 50) = %s, want rgb(123, 114, 148)", accentRGB)
	}

	dark := p.RGB(RoleNeutral, 10)
	light := p.RGB(RoleNeutral, 90)
	if ContrastRatio(dark, light) < 7 {
		t.Errorf("neutral 10/90 contrast = %.2f, want >= 7", ContrastRatio(dark, light))
	}
}

func TestPaletteUnknownRoleFallsBackToMain(t *testing.T) {
	p := NewPalette(HCT{Hue: 90, Chroma: 30, Tone: 50})
	if p.Role(Role(42)) != p.Role(RoleMain) {
		t.Error("unknown role should resolve to main")
	}
}

func TestPaletteClone(t *testing.T) {
	p := NewPalette(HCT{Hue: 90, Chroma: 30, Tone: 50})
	c := p.Clone()
	p.SetSeed(HCT{Hue: 180})

	if c.Seed().Hue != 90 {
		t.Errorf("clone changed with original: %s", c.Seed())
	}
}

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	if got := p.Role(RoleMain); got.Chroma != 30 || got.Hue != 0 {
		t.Errorf("default main = %s, want hue 0 chroma 30", got)
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "main", want: RoleMain},
		{in: "Sub", want: RoleSub},
		{in: "neutral", want: RoleNeutral},
		{in: "neutral-accent", want: RoleNeutralAccent},
		{in: "neutralAccent", want: RoleNeutralAccent},
		{in: "accent", want: RoleAccent},
		{in: "primary", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRole(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestPaletteToJSON(t *testing.T) {
	p := NewPaletteFromRGB(RGB{19, 149, 192})
	data, err := p.ToJSON(50)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var decoded PaletteJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.Roles) != 5 {
		t.Fatalf("got %d roles, want 5", len(decoded.Roles))
	}
	if decoded.Roles[0].Hex != "#0081a9" {
		t.Errorf("main hex = %s, want #0081a9", decoded.Roles[0].Hex)
	}
	if !strings.Contains(p.String(), "neutral-accent:") {
		t.Errorf("String() missing role label:\n%s", p.String())
	}
}
