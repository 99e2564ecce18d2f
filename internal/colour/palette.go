package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"
)

// Role identifies one of the five colours derived from a palette seed.
type Role int

const (
	// RoleMain is the seed hue with chroma rescaled into a usable band.
	RoleMain Role = iota
	// RoleSub is main at half chroma.
	RoleSub
	// RoleNeutral is sub at half chroma; used for surfaces and text.
	RoleNeutral
	// RoleNeutralAccent is a slightly tinted neutral for hover and selection.
	RoleNeutralAccent
	// RoleAccent is main rotated by 60 degrees.
	RoleAccent

	roleCount = 5
)

var roleNames = [roleCount]string{"main", "sub", "neutral", "neutral-accent", "accent"}

// Roles returns every role in palette order.
func Roles() []Role {
	return []Role{RoleMain, RoleSub, RoleNeutral, RoleNeutralAccent, RoleAccent}
}

// String returns the role name.
func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// ParseRole parses a role name such as "main" or "neutral-accent".
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "neutralaccent", "neutral_accent":
		name = "neutral-accent"
	}
	for i, n := range roleNames {
		if n == name {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role: %s (valid roles: %s)", s, strings.Join(roleNames[:], ", "))
}

// Set implements pflag.Value.
func (r *Role) Set(s string) error {
	role, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Type implements pflag.Value.
func (r *Role) Type() string {
	return "role"
}

// Palette derives five role colours from a single seed. Hue and chroma are
// fixed per role; tone is chosen by the caller at query time so one palette
// serves both light and dark themes.
//
// A Palette is not safe for concurrent mutation. Use Clone to hand a copy to
// another goroutine.
type Palette struct {
	seed  HCT
	roles [roleCount]HCT
}

// NewPalette creates a palette from an HCT seed.
func NewPalette(seed HCT) *Palette {
	p := &Palette{}
	p.SetSeed(seed)
	return p
}

// NewPaletteFromRGB creates a palette from an sRGB seed.
func NewPaletteFromRGB(seed RGB) *Palette {
	return NewPalette(RGBToHCT(seed))
}

// DefaultPalette returns the palette for an all-zero seed.
func DefaultPalette() *Palette {
	return NewPalette(HCT{})
}

// SetSeed replaces the seed and recomputes every role.
func (p *Palette) SetSeed(seed HCT) {
	p.seed = seed
	p.roles = deriveRoles(seed)
}

// SetSeedRGB replaces the seed with an sRGB colour.
func (p *Palette) SetSeedRGB(seed RGB) {
	p.SetSeed(RGBToHCT(seed))
}

func deriveRoles(seed HCT) [roleCount]HCT {
	main := HCT{Hue: seed.Hue, Chroma: seed.Chroma/100*10 + 30, Tone: seed.Tone}
	sub := HCT{Hue: main.Hue, Chroma: main.Chroma * 0.5, Tone: main.Tone}
	neutral := HCT{Hue: sub.Hue, Chroma: sub.Chroma * 0.5, Tone: sub.Tone}
	neutralAccent := HCT{Hue: neutral.Hue, Chroma: neutral.Chroma * 0.6, Tone: neutral.Tone}

	accentHue := main.Hue + 60
	if accentHue >= 360 {
		accentHue = main.Hue - 300
	}
	accent := HCT{Hue: accentHue, Chroma: main.Chroma * 0.6, Tone: main.Tone}

	return [roleCount]HCT{main, sub, neutral, neutralAccent, accent}
}

// Seed returns the seed colour the palette was built from.
func (p *Palette) Seed() HCT {
	return p.seed
}

// Role returns the stored colour for r. Unknown roles fall back to main.
func (p *Palette) Role(r Role) HCT {
	if r < 0 || r >= roleCount {
		r = RoleMain
	}
	return p.roles[r]
}

// Color returns the hue and chroma of r at the given tone.
func (p *Palette) Color(r Role, tone float64) HCT {
	return p.Role(r).WithTone(tone)
}

// RGB returns Color(r, tone) converted to sRGB.
func (p *Palette) RGB(r Role, tone float64) RGB {
	return HCTToRGB(p.Color(r, tone))
}

// NRGBA returns Color(r, tone) as an image/color value.
func (p *Palette) NRGBA(r Role, tone float64) color.NRGBA {
	return p.RGB(r, tone).NRGBA()
}

// Clone returns an independent copy of the palette.
func (p *Palette) Clone() *Palette {
	c := *p
	return &c
}

// RoleJSON is one role in JSON output.
type RoleJSON struct {
	Role string `json:"role"`
	HCT  HCT    `json:"hct"`
	Hex  string `json:"hex"`
	RGB  RGB    `json:"rgb"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Seed  HCT        `json:"seed"`
	Tone  float64    `json:"tone"`
	Roles []RoleJSON `json:"roles"`
}

// ToJSON renders roles at tone, or every role when none are given.
func (p *Palette) ToJSON(tone float64, roles ...Role) ([]byte, error) {
	if len(roles) == 0 {
		roles = Roles()
	}
	out := PaletteJSON{Seed: p.seed, Tone: tone, Roles: make([]RoleJSON, 0, len(roles))}
	for _, r := range roles {
		rgb := p.RGB(r, tone)
		out.Roles = append(out.Roles, RoleJSON{
			Role: r.String(),
			HCT:  p.Color(r, tone),
			Hex:  rgb.Hex(),
			RGB:  rgb,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette seeded from %s:\n", p.seed)
	for _, r := range Roles() {
		fmt.Fprintf(&sb, "  %-15s %s\n", r.String()+":", p.roles[r])
	}
	return sb.String()
}
