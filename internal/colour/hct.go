package colour

import (
	"fmt"
	"math"
)

// D65 reference white, scaled so Y = 100.
const (
	whiteX = 95.047
	whiteY = 100.0
	whiteZ = 108.883
)

// CIE constants used when inverting the Lab transfer function.
const (
	labEpsilon = 216.0 / 24389.0 // (6/29)^3
	labKappa   = 24389.0 / 27.0  // (29/3)^3
	labDelta   = 6.0 / 29.0
)

var srgbToXYZ = [3][3]float64{
	{0.4124, 0.3576, 0.1805},
	{0.2126, 0.7152, 0.0722},
	{0.0193, 0.1192, 0.9505},
}

var xyzToSRGB = [3][3]float64{
	{3.2406, -1.5372, -0.4986},
	{-0.9689, 1.8758, 0.0415},
	{0.0557, -0.2040, 1.0570},
}

// HCT is a hue, chroma, tone colour. Hue and chroma are the polar form of
// CIE Lab a*/b*, tone is L*.
type HCT struct {
	Hue    float64 `json:"hue" toml:"hue"`
	Chroma float64 `json:"chroma" toml:"chroma"`
	Tone   float64 `json:"tone" toml:"tone"`
}

// Lab is a CIE L*a*b* colour relative to D65.
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// String formats the colour as "hct(h, c, t)".
func (h HCT) String() string {
	return fmt.Sprintf("hct(%.2f, %.2f, %.2f)", h.Hue, h.Chroma, h.Tone)
}

// WithTone returns a copy of h with the tone replaced.
func (h HCT) WithTone(tone float64) HCT {
	h.Tone = tone
	return h
}

// Normalized wraps the hue into [0, 360) and clamps the tone into [0, 100].
func (h HCT) Normalized() HCT {
	return HCT{Hue: NormalizeHue(h.Hue), Chroma: h.Chroma, Tone: clamp(h.Tone, 0, 100)}
}

// Validate reports ErrInvalidSeedColor for NaN or infinite components.
func (h HCT) Validate() error {
	for _, v := range [...]float64{h.Hue, h.Chroma, h.Tone} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s", ErrInvalidSeedColor, h)
		}
	}
	if h.Chroma < 0 {
		return fmt.Errorf("%w: negative chroma in %s", ErrInvalidSeedColor, h)
	}
	return nil
}

// NormalizeHue maps any angle in degrees into [0, 360).
func NormalizeHue(hue float64) float64 {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	// -1e-14 + 360 rounds to 360.
	if hue >= 360 {
		hue = 0
	}
	return hue
}

// RGBToHCT converts an sRGB colour to HCT.
func RGBToHCT(c RGB) HCT {
	lab := RGBToLab(c)
	hue := NormalizeHue(math.Atan2(lab.B, lab.A) * 180 / math.Pi)
	return HCT{
		Hue:    hue,
		Chroma: math.Sqrt(lab.A*lab.A + lab.B*lab.B),
		Tone:   lab.L,
	}
}

// HCTToRGB converts an HCT colour to sRGB. Hue is taken modulo 360 and tone
// is clamped to [0, 100]; colours outside the sRGB gamut are clipped per
// channel.
func HCTToRGB(h HCT) RGB {
	h = h.Normalized()
	rad := h.Hue * math.Pi / 180
	return LabToRGB(Lab{
		L: h.Tone,
		A: h.Chroma * math.Cos(rad),
		B: h.Chroma * math.Sin(rad),
	})
}

// RGBToLab converts an sRGB colour to CIE Lab.
func RGBToLab(c RGB) Lab {
	r := linearize(float64(c.R) / 255)
	g := linearize(float64(c.G) / 255)
	b := linearize(float64(c.B) / 255)

	m := &srgbToXYZ
	x := (m[0][0]*r + m[0][1]*g + m[0][2]*b) * 100
	y := (m[1][0]*r + m[1][1]*g + m[1][2]*b) * 100
	z := (m[2][0]*r + m[2][1]*g + m[2][2]*b) * 100

	fx := labPivot(x / whiteX)
	fy := labPivot(y / whiteY)
	fz := labPivot(z / whiteZ)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// LabToRGB converts a CIE Lab colour to sRGB, clipping out-of-gamut channels.
func LabToRGB(lab Lab) RGB {
	fy := (lab.L + 16) / 116
	fx := fy + lab.A/500
	fz := fy - lab.B/200

	fx3 := fx * fx * fx
	fy3 := fy * fy * fy
	fz3 := fz * fz * fz

	xr := (116*fx - 16) / labKappa
	if fx3 > labEpsilon {
		xr = fx3
	}
	yr := lab.L / labKappa
	if lab.L > labKappa*labEpsilon {
		yr = fy3
	}
	zr := (116*fz - 16) / labKappa
	if fz3 > labEpsilon {
		zr = fz3
	}

	x, y, z := xr*whiteX, yr*whiteY, zr*whiteZ

	m := &xyzToSRGB
	r := (m[0][0]*x + m[0][1]*y + m[0][2]*z) / 100
	g := (m[1][0]*x + m[1][1]*y + m[1][2]*z) / 100
	b := (m[2][0]*x + m[2][1]*y + m[2][2]*z) / 100

	return RGB{R: toByte(delinearize(r)), G: toByte(delinearize(g)), B: toByte(delinearize(b))}
}

// linearize removes the sRGB transfer curve.
func linearize(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// delinearize applies the sRGB transfer curve.
func delinearize(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

func labPivot(t float64) float64 {
	if t > labDelta*labDelta*labDelta {
		return math.Cbrt(t)
	}
	return t/(3*labDelta*labDelta) + 4.0/29.0
}

func toByte(c float64) uint8 {
	return uint8(math.Round(clamp(c, 0, 1) * 255))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
