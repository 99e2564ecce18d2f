package colour

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

func (rgb RGB) toColorful() colorful.Color {
	return colorful.Color{R: float64(rgb.R) / 255, G: float64(rgb.G) / 255, B: float64(rgb.B) / 255}
}

// HSV returns hue in degrees [0, 360) and saturation and value in [0, 1].
// Achromatic colours report hue 0.
func (rgb RGB) HSV() (h, s, v float64) {
	return rgb.toColorful().Hsv()
}

// HSL returns hue in degrees [0, 360) and saturation and lightness in [0, 1].
// Achromatic colours report hue 0.
func (rgb RGB) HSL() (h, s, l float64) {
	return rgb.toColorful().Hsl()
}

// HSLToRGB converts HSL to RGB colour space.
// h is hue in degrees and is wrapped into [0, 360); s and l are clamped to [0, 1].
func HSLToRGB(h, s, l float64) RGB {
	c := colorful.Hsl(NormalizeHue(h), clamp(s, 0, 1), clamp(l, 0, 1)).Clamped()
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}
