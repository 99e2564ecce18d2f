package extract

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tonal/internal/colour"
	imgutil "github.com/jmylchreest/tonal/internal/image"
)

// Vibrant pixel thresholds. A pixel qualifies when it is nearly opaque,
// saturated, and neither too dark nor blown out.
const (
	vibrantAlphaThreshold = 200
	vibrantMinSaturation  = 0.35
	vibrantMinValue       = 0.30
	vibrantMaxValue       = 0.96

	vibrantSaturationWeight = 0.7
	vibrantValueWeight      = 0.3
)

// VibrantExtractor picks the most vibrant pixel of an image and derives HSL
// light/dark pairs from it. Every pixel is scanned; no downscaling happens.
type VibrantExtractor struct {
	Logger hclog.Logger
}

// NewVibrantExtractor returns a VibrantExtractor without logging.
func NewVibrantExtractor() *VibrantExtractor {
	return &VibrantExtractor{}
}

// Extract implements Extractor. The result carries a single seed and five
// pairs. ErrNoVibrantColor is returned when no pixel qualifies.
func (e *VibrantExtractor) Extract(img image.Image) (Result, error) {
	seed, err := e.DominantVibrantColor(img)
	if err != nil {
		return Result{}, err
	}

	pairs := GeneratePairs(seed)
	return Result{
		Strategy: StrategyVibrant,
		Seeds:    []colour.HCT{colour.RGBToHCT(seed)},
		Pairs:    pairs[:],
	}, nil
}

// DominantVibrantColor returns the pixel with the highest
// saturation·0.7 + value·0.3 among pixels with alpha >= 200, saturation >= 0.35
// and value in [0.30, 0.96]. The first pixel in row-major order wins ties.
func (e *VibrantExtractor) DominantVibrantColor(img image.Image) (colour.RGB, error) {
	if err := checkImage(img); err != nil {
		return colour.RGB{}, err
	}

	logger := loggerOrNull(e.Logger)
	src := imgutil.ToNRGBA(img)
	b := src.Bounds()

	var (
		best      colour.RGB
		bestScore = -1.0
		found     bool
		qualified int
	)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)]
		for i := 0; i+3 < len(row); i += 4 {
			if row[i+3] < vibrantAlphaThreshold {
				continue
			}

			px := colour.RGB{R: row[i], G: row[i+1], B: row[i+2]}
			_, s, v := px.HSV()
			if s < vibrantMinSaturation || v < vibrantMinValue || v > vibrantMaxValue {
				continue
			}

			found = true
			qualified++
			if score := s*vibrantSaturationWeight + v*vibrantValueWeight; score > bestScore {
				bestScore = score
				best = px
			}
		}
	}

	if !found {
		logger.Debug("no pixel passed vibrant thresholds", "pixels", b.Dx()*b.Dy())
		return colour.RGB{}, ErrNoVibrantColor
	}

	logger.Debug("vibrant seed selected", "seed", best.Hex(), "score", bestScore, "qualified", qualified)
	return best, nil
}

// Pair is a light and a dark variant of one palette hue. Light is meant as a
// foreground on dark surfaces and Dark as a background under light text.
type Pair struct {
	Light colour.RGB `json:"light" toml:"light"`
	Dark  colour.RGB `json:"dark" toml:"dark"`
}

// pairSpec describes one pair: a hue offset, and for each member a multiplier
// on the base saturation and lightness followed by a clamp band.
type pairSpec struct {
	hueOffset float64

	lightS, lightSMin, lightSMax float64
	lightL, lightLMin, lightLMax float64
	darkS, darkSMin, darkSMax    float64
	darkL, darkLMin, darkLMax    float64
}

var pairSpecs = [5]pairSpec{
	{0, 1.0, 0.5, 0.9, 1.0, 0.55, 0.75, 0.7, 0.3, 0.7, 0.3, 0.1, 0.25},
	{30, 0.9, 0.55, 0.9, 1.05, 0.6, 0.8, 0.6, 0.3, 0.65, 0.35, 0.12, 0.28},
	{60, 0.95, 0.6, 0.95, 1.1, 0.65, 0.85, 0.5, 0.25, 0.6, 0.4, 0.15, 0.3},
	{180, 0.8, 0.45, 0.85, 0.9, 0.5, 0.7, 0.65, 0.25, 0.6, 0.25, 0.08, 0.22},
	{0, 0.2, 0.05, 0.3, 1.2, 0.75, 0.9, 0.15, 0.02, 0.25, 0.15, 0.05, 0.15},
}

// GeneratePairs derives five light/dark pairs from seed in HSL space.
// The base saturation is raised to at least 0.5 and the base lightness kept
// within [0.4, 0.75] before the per-pair bands are applied.
func GeneratePairs(seed colour.RGB) [5]Pair {
	h, s, l := seed.HSL()
	h = max(h, 0)
	s = max(s, 0.5)
	l = min(max(l, 0.4), 0.75)

	var pairs [5]Pair
	for i, spec := range pairSpecs {
		hue := colour.NormalizeHue(h + spec.hueOffset)
		pairs[i] = Pair{
			Light: colour.HSLToRGB(hue,
				clampF(s*spec.lightS, spec.lightSMin, spec.lightSMax),
				clampF(l*spec.lightL, spec.lightLMin, spec.lightLMax)),
			Dark: colour.HSLToRGB(hue,
				clampF(s*spec.darkS, spec.darkSMin, spec.darkSMax),
				clampF(l*spec.darkL, spec.darkLMin, spec.darkLMax)),
		}
	}
	return pairs
}

// GeneratePairsFromColor is GeneratePairs for an image/color value. Nil and
// fully transparent colours are rejected with ErrInvalidSeedColor.
func GeneratePairsFromColor(c color.Color) ([5]Pair, error) {
	if c == nil {
		return [5]Pair{}, fmt.Errorf("%w: nil colour", ErrInvalidSeedColor)
	}
	if _, _, _, a := c.RGBA(); a == 0 {
		return [5]Pair{}, fmt.Errorf("%w: fully transparent colour", ErrInvalidSeedColor)
	}
	return GeneratePairs(colour.FromColor(c)), nil
}

func clampF(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
