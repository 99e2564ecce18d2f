package extract

import (
	"image"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tonal/internal/colour"
	imgutil "github.com/jmylchreest/tonal/internal/image"
)

const (
	// DefaultSeedCount is the number of histogram seeds returned by default.
	DefaultSeedCount = 5

	// DefaultMaxDimension is the longest side scanned by the histogram strategy.
	DefaultMaxDimension = 256

	histogramBins = 4096

	histogramAlphaThreshold = 128
	minSeedChroma           = 5.0
	minSeedTone             = 5.0
	maxSeedTone             = 95.0
)

// Histogram counts opaque pixels per 4-bit-per-channel bucket.
type Histogram [histogramBins]int

// BucketKey packs the top four bits of each channel into a 12-bit key.
func BucketKey(r, g, b uint8) int {
	return int(r>>4)<<8 | int(g>>4)<<4 | int(b>>4)
}

// BucketColor returns the midpoint colour of a bucket.
func BucketColor(key int) colour.RGB {
	return colour.RGB{
		R: uint8((key>>8)&0xf)*16 + 8,
		G: uint8((key>>4)&0xf)*16 + 8,
		B: uint8(key&0xf)*16 + 8,
	}
}

// NewHistogram quantizes every pixel of img with alpha >= 128. img is scanned
// as-is; callers wanting the bounded cost use HistogramExtractor.
func NewHistogram(img image.Image) *Histogram {
	var h Histogram
	src := imgutil.ToNRGBA(img)
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)]
		for i := 0; i+3 < len(row); i += 4 {
			if row[i+3] < histogramAlphaThreshold {
				continue
			}
			h[BucketKey(row[i], row[i+1], row[i+2])]++
		}
	}
	return &h
}

// Population returns the pixel count of a bucket.
func (h *Histogram) Population(key int) int {
	if key < 0 || key >= histogramBins {
		return 0
	}
	return h[key]
}

// NonEmpty returns the number of buckets with at least one pixel.
func (h *Histogram) NonEmpty() int {
	n := 0
	for _, c := range h {
		if c > 0 {
			n++
		}
	}
	return n
}

// Total returns the number of pixels counted.
func (h *Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

type scoredCandidate struct {
	score float64
	key   int
	hct   colour.HCT
}

// TopSeeds ranks buckets and returns up to n seeds. Buckets with chroma below
// 5 or tone outside [5, 95] are skipped and the rest scored by
// population × chroma. When every bucket is skipped, all non-empty buckets
// are ranked by population alone so a non-empty histogram always yields seeds.
// The bool reports whether that fallback was used.
func (h *Histogram) TopSeeds(n int) ([]colour.HCT, bool) {
	if n <= 0 {
		return nil, false
	}

	var scored []scoredCandidate
	for key, population := range h {
		if population <= 0 {
			continue
		}
		hct := colour.RGBToHCT(BucketColor(key))
		if hct.Chroma < minSeedChroma || hct.Tone < minSeedTone || hct.Tone > maxSeedTone {
			continue
		}
		scored = append(scored, scoredCandidate{score: float64(population) * hct.Chroma, key: key, hct: hct})
	}

	fallback := false
	if len(scored) == 0 {
		for key, population := range h {
			if population <= 0 {
				continue
			}
			scored = append(scored, scoredCandidate{
				score: float64(population),
				key:   key,
				hct:   colour.RGBToHCT(BucketColor(key)),
			})
		}
		fallback = len(scored) > 0
	}

	// Candidates are collected in key order, so a stable sort breaks ties by key.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	seeds := make([]colour.HCT, 0, min(n, len(scored)))
	for _, c := range scored[:min(n, len(scored))] {
		seeds = append(seeds, c.hct)
	}
	return seeds, fallback
}

// HistogramExtractor downsamples an image, builds a 4096-bucket histogram and
// returns the highest scoring buckets as seeds.
type HistogramExtractor struct {
	Count        int
	MaxDimension int
	Logger       hclog.Logger
}

// NewHistogramExtractor returns an extractor with default settings.
func NewHistogramExtractor() *HistogramExtractor {
	return &HistogramExtractor{Count: DefaultSeedCount, MaxDimension: DefaultMaxDimension}
}

// Extract implements Extractor. A fully transparent image yields an empty
// result and no error.
func (e *HistogramExtractor) Extract(img image.Image) (Result, error) {
	if err := checkImage(img); err != nil {
		return Result{}, err
	}

	logger := loggerOrNull(e.Logger)
	count := e.Count
	if count <= 0 {
		count = DefaultSeedCount
	}
	maxDim := e.MaxDimension
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}

	scaled := imgutil.Downscale(img, maxDim)
	hist := NewHistogram(scaled)

	seeds, fallback := hist.TopSeeds(count)
	logger.Debug("histogram built",
		"source", img.Bounds().Size(),
		"scaled", scaled.Bounds().Size(),
		"pixels", hist.Total(),
		"buckets", hist.NonEmpty(),
		"seeds", len(seeds))
	if fallback {
		logger.Debug("no chromatic bucket survived filtering, ranked by population")
	}

	return Result{Strategy: StrategyHistogram, Seeds: seeds}, nil
}
