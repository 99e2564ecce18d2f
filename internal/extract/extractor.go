// Package extract finds seed colours in wallpaper bitmaps.
//
// Two strategies are provided and deliberately kept apart. The histogram
// strategy quantizes the image and ranks buckets by population weighted
// chroma; it always returns a result for a non-empty image. The vibrant
// strategy picks the single most saturated pixel and derives HSL light/dark
// pairs from it; it fails with ErrNoVibrantColor when nothing qualifies.
package extract

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tonal/internal/colour"
)

var (
	// ErrEmptyImage is returned for nil images and images without pixels.
	ErrEmptyImage = errors.New("image is empty")

	// ErrNoVibrantColor is returned when no pixel passes the vibrant thresholds.
	ErrNoVibrantColor = errors.New("no vibrant colour found")

	// ErrInvalidSeedColor is returned when a seed cannot be used to build a palette.
	ErrInvalidSeedColor = colour.ErrInvalidSeedColor
)

// Strategy names a seed extraction algorithm.
type Strategy string

const (
	// StrategyHistogram ranks 4096 quantized buckets by population × chroma.
	StrategyHistogram Strategy = "histogram"

	// StrategyVibrant picks the most vibrant opaque pixel.
	StrategyVibrant Strategy = "vibrant"
)

// ValidStrategies returns every supported strategy.
func ValidStrategies() []Strategy {
	return []Strategy{StrategyHistogram, StrategyVibrant}
}

// IsValidStrategy checks if the given strategy name is valid.
func IsValidStrategy(s Strategy) bool {
	for _, valid := range ValidStrategies() {
		if s == valid {
			return true
		}
	}
	return false
}

// ParseStrategy parses a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	strategy := Strategy(strings.ToLower(strings.TrimSpace(s)))
	if !IsValidStrategy(strategy) {
		return "", fmt.Errorf("unknown strategy: %s (valid strategies: %v)", s, ValidStrategies())
	}
	return strategy, nil
}

// String implements pflag.Value.
func (s *Strategy) String() string {
	return string(*s)
}

// Set implements pflag.Value.
func (s *Strategy) Set(v string) error {
	parsed, err := ParseStrategy(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (s *Strategy) Type() string {
	return "strategy"
}

// Result is the outcome of a seed extraction.
type Result struct {
	Strategy Strategy `json:"strategy"`

	// Seeds are ranked best first. The vibrant strategy returns exactly one.
	Seeds []colour.HCT `json:"seeds"`

	// Pairs holds the HSL light/dark pairs; only the vibrant strategy sets it.
	Pairs []Pair `json:"pairs,omitempty"`
}

// Seed returns the best seed, or false when the result is empty.
func (r Result) Seed() (colour.HCT, bool) {
	if len(r.Seeds) == 0 {
		return colour.HCT{}, false
	}
	return r.Seeds[0], true
}

// Extractor extracts seed colours from an image.
type Extractor interface {
	Extract(img image.Image) (Result, error)
}

// Config holds configuration for seed extraction.
type Config struct {
	Strategy Strategy

	// Count is the maximum number of histogram seeds.
	Count int

	// MaxDimension bounds the longer side before histogram quantization.
	MaxDimension int

	// Logger receives debug output. Nil disables logging.
	Logger hclog.Logger
}

// DefaultConfig returns the default extraction configuration.
func DefaultConfig() Config {
	return Config{
		Strategy:     StrategyHistogram,
		Count:        DefaultSeedCount,
		MaxDimension: DefaultMaxDimension,
	}
}

// Validate validates the extraction configuration.
func (c Config) Validate() error {
	if !IsValidStrategy(c.Strategy) {
		return fmt.Errorf("invalid strategy: %s", c.Strategy)
	}
	if c.Count < 1 {
		return fmt.Errorf("seed count must be at least 1, got %d", c.Count)
	}
	if c.Count > histogramBins {
		return fmt.Errorf("seed count too large: %d (maximum: %d)", c.Count, histogramBins)
	}
	if c.MaxDimension < 1 {
		return fmt.Errorf("max dimension must be at least 1, got %d", c.MaxDimension)
	}
	return nil
}

// New creates an Extractor for cfg.Strategy.
func New(cfg Config) (Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	switch cfg.Strategy {
	case StrategyHistogram:
		return &HistogramExtractor{
			Count:        cfg.Count,
			MaxDimension: cfg.MaxDimension,
			Logger:       logger.Named("histogram"),
		}, nil
	case StrategyVibrant:
		return &VibrantExtractor{Logger: logger.Named("vibrant")}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %s (valid strategies: %v)", cfg.Strategy, ValidStrategies())
	}
}

func checkImage(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return ErrEmptyImage
	}
	return nil
}

func loggerOrNull(l hclog.Logger) hclog.Logger {
	if l == nil {
		return hclog.NewNullLogger()
	}
	return l
}
