package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/colour"
	"github.com/jmylchreest/tonal/internal/extract"
)

// addExtractionFlags registers the flags that control seed extraction.
// Their values are read back through the config package.
func addExtractionFlags(cmd *cobra.Command) {
	strategy := extract.StrategyHistogram
	cmd.Flags().Var(&strategy, "strategy", "seed extraction strategy (histogram, vibrant)")
	cmd.Flags().IntP("count", "c", extract.DefaultSeedCount, "maximum number of histogram seeds")
	cmd.Flags().Int("max-dimension", extract.DefaultMaxDimension, "longest side scanned by the histogram strategy")
}

func newExtractCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract seed colours from an image",
		Long: `Extract seed colours from an image, a directory of images or an image URL.

The histogram strategy quantizes the image into 4096 buckets and ranks them by
population weighted chroma. The vibrant strategy picks the single most
saturated pixel and also derives five light/dark pairs from it.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract the top 5 seeds
  tonal extract wallpaper.jpg

  # Extract 3 seeds with swatches
  tonal extract --preview -c 3 wallpaper.png

  # Use the vibrant strategy and print JSON
  tonal extract --strategy vibrant --format json wallpaper.jpg

  # Pick a random wallpaper from a directory
  tonal extract ~/Pictures/wallpapers`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := setup(cmd)
			if err != nil {
				return err
			}

			res, err := s.extract(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(res.Seeds) == 0 {
				s.logger.Warn("image has no opaque pixels, no seeds extracted")
			}

			out, err := formatResult(res, s.format("hex"), s.previewEnabled(output))
			if err != nil {
				return err
			}
			return s.write(output, out)
		},
	}

	addExtractionFlags(cmd)
	cmd.Flags().StringP("format", "f", "hex", "output format (hex, rgb, hct, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Bool("preview", false, "show colour swatches in the terminal")

	return cmd
}

// seedJSON is one seed in JSON output.
type seedJSON struct {
	Hex string     `json:"hex"`
	RGB colour.RGB `json:"rgb"`
	HCT colour.HCT `json:"hct"`
}

// resultJSON is the JSON form of an extraction result.
type resultJSON struct {
	Strategy extract.Strategy `json:"strategy"`
	Seeds    []seedJSON       `json:"seeds"`
	Pairs    []extract.Pair   `json:"pairs,omitempty"`
}

// formatResult formats seeds according to the specified format.
func formatResult(res extract.Result, format string, showPreview bool) (string, error) {
	var sb strings.Builder

	switch format {
	case "hex", "rgb", "hct":
		for _, seed := range res.Seeds {
			rgb := colour.HCTToRGB(seed)
			var text string
			switch format {
			case "hex":
				text = rgb.Hex()
			case "rgb":
				text = rgb.String()
			default:
				text = seed.String()
			}
			if showPreview {
				sb.WriteString(swatch(rgb, swatchWidth) + " ")
			}
			sb.WriteString(text + "\n")
		}
		return sb.String(), nil
	case "json":
		out := resultJSON{Strategy: res.Strategy, Seeds: make([]seedJSON, 0, len(res.Seeds)), Pairs: res.Pairs}
		for _, seed := range res.Seeds {
			rgb := colour.HCTToRGB(seed)
			out.Seeds = append(out.Seeds, seedJSON{Hex: rgb.Hex(), RGB: rgb, HCT: seed})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, hct, json)", format)
	}
}
