package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/colour"
	"github.com/jmylchreest/tonal/internal/extract"
)

func newPairsCmd() *cobra.Command {
	var (
		imagePath string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "pairs [seed]",
		Short: "Generate light/dark colour pairs",
		Long: `Generate five light/dark pairs in HSL space from a seed colour, or from the
most vibrant pixel of an image.

Pair 1 keeps the seed hue, pairs 2 to 4 rotate it by 30, 60 and 180 degrees,
and pair 5 is a near-neutral. The text format shows each light colour's hue
distance from the seed. Light colours suit text on dark surfaces and
dark colours suit backgrounds under light text.

Examples:
  tonal pairs '#1395c0'
  tonal pairs --image wallpaper.jpg --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := setup(cmd)
			if err != nil {
				return err
			}

			var seed colour.RGB
			switch {
			case len(args) > 0 && imagePath != "":
				return fmt.Errorf("specify either a seed colour or --image, not both")
			case len(args) > 0:
				if seed, err = colour.ParseHex(args[0]); err != nil {
					return err
				}
			case imagePath != "":
				img, err := s.loadImage(cmd.Context(), imagePath)
				if err != nil {
					return err
				}
				e := &extract.VibrantExtractor{Logger: s.logger.Named("vibrant")}
				if seed, err = e.DominantVibrantColor(img); err != nil {
					return fmt.Errorf("failed to extract colours: %w", err)
				}
			default:
				return fmt.Errorf("a seed colour or --image is required")
			}

			out, err := formatPairs(seed, extract.GeneratePairs(seed), s.format("text"), s.previewEnabled(output))
			if err != nil {
				return err
			}
			return s.write(output, out)
		},
	}

	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "use the most vibrant pixel of an image, directory or URL")
	cmd.Flags().StringP("format", "f", "text", "output format (text, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Bool("preview", false, "show colour swatches in the terminal")

	return cmd
}

type pairsJSON struct {
	Seed  string         `json:"seed"`
	Pairs []extract.Pair `json:"pairs"`
}

func formatPairs(seed colour.RGB, pairs [5]extract.Pair, format string, showPreview bool) (string, error) {
	switch format {
	case "text":
		seedHue, _, _ := seed.HSL()
		table := NewTable([]string{"Pair", "Shift", "Light", "Dark"})
		for i, p := range pairs {
			lightHue, _, _ := p.Light.HSL()
			shift := fmt.Sprintf("%.0f°", colour.HueDistance(seedHue, lightHue))
			light, dark := p.Light.Hex(), p.Dark.Hex()
			if showPreview {
				light = labelledSwatch(p.Light, light, 9)
				dark = labelledSwatch(p.Dark, dark, 9)
			}
			table.AddRow(fmt.Sprint(i+1), shift, light, dark)
		}
		return fmt.Sprintf("Seed %s\n\n", seed.Hex()) + table.Render(), nil
	case "json":
		data, err := json.MarshalIndent(pairsJSON{Seed: seed.Hex(), Pairs: pairs[:]}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}
}
