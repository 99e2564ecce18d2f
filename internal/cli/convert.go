package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/colour"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <colour>",
		Short: "Convert a colour between sRGB, HCT and Lab",
		Long: `Convert a colour between sRGB, HCT and Lab.

The colour may be a hex value, rgb(r, g, b) or hct(h, c, t); the colon forms
rgb:r,g,b and hct:h,c,t are also accepted. HCT input is clamped into sRGB.

Examples:
  tonal convert '#1395c0'
  tonal convert 'hct(241.75, 35.52, 57.5)'
  tonal convert hct:120,50,40 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := setup(cmd)
			if err != nil {
				return err
			}

			rgb, err := parseColourSpec(args[0])
			if err != nil {
				return err
			}

			out, err := formatConversion(rgb, s.format("text"), s.previewEnabled(""))
			if err != nil {
				return err
			}
			return s.write("", out)
		},
	}

	cmd.Flags().StringP("format", "f", "text", "output format (text, json)")
	cmd.Flags().Bool("preview", false, "show a colour swatch in the terminal")

	return cmd
}

// parseColourSpec parses hex, rgb(...) and hct(...) colour notations.
func parseColourSpec(spec string) (colour.RGB, error) {
	s := strings.ToLower(strings.TrimSpace(spec))

	for _, prefix := range []string{"rgb", "hct"} {
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		vals, err := parseComponents(strings.TrimPrefix(s, prefix))
		if err != nil {
			return colour.RGB{}, fmt.Errorf("%w: %q: %v", colour.ErrInvalidSeedColor, spec, err)
		}
		if prefix == "rgb" {
			return colour.NewRGB(channel(vals[0]), channel(vals[1]), channel(vals[2])), nil
		}
		hct := colour.HCT{Hue: vals[0], Chroma: vals[1], Tone: vals[2]}
		if err := hct.Validate(); err != nil {
			return colour.RGB{}, err
		}
		return colour.HCTToRGB(hct), nil
	}

	return colour.ParseHex(s)
}

// channel rounds v into [0, 255]. NaN maps to 0.
func channel(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(min(max(v, 0), 255)))
}

// parseComponents parses "(a, b, c)" or ":a,b,c" into three numbers.
func parseComponents(s string) ([3]float64, error) {
	var out [3]float64

	switch {
	case strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"):
		s = s[1 : len(s)-1]
	case strings.HasPrefix(s, ":"):
		s = s[1:]
	default:
		return out, fmt.Errorf("expected (a, b, c) or :a,b,c")
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("expected 3 components, got %d", len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return out, fmt.Errorf("invalid component %q", strings.TrimSpace(p))
		}
		out[i] = v
	}
	return out, nil
}

type conversionJSON struct {
	Hex string     `json:"hex"`
	RGB colour.RGB `json:"rgb"`
	HCT colour.HCT `json:"hct"`
	Lab colour.Lab `json:"lab"`
}

func formatConversion(rgb colour.RGB, format string, showPreview bool) (string, error) {
	hct := colour.RGBToHCT(rgb)
	lab := colour.RGBToLab(rgb)

	switch format {
	case "text":
		table := NewTable(nil)
		hex := rgb.Hex()
		if showPreview {
			hex = swatch(rgb, swatchWidth) + " " + hex
		}
		table.AddRow("hex", hex)
		table.AddRow("rgb", rgb.String())
		table.AddRow("hct", hct.String())
		table.AddRow("lab", fmt.Sprintf("lab(%.2f, %.2f, %.2f)", lab.L, lab.A, lab.B))
		return table.Render(), nil
	case "json":
		data, err := json.MarshalIndent(conversionJSON{Hex: rgb.Hex(), RGB: rgb, HCT: hct, Lab: lab}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}
}
