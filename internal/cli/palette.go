package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/colour"
)

// rampTones are the tones shown by palette --ramp.
var rampTones = []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 95, 99, 100}

// roleFilter is an optional colour.Role flag. Unset means every role.
type roleFilter struct {
	role colour.Role
	set  bool
}

func (f *roleFilter) String() string {
	if !f.set {
		return ""
	}
	return f.role.String()
}

func (f *roleFilter) Set(s string) error {
	if err := f.role.Set(s); err != nil {
		return err
	}
	f.set = true
	return nil
}

func (f *roleFilter) Type() string {
	return f.role.Type()
}

func (f *roleFilter) roles() []colour.Role {
	if !f.set {
		return colour.Roles()
	}
	return []colour.Role{f.role}
}

func newPaletteCmd() *cobra.Command {
	var (
		imagePath string
		output    string
		tone      float64
		ramp      bool
		role      roleFilter
	)

	cmd := &cobra.Command{
		Use:   "palette [seed]",
		Short: "Derive a tonal palette from a seed colour",
		Long: `Derive the five palette roles (main, sub, neutral, neutral-accent, accent)
from a hex seed colour or from the best seed of an image, and render them at a
tone.

Examples:
  # Roles at the seed's own tone
  tonal palette '#1395c0'

  # Roles at tone 40, as JSON
  tonal palette 1395c0 --tone 40 --format json

  # Only the accent role
  tonal palette '#1395c0' --role accent

  # Full tone ramp of every role, seeded from a wallpaper
  tonal palette --image wallpaper.jpg --ramp --preview`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := setup(cmd)
			if err != nil {
				return err
			}

			seed, err := s.seedFromArgs(cmd.Context(), args, imagePath)
			if err != nil {
				return err
			}
			p := colour.NewPalette(seed)

			if !cmd.Flags().Changed("tone") {
				tone = seed.Tone
			}
			if tone < 0 || tone > 100 {
				return fmt.Errorf("tone must be within [0, 100], got %g", tone)
			}

			out, err := formatPalette(p, role.roles(), tone, ramp, s.format("text"), s.previewEnabled(output))
			if err != nil {
				return err
			}
			return s.write(output, out)
		},
	}

	addExtractionFlags(cmd)
	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "derive the seed from an image, directory or URL")
	cmd.Flags().Float64Var(&tone, "tone", 0, "tone to render roles at, 0-100 (when unset, the seed tone)")
	cmd.Flags().BoolVar(&ramp, "ramp", false, "render every role across a range of tones")
	cmd.Flags().Var(&role, "role", "render only one role (main, sub, neutral, neutral-accent, accent)")
	cmd.Flags().StringP("format", "f", "text", "output format (text, hex, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Bool("preview", false, "show colour swatches in the terminal")

	return cmd
}

// formatPalette formats the palette according to the specified format.
func formatPalette(p *colour.Palette, roles []colour.Role, tone float64, ramp bool, format string, showPreview bool) (string, error) {
	switch format {
	case "text":
		if ramp {
			return formatRamp(p, roles, showPreview), nil
		}
		return formatRoles(p, roles, tone, showPreview), nil
	case "hex":
		var sb strings.Builder
		for _, r := range roles {
			sb.WriteString(p.RGB(r, tone).Hex() + "\n")
		}
		return sb.String(), nil
	case "json":
		data, err := p.ToJSON(tone, roles...)
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, hex, json)", format)
	}
}

func formatRoles(p *colour.Palette, roles []colour.Role, tone float64, showPreview bool) string {
	headers := []string{"Role", "Hex", "RGB", "HCT"}
	if showPreview {
		headers = append([]string{""}, headers...)
	}
	table := NewTable(headers)

	for _, r := range roles {
		rgb := p.RGB(r, tone)
		row := []string{r.String(), rgb.Hex(), rgb.String(), p.Color(r, tone).String()}
		if showPreview {
			row = append([]string{swatch(rgb, swatchWidth)}, row...)
		}
		table.AddRow(row...)
	}

	seed := p.Seed()
	return fmt.Sprintf("Seed %s %s, tone %g\n\n", colour.HCTToRGB(seed).Hex(), seed, tone) + table.Render()
}

func formatRamp(p *colour.Palette, roles []colour.Role, showPreview bool) string {
	headers := []string{"Role"}
	for _, t := range rampTones {
		headers = append(headers, strconv.FormatFloat(t, 'f', -1, 64))
	}
	table := NewTable(headers)

	for _, r := range roles {
		row := []string{r.String()}
		for _, t := range rampTones {
			rgb := p.RGB(r, t)
			if showPreview {
				row = append(row, labelledSwatch(rgb, rgb.Hex(), 9))
			} else {
				row = append(row, rgb.Hex())
			}
		}
		table.AddRow(row...)
	}
	return table.Render()
}
