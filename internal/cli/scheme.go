package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/colour"
	"github.com/jmylchreest/tonal/internal/scheme"
)

func newSchemeCmd() *cobra.Command {
	var (
		imagePath string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "scheme [seed]",
		Short: "Derive window and navigation colours for a theme",
		Long: `Derive window and navigation colours from a seed colour or an image.

Window backgrounds use the neutral role at the light or dark tone, text uses
the opposite tone, and hover and pressed states step 10 and 20 tones towards
the text. Navigation colours use fixed tones of the neutral, neutral-accent
and accent roles.

Examples:
  tonal scheme '#1395c0' --mode dark
  tonal scheme --image wallpaper.jpg --format toml -o theme.toml
  tonal scheme 1395c0 --mode light --light-tone 95`,
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

			sch, err := scheme.Build(colour.NewPalette(seed), s.cfg.Theme, s.cfg.Tones())
			if err != nil {
				return err
			}
			s.logger.Debug("scheme built", "mode", sch.Mode, "seed", sch.Seed)

			out, err := formatScheme(sch, s.format("text"), s.previewEnabled(output))
			if err != nil {
				return err
			}
			return s.write(output, out)
		},
	}

	tones := scheme.DefaultTones()
	mode := scheme.ModeAuto
	addExtractionFlags(cmd)
	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "derive the seed from an image, directory or URL")
	cmd.Flags().VarP(&mode, "mode", "m", "theme mode (auto, dark, light)")
	cmd.Flags().Float64("light-tone", tones.Light, "window tone in light mode")
	cmd.Flags().Float64("dark-tone", tones.Dark, "window tone in dark mode")
	cmd.Flags().StringP("format", "f", "text", "output format (text, json, toml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Bool("preview", false, "show colour swatches in the terminal")

	return cmd
}

// formatScheme formats the scheme according to the specified format.
func formatScheme(sch scheme.Scheme, format string, showPreview bool) (string, error) {
	switch format {
	case "text":
		headers := []string{"Name", "Role", "Tone", "Hex"}
		if showPreview {
			headers = append([]string{""}, headers...)
		}
		table := NewTable(headers)
		for _, e := range sch.Entries() {
			role := e.Swatch.Role
			if role == "" {
				role = "-"
			}
			row := []string{e.Name, role, fmt.Sprintf("%.0f", e.Swatch.Tone), e.Swatch.Hex}
			if showPreview {
				row = append([]string{swatch(e.Swatch.RGB, swatchWidth)}, row...)
			}
			table.AddRow(row...)
		}
		return fmt.Sprintf("Scheme %s, seed %s\n\n", sch.Mode, sch.Seed) + table.Render(), nil
	case "json":
		data, err := sch.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case "toml":
		data, err := sch.ToTOML()
		if err != nil {
			return "", fmt.Errorf("failed to convert to TOML: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json, toml)", format)
	}
}
