// Package cli provides the command-line interface for tonal.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/version"
)

// NewRootCmd builds the command tree. Each call returns independent commands
// and flag state.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tonal",
		Short: "A tonal palette generator",
		Long: `Tonal derives tonal colour palettes from a seed colour or a wallpaper.

Seeds are extracted from images with a histogram or a vibrant-pixel strategy,
expanded into main, sub, neutral, neutral-accent and accent roles in a
Lab-based hue/chroma/tone space, and queried at any tone for light and dark
themes.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().String("config", "", "config file (default: $XDG_CONFIG_HOME/tonal/config.{toml,yaml,json})")
	rootCmd.PersistentFlags().Bool("no-cache", false, "download remote images on every run instead of caching them")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newPaletteCmd())
	rootCmd.AddCommand(newPairsCmd())
	rootCmd.AddCommand(newSchemeCmd())
	rootCmd.AddCommand(newConvertCmd())

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				data, err := version.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}
