// Package config loads tonal settings from defaults, a config file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tonal/internal/extract"
	"github.com/jmylchreest/tonal/internal/scheme"
)

// EnvPrefix prefixes every environment variable, e.g. TONAL_STRATEGY.
const EnvPrefix = "TONAL"

// Configuration keys.
const (
	KeyStrategy     = "strategy"
	KeyCount        = "count"
	KeyMaxDimension = "max_dimension"
	KeyLightTone    = "light_tone"
	KeyDarkTone     = "dark_tone"
	KeyTheme        = "theme"
	KeyFormat       = "format"
	KeyPreview      = "preview"
)

// flagNames maps configuration keys to the flags that may override them.
// The first flag present in a command's flag set wins.
var flagNames = map[string][]string{
	KeyStrategy:     {"strategy"},
	KeyCount:        {"count"},
	KeyMaxDimension: {"max-dimension"},
	KeyLightTone:    {"light-tone"},
	KeyDarkTone:     {"dark-tone"},
	KeyTheme:        {"mode", "theme"},
	KeyFormat:       {"format"},
	KeyPreview:      {"preview"},
}

// Config holds resolved settings.
type Config struct {
	Strategy     extract.Strategy
	Count        int
	MaxDimension int
	LightTone    float64
	DarkTone     float64
	Theme        scheme.Mode

	// Format is empty when the command's own default applies.
	Format  string
	Preview bool

	// File is the config file that was read, if any.
	File string
}

// Default returns the built-in configuration.
func Default() Config {
	tones := scheme.DefaultTones()
	return Config{
		Strategy:     extract.StrategyHistogram,
		Count:        extract.DefaultSeedCount,
		MaxDimension: extract.DefaultMaxDimension,
		LightTone:    tones.Light,
		DarkTone:     tones.Dark,
		Theme:        scheme.ModeAuto,
	}
}

// Dir returns the directory searched for config files:
// $XDG_CONFIG_HOME/tonal, or ~/.config/tonal.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tonal"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tonal"), nil
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault(KeyStrategy, string(d.Strategy))
	v.SetDefault(KeyCount, d.Count)
	v.SetDefault(KeyMaxDimension, d.MaxDimension)
	v.SetDefault(KeyLightTone, d.LightTone)
	v.SetDefault(KeyDarkTone, d.DarkTone)
	v.SetDefault(KeyTheme, d.Theme.String())
	v.SetDefault(KeyFormat, "")
	v.SetDefault(KeyPreview, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves the configuration for a command. file is an explicit config
// path; when empty the default directory is searched and a missing file is
// not an error.
func Load(flags *pflag.FlagSet, file string) (Config, error) {
	return LoadWith(New(), flags, file)
}

// LoadWith is Load with a caller supplied viper instance.
func LoadWith(v *viper.Viper, flags *pflag.FlagSet, file string) (Config, error) {
	if err := readConfigFile(v, file); err != nil {
		return Config{}, err
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return Config{}, err
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return Config{}, err
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper, file string) error {
	if file != "" {
		expanded, err := homedir.Expand(file)
		if err != nil {
			return fmt.Errorf("failed to expand config path: %w", err)
		}
		v.SetConfigFile(expanded)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", expanded, err)
		}
		return nil
	}

	dir, err := Dir()
	if err != nil {
		// No home directory: defaults, env and flags still apply.
		return nil
	}
	v.SetConfigName("config")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, names := range flagNames {
		for _, name := range names {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
			break
		}
	}
	return nil
}

func decode(v *viper.Viper) (Config, error) {
	strategy, err := extract.ParseStrategy(v.GetString(KeyStrategy))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyStrategy, err)
	}
	theme, err := scheme.ParseMode(v.GetString(KeyTheme))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyTheme, err)
	}

	return Config{
		Strategy:     strategy,
		Count:        v.GetInt(KeyCount),
		MaxDimension: v.GetInt(KeyMaxDimension),
		LightTone:    v.GetFloat64(KeyLightTone),
		DarkTone:     v.GetFloat64(KeyDarkTone),
		Theme:        theme,
		Format:       strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat))),
		Preview:      v.GetBool(KeyPreview),
	}, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.Extract(nil).Validate(); err != nil {
		return err
	}
	return c.Tones().Validate()
}

// Tones returns the window tones.
func (c Config) Tones() scheme.Tones {
	return scheme.Tones{Light: c.LightTone, Dark: c.DarkTone}
}

// Extract returns the extraction configuration.
func (c Config) Extract(logger hclog.Logger) extract.Config {
	return extract.Config{
		Strategy:     c.Strategy,
		Count:        c.Count,
		MaxDimension: c.MaxDimension,
		Logger:       logger,
	}
}
