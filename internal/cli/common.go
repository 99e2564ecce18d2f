package cli

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/colour"
	"github.com/jmylchreest/tonal/internal/config"
	"github.com/jmylchreest/tonal/internal/extract"
	imgutil "github.com/jmylchreest/tonal/internal/image"
	"github.com/jmylchreest/tonal/internal/logging"
	"github.com/jmylchreest/tonal/internal/util/imagecache"
)

// session is the per-invocation state shared by commands.
type session struct {
	cfg     config.Config
	logger  hclog.Logger
	out     io.Writer
	noCache bool
}

// setup resolves configuration and logging for cmd.
func setup(cmd *cobra.Command) (*session, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	configFile, _ := cmd.Flags().GetString("config")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	logger := logging.NewWithOptions(logging.Options{
		Verbose: verbose,
		Quiet:   quiet,
		Output:  cmd.ErrOrStderr(),
	})

	cfg, err := config.Load(cmd.Flags(), configFile)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.File != "" {
		logger.Debug("loaded config file", "path", cfg.File)
	}

	return &session{cfg: cfg, logger: logger, out: cmd.OutOrStdout(), noCache: noCache}, nil
}

// loadImage resolves path (file, directory or URL) and decodes it.
func (s *session) loadImage(ctx context.Context, path string) (image.Image, error) {
	resolved, err := imgutil.ResolveImagePath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid image path: %w", err)
	}
	if resolved != path {
		s.logger.Info("selected image", "path", resolved)
	}

	loader := imgutil.NewSmartLoader()
	if imgutil.IsURL(resolved) && !s.noCache {
		cache, err := imagecache.New("")
		if err != nil {
			s.logger.Warn("image cache unavailable, downloading directly", "error", err)
		} else {
			s.logger.Debug("using image cache", "dir", cache.Dir)
			loader.WithCache(cache)
		}
	}

	s.logger.Debug("loading image", "path", resolved)
	img, err := loader.Load(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	b := img.Bounds()
	s.logger.Debug("image loaded", "width", b.Dx(), "height", b.Dy())
	return img, nil
}

// extract loads path and runs the configured strategy over it.
func (s *session) extract(ctx context.Context, path string) (extract.Result, error) {
	img, err := s.loadImage(ctx, path)
	if err != nil {
		return extract.Result{}, err
	}

	extractor, err := extract.New(s.cfg.Extract(s.logger))
	if err != nil {
		return extract.Result{}, fmt.Errorf("failed to create extractor: %w", err)
	}

	s.logger.Debug("extracting seeds", "strategy", s.cfg.Strategy, "count", s.cfg.Count)
	res, err := extractor.Extract(img)
	if err != nil {
		return extract.Result{}, fmt.Errorf("failed to extract colours: %w", err)
	}
	return res, nil
}

// seedFromArgs returns the seed named on the command line, or the best seed
// extracted from imagePath.
func (s *session) seedFromArgs(ctx context.Context, args []string, imagePath string) (colour.HCT, error) {
	switch {
	case len(args) > 0 && imagePath != "":
		return colour.HCT{}, fmt.Errorf("specify either a seed colour or --image, not both")
	case len(args) > 0:
		rgb, err := colour.ParseHex(args[0])
		if err != nil {
			return colour.HCT{}, err
		}
		return colour.RGBToHCT(rgb), nil
	case imagePath != "":
		res, err := s.extract(ctx, imagePath)
		if err != nil {
			return colour.HCT{}, err
		}
		seed, ok := res.Seed()
		if !ok {
			return colour.HCT{}, fmt.Errorf("no seed colour found in %s", imagePath)
		}
		s.logger.Debug("using extracted seed", "seed", seed)
		return seed, nil
	default:
		return colour.HCT{}, fmt.Errorf("a seed colour or --image is required")
	}
}

// write sends output to path, or to the command's stdout when path is empty.
func (s *session) write(path, output string) error {
	if path == "" {
		_, err := io.WriteString(s.out, output)
		return err
	}

	s.logger.Debug("writing output", "path", path)
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil { // #nosec G306 - output is not sensitive
		return fmt.Errorf("failed to write output file: %w", err)
	}
	s.logger.Info("wrote output", "path", path)
	return nil
}

// format returns the configured output format or def.
func (s *session) format(def string) string {
	if s.cfg.Format != "" {
		return s.cfg.Format
	}
	return def
}
