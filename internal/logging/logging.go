// Package logging builds the hclog loggers shared by the CLI and the engine.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Name is the root logger name.
const Name = "tonal"

// Options configures a logger.
type Options struct {
	Verbose bool
	Quiet   bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// Level maps the verbose and quiet flags to a log level. Verbose wins when
// both are set.
func (o Options) Level() hclog.Level {
	switch {
	case o.Verbose:
		return hclog.Debug
	case o.Quiet:
		return hclog.Error
	default:
		return hclog.Info
	}
}

// New creates a logger writing to stderr.
func New(verbose, quiet bool) hclog.Logger {
	return NewWithOptions(Options{Verbose: verbose, Quiet: quiet})
}

// NewWithOptions creates a logger from opts.
func NewWithOptions(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:        Name,
		Output:      out,
		Level:       opts.Level(),
		DisableTime: !opts.Verbose,
	})
}
