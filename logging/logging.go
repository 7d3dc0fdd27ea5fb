// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// TimeFormat is the console timestamp layout.
const TimeFormat = "15:04:05.000"

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatAuto    = "auto"
)

// Options selects level, format and destination.
type Options struct {
	Level  string    // trace, debug, info, warn, error; empty means info
	Format string    // console, json or auto; empty means auto
	Out    io.Writer // defaults to os.Stdout
}

// Setup builds a logger from opts and installs it as the zerolog/log global.
func Setup(opts Options) (zerolog.Logger, error) {
	// 1. Level
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logging: invalid level %q: %w", opts.Level, err)
		}
		level = l
	}

	// 2. Destination and format
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	format := strings.ToLower(opts.Format)
	if format == "" || format == FormatAuto {
		format = FormatJSON
		if isTerminal(out) {
			format = FormatConsole
		}
	}

	var w io.Writer
	switch format {
	case FormatJSON:
		w = out
	case FormatConsole:
		if f, ok := out.(*os.File); ok {
			out = colorable.NewColorable(f)
		}
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: TimeFormat, NoColor: !isTerminal(opts.Out)}
	default:
		return zerolog.Nop(), fmt.Errorf("logging: invalid format %q", opts.Format)
	}

	// 3. Install
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	zlog.Logger = logger

	return logger, nil
}

func isTerminal(w io.Writer) bool {
	if w == nil {
		w = os.Stdout
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
