package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// Options describes logger construction parameters
type Options struct {
	Level  string
	Format string // text, logfmt, json; empty picks text on a terminal and logfmt otherwise
	Output io.Writer
}

// New constructs a charmbracelet logger from opts
func New(opts Options) (*log.Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := log.InfoLevel
	if s := strings.TrimSpace(opts.Level); s != "" {
		parsed, err := log.ParseLevel(strings.ToLower(s))
		if err != nil {
			return nil, fmt.Errorf("log level: unsupported value %q", opts.Level)
		}
		level = parsed
	}

	formatter, err := parseFormat(opts.Format, out)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(out, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: formatter != log.TextFormatter,
	}), nil
}

// Discard returns a logger that drops everything; used by tests
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func parseFormat(format string, out io.Writer) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "":
		if isTerminal(out) {
			return log.TextFormatter, nil
		}
		return log.LogfmtFormatter, nil
	case "text", "console":
		return log.TextFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	default:
		return 0, fmt.Errorf("log format: unsupported value %q", format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
