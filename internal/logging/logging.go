// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"time"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	log "github.com/sirupsen/logrus"
)

// Setup applies level and format ("text" or "json") to the standard logger
// and directs it to out.
func Setup(out io.Writer, level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	f, err := newFormatter(format)
	if err != nil {
		return err
	}

	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetFormatter(f)
	return nil
}

func newFormatter(format string) (log.Formatter, error) {
	switch format {
	case "", "text":
		return &formatter.Formatter{
			HideKeys:        true,
			TimestampFormat: time.RFC3339,
			FieldsOrder:     []string{"component", "view", "range"},
			NoColors:        true,
		}, nil
	case "json":
		return &log.JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
