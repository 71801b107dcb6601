package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetUpLogger configures the global zerolog logger.
// logFormat is one of auto, human or json; auto picks the console writer on a terminal.
func SetUpLogger(logLevel string, logFormat string) error {
	var writer io.Writer
	useConsoleWriter := false
	switch logFormat {
	case "auto":
		useConsoleWriter = isatty.IsTerminal(os.Stdout.Fd())
	case "human":
		useConsoleWriter = true
	case "json":
		useConsoleWriter = false
	default:
		return fmt.Errorf("invalid log format: %s, expected: [auto, json, human]", logFormat)
	}
	if useConsoleWriter {
		writer = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				w.NoColor = true
			}
		})
	} else {
		writer = os.Stdout
	}
	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
	return nil
}
