// Package logging builds the process-wide logger. Output always goes to
// stderr so stdout stays free for the MCP transport.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a console logger at the given level. Unknown level names fall
// back to info.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}
