package logger

import (
	"io"
	"os"
	"time"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"github.com/tjjh89017/fxsandbox/internal/config"
)

var DefaultSet = wire.NewSet(
	NewLogger,
)

var LevelMap = map[string]zerolog.Level{
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
}

// NewLogger logs to stderr so commands can keep stdout for their output.
func NewLogger(config *config.Config) *zerolog.Logger {
	return New(os.Stderr, config.Log.Level)
}

// New returns a console logger on out. Unknown levels leave every level
// enabled.
func New(out io.Writer, level string) *zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()

	if l, ok := LevelMap[level]; ok {
		logger = logger.Level(l)
	}

	return &logger
}
