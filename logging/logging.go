// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// LogFile is the name of the rotated log file inside the log directory.
const LogFile = "tui-mc-launcher.log"

// Init points the global logger at a rotating file in logDir plus any extra
// writers. The terminal belongs to the UI, so stderr is never added here.
// An unknown level logs a warning and falls back to info.
func Init(logDir, level string, writers ...io.Writer) error {
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return fmt.Errorf("could not create log directory %s: %w", logDir, err)
	}

	lvl := zerolog.InfoLevel
	var levelErr error
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			levelErr = err
		} else {
			lvl = parsed
		}
	}

	logWriters := []io.Writer{&lumberjack.Logger{
		Filename:   filepath.Join(logDir, LogFile),
		MaxSize:    1,
		MaxBackups: 2,
	}}
	logWriters = append(logWriters, writers...)

	log.Logger = log.Output(io.MultiWriter(logWriters...)).
		Level(lvl).
		With().Timestamp().Caller().Logger()

	if levelErr != nil {
		log.Warn().Err(levelErr).Str("level", level).Msg("invalid log level, using info")
	}
	return nil
}
