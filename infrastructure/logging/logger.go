// Package logging builds the console logger shared by every component.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnvLevel is the variable read by FromEnv
const EnvLevel = "LOG_LEVEL"

var levels = map[string]logrus.Level{
	"debug": logrus.DebugLevel,
	"info":  logrus.InfoLevel,
	"warn":  logrus.WarnLevel,
	"error": logrus.ErrorLevel,
}

// New - creates a console logger at info, then applies level
func New(level string) *logrus.Logger {
	return NewWithOutput(os.Stderr, level)
}

// NewWithOutput - same as New but writes to out
func NewWithOutput(out io.Writer, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	SetLevel(logger, level)
	return logger
}

// FromEnv - creates a logger whose level comes from LOG_LEVEL
func FromEnv() *logrus.Logger {
	return New(os.Getenv(EnvLevel))
}

// SetLevel applies one of debug, info, warn or error (any case).
// Anything else leaves the current level untouched and returns false.
func SetLevel(logger *logrus.Logger, level string) bool {
	lvl, ok := levels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return false
	}
	logger.SetLevel(lvl)
	return true
}
