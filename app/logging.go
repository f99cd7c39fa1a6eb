package app

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// logLevelEnv selects the stderr log level (debug, info, warn, error)
const logLevelEnv = "QUERYEXPLORER_LOG_LEVEL"

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(strings.TrimSpace(os.Getenv(logLevelEnv)))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// parseLevel maps the frontend level names onto logrus levels
func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
