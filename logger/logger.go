package logger

import (
	"os"
	"strings"

	"github.com/Scalingo/sclng-top-languages/config"
	"github.com/sirupsen/logrus"
)

// Setup will configure logrus logger
// logs are written to stderr, stdout is kept for the languages report
func Setup(cfg config.Config, verbose bool) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if cfg.Logs.OutputLogsAsJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
		return
	}

	logrus.SetLevel(StringToLogrusLogType(cfg.Logs.Level))
}

// StringToLogrusLogType will convert string to the right logrus level
func StringToLogrusLogType(logLevel string) logrus.Level {
	logLevelLowerCase := strings.ToLower(logLevel)
	switch logLevelLowerCase {
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}
