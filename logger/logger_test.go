package logger

import (
	"testing"

	"github.com/Scalingo/sclng-top-languages/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestStringToLogrusLogType(t *testing.T) {
	tests := map[string]logrus.Level{
		"error":   logrus.ErrorLevel,
		"WARN":    logrus.WarnLevel,
		"Info":    logrus.InfoLevel,
		"debug":   logrus.DebugLevel,
		"verbose": logrus.ErrorLevel,
		"":        logrus.ErrorLevel,
	}

	for input, expected := range tests {
		assert.Equal(t, expected, StringToLogrusLogType(input), "level %q", input)
	}
}

func TestSetup(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	cfg := config.GetDefault()
	cfg.Logs.Level = "warn"
	cfg.Logs.OutputLogsAsJSON = true

	Setup(*cfg, false)
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	Setup(*cfg, true)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}
