package commands

import (
	"io"
	"os"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// logrusLogger adapts a logrus logger to hubspot.Logger.
type logrusLogger struct {
	entry *log.Logger
}

var _ hubspot.Logger = (*logrusLogger)(nil)

// newLogger builds the CLI logger. --verbose forces debug level, otherwise
// HUBSPOT_LOG_LEVEL (default info) applies.
func newLogger(out io.Writer) (*logrusLogger, error) {
	logger := log.New()
	logger.SetOutput(out)

	level, err := log.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		level = log.InfoLevel
	}

	if viper.GetBool("verbose") {
		level = log.DebugLevel
	}

	logger.SetLevel(level)

	if viper.GetString("log_format") == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	}

	return &logrusLogger{entry: logger}, err
}

func defaultLogger() *logrusLogger {
	logger, _ := newLogger(os.Stderr)

	return logger
}

func (l *logrusLogger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

func (l *logrusLogger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

func (l *logrusLogger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

func (l *logrusLogger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Error(msg)
}
