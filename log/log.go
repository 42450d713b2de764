// Package log writes structured records with logrus.
//
// Logging is off by default: the terminal belongs to the status screen while clips play,
// so records only ever go to a dated file under where.Logs().
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mbeissinger/vj-looper/filesystem"
	"github.com/mbeissinger/vj-looper/key"
	"github.com/mbeissinger/vj-looper/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Fields is re-exported so callers do not import logrus directly.
type Fields = logrus.Fields

var logger = silent()

func silent() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// Enabled reports whether records are written anywhere.
func Enabled() bool {
	return logger.Out != io.Discard
}

// Setup opens today's log file when logs.write is set. Otherwise every record is dropped.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger = silent()
		return nil
	}

	path := filepath.Join(where.Logs(), time.Now().Format(time.DateOnly)+".log")
	file, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}

	l := logrus.New()
	l.SetOutput(file)
	l.SetLevel(level)
	if viper.GetBool(key.LogsJson) {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	logger = l
	return nil
}

// WithFields returns an entry carrying structured context, e.g. the clip being played.
func WithFields(fields Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func Error(args ...any)                 { logger.Error(args...) }
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }
func Warn(args ...any)                  { logger.Warn(args...) }
func Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func Info(args ...any)                  { logger.Info(args...) }
func Infof(format string, args ...any)  { logger.Infof(format, args...) }
func Debug(args ...any)                 { logger.Debug(args...) }
func Debugf(format string, args ...any) { logger.Debugf(format, args...) }
