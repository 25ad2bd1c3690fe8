package logger

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldDurationMs = "duration_ms"
	FieldStatus     = "status"
	FieldCount      = "count"
)

// Config holds logger configuration.
type Config struct {
	Level  string    // debug, info, warn, error
	Format string    // json, text
	File   string    // optional rotating log file, written next to Output
	Output io.Writer // defaults to os.Stderr
}

// New creates a logrus logger from cfg. A nil cfg yields info level text
// output on stderr.
func New(cfg *Config) *logrus.Logger {
	if cfg == nil {
		cfg = &Config{}
	}

	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetReportCaller(true)

	if strings.ToLower(cfg.Format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
			CallerPrettyfier: callerPrettyfier,
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  "2006-01-02T15:04:05.000Z07:00",
			CallerPrettyfier: callerPrettyfier,
		})
	}

	var out io.Writer = os.Stderr
	if cfg.Output != nil {
		out = cfg.Output
	}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err == nil {
			out = io.MultiWriter(out, &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    10, // MB
				MaxBackups: 2,
				MaxAge:     28, // days
				Compress:   true,
			})
		} else {
			log.WithError(err).Warn("log file disabled")
		}
	}
	log.SetOutput(out)

	return log
}

// WithComponent tags every entry with the component name.
func WithComponent(log logrus.FieldLogger, name string) *logrus.Entry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return log.WithField(FieldComponent, name)
}

// Discard returns an entry that drops everything; handy in tests.
func Discard() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func callerPrettyfier(f *runtime.Frame) (string, string) {
	return "", filepath.Base(f.File) + ":" + strconv.Itoa(f.Line)
}
