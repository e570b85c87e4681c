package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	App   string
	Env   string // "development" selects the text formatter
	Level string
	File  string // optional path; output is then rotated through lumberjack

	// FileOnly keeps log lines off stdout. Without File everything is dropped.
	FileOnly bool
}

// New creates a configured logrus logger. Output goes to stdout and, when
// File is set, also to a size-rotated log file.
func New(opts Options) *logrus.Logger {
	logger := logrus.New()

	var out io.Writer = os.Stdout
	if opts.FileOnly {
		out = io.Discard
	}
	if opts.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		if opts.FileOnly {
			out = rotated
		} else {
			out = io.MultiWriter(os.Stdout, rotated)
		}
	}
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if opts.Env == "development" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger.WithFields(logrus.Fields{"app": opts.App, "env": opts.Env}).Debug("logger initialized")
	return logger
}

// Discard returns a logger that drops everything. Handy for tests and for
// interactive tools that should not print log lines.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
