// Package logging configures the logrus loggers shared by the binaries.
package logging

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/vancomm/minesweeper-pad/internal/config"
)

type Options struct {
	Development bool
	// LogFile enables a size rotated JSON copy of every entry.
	LogFile string
}

func OptionsFromEnv() Options {
	return Options{
		Development: config.Development(),
		LogFile:     config.LogFile(),
	}
}

// Setup configures each logger in place: debug level with coloured text in
// development, info level JSON otherwise. With a log file all loggers share
// one rotating hook, since the file must have a single writer.
func Setup(opts Options, loggers ...*logrus.Logger) error {
	level := logrus.InfoLevel
	if opts.Development {
		level = logrus.DebugLevel
	}

	var hook logrus.Hook
	if opts.LogFile != "" {
		var err error
		hook, err = rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   opts.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return fmt.Errorf("unable to create log file hook: %w", err)
		}
	}

	for _, log := range loggers {
		log.SetOutput(os.Stderr)
		log.SetLevel(level)
		if opts.Development {
			log.SetFormatter(&logrus.TextFormatter{
				ForceColors:     true,
				FullTimestamp:   true,
				TimestampFormat: "15:04:05.000",
			})
		} else {
			log.SetFormatter(&logrus.JSONFormatter{})
		}
		if hook != nil {
			log.AddHook(hook)
		}
	}

	return nil
}
