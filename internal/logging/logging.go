// Package logging holds the process-wide vertexgen logger.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	once      sync.Once
	singleton *log.Logger
)

func get() *log.Logger {
	once.Do(func() {
		singleton = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: false,
			Prefix:          "vertexgen",
			Level:           log.InfoLevel,
		})
	})
	return singleton
}

// Logger returns the shared logger
func Logger() *log.Logger {
	return get()
}

// SetLevel sets the level from its config name (debug, info, warn, error)
func SetLevel(name string) error {
	level, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	get().SetLevel(level)
	return nil
}

// SetOutput redirects the logger, mostly for tests
func SetOutput(w io.Writer) {
	get().SetOutput(w)
}

func Debug(msg string, keyvals ...interface{}) {
	get().Debug(msg, keyvals...)
}

func Info(msg string, keyvals ...interface{}) {
	get().Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...interface{}) {
	get().Warn(msg, keyvals...)
}

func Error(msg string, keyvals ...interface{}) {
	get().Error(msg, keyvals...)
}
