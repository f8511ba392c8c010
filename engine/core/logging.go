package core

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

type LogLevel = log.Level

const (
	DebugLevel LogLevel = log.DebugLevel
	InfoLevel  LogLevel = log.InfoLevel
	WarnLevel  LogLevel = log.WarnLevel
	ErrorLevel LogLevel = log.ErrorLevel
	FatalLevel LogLevel = log.FatalLevel
)

var once sync.Once

type logger struct {
	*log.Logger
}

var (
	base *log.Logger
	// swapped by SetLogSession while other goroutines may be logging
	singleton atomic.Pointer[logger]
)

func getLogger() *logger {
	once.Do(
		func() {
			l := log.NewWithOptions(os.Stderr, log.Options{
				ReportCaller:    true,
				ReportTimestamp: true,
				TimeFormat:      time.RFC3339,
				Prefix:          "Engine 🏎️ ",
				// the helpers below add one frame
				CallerOffset: 1,
			})
			l.SetLevel(log.DebugLevel)
			base = l
			singleton.Store(&logger{l})
		})
	return singleton.Load()
}

// ParseLogLevel converts names such as "debug" or "warn" into a LogLevel.
func ParseLogLevel(name string) (LogLevel, error) {
	return log.ParseLevel(name)
}

func SetLogLevel(level LogLevel) {
	getLogger().SetLevel(level)
	base.SetLevel(level)
}

func SetLogOutput(w io.Writer) {
	getLogger().SetOutput(w)
	base.SetOutput(w)
}

// SetLogSession tags every following log line with the given run id.
// An empty id removes the tag.
func SetLogSession(id string) {
	getLogger()
	if id == "" {
		singleton.Store(&logger{base})
		return
	}
	singleton.Store(&logger{base.With("run", id)})
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}
