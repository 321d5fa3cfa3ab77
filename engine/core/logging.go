package core

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once

type logger struct {
	*log.Logger
	console *Console
}

var singleton *logger

func getLogger() *logger {
	once.Do(
		func() {
			l := log.NewWithOptions(os.Stderr, log.Options{
				ReportCaller:    true,
				ReportTimestamp: true,
				TimeFormat:      time.RFC3339,
				CallerOffset:    1,
				Prefix:          "Tessera 🏔️ ",
			})
			l.SetLevel(log.DebugLevel)
			singleton = &logger{Logger: l, console: NewConsole(DefaultConsoleCapacity)}
		})
	return singleton
}

// SetLogLevel changes the minimum level written to stderr. The console keeps
// recording every level and filters on read.
func SetLogLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidLogLevel, level)
	}
	getLogger().SetLevel(lvl)
	return nil
}

// GetConsole returns the console fed by the logging functions.
func GetConsole() *Console {
	return getLogger().console
}

func record(level ConsoleLevel, msg string, args ...interface{}) string {
	text := msg
	if len(args) > 0 {
		text = fmt.Sprintf(msg, args...)
	}
	getLogger().console.AddMessage(NewConsoleMessage(text, level, "engine", time.Now()))
	return text
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debug(record(ConsoleLevelDebug, msg, args...))
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Info(record(ConsoleLevelInfo, msg, args...))
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warn(record(ConsoleLevelWarn, msg, args...))
}

func LogError(msg string, args ...interface{}) {
	getLogger().Error(record(ConsoleLevelError, msg, args...))
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatal(record(ConsoleLevelCritical, msg, args...))
}
