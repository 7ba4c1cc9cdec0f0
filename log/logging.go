// SPDX-License-Identifier: GPL-3.0-or-later
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	LOG_MAIN        = "MA"
	LOG_CRAWLER     = "CR"
	LOG_REGISTRY    = "RG"
	LOG_DIRECTORY   = "DI"
	LOG_PERSISTENCE = "PI"
	LOG_IMAP        = "IM"
)

var components = []string{
	LOG_MAIN,
	LOG_CRAWLER,
	LOG_REGISTRY,
	LOG_DIRECTORY,
	LOG_PERSISTENCE,
	LOG_IMAP,
}

// Levels accepted in the loglevel config key.
var Levels = []string{"debug", "info", "warn", "error"}

var loggers map[string]*logrus.Logger

// componentFormatter puts the component prefix in front of every line so interleaved
// output of the components stays attributable.
type componentFormatter struct {
	text   *logrus.TextFormatter
	prefix []byte
}

func newComponentFormatter(component string) *componentFormatter {
	return &componentFormatter{
		text: &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		},
		prefix: []byte(component + ":\t"),
	}
}

func (f *componentFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	text, err := f.text.Format(entry)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, f.prefix...), text...), nil
}

// ParseLevel accepts one of Levels, case-insensitively.
func ParseLevel(level string) (logrus.Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(level))
	for _, l := range Levels {
		if normalized == l {
			return logrus.ParseLevel(normalized)
		}
	}

	return logrus.InfoLevel, fmt.Errorf("loglevel must be one of %s", strings.Join(Levels, ", "))
}

// InitLogging creates one logger per component. Logs go to stderr, stdout belongs to the
// operator dialog.
func InitLogging(level string) {
	initLogging(level, os.Stderr)
}

func initLogging(level string, out io.Writer) {
	parsed, err := ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}

	loggers = make(map[string]*logrus.Logger, len(components))
	for _, component := range components {
		l := logrus.New()
		l.Out = out
		l.Level = parsed
		l.Formatter = newComponentFormatter(component)
		loggers[component] = l
	}
}

// SetLogLevel switches every component logger, unknown levels leave them untouched.
func SetLogLevel(level string) {
	parsed, err := ParseLevel(level)
	if err != nil {
		return
	}
	for _, l := range loggers {
		l.SetLevel(parsed)
	}
}

func Logger(component string) *logrus.Logger {
	l, ok := loggers[component]
	if !ok {
		panic("Logger " + component + " unknown, InitLogging not called?")
	}

	return l
}
