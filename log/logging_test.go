// SPDX-License-Identifier: GPL-3.0-or-later
package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected logrus.Level
		valid    bool
	}{
		{"debug", logrus.DebugLevel, true},
		{" Warn ", logrus.WarnLevel, true},
		{"ERROR", logrus.ErrorLevel, true},
		{"info", logrus.InfoLevel, true},
		{"fatal", logrus.InfoLevel, false},
		{"loud", logrus.InfoLevel, false},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			level, err := ParseLevel(tc.input)
			assert.Equal(t, tc.expected, level)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, "loglevel must be one of debug, info, warn, error")
			}
		})
	}
}

func TestComponentPrefix(t *testing.T) {
	out := &bytes.Buffer{}
	initLogging("info", out)

	Logger(LOG_REGISTRY).WithField("keep", 3).Info("Registry hydrated")
	Logger(LOG_IMAP).Debug("hidden")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if assert.Len(t, lines, 1) {
		assert.True(t, strings.HasPrefix(lines[0], "RG:\t"))
		assert.Contains(t, lines[0], "Registry hydrated")
		assert.Contains(t, lines[0], "keep=3")
	}
}

func TestSetLogLevel(t *testing.T) {
	out := &bytes.Buffer{}
	initLogging("error", out)

	SetLogLevel("debug")
	assert.Equal(t, logrus.DebugLevel, Logger(LOG_MAIN).Level)

	SetLogLevel("bogus")
	assert.Equal(t, logrus.DebugLevel, Logger(LOG_MAIN).Level)
}

func TestLoggerUnknown(t *testing.T) {
	initLogging("info", &bytes.Buffer{})
	assert.Panics(t, func() { Logger("XX") })
}
