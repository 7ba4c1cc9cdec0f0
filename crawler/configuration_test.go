// SPDX-License-Identifier: GPL-3.0-or-later
package crawler

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/CrawX/go-imap-epafi/domain/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestPlain(t *testing.T) {
	cfg := &configuration{}
	err := Plain()(cfg)

	assert.Equal(t, cfg, &configuration{Plain: true})
	assert.Nil(t, err)
}

func TestJournal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	journal := mocks.NewMockJournal(ctrl)

	tests := []struct {
		name          string
		input         *mocks.MockJournal
		expected      *configuration
		expectedError error
	}{
		{"ok", journal, &configuration{Journal: journal}, nil},
		{"nil", nil, nil, fmt.Errorf("Journal cannot be null")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &configuration{}
			var err error
			if tc.input == nil {
				err = Journal(nil)(cfg)
			} else {
				err = Journal(tc.input)(cfg)
			}
			if tc.expected != nil {
				assert.Equal(t, tc.expected, cfg)
				assert.Nil(t, err)
			} else {
				assert.Equal(t, tc.expectedError, err)
			}
		})
	}
}

func TestOutput(t *testing.T) {
	out := &bytes.Buffer{}
	cfg := &configuration{}
	err := Output(out)(cfg)

	assert.Equal(t, cfg, &configuration{Output: out})
	assert.Nil(t, err)

	err = Output(nil)(cfg)
	assert.Equal(t, fmt.Errorf("Output cannot be null"), err)
}
