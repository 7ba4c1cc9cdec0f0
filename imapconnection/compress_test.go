// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestEnableCompression(t *testing.T) {
	tests := []struct {
		name       string
		supported  bool
		supportErr error
		compressed bool
		err        string
	}{
		{"supported", true, nil, true, ""},
		{"unsupported", false, nil, false, ""},
		{"capabilityerror", false, errors.New("connection reset"), false, "could not check for COMPRESS support: connection reset"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			c := NewMockcompressor(ctrl)
			c.EXPECT().
				SupportCompress(gomock.Eq("DEFLATE")).
				Return(tc.supported, tc.supportErr)
			if tc.supported {
				c.EXPECT().
					Compress(gomock.Eq("DEFLATE")).
					Return(nil)
			}

			compressed, err := enableCompression(c)
			assert.Equal(t, tc.compressed, compressed)
			if len(tc.err) == 0 {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.err)
			}
		})
	}
}

func TestEnableCompressionFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := NewMockcompressor(ctrl)
	c.EXPECT().SupportCompress(gomock.Eq("DEFLATE")).Return(true, nil)
	c.EXPECT().Compress(gomock.Eq("DEFLATE")).Return(errors.New("BAD"))

	compressed, err := enableCompression(c)
	assert.False(t, compressed)
	assert.EqualError(t, err, "could not enable DEFLATE: BAD")
}

func TestStartCompression(t *testing.T) {
	tests := []struct {
		name       string
		compressOk bool
		logout     bool
		compressed bool
	}{
		{"enabled", true, false, true},
		{"failed", false, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			c := NewMockcompressor(ctrl)
			s := NewMocksession(ctrl)
			c.EXPECT().SupportCompress(gomock.Eq("DEFLATE")).Return(true, nil)
			if tc.compressOk {
				c.EXPECT().Compress(gomock.Eq("DEFLATE")).Return(nil)
			} else {
				c.EXPECT().Compress(gomock.Eq("DEFLATE")).Return(errors.New("BAD"))
			}
			if tc.logout {
				s.EXPECT().Logout().Return(nil)
			}

			compressed, err := startCompression(c, s)
			assert.Equal(t, tc.compressed, compressed)
			assert.Equal(t, tc.compressOk, err == nil)
		})
	}
}
