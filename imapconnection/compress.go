// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

//go:generate mockgen -destination=compress_mocks_test.go -package=imapconnection -source compress.go
import (
	"fmt"

	compress "github.com/emersion/go-imap-compress"
	"github.com/emersion/go-imap/client"
)

type compressor interface {
	SupportCompress(mech string) (bool, error)
	Compress(mech string) error
}

type session interface {
	Logout() error
}

func newDeflateCompressor(c *client.Client) compressor {
	return compress.NewClient(c)
}

// enableCompression switches the connection to DEFLATE if the server advertises it.
func enableCompression(c compressor) (bool, error) {
	supported, err := c.SupportCompress(compress.Deflate)
	if err != nil {
		return false, fmt.Errorf("could not check for COMPRESS support: %w", err)
	}

	if !supported {
		return false, nil
	}

	err = c.Compress(compress.Deflate)
	if err != nil {
		return false, fmt.Errorf("could not enable DEFLATE: %w", err)
	}

	return true, nil
}

// startCompression logs the session out when compression cannot be enabled.
func startCompression(c compressor, s session) (bool, error) {
	enabled, err := enableCompression(c)
	if err != nil {
		s.Logout()
		return false, err
	}

	return enabled, nil
}
