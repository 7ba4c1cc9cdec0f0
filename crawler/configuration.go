// SPDX-License-Identifier: GPL-3.0-or-later
package crawler

import (
	"fmt"
	"io"

	"github.com/CrawX/go-imap-epafi/domain"
)

type ConfigFunc func(c *configuration) error

// Journal records every operator decision in j.
func Journal(j domain.Journal) ConfigFunc {
	return func(c *configuration) error {
		if j == nil {
			return fmt.Errorf("Journal cannot be null")
		}

		c.Journal = j
		return nil
	}
}

// Plain disables terminal styling of unresolved addresses.
func Plain() ConfigFunc {
	return func(c *configuration) error {
		c.Plain = true
		return nil
	}
}

// Output redirects operator-facing output, os.Stdout by default.
func Output(w io.Writer) ConfigFunc {
	return func(c *configuration) error {
		if w == nil {
			return fmt.Errorf("Output cannot be null")
		}

		c.Output = w
		return nil
	}
}

type configuration struct {
	Journal domain.Journal
	Output  io.Writer

	Plain bool
}
