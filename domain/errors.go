// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "errors"

var (
	ErrTransport        = errors.New("imap transport failure")
	ErrAuthentication   = errors.New("authentication error, verify your credentials")
	ErrEncoding         = errors.New("unable to decode mail")
	ErrRetriesExhausted = errors.New("giving up after repeated transport failures")
	ErrInputClosed      = errors.New("operator input closed")
)
