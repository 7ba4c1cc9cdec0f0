// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "time"

//go:generate mockgen -destination=mocks/imap.go -package=mocks . ImapConnector
type RawImapMail struct {
	Mailbox string
	Uid     uint32
	RawMail []byte
}

type MailboxStatus struct {
	Name     string
	Messages uint32
}

// ImapConnector is the mail transport consumed by the scanner. Every failure caused by the
// network connection is reported wrapped in ErrTransport so that callers can reconnect.
type ImapConnector interface {
	Mailboxes() ([]string, error)
	Examine(mailbox string) (*MailboxStatus, error)
	SearchSince(since time.Time) ([]uint32, error)
	Fetch(uid uint32) (*RawImapMail, error)
	Reconnect() error

	Close() error
}
