// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "time"

//go:generate mockgen -destination=mocks/persistence.go -package=mocks . IgnoreStore,Journal
type Outcome string

const (
	Keep    = Outcome("keep")
	Ignore  = Outcome("ignore")
	Skip    = Outcome("skip")
	Inspect = Outcome("inspect")
)

type Decision struct {
	Outcome    Outcome
	Address    string
	Mailbox    string
	Uid        uint32
	MailIdHash string
	Subject    string
	DecidedAt  time.Time
}

// IgnoreStore persists the full ignore list. Load returns an empty list when nothing was saved yet.
type IgnoreStore interface {
	Load() ([]string, error)
	Save(addrs []string) error
}

type Journal interface {
	SaveDecisions(decisions []Decision) error
	KeptAddresses() ([]string, error)
}
