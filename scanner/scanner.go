// SPDX-License-Identifier: GPL-3.0-or-later
package scanner

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/CrawX/go-imap-epafi/domain"
	"github.com/CrawX/go-imap-epafi/log"

	"github.com/sirupsen/logrus"
)

// MailFunc is called once per fetched mail. Returning an error stops the scan.
type MailFunc func(m *domain.RawImapMail) error

type Scanner struct {
	imapConnection domain.ImapConnector
	maxRetries     int

	l *logrus.Logger
}

func NewScanner(imapConnection domain.ImapConnector, maxRetries int) *Scanner {
	return &Scanner{
		imapConnection: imapConnection,
		maxRetries:     maxRetries,
		l:              log.Logger(log.LOG_IMAP),
	}
}

// Scan walks all mailboxes matching pattern and hands every mail received since the given date to fn,
// one at a time.
func (s *Scanner) Scan(pattern *regexp.Regexp, since time.Time, fn MailFunc) error {
	mailboxes, err := s.imapConnection.Mailboxes()
	if err != nil {
		return fmt.Errorf("could not list mailboxes: %w", err)
	}

	for _, mailbox := range mailboxes {
		if !pattern.MatchString(mailbox) {
			s.l.WithField("mailbox", mailbox).Debug("Mailbox does not match pattern, skipping")
			continue
		}

		err = s.scanMailbox(mailbox, since, fn)
		if err != nil {
			return fmt.Errorf("could not scan mailbox %s: %w", mailbox, err)
		}
	}

	return nil
}

func (s *Scanner) scanMailbox(mailbox string, since time.Time, fn MailFunc) error {
	baseLogger := s.l.WithField("mailbox", mailbox)

	status, err := s.imapConnection.Examine(mailbox)
	if err != nil && !errors.Is(err, domain.ErrTransport) {
		baseLogger.WithField("error", err).Error("Could not examine mailbox, skipping")
		return nil
	}
	if err != nil {
		return err
	}
	if status == nil || status.Messages == 0 {
		baseLogger.Info("Mailbox does not have any mails")
		return nil
	}

	uids, err := s.imapConnection.SearchSince(since)
	if err != nil && !errors.Is(err, domain.ErrTransport) {
		baseLogger.WithField("error", err).Error("Could not search mailbox, skipping")
		return nil
	}
	if err != nil {
		return err
	}
	if len(uids) == 0 {
		baseLogger.WithField("since", since.Format("2006-01-02")).Info("Found no mails")
		return nil
	}

	baseLogger.WithFields(logrus.Fields{"mails": status.Messages, "matching": len(uids)}).Info("Scanning mailbox")

	// A transport failure restarts the whole uid list after reconnecting, mails that were
	// already handed to fn are handed over again.
	retries := 0
	for {
		err = s.fetchAll(uids, fn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrTransport) {
			return err
		}

		for {
			if retries >= s.maxRetries {
				return fmt.Errorf("%w: %d reconnects failed to complete the mailbox: %v", domain.ErrRetriesExhausted, retries, err)
			}
			retries++

			baseLogger.WithFields(logrus.Fields{"error": err, "attempt": retries, "maxretries": s.maxRetries}).Warn("Transport failure, reconnecting")
			err = s.imapConnection.Reconnect()
			if err == nil {
				break
			}
			if !errors.Is(err, domain.ErrTransport) {
				return fmt.Errorf("could not reconnect: %w", err)
			}
		}
	}
}

func (s *Scanner) fetchAll(uids []uint32, fn MailFunc) error {
	for _, uid := range uids {
		m, err := s.imapConnection.Fetch(uid)
		if errors.Is(err, domain.ErrTransport) {
			return err
		}
		if err != nil {
			s.l.WithFields(logrus.Fields{"uid": uid, "error": err}).Error("Could not fetch mail, skipping")
			continue
		}

		err = fn(m)
		if err != nil {
			return err
		}
	}

	return nil
}
