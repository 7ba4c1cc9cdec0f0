// SPDX-License-Identifier: GPL-3.0-or-later
package scanner

import (
	"errors"
	"fmt"
	"io/ioutil"
	"regexp"
	"testing"
	"time"

	"github.com/CrawX/go-imap-epafi/domain"
	"github.com/CrawX/go-imap-epafi/domain/mocks"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var since = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

func setupScanner(t *testing.T, maxRetries int) (*gomock.Controller, *Scanner, *mocks.MockImapConnector) {
	ctrl := gomock.NewController(t)
	imapConnection := mocks.NewMockImapConnector(ctrl)

	return ctrl, &Scanner{
		imapConnection: imapConnection,
		maxRetries:     maxRetries,
		l:              nullLogger(),
	}, imapConnection
}

func rawMail(mailbox string, uid uint32) *domain.RawImapMail {
	return &domain.RawImapMail{Mailbox: mailbox, Uid: uid, RawMail: []byte{byte(uid)}}
}

func transportErr() error {
	return fmt.Errorf("%w: connection reset by peer", domain.ErrTransport)
}

func collect(seen *[]uint32) MailFunc {
	return func(m *domain.RawImapMail) error {
		*seen = append(*seen, m.Uid)
		return nil
	}
}

func TestScanner_Scan(t *testing.T) {
	ctrl, scanner, imapConnection := setupScanner(t, 3)
	defer ctrl.Finish()

	imapConnection.EXPECT().Mailboxes().Return([]string{"INBOX", "Trash", "INBOX/Empty", "INBOX/Old"}, nil)

	imapConnection.EXPECT().Examine(gomock.Eq("INBOX")).Return(&domain.MailboxStatus{Name: "INBOX", Messages: 2}, nil)
	imapConnection.EXPECT().SearchSince(gomock.Eq(since)).Return([]uint32{1, 2}, nil)
	imapConnection.EXPECT().Fetch(gomock.Eq(uint32(1))).Return(rawMail("INBOX", 1), nil)
	imapConnection.EXPECT().Fetch(gomock.Eq(uint32(2))).Return(rawMail("INBOX", 2), nil)

	imapConnection.EXPECT().Examine(gomock.Eq("INBOX/Empty")).Return(&domain.MailboxStatus{Name: "INBOX/Empty"}, nil)

	imapConnection.EXPECT().Examine(gomock.Eq("INBOX/Old")).Return(&domain.MailboxStatus{Name: "INBOX/Old", Messages: 7}, nil)
	imapConnection.EXPECT().SearchSince(gomock.Eq(since)).Return([]uint32{}, nil)

	seen := []uint32{}
	err := scanner.Scan(regexp.MustCompile("^INBOX"), since, collect(&seen))
	assert.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, seen)
}

func TestScanner_ScanRetriesWholeList(t *testing.T) {
	ctrl, scanner, imapConnection := setupScanner(t, 3)
	defer ctrl.Finish()

	imapConnection.EXPECT().Mailboxes().Return([]string{"INBOX"}, nil)
	imapConnection.EXPECT().Examine(gomock.Eq("INBOX")).Return(&domain.MailboxStatus{Name: "INBOX", Messages: 3}, nil)
	imapConnection.EXPECT().SearchSince(gomock.Eq(since)).Return([]uint32{1, 2, 3}, nil)

	gomock.InOrder(
		imapConnection.EXPECT().Fetch(gomock.Eq(uint32(1))).Return(rawMail("INBOX", 1), nil),
		imapConnection.EXPECT().Fetch(gomock.Eq(uint32(2))).Return(nil, transportErr()),
		imapConnection.EXPECT().Reconnect().Return(nil),
		imapConnection.EXPECT().Fetch(gomock.Eq(uint32(1))).Return(rawMail("INBOX", 1), nil),
		imapConnection.EXPECT().Fetch(gomock.Eq(uint32(2))).Return(rawMail("INBOX", 2), nil),
		imapConnection.EXPECT().Fetch(gomock.Eq(uint32(3))).Return(rawMail("INBOX", 3), nil),
	)

	seen := []uint32{}
	err := scanner.Scan(regexp.MustCompile("INBOX"), since, collect(&seen))
	assert.NoError(t, err)
	assert.Equal(t, []uint32{1, 1, 2, 3}, seen)
}

func TestScanner_ScanRetriesExhausted(t *testing.T) {
	ctrl, scanner, imapConnection := setupScanner(t, 2)
	defer ctrl.Finish()

	imapConnection.EXPECT().Mailboxes().Return([]string{"INBOX"}, nil)
	imapConnection.EXPECT().Examine(gomock.Eq("INBOX")).Return(&domain.MailboxStatus{Name: "INBOX", Messages: 1}, nil)
	imapConnection.EXPECT().SearchSince(gomock.Eq(since)).Return([]uint32{1}, nil)

	imapConnection.EXPECT().Fetch(gomock.Eq(uint32(1))).Return(nil, transportErr()).Times(2)
	gomock.InOrder(
		imapConnection.EXPECT().Reconnect().Return(nil),
		imapConnection.EXPECT().Reconnect().Return(transportErr()),
	)

	seen := []uint32{}
	err := scanner.Scan(regexp.MustCompile("INBOX"), since, collect(&seen))
	assert.True(t, errors.Is(err, domain.ErrRetriesExhausted))
	assert.Empty(t, seen)
}

func TestScanner_ScanSkipsUnreadableMail(t *testing.T) {
	ctrl, scanner, imapConnection := setupScanner(t, 1)
	defer ctrl.Finish()

	imapConnection.EXPECT().Mailboxes().Return([]string{"INBOX"}, nil)
	imapConnection.EXPECT().Examine(gomock.Eq("INBOX")).Return(&domain.MailboxStatus{Name: "INBOX", Messages: 2}, nil)
	imapConnection.EXPECT().SearchSince(gomock.Eq(since)).Return([]uint32{1, 2}, nil)
	imapConnection.EXPECT().Fetch(gomock.Eq(uint32(1))).Return(nil, errors.New("server returned no body for uid 1"))
	imapConnection.EXPECT().Fetch(gomock.Eq(uint32(2))).Return(rawMail("INBOX", 2), nil)

	seen := []uint32{}
	err := scanner.Scan(regexp.MustCompile("INBOX"), since, collect(&seen))
	assert.NoError(t, err)
	assert.Equal(t, []uint32{2}, seen)
}

func TestScanner_ScanStopsOnCallbackError(t *testing.T) {
	ctrl, scanner, imapConnection := setupScanner(t, 1)
	defer ctrl.Finish()

	imapConnection.EXPECT().Mailboxes().Return([]string{"INBOX", "INBOX/Other"}, nil)
	imapConnection.EXPECT().Examine(gomock.Eq("INBOX")).Return(&domain.MailboxStatus{Name: "INBOX", Messages: 2}, nil)
	imapConnection.EXPECT().SearchSince(gomock.Eq(since)).Return([]uint32{1, 2}, nil)
	imapConnection.EXPECT().Fetch(gomock.Eq(uint32(1))).Return(rawMail("INBOX", 1), nil)

	err := scanner.Scan(regexp.MustCompile("INBOX"), since, func(m *domain.RawImapMail) error {
		return domain.ErrInputClosed
	})
	assert.True(t, errors.Is(err, domain.ErrInputClosed))
	assert.EqualError(t, err, "could not scan mailbox INBOX: operator input closed")
}

func TestScanner_ScanSkipsRejectedMailboxes(t *testing.T) {
	ctrl, scanner, imapConnection := setupScanner(t, 2)
	defer ctrl.Finish()

	imapConnection.EXPECT().Mailboxes().Return([]string{"Archive", "Shared", "INBOX"}, nil)
	imapConnection.EXPECT().Examine(gomock.Eq("Archive")).Return(nil, errors.New("could not examine mailbox Archive: Mailbox doesn't exist"))
	imapConnection.EXPECT().Examine(gomock.Eq("Shared")).Return(&domain.MailboxStatus{Name: "Shared", Messages: 4}, nil)
	imapConnection.EXPECT().SearchSince(gomock.Eq(since)).Return(nil, errors.New("could not search mailbox: permission denied"))
	imapConnection.EXPECT().Examine(gomock.Eq("INBOX")).Return(&domain.MailboxStatus{Name: "INBOX", Messages: 2}, nil)
	imapConnection.EXPECT().SearchSince(gomock.Eq(since)).Return([]uint32{1, 2}, nil)
	imapConnection.EXPECT().Fetch(gomock.Eq(uint32(1))).Return(nil, errors.New("could not fetch mail 1: message expunged"))
	imapConnection.EXPECT().Fetch(gomock.Eq(uint32(2))).Return(rawMail("INBOX", 2), nil)

	seen := []uint32{}
	err := scanner.Scan(regexp.MustCompile(".*"), since, collect(&seen))
	assert.NoError(t, err)
	assert.Equal(t, []uint32{2}, seen)
}

func TestScanner_ScanExamineTransportError(t *testing.T) {
	ctrl, scanner, imapConnection := setupScanner(t, 2)
	defer ctrl.Finish()

	imapConnection.EXPECT().Mailboxes().Return([]string{"INBOX", "Other"}, nil)
	imapConnection.EXPECT().Examine(gomock.Eq("INBOX")).Return(nil, transportErr())

	err := scanner.Scan(regexp.MustCompile(".*"), since, collect(&[]uint32{}))
	assert.True(t, errors.Is(err, domain.ErrTransport))
}

func TestScanner_ScanListError(t *testing.T) {
	ctrl, scanner, imapConnection := setupScanner(t, 1)
	defer ctrl.Finish()

	imapConnection.EXPECT().Mailboxes().Return(nil, transportErr())

	err := scanner.Scan(regexp.MustCompile("INBOX"), since, collect(&[]uint32{}))
	assert.True(t, errors.Is(err, domain.ErrTransport))
}

func nullLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	return logger
}
