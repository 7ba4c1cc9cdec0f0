// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"strings"
	"time"

	"github.com/CrawX/go-imap-epafi/domain"
	"github.com/CrawX/go-imap-epafi/log"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/sirupsen/logrus"
)

type ConnectionOption func(ic *ImapConnection)

// Compress enables COMPRESS=DEFLATE when the server supports it.
func Compress() ConnectionOption {
	return func(ic *ImapConnection) {
		ic.compress = true
	}
}

func InsecureSkipVerify() ConnectionOption {
	return func(ic *ImapConnection) {
		ic.tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}
}

type ImapConnection struct {
	connection *client.Client
	compressor compressor

	server, user, password string
	compress               bool
	tlsConfig              *tls.Config

	selectedMailbox string

	l *logrus.Logger
}

func NewImapConnection(server string, user string, password string, opts ...ConnectionOption) (*ImapConnection, error) {
	conn := &ImapConnection{
		server:   server,
		user:     user,
		password: password,
		l:        log.Logger(log.LOG_IMAP),
	}
	for _, opt := range opts {
		opt(conn)
	}

	err := conn.connect()
	if err != nil {
		return nil, err
	}

	return conn, nil
}

func (ic *ImapConnection) connect() error {
	imapClient, err := client.DialTLS(ic.server, ic.tlsConfig)
	if err != nil {
		return fmt.Errorf("could not dial to imap: %w", err)
	}

	err = imapClient.Login(ic.user, ic.password)
	if err != nil {
		imapClient.Logout()
		return fmt.Errorf("could not login to imap: %w", err)
	}

	baseLogger := ic.l.WithFields(logrus.Fields{"server": ic.server})
	baseLogger.Debug("Logged in to server")

	if ic.compress {
		ic.compressor = newDeflateCompressor(imapClient)
		enabled, err := startCompression(ic.compressor, imapClient)
		if err != nil {
			return fmt.Errorf("could not enable compression: %w", err)
		}
		if enabled {
			baseLogger.Debug("COMPRESS=DEFLATE supported on server, compression enabled")
		} else {
			baseLogger.Info("COMPRESS=DEFLATE not supported on server, continuing uncompressed")
		}
	}

	ic.connection = imapClient
	return nil
}

// Reconnect drops the current connection, dials again and re-examines the mailbox that was
// selected before.
func (ic *ImapConnection) Reconnect() error {
	if ic.connection != nil {
		// the old connection is most likely dead already
		_ = ic.connection.Logout()
	}

	ic.l.WithFields(logrus.Fields{"server": ic.server, "mailbox": ic.selectedMailbox}).Info("Reconnecting")
	err := ic.connect()
	if err != nil {
		return fmt.Errorf("%w: could not reconnect: %v", domain.ErrTransport, err)
	}

	if len(ic.selectedMailbox) > 0 {
		_, err = ic.Examine(ic.selectedMailbox)
		if err != nil {
			return err
		}
	}

	return nil
}

func (ic *ImapConnection) Mailboxes() ([]string, error) {
	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)
	go func() {
		done <- ic.connection.List("", "*", mailboxes)
	}()

	names := []string{}
	for m := range mailboxes {
		if !selectable(m) {
			ic.l.WithFields(logrus.Fields{"mailbox": m.Name, "attributes": m.Attributes}).Debug("Mailbox cannot be selected, skipping")
			continue
		}
		names = append(names, m.Name)
	}

	err := <-done
	if err != nil {
		return nil, ic.wrapErr(err, "could not list mailboxes")
	}

	return names, nil
}

// Examine selects the mailbox read-only.
func (ic *ImapConnection) Examine(mailbox string) (*domain.MailboxStatus, error) {
	status, err := ic.connection.Select(mailbox, true)
	if err != nil {
		return nil, ic.wrapErr(err, "could not examine mailbox %s", mailbox)
	}

	ic.selectedMailbox = mailbox
	return &domain.MailboxStatus{
		Name:     status.Name,
		Messages: status.Messages,
	}, nil
}

func (ic *ImapConnection) SearchSince(since time.Time) ([]uint32, error) {
	criteria := imap.NewSearchCriteria()
	criteria.Since = since
	uids, err := ic.connection.UidSearch(criteria)
	if err != nil {
		return nil, ic.wrapErr(err, "could not search mailbox")
	}

	return uids, nil
}

func (ic *ImapConnection) Fetch(uid uint32) (*domain.RawImapMail, error) {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uid)

	fullBodySection := &imap.BodySectionName{
		Peek: true,
	}
	fetchItems := []imap.FetchItem{imap.FetchUid, fullBodySection.FetchItem()}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- ic.connection.UidFetch(seqset, fetchItems, messages)
	}()

	var rawMail []byte
	var readErr error
	for msg := range messages {
		r := msg.GetBody(fullBodySection)
		if r == nil {
			readErr = fmt.Errorf("server returned no body for uid %d", uid)
			continue
		}
		rawMail, readErr = ioutil.ReadAll(r)
	}

	err := <-done
	if err != nil {
		return nil, ic.wrapErr(err, "could not fetch mail %d", uid)
	}
	if readErr != nil {
		return nil, fmt.Errorf("could not read mail body: %w", readErr)
	}
	if rawMail == nil {
		return nil, fmt.Errorf("mail %d not found in %s", uid, ic.selectedMailbox)
	}

	return &domain.RawImapMail{
		Mailbox: ic.selectedMailbox,
		Uid:     uid,
		RawMail: rawMail,
	}, nil
}

// wrapErr marks err as domain.ErrTransport when the connection is gone. NO and BAD replies
// leave the connection usable and are returned without the mark.
func (ic *ImapConnection) wrapErr(err error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if ic.connection == nil || transportFailure(err, ic.connection.LoggedOut(), ic.connection.State()) {
		return fmt.Errorf("%w: %s: %v", domain.ErrTransport, msg, err)
	}

	return fmt.Errorf("%s: %w", msg, err)
}

func transportFailure(err error, loggedOut <-chan struct{}, state imap.ConnState) bool {
	if state == imap.LogoutState {
		return true
	}
	select {
	case <-loggedOut:
		return true
	default:
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, client.ErrNotLoggedIn) ||
		// status response missing, the server hung up mid-command
		strings.HasPrefix(err.Error(), "imap: connection closed")
}

func selectable(m *imap.MailboxInfo) bool {
	for _, attr := range m.Attributes {
		if strings.EqualFold(attr, imap.NoSelectAttr) {
			return false
		}
	}

	return true
}

func (ic *ImapConnection) Close() error {
	if ic.connection == nil {
		return nil
	}
	err := ic.connection.Logout()
	if err != nil {
		return fmt.Errorf("could not logout: %w", err)
	}

	ic.l.WithField("server", ic.server).Debug("Logged out")
	return nil
}
