// SPDX-License-Identifier: GPL-3.0-or-later
package crawler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/CrawX/go-imap-epafi/address"
	"github.com/CrawX/go-imap-epafi/domain"
	"github.com/CrawX/go-imap-epafi/log"
	"github.com/CrawX/go-imap-epafi/mail"
	"github.com/CrawX/go-imap-epafi/scanner"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

const (
	progressMarker = "."
	promptChoices  = "[Ignore/Keep/Skip/Detail] ?"
)

var unresolvedStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("11")).
	Background(lipgloss.Color("0"))

type state int

const (
	scanning state = iota
	awaitingOperator
	done
)

type MailScanner interface {
	Scan(pattern *regexp.Regexp, since time.Time, fn scanner.MailFunc) error
}

type ContactRegistry interface {
	Unresolved(candidates address.Set) []address.Address
	KeepAll(addrs []address.Address)
	IgnoreAll(addrs []address.Address) error
}

type stats struct {
	mails, prompted, kept, ignored, skipped int
}

// Crawler drives the scan and asks the operator to classify every address it cannot resolve.
type Crawler struct {
	registry ContactRegistry
	scanner  MailScanner
	viewer   domain.Viewer
	input    *bufio.Reader

	configuration *configuration

	state   state
	stats   stats
	mailbox string

	l *logrus.Logger
}

func NewCrawler(registry ContactRegistry, scanner MailScanner, viewer domain.Viewer, input io.Reader, configFunc ...ConfigFunc) (*Crawler, error) {
	config := &configuration{
		Output: os.Stdout,
	}
	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	return &Crawler{
		registry:      registry,
		scanner:       scanner,
		viewer:        viewer,
		input:         bufio.NewReader(input),
		configuration: config,
		state:         scanning,
		l:             log.Logger(log.LOG_CRAWLER),
	}, nil
}

// Run blocks until every matching mailbox has been scanned or a fatal error occurred.
func (c *Crawler) Run(pattern *regexp.Regexp, since time.Time) error {
	c.state = scanning
	err := c.scanner.Scan(pattern, since, c.examine)
	fmt.Fprintln(c.configuration.Output)
	if err != nil {
		return fmt.Errorf("could not crawl mailboxes: %w", err)
	}

	c.state = done
	c.l.WithFields(logrus.Fields{
		"mails":    c.stats.mails,
		"prompted": c.stats.prompted,
		"kept":     c.stats.kept,
		"ignored":  c.stats.ignored,
		"skipped":  c.stats.skipped,
	}).Info("Crawl finished")

	return nil
}

func (c *Crawler) examine(m *domain.RawImapMail) error {
	if c.state != scanning {
		return fmt.Errorf("mail %s/%d handed over while not scanning", m.Mailbox, m.Uid)
	}
	c.stats.mails++
	if m.Mailbox != c.mailbox {
		c.mailbox = m.Mailbox
		fmt.Fprintf(c.configuration.Output, "\nMAILBOX %s\n", m.Mailbox)
	}
	baseLogger := c.l.WithFields(logrus.Fields{"mailbox": m.Mailbox, "uid": m.Uid})

	msg, err := mail.ParseMessage(m.RawMail)
	if errors.Is(err, domain.ErrEncoding) {
		baseLogger.WithField("error", err).Error("Encoding problem in mail, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	extraction, ok := mail.Extract(msg)
	if !ok {
		baseLogger.WithField("subject", mail.ShortSubject(msg.Subject)).Debug("Mail has no sender or recipient, skipping")
		return nil
	}

	unresolved := c.registry.Unresolved(extraction.Candidates)
	if len(unresolved) == 0 {
		fmt.Fprint(c.configuration.Output, progressMarker)
		return nil
	}

	c.state = awaitingOperator
	c.stats.prompted++
	c.present(extraction, unresolved)

	err = c.resolve(m, msg, unresolved)
	if err != nil {
		return err
	}
	c.state = scanning

	return nil
}

// resolve reads commands until one of them classifies the unresolved addresses.
func (c *Crawler) resolve(m *domain.RawImapMail, msg *mail.Message, unresolved []address.Address) error {
	for {
		c.prompt(msg)

		outcome, err := c.readCommand()
		if err != nil {
			return err
		}

		switch outcome {
		case domain.Ignore:
			err = c.registry.IgnoreAll(unresolved)
			if err != nil {
				return fmt.Errorf("could not ignore addresses: %w", err)
			}
			c.stats.ignored += len(unresolved)
		case domain.Keep:
			c.registry.KeepAll(unresolved)
			c.stats.kept += len(unresolved)
		case domain.Skip:
			c.stats.skipped++
		case domain.Inspect:
			err = c.viewer.Show(m.RawMail)
			if err != nil {
				c.l.WithFields(logrus.Fields{"error": err, "subject": mail.ShortSubject(msg.Subject)}).Error("Could not show mail")
			}
			continue
		default:
			fmt.Fprintln(c.configuration.Output, "Unknown command")
			continue
		}

		return c.journal(outcome, m, msg, unresolved)
	}
}

func (c *Crawler) readCommand() (domain.Outcome, error) {
	line, err := c.input.ReadString('\n')
	if errors.Is(err, io.EOF) && len(strings.TrimSpace(line)) == 0 {
		return "", domain.ErrInputClosed
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("could not read command: %w", err)
	}

	return parseCommand(line), nil
}

// parseCommand maps operator input to an outcome, unknown input yields an empty outcome.
func parseCommand(line string) domain.Outcome {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "i", "ignore":
		return domain.Ignore
	case "k", "keep", "a", "add":
		return domain.Keep
	case "s", "skip":
		return domain.Skip
	case "d", "detail", "inspect":
		return domain.Inspect
	}

	return ""
}

func (c *Crawler) journal(outcome domain.Outcome, m *domain.RawImapMail, msg *mail.Message, unresolved []address.Address) error {
	if c.configuration.Journal == nil {
		return nil
	}

	now := time.Now()
	decisions := make([]domain.Decision, 0, len(unresolved))
	for _, a := range unresolved {
		decisions = append(decisions, domain.Decision{
			Outcome:    outcome,
			Address:    string(a),
			Mailbox:    m.Mailbox,
			Uid:        m.Uid,
			MailIdHash: msg.MailIdHash,
			Subject:    msg.Subject,
			DecidedAt:  now,
		})
	}

	err := c.configuration.Journal.SaveDecisions(decisions)
	if err != nil {
		return fmt.Errorf("could not journal decision: %w", err)
	}

	return nil
}

func (c *Crawler) present(extraction *mail.Extraction, unresolved []address.Address) {
	open := address.NewSet(unresolved...)
	out := c.configuration.Output

	fmt.Fprintln(out)
	for _, category := range mail.Categories {
		for _, a := range extraction.ByCategory[category] {
			display := a.Display
			if open.Has(a.Address) {
				display = c.highlight(display) + " [new]"
			}
			fmt.Fprintf(out, "%4s: %s\n", strings.ToUpper(string(category)), display)
		}
	}
}

func (c *Crawler) prompt(msg *mail.Message) {
	out := c.configuration.Output
	fmt.Fprintf(out, "\n### %s\n", msg.Subject)
	fmt.Fprintf(out, "%s --> %s %s\n", joinDisplay(msg.From), joinDisplay(msg.To), promptChoices)
}

func (c *Crawler) highlight(s string) string {
	if c.configuration.Plain {
		return s
	}
	return unresolvedStyle.Render(s)
}

func joinDisplay(addrs []mail.DisplayAddress) string {
	displays := make([]string, len(addrs))
	for i, a := range addrs {
		displays[i] = a.Display
	}

	return strings.Join(displays, ",")
}
