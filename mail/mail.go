// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"mime"
	stdmail "net/mail"
	"regexp"
	"strings"

	"github.com/CrawX/go-imap-epafi/address"
	"github.com/CrawX/go-imap-epafi/domain"

	"github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

// Heuristic, matches anything that looks like an address.
var bodyAddressPattern = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}\b`)

const plainText = "text/plain"

type Category string

const (
	From = Category("from")
	To   = Category("to")
	Cc   = Category("cc")
	Body = Category("body")
)

// Categories in presentation order.
var Categories = []Category{From, To, Cc, Body}

type DisplayAddress struct {
	Display string
	Address address.Address
}

type Part struct {
	ContentType string
	Content     []byte
}

type Message struct {
	Subject    string
	MailIdHash string

	From []DisplayAddress
	To   []DisplayAddress
	Cc   []DisplayAddress

	Parts []Part
}

type Extraction struct {
	Candidates address.Set
	ByCategory map[Category][]DisplayAddress
	Body       address.Set
}

// ParseMessage decodes headers and the leaf parts of a raw mail. Every decoding failure is
// reported wrapped in domain.ErrEncoding.
func ParseMessage(rawMail []byte) (*Message, error) {
	subject, mailIdHash, err := MailHeaderInfos(rawMail)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}

	mr, err := mail.CreateReader(bytes.NewReader(rawMail))
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse mail: %v", domain.ErrEncoding, err)
	}
	defer mr.Close()

	msg := &Message{
		Subject:    subject,
		MailIdHash: mailIdHash,
	}

	for _, f := range []struct {
		key    string
		target *[]DisplayAddress
	}{
		{"From", &msg.From},
		{"To", &msg.To},
		{"Cc", &msg.Cc},
	} {
		addrs, err := mr.Header.AddressList(f.key)
		if err != nil {
			return nil, fmt.Errorf("%w: could not parse %s header: %v", domain.ErrEncoding, f.key, err)
		}
		for _, a := range addrs {
			normalized := address.Normalize(a.Address)
			if len(normalized) == 0 {
				continue
			}
			*f.target = append(*f.target, DisplayAddress{Display: a.Address, Address: normalized})
		}
	}

	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: could not read mail part: %v", domain.ErrEncoding, err)
		}

		content, err := ioutil.ReadAll(p.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: could not decode mail part: %v", domain.ErrEncoding, err)
		}

		msg.Parts = append(msg.Parts, Part{ContentType: partContentType(p.Header), Content: content})
	}

	return msg, nil
}

func partContentType(h mail.PartHeader) string {
	if len(h.Get("Content-Type")) == 0 {
		return plainText
	}

	var contentType string
	switch ph := h.(type) {
	case *mail.InlineHeader:
		contentType, _, _ = ph.ContentType()
	case *mail.AttachmentHeader:
		contentType, _, _ = ph.ContentType()
	}

	return strings.ToLower(contentType)
}

// Extract collects the candidate addresses of a message. Messages without From or To
// are not extractable and yield false.
func Extract(msg *Message) (*Extraction, bool) {
	if len(msg.From) == 0 || len(msg.To) == 0 {
		return nil, false
	}

	extraction := &Extraction{
		Candidates: address.NewSet(),
		ByCategory: map[Category][]DisplayAddress{},
		Body:       address.NewSet(),
	}

	for category, addrs := range map[Category][]DisplayAddress{From: msg.From, To: msg.To, Cc: msg.Cc} {
		for _, a := range addrs {
			extraction.ByCategory[category] = append(extraction.ByCategory[category], a)
			extraction.Candidates.Add(a.Address)
		}
	}

	for _, p := range msg.Parts {
		if p.ContentType != plainText {
			continue
		}

		for _, match := range bodyAddressPattern.FindAllString(string(p.Content), -1) {
			normalized := address.Normalize(match)
			if extraction.Body.Has(normalized) {
				continue
			}
			extraction.Body.Add(normalized)
			extraction.ByCategory[Body] = append(extraction.ByCategory[Body], DisplayAddress{Display: match, Address: normalized})
		}
	}
	extraction.Candidates.Add(extraction.Body.Sorted()...)

	return extraction, true
}

// MailHeaderInfos returns the decoded subject and a hash identifying the mail across mailboxes.
// Mails without Message-Id and Received headers get an empty hash.
func MailHeaderInfos(rawMail []byte) (string, string, error) {
	msg, err := stdmail.ReadMessage(bytes.NewReader(rawMail))
	if err != nil {
		return "", "", fmt.Errorf("could not parse mail: %w", err)
	}

	messageIdHeader := msg.Header["Message-Id"]
	receivedHeader := msg.Header["Received"]

	dec := &mime.WordDecoder{
		CharsetReader: charset.Reader,
	}
	subject, err := dec.DecodeHeader(msg.Header.Get("Subject"))
	if err != nil {
		return "", "", fmt.Errorf("could decode subject header: %w", err)
	}

	if len(receivedHeader) == 0 && len(messageIdHeader) == 0 {
		return subject, "", nil
	}

	mailIdHash, err := hash([][]string{messageIdHeader, receivedHeader})
	if err != nil {
		return "", "", fmt.Errorf("could not hash headers: %w", err)
	}

	return subject, mailIdHash, nil
}

func ShortSubject(subject string) string {
	if (len(subject)) > 30 {
		subject = subject[:30] + "..."
	}
	return subject
}

func hash(input [][]string) (string, error) {
	sha := sha256.New()
	for _, i := range input {
		for _, ii := range i {
			_, err := sha.Write([]byte(ii))
			if err != nil {
				return "", fmt.Errorf("could not hash: %w", err)
			}
		}
	}

	return fmt.Sprintf("%x", sha.Sum(nil)), nil
}
