// SPDX-License-Identifier: GPL-3.0-or-later
package directory

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/CrawX/go-imap-epafi/domain"
	"github.com/CrawX/go-imap-epafi/log"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/publicsuffix"
)

const (
	DirectoryTimeout = 30 * time.Second

	loginPath = "/login"
	userAgent = "go-imap-epafi"
)

// Client talks to the CRM's JSON api. The session established by Login is kept in a cookie jar.
type Client struct {
	client    *http.Client
	baseUrl   string
	loginPath string

	l *logrus.Logger
}

func NewClient(baseUrl string) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("could not create cookie jar: %w", err)
	}

	baseUrl = strings.TrimRight(baseUrl, "/")
	login, err := url.Parse(baseUrl + loginPath)
	if err != nil {
		return nil, fmt.Errorf("could not parse directory url: %w", err)
	}

	return &Client{
		client: &http.Client{
			Timeout: DirectoryTimeout,
			Jar:     jar,
		},
		baseUrl:   baseUrl,
		loginPath: login.Path,
		l:         log.Logger(log.LOG_DIRECTORY),
	}, nil
}

// Login posts the credentials form. A rejected login is reported wrapped in domain.ErrAuthentication.
func (c *Client) Login(user, password string) error {
	form := url.Values{}
	form.Set("authentication[username]", user)
	form.Set("authentication[password]", password)

	req, err := http.NewRequest(http.MethodPost, c.baseUrl+loginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("could not create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("could not perform login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: login returned status %d", domain.ErrAuthentication, resp.StatusCode)
	}

	c.l.WithFields(logrus.Fields{"baseurl": c.baseUrl, "user": user}).Debug("Logged in to directory")
	return nil
}

type person struct {
	Email    *string `json:"email"`
	AltEmail *string `json:"alt_email"`
}

// FetchPage returns the records of one page of a collection, page numbers start at 1.
func (c *Client) FetchPage(collection domain.Collection, page int) ([]*domain.DirectoryRecord, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/%s.json?page=%s", c.baseUrl, collection, strconv.Itoa(page)), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create page request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("could not perform page request: %w", err)
	}
	defer resp.Body.Close()

	// an expired or rejected session is redirected back to the login form
	redirectedToLogin := resp.Request != nil && resp.Request.URL.Path == c.loginPath
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden || redirectedToLogin {
		return nil, fmt.Errorf("%w: %s page %d returned status %d", domain.ErrAuthentication, collection, page, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from directory, expected 200", resp.StatusCode)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read directory response: %w", err)
	}

	rawRecords := []json.RawMessage{}
	err = json.Unmarshal(body, &rawRecords)
	if err != nil {
		return nil, fmt.Errorf("could not deserialize directory response: %w", err)
	}

	records := make([]*domain.DirectoryRecord, 0, len(rawRecords))
	for _, raw := range rawRecords {
		p, err := unwrapRecord(collection, raw)
		if err != nil {
			return nil, fmt.Errorf("could not deserialize %s record: %w", collection, err)
		}
		records = append(records, &domain.DirectoryRecord{
			Email:    deref(p.Email),
			AltEmail: deref(p.AltEmail),
		})
	}

	c.l.WithFields(logrus.Fields{"collection": collection, "page": page, "records": len(records)}).Debug("Fetched directory page")
	return records, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", userAgent)
	return c.client.Do(req)
}

// unwrapRecord accepts both {"contact": {...}} and bare {...} records.
func unwrapRecord(collection domain.Collection, raw json.RawMessage) (*person, error) {
	wrapped := map[string]json.RawMessage{}
	err := json.Unmarshal(raw, &wrapped)
	if err != nil {
		return nil, err
	}

	inner, ok := wrapped[strings.TrimSuffix(string(collection), "s")]
	if !ok {
		inner = raw
	}

	p := &person{}
	err = json.Unmarshal(inner, p)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
