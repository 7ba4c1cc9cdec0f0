// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/CrawX/go-imap-epafi/log"

	"github.com/BurntSushi/toml"
)

const (
	DefaultImapPort = "993"
	SinceLayout     = "2006-01-02"
)

type CrmConfig struct {
	BaseUrl  string `toml:"baseurl"`
	Login    string `toml:"login"`
	Password string `toml:"password"`
}

type ImapConfig struct {
	Server             string `toml:"server"`
	Login              string `toml:"login"`
	Password           string `toml:"password"`
	Pattern            string `toml:"pattern"`
	Since              string `toml:"since"`
	MaxRetries         int    `toml:"maxretries"`
	Compress           bool   `toml:"compress"`
	InsecureSkipVerify bool   `toml:"insecureskipverify"`
}

type StoreConfig struct {
	IgnoreFile string `toml:"ignorefile"`
	Journal    string `toml:"journal"`
}

type ViewerConfig struct {
	Command string `toml:"command"`
	TmpFile string `toml:"tmpfile"`
}

type Config struct {
	Crm    CrmConfig    `toml:"crm"`
	Imap   ImapConfig   `toml:"imap"`
	Store  StoreConfig  `toml:"store"`
	Viewer ViewerConfig `toml:"viewer"`

	Loglevel *string `toml:"loglevel"`

	// Keys found in the file that no field consumed.
	Undecoded []string `toml:"-"`

	pattern *regexp.Regexp
	since   time.Time
}

// ValidationError lists every invalid field of a configuration file.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration is not valid: %s", strings.Join(e.Fields, "; "))
}

// ReadConfig decodes and validates the config file. Relative store paths are resolved against configDir.
func ReadConfig(filename string, configDir string) (*Config, error) {
	config := &Config{
		Imap: ImapConfig{
			Since:      "2001-01-01",
			MaxRetries: 5,
			Compress:   true,
		},
		Store: StoreConfig{
			IgnoreFile: "ignore.yml",
			Journal:    "journal.db",
		},
		Viewer: ViewerConfig{
			Command: "mutt -R -f",
			TmpFile: ".tmpmail",
		},
	}

	md, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	for _, key := range md.Undecoded() {
		config.Undecoded = append(config.Undecoded, key.String())
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	config.Store.IgnoreFile = resolvePath(configDir, config.Store.IgnoreFile)
	config.Store.Journal = resolvePath(configDir, config.Store.Journal)
	if _, _, err := net.SplitHostPort(config.Imap.Server); err != nil {
		config.Imap.Server = net.JoinHostPort(config.Imap.Server, DefaultImapPort)
	}

	return config, nil
}

// Pattern is the compiled mailbox filter, only valid after ReadConfig succeeded.
func (c *Config) Pattern() *regexp.Regexp {
	return c.pattern
}

func (c *Config) Since() time.Time {
	return c.since
}

func (c *Config) validate() error {
	invalid := []string{}
	addIfErr := func(err error) {
		if err != nil {
			invalid = append(invalid, err.Error())
		}
	}

	addIfErr(validateUrl(c.Crm.BaseUrl, "crm.baseurl must be an absolute http(s) url of the crm"))
	addIfErr(validateNonEmptyStringField(c.Crm.Login, "crm.login must not be empty"))
	addIfErr(validateNonEmptyStringField(c.Crm.Password, "crm.password must not be empty"))

	addIfErr(validateNonEmptyStringField(c.Imap.Server, "imap.server must not be empty, set to host or host:port of the imap server"))
	addIfErr(validateNonEmptyStringField(c.Imap.Login, "imap.login must not be empty"))
	addIfErr(validateNonEmptyStringField(c.Imap.Password, "imap.password must not be empty"))

	if err := validateNonEmptyStringField(c.Imap.Pattern, "imap.pattern must not be empty, set to a regex matching mailbox names"); err != nil {
		addIfErr(err)
	} else {
		pattern, err := regexp.Compile(c.Imap.Pattern)
		if err != nil {
			addIfErr(fmt.Errorf("imap.pattern is not a valid regex: %v", err))
		}
		c.pattern = pattern
	}

	since, err := time.Parse(SinceLayout, strings.TrimSpace(c.Imap.Since))
	if err != nil {
		addIfErr(fmt.Errorf("imap.since must be a date formatted as YYYY-MM-DD"))
	}
	c.since = since

	if c.Imap.MaxRetries < 1 {
		addIfErr(fmt.Errorf("imap.maxretries must be at least 1"))
	}

	if c.Loglevel != nil {
		_, err := log.ParseLevel(*c.Loglevel)
		addIfErr(err)
	}

	addIfErr(validateNonEmptyStringField(c.Store.IgnoreFile, "store.ignorefile must not be empty"))
	addIfErr(validateNonEmptyStringField(c.Viewer.Command, "viewer.command must not be empty"))
	addIfErr(validateNonEmptyStringField(c.Viewer.TmpFile, "viewer.tmpfile must not be empty"))

	if len(invalid) > 0 {
		return &ValidationError{Fields: invalid}
	}

	return nil
}

func validateNonEmptyStringField(field string, err string) error {
	if len(strings.TrimSpace(field)) == 0 {
		return fmt.Errorf("%s", err)
	}

	return nil
}

func validateUrl(field string, err string) error {
	u, parseErr := url.Parse(strings.TrimSpace(field))
	if parseErr != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || len(u.Host) == 0 {
		return fmt.Errorf("%s", err)
	}

	return nil
}

func resolvePath(dir, path string) string {
	if len(path) == 0 || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}
