// SPDX-License-Identifier: GPL-3.0-or-later
package ignorelist

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/CrawX/go-imap-epafi/log"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// IgnoreList stores ignored addresses as a YAML sequence of strings.
type IgnoreList struct {
	path string
	l    *logrus.Logger
}

func New(path string) *IgnoreList {
	return &IgnoreList{
		path: path,
		l:    log.Logger(log.LOG_PERSISTENCE),
	}
}

func (il *IgnoreList) Load() ([]string, error) {
	raw, err := ioutil.ReadFile(il.path)
	if errors.Is(err, os.ErrNotExist) {
		il.l.WithField("file", il.path).Info("No ignore list found, starting empty")
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read ignore list: %w", err)
	}

	addrs := []string{}
	err = yaml.Unmarshal(raw, &addrs)
	if err != nil {
		return nil, fmt.Errorf("could not parse ignore list %s: %w", il.path, err)
	}

	il.l.WithFields(logrus.Fields{"file": il.path, "count": len(addrs)}).Debug("Loaded ignore list")
	return addrs, nil
}

// Save replaces the stored list with addrs.
func (il *IgnoreList) Save(addrs []string) error {
	if addrs == nil {
		addrs = []string{}
	}

	raw, err := yaml.Marshal(addrs)
	if err != nil {
		return fmt.Errorf("could not serialize ignore list: %w", err)
	}

	dir := filepath.Dir(il.path)
	err = os.MkdirAll(dir, 0700)
	if err != nil {
		return fmt.Errorf("could not create ignore list directory: %w", err)
	}

	tmp, err := ioutil.TempFile(dir, filepath.Base(il.path)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary ignore list: %w", err)
	}
	defer os.Remove(tmp.Name())

	_, err = tmp.Write(raw)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("could not write ignore list: %w", err)
	}
	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("could not write ignore list: %w", err)
	}

	err = os.Rename(tmp.Name(), il.path)
	if err != nil {
		return fmt.Errorf("could not replace ignore list: %w", err)
	}

	il.l.WithFields(logrus.Fields{"file": il.path, "count": len(addrs)}).Debug("Saved ignore list")
	return nil
}
