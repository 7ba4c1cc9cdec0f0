// SPDX-License-Identifier: GPL-3.0-or-later
package registry

import (
	"fmt"

	"github.com/CrawX/go-imap-epafi/address"
	"github.com/CrawX/go-imap-epafi/domain"
	"github.com/CrawX/go-imap-epafi/log"

	"github.com/sirupsen/logrus"
)

// Registry knows every resolved address. keep is rebuilt from the directory on every run,
// ignore is persisted through the IgnoreStore.
type Registry struct {
	keep   address.Set
	ignore address.Set

	// insertion order of ignore, written back as is
	ignoreOrder []address.Address

	ignoreStore domain.IgnoreStore

	l *logrus.Logger
}

func NewRegistry(ignoreStore domain.IgnoreStore) *Registry {
	return &Registry{
		keep:        address.NewSet(),
		ignore:      address.NewSet(),
		ignoreStore: ignoreStore,
		l:           log.Logger(log.LOG_REGISTRY),
	}
}

// Hydrate reads every page of both directory collections until an empty page is returned,
// then loads the ignore store.
func (r *Registry) Hydrate(directory domain.Directory) error {
	for _, collection := range []domain.Collection{domain.Contacts, domain.Leads} {
		pages, records := 0, 0
		for page := 1; ; page++ {
			pageRecords, err := directory.FetchPage(collection, page)
			if err != nil {
				return fmt.Errorf("could not load %s page %d: %w", collection, page, err)
			}
			pages++

			if len(pageRecords) == 0 {
				break
			}

			for _, record := range pageRecords {
				r.keep.Add(address.SplitList(record.Email)...)
				r.keep.Add(address.SplitList(record.AltEmail)...)
			}
			records += len(pageRecords)
		}
		r.l.WithFields(logrus.Fields{"collection": collection, "pages": pages, "records": records}).Info("Loaded directory collection")
	}

	ignored, err := r.ignoreStore.Load()
	if err != nil {
		return fmt.Errorf("could not load ignore list: %w", err)
	}
	for _, raw := range ignored {
		r.addIgnored(address.Normalize(raw))
	}

	r.l.WithFields(logrus.Fields{"keep": r.keep.Len(), "ignore": r.ignore.Len()}).Info("Registry hydrated")
	return nil
}

func (r *Registry) IsKnown(addr address.Address) bool {
	return r.keep.Has(addr) || r.ignore.Has(addr)
}

// Unresolved returns the members of candidates that are neither kept nor ignored, sorted.
func (r *Registry) Unresolved(candidates address.Set) []address.Address {
	unresolved := []address.Address{}
	for _, a := range candidates.Sorted() {
		if !r.IsKnown(a) {
			unresolved = append(unresolved, a)
		}
	}

	return unresolved
}

// KeepAll only affects the current run, kept addresses are expected to reach the directory out of band.
func (r *Registry) KeepAll(addrs []address.Address) {
	for _, a := range addrs {
		r.keep.Add(address.Normalize(string(a)))
	}
	r.l.WithField("addresses", address.Strings(addrs)).Debug("Keeping addresses")
}

// IgnoreAll adds addrs to the ignore set and rewrites the whole ignore store.
func (r *Registry) IgnoreAll(addrs []address.Address) error {
	for _, a := range addrs {
		r.addIgnored(address.Normalize(string(a)))
	}

	err := r.ignoreStore.Save(address.Strings(r.ignoreOrder))
	if err != nil {
		return fmt.Errorf("could not save ignore list: %w", err)
	}

	r.l.WithFields(logrus.Fields{"addresses": address.Strings(addrs), "ignore": r.ignore.Len()}).Debug("Ignoring addresses")
	return nil
}

func (r *Registry) KeepCount() int {
	return r.keep.Len()
}

func (r *Registry) IgnoreCount() int {
	return r.ignore.Len()
}

func (r *Registry) addIgnored(a address.Address) {
	if len(a) == 0 || r.ignore.Has(a) {
		return
	}
	r.ignore.Add(a)
	r.ignoreOrder = append(r.ignoreOrder, a)
}
