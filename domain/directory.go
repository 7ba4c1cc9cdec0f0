// SPDX-License-Identifier: GPL-3.0-or-later
package domain

//go:generate mockgen -destination=mocks/directory.go -package=mocks . Directory
type Collection string

const (
	Contacts = Collection("contacts")
	Leads    = Collection("leads")
)

// DirectoryRecord holds the raw address fields of a CRM record. Either field may be a
// comma-separated list.
type DirectoryRecord struct {
	Email    string
	AltEmail string
}

type Directory interface {
	FetchPage(collection Collection, page int) ([]*DirectoryRecord, error)
}
