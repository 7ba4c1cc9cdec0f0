// SPDX-License-Identifier: GPL-3.0-or-later
package domain

//go:generate mockgen -destination=mocks/viewer.go -package=mocks . Viewer
type Viewer interface {
	Show(rawMail []byte) error
}
