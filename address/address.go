// SPDX-License-Identifier: GPL-3.0-or-later
package address

import (
	"sort"
	"strings"
)

// Address is the canonical form of an email address: trimmed and lowercased.
// Set membership and equality only ever use this form.
type Address string

func Normalize(raw string) Address {
	return Address(strings.ToLower(strings.TrimSpace(raw)))
}

// SplitList normalizes every entry of a comma-separated address list, dropping empty entries.
func SplitList(raw string) []Address {
	addrs := []Address{}
	for _, part := range strings.Split(raw, ",") {
		a := Normalize(part)
		if len(a) == 0 {
			continue
		}
		addrs = append(addrs, a)
	}

	return addrs
}

type Set map[Address]struct{}

func NewSet(addrs ...Address) Set {
	s := Set{}
	s.Add(addrs...)
	return s
}

func (s Set) Add(addrs ...Address) {
	for _, a := range addrs {
		s[a] = struct{}{}
	}
}

func (s Set) Has(a Address) bool {
	_, ok := s[a]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []Address {
	addrs := make([]Address, 0, len(s))
	for a := range s {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	return addrs
}

func Strings(addrs []Address) []string {
	strs := make([]string, len(addrs))
	for i, a := range addrs {
		strs[i] = string(a)
	}

	return strs
}
