package model

import "strings"

// Project is a configured release target. Deadline stays raw here; it is
// parsed at selection time with the caller's reference year.
type Project struct {
	Name     string
	Deadline string
}

// AliasMap maps a formal song name to the short label shown on tabs.
type AliasMap map[string]string

// Display returns the short label for name, or name itself when no alias
// is configured.
func (a AliasMap) Display(name string) string {
	if short, ok := a[name]; ok && strings.TrimSpace(short) != "" {
		return short
	}
	return name
}
