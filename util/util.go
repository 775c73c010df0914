package util

import "strings"

// SplitTrim splits a delimited list of names, trims each one and drops the
// empty entries.
func SplitTrim(src, sep string) []string {
	if src == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(src, sep) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// HasPrefixes returns true if the string s has any of the given prefixes.
func HasPrefixes(src string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(src, prefix) {
			return true
		}
	}
	return false
}
