package domain

import "strings"

// NormalizeIdentityKey canonicalizes a national ID for lookup: separators
// and punctuation are stripped, the check digit is uppercased, the hyphen
// before the check digit survives. "12.345.678-k" and "12345678-K" map to
// the same key.
func NormalizeIdentityKey(raw string) string {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == 'K' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
