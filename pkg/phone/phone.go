// Package phone holds the normalization contract shared by the confirmation
// workflow and the notification dispatcher. The normalized form is the
// Client's unique key, so both sides must agree on it exactly.
package phone

import "strings"

// Normalize strips chat-suffixes ("79991234567@c.us"), drops every non-digit
// character and fixes the CIS-region leading 8: an 11-digit number starting
// with 8 becomes the same number starting with 7.
func Normalize(raw string) string {
	if i := strings.IndexByte(raw, '@'); i >= 0 {
		raw = raw[:i]
	}
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 11 && digits[0] == '8' {
		digits = "7" + digits[1:]
	}
	return digits
}
