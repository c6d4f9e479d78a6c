// Package slug derives URL-safe identifiers from display strings.
package slug

import "strings"

// Make converts text into a lowercase, hyphen-separated slug. Runs of
// whitespace, punctuation and any other non-alphanumeric runes collapse into
// a single hyphen; leading and trailing hyphens are stripped. Make is a total
// function: any input, including the empty string, produces a valid (possibly
// empty) slug, and equal inputs always produce equal slugs.
func Make(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSep := false
	for _, r := range strings.ToLower(text) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingSep = true
			continue
		}
		if pendingSep && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingSep = false
		b.WriteRune(r)
	}

	return b.String()
}
