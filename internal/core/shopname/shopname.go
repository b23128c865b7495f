// Package shopname provides a deterministic shop name normalizer used for
// grouping and cache keys
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKD decomposition and width fold fullwidth to ASCII
// 3 Remove zero-width and combining marks so accents fold to base letters
// 4 Uppercase
// 5 Strip everything except word characters whitespace and commas
// 6 Normalize comma spacing "A ,TX" -> "A, TX"
// 7 Collapse whitespace to single spaces and trim
package shopname

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Unknown is the group key for records with no usable shop name
const Unknown = "UNKNOWN"

// UnknownDisplay is how the Unknown group renders to consumers
const UnknownDisplay = "Unknown"

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKD,
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// Normalize returns the canonical grouping form of a raw shop name.
// Idempotent and case-insensitive; empty input normalizes to ""
func Normalize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2-3 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 4 uppercase
	ns = strings.ToUpper(ns)

	// 5 strip everything except word chars whitespace comma
	ns = stripDisallowed(ns)

	// 6 comma spacing
	ns = commaSpacing(ns)

	// 7 collapse whitespace and trim
	return collapseSpaces(ns)
}

// GroupKey is Normalize with the empty-name fallback applied
func GroupKey(s string) string {
	if k := Normalize(s); k != "" {
		return k
	}
	return Unknown
}

// stripDisallowed keeps letters digits underscore whitespace and commas
func stripDisallowed(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == ',':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// commaSpacing drops spaces before commas and pins one space after
func commaSpacing(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r == ' ' {
			// peek past the run of spaces for a comma
			j := i
			for j < len(rs) && rs[j] == ' ' {
				j++
			}
			if j < len(rs) && rs[j] == ',' {
				i = j - 1
				continue
			}
		}
		b.WriteRune(r)
		if r == ',' && i+1 < len(rs) && rs[i+1] != ' ' {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// collapseSpaces folds whitespace runs into single spaces and trims ends
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if r == ' ' {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
