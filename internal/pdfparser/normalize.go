package pdfparser

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// newNormalizer composes characters (NFC) and folds the space and dash variants
// PDF generators use in amounts, so non-breaking spaces and minus signs match plain patterns.
// A transform.Chain keeps buffers between calls, so each caller gets its own.
func newNormalizer() transform.Transformer {
	return transform.Chain(norm.NFC, runes.Remove(runes.Predicate(func(r rune) bool {
		return r == '\r'
	})), runes.Map(func(r rune) rune {
		switch r {
		case '\u00a0', '\u2007', '\u2009', '\u202f', '\t':
			return ' '
		case '\u2212', '\u2013', '\u2012':
			return '-'
		default:
			return r
		}
	}))
}

// normalizeText prepares extracted text for line classification.
func normalizeText(text string) string {
	// NFC and rune mapping never fail on a string source.
	out, _, _ := transform.String(newNormalizer(), text)
	return out
}
