package utils

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letterFolds maps letters that have no canonical decomposition to their base letter.
var letterFolds = map[rune]rune{
	'ł': 'l',
	'Ł': 'l',
	'đ': 'd',
	'Đ': 'd',
	'ø': 'o',
	'Ø': 'o',
}

// TextNormalizer wraps transform.Transformer to provide convenient string normalization methods.
// This is not safe for concurrent use.
type TextNormalizer struct {
	transformer transform.Transformer
}

// NewTextNormalizer creates a new TextNormalizer instance.
func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{
		transformer: transform.Chain(
			norm.NFKD,                          // Decompose with compatibility decomposition
			runes.Remove(runes.In(unicode.Mn)), // Remove non-spacing marks
			runes.Map(foldLetter),              // Fold stroked letters and lowercase
			norm.NFKC,                          // Normalize with compatibility composition
		),
	}
}

// foldLetter lowercases r and replaces letters listed in letterFolds.
func foldLetter(r rune) rune {
	if folded, ok := letterFolds[r]; ok {
		return folded
	}
	return unicode.ToLower(r)
}

// Normalize cleans up text using the normalizer.
// Returns empty string if normalization fails or input is empty.
func (n *TextNormalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	// Clean up whitespace while preserving newlines
	s = CompressWhitespacePreserveNewlines(s)
	if s == "" {
		return ""
	}

	result, _, err := transform.String(n.transformer, s)
	if err != nil || result == "" {
		return ""
	}

	return result
}

// FoldName returns the search key stored next to a company name.
// Whitespace is collapsed so "Acme  Corp" and "acme corp" share one key.
func FoldName(name string) string {
	return NewTextNormalizer().Normalize(CompressAllWhitespace(name))
}
