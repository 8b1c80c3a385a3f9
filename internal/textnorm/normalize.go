// Package textnorm produces alternate canonical views of user text for the
// contact-info detectors. Each view defeats one obfuscation strategy:
// spelling digits out ("five five five"), spacing characters apart
// ("5 5 5-1234"), or substituting lookalike characters ("1nstagram").
// All views are computed unconditionally; detectors pick the ones they need.
package textnorm

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Views holds the normalized forms of a single input text.
type Views struct {
	// DigitExpanded has spelled-out number words replaced with digits
	// ("five five five" -> "5 5 5").
	DigitExpanded string

	// SeparatorStripped is DigitExpanded with whitespace and common
	// separator punctuation removed ("5 5 5-1234" -> "5551234").
	SeparatorStripped string

	// HomoglyphFolded is the Unicode-folded, leetspeak-folded lowercase
	// form ("1nstagr@m" -> "instagram").
	HomoglyphFolded string

	// MixedDigits is the digit string extracted token-by-token, defeating
	// alternating digit/word obfuscation ("1, eight, 4" -> "184").
	MixedDigits string
}

// Normalize computes all four views of text.
func Normalize(text string) Views {
	expanded := ExpandDigits(text)
	return Views{
		DigitExpanded:     expanded,
		SeparatorStripped: StripSeparators(expanded),
		HomoglyphFolded:   FoldHomoglyphs(text),
		MixedDigits:       ExtractMixedDigits(text),
	}
}

// numberWords maps spelled-out numbers, including common homophones and
// misspellings, to their digit form. "oh" is the spoken zero; "won", "too",
// "for" and "ate" show up constantly in spelled-out phone numbers.
var numberWords = map[string]string{
	"zero": "0", "oh": "0",
	"one": "1", "won": "1",
	"two": "2", "too": "2",
	"three": "3",
	"four":  "4", "for": "4",
	"five": "5",
	"six":  "6",
	"seven": "7",
	"eight": "8", "ate": "8",
	"nine": "9",
	"ten":  "10",
}

var numberWordPattern = regexp.MustCompile(
	`(?i)\b(zero|oh|one|won|two|too|three|four|for|five|six|seven|eight|ate|nine|ten)\b`)

// ExpandDigits replaces whole-word spelled-out numbers with digits. It runs
// before separator stripping so that "five five five" collapses to "555"
// rather than "fivefivefive".
func ExpandDigits(text string) string {
	return numberWordPattern.ReplaceAllStringFunc(text, func(w string) string {
		return numberWords[strings.ToLower(w)]
	})
}

// isSeparator reports whether r is one of the characters people use to space
// out sequences they want to hide: whitespace, hyphen, underscore, dot,
// parentheses, slash, comma.
func isSeparator(r rune) bool {
	switch r {
	case '-', '_', '.', '(', ')', '/', ',':
		return true
	}
	return unicode.IsSpace(r)
}

// StripSeparators removes separator characters, collapsing intentionally
// spaced-out sequences into contiguous runs.
func StripSeparators(text string) string {
	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}
		return r
	}, text)
}

// leetFold maps common character substitutions back to the letters they
// imitate. This pass is independent of digit expansion: the two target
// different evasion strategies and must not be merged (digit expansion turns
// words into digits, this turns digits back into letters).
var leetFold = map[rune]rune{
	'@': 'a', '4': 'a',
	'3': 'e',
	'1': 'i', '!': 'i',
	'0': 'o',
	'$': 's', '5': 's',
	'7': 't', '+': 't',
	'8': 'b',
}

// foldChainPool pools the stateful x/text transformer chains. The chain
// collapses Unicode homoglyphs before the ASCII leet table runs: NFKC,
// case folding, combining-mark and format-char removal, width folding.
var foldChainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// FoldHomoglyphs returns the lowercase text with Unicode homoglyphs and
// leetspeak substitutions folded to their plain-letter equivalents.
func FoldHomoglyphs(text string) string {
	tr := foldChainPool.Get().(transform.Transformer)
	folded, _, err := transform.String(tr, text)
	tr.Reset()
	foldChainPool.Put(tr)
	if err != nil {
		// The chain only removes or remaps runes; an error means invalid
		// UTF-8 slipped through. Fall back to plain lowercasing.
		folded = strings.ToLower(text)
	}

	return strings.Map(func(r rune) rune {
		if mapped, ok := leetFold[r]; ok {
			return mapped
		}
		return r
	}, folded)
}

// ExtractMixedDigits tokenizes text on separators and concatenates, in
// order, every token that is a digit, a multi-digit numeral, or a recognized
// spelled-out number word. "1, eight, 4, seven" -> "1847".
func ExtractMixedDigits(text string) string {
	var b strings.Builder
	for _, tok := range strings.FieldsFunc(text, isSeparator) {
		if isAllDigits(tok) {
			b.WriteString(tok)
			continue
		}
		if d, ok := numberWords[strings.ToLower(tok)]; ok {
			b.WriteString(d)
		}
	}
	return b.String()
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
