// Package gibberish classifies text that lacks the statistical shape of
// natural language: keyboard mashing, held-down keys, and pattern spam.
// Real text in any Latin-script language reliably clears a ~25-40% vowel
// ratio and rarely runs past 6-7 consecutive consonants; the thresholds
// here are empirically chosen and tunable, not hard invariants.
package gibberish

import (
	"strings"
	"unicode"
)

// Config holds the classifier thresholds.
type Config struct {
	MinLength          int     // minimum trimmed text length to evaluate at all
	MinLetters         int     // minimum letters for a meaningful vowel ratio
	MinVowelRatio      float64 // below this ratio classifies as gibberish
	MaxConsonantRun    int     // a consonant run of this length classifies
	MaxCharRepeat      int     // one char repeated this many times classifies
	MaxPatternRepeat   int     // a 2-3 char pattern repeated this many times classifies
	LongTextLetters    int     // letter count above which the dictionary rule applies
	LongTextVowelRatio float64 // vowel ratio bound for the dictionary rule
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		MinLength:          10,
		MinLetters:         5,
		MinVowelRatio:      0.15,
		MaxConsonantRun:    8,
		MaxCharRepeat:      5,
		MaxPatternRepeat:   4,
		LongTextLetters:    30,
		LongTextVowelRatio: 0.25,
	}
}

// Classifier scores text against the configured thresholds. It is stateless
// and safe for concurrent use.
type Classifier struct {
	cfg Config
}

// NewClassifier returns a Classifier with the given thresholds.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// IsGibberish reports whether text lacks the characteristics of natural
// language. Short texts are indeterminate and return false: a display name
// or one-word answer doesn't carry enough signal to judge.
func (c *Classifier) IsGibberish(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < c.cfg.MinLength {
		return false
	}

	letters := lettersOf(trimmed)
	if len(letters) < c.cfg.MinLetters {
		return false
	}

	ratio := vowelRatio(letters)
	if ratio < c.cfg.MinVowelRatio {
		return true
	}
	if longestConsonantRun(letters) >= c.cfg.MaxConsonantRun {
		return true
	}
	if hasCharRepeat(trimmed, c.cfg.MaxCharRepeat) {
		return true
	}
	if hasPatternRepeat(strings.ToLower(trimmed), c.cfg.MaxPatternRepeat) {
		return true
	}

	// Long keyboard-mash strings can clear the vowel-ratio floor by
	// accident; require at least one recognizable word from them.
	if len(letters) > c.cfg.LongTextLetters &&
		ratio < c.cfg.LongTextVowelRatio &&
		!containsKnownWord(trimmed) {
		return true
	}

	return false
}

// lettersOf returns the lower-cased letters of s, with everything else
// stripped.
func lettersOf(s string) []rune {
	var letters []rune
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	return letters
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'á', 'é', 'í', 'ó', 'ú', 'à', 'è', 'ê', 'ô', 'û':
		return true
	}
	return false
}

func vowelRatio(letters []rune) float64 {
	if len(letters) == 0 {
		return 0
	}
	vowels := 0
	for _, r := range letters {
		if isVowel(r) {
			vowels++
		}
	}
	return float64(vowels) / float64(len(letters))
}

func longestConsonantRun(letters []rune) int {
	longest, run := 0, 0
	for _, r := range letters {
		if isVowel(r) {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}

// hasCharRepeat reports whether any single character repeats threshold or
// more times consecutively. Linear scan: RE2 has no backreferences.
func hasCharRepeat(text string, threshold int) bool {
	count := 1
	prev := rune(-1)
	for _, r := range text {
		if r == prev {
			count++
			if count >= threshold {
				return true
			}
		} else {
			count = 1
			prev = r
		}
	}
	return false
}

// hasPatternRepeat reports whether any 2-3 character substring repeats
// threshold or more times back to back ("asdasdasdasd").
func hasPatternRepeat(text string, threshold int) bool {
	runes := []rune(text)
	for size := 2; size <= 3; size++ {
		for start := 0; start+size*threshold <= len(runes); start++ {
			pattern := string(runes[start : start+size])
			repeats := 1
			for pos := start + size; pos+size <= len(runes); pos += size {
				if string(runes[pos:pos+size]) != pattern {
					break
				}
				repeats++
				if repeats >= threshold {
					return true
				}
			}
		}
	}
	return false
}

// containsKnownWord reports whether any token of text appears in the
// common-word dictionary.
func containsKnownWord(text string) bool {
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		if commonWords[tok] {
			return true
		}
	}
	return false
}
