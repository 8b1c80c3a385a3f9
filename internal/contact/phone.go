package contact

import (
	"regexp"

	"github.com/accordapp/moderation/internal/textnorm"
)

// digitRunPattern matches 7 or more consecutive digits, the shortest
// plausible local phone number.
var digitRunPattern = regexp.MustCompile(`\d{7,}`)

// phoneContextPattern matches phrasing that corroborates a digit run as a
// phone number, plus the "#" sigil people use for "number".
var phoneContextPattern = regexp.MustCompile(
	`(?i)\b(call me|text me|my number|my cell|my phone|reach me|call or text|hit my line|digits)\b|#`)

// hasPhoneNumber detects phone numbers in two passes.
//
// Pass 1: the mixed-digit view defeats alternating digit/word obfuscation
// ("1, eight, 4, seven..."). If it yields a digit string of phone-number
// length (7-15, covering local numbers through full E.164), that alone is
// conclusive.
//
// Pass 2: a digit run of 7+ in the separator-stripped, digit-expanded view
// needs corroboration before flagging, to avoid false positives on
// unrelated long numbers: either phone-context phrasing in the raw text, or
// a total digit count of 10+ (area code plus number leaves little doubt).
func hasPhoneNumber(text string, views textnorm.Views) bool {
	if n := len(views.MixedDigits); n >= 7 && n <= 15 {
		return true
	}

	if !digitRunPattern.MatchString(views.SeparatorStripped) {
		return false
	}
	if phoneContextPattern.MatchString(text) {
		return true
	}
	return countDigits(views.SeparatorStripped) >= 10
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
