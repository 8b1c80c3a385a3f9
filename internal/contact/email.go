package contact

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	// emailPattern matches standard local@domain.tld addresses.
	emailPattern = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)

	// obfuscatedEmailPattern matches "name (at) domain (dot) com" and the
	// bracket/bare-word variants of the same trick.
	obfuscatedEmailPattern = regexp.MustCompile(
		`(?i)\b[a-z0-9._%+\-]+\s*[\(\[]?\s*at\s*[\)\]]?\s*[a-z0-9\-]+\s*[\(\[]?\s*dot\s*[\)\]]?\s*[a-z]{2,}\b`)

	// emailMePattern matches "email me ..." phrasing with a trailing handle.
	emailMePattern = regexp.MustCompile(`(?i)\be-?mail me\b\s*(at\s*)?\S+`)
)

// mailProviders is the fixed list of providers the fuzzy detector resolves to.
var mailProviders = []string{
	"gmail", "yahoo", "hotmail", "outlook", "icloud", "protonmail", "aol",
}

// providerFixes are known misspellings corrected before substring-matching
// against mailProviders. Applied after space stripping, so "g mail" and
// "gmale" both resolve to "gmail".
var providerFixes = [...][2]string{
	{"gmale", "gmail"},
	{"gmial", "gmail"},
	{"gamil", "gmail"},
	{"gmil", "gmail"},
	{"hotmale", "hotmail"},
	{"hotmial", "hotmail"},
	{"yahooo", "yahoo"},
	{"outlok", "outlook"},
	{"protonmial", "protonmail"},
}

// fuzzySkip lists ordinary English words within one edit of a provider name
// that must not trigger the Levenshtein pass.
var fuzzySkip = map[string]bool{
	"email": true, // one edit from "gmail"
	"mail":  true,
	"mails": true,
	"cloud": true, // one edit from "icloud"
	"claud": true,
}

// hasEmail detects email addresses in plain, obfuscated, and fuzzy forms.
func hasEmail(text string) bool {
	if emailPattern.MatchString(text) {
		return true
	}
	if obfuscatedEmailPattern.MatchString(text) {
		return true
	}
	if emailMePattern.MatchString(text) {
		return true
	}
	return hasMailProvider(text)
}

// hasMailProvider applies the fuzzy provider check: strip spaces so "g mail"
// rejoins, apply the misspelling fixes, then substring-match the provider
// list. A Levenshtein pass over the original tokens catches misspellings the
// fix table doesn't enumerate. Provider names inside innocuous sentences
// ("my gmail-colored sweater") are an accepted false positive of this
// design: a provider mention in a dating profile is almost always an
// address being spelled out.
func hasMailProvider(text string) bool {
	joined := strings.ToLower(text)
	joined = strings.ReplaceAll(joined, " ", "")
	for _, fix := range providerFixes {
		joined = strings.ReplaceAll(joined, fix[0], fix[1])
	}
	for _, p := range mailProviders {
		if strings.Contains(joined, p) {
			return true
		}
	}

	// Fuzzy pass: single-edit misspellings of a provider name as a
	// standalone token. Ordinary words that happen to sit one edit away
	// from a provider name are excluded.
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,!?;:()[]")
		if len(tok) < 4 || fuzzySkip[tok] {
			continue
		}
		for _, p := range mailProviders {
			if diff := len(tok) - len(p); diff < -1 || diff > 1 {
				continue
			}
			if levenshtein.ComputeDistance(tok, p) <= 1 {
				return true
			}
		}
	}
	return false
}
