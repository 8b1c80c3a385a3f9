// Package wordlist implements boundary-safe term matching against
// configurable deny-lists with an allow-list carve-out. Matching is
// case-insensitive and always runs against the raw text, never against
// normalized views, so that digit/letter folding cannot corrupt legitimate
// words into matches.
package wordlist

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// Category classifies a deny-list entry.
type Category string

const (
	CategorySlur       Category = "slur"
	CategoryProfanity  Category = "profanity"
	CategoryScam       Category = "scam"
	CategoryHateSpeech Category = "hate-speech"
)

// Entry is one deny-list term with its category. Entries are static
// configuration data, loaded once and compiled once.
type Entry struct {
	Term     string
	Category Category
}

type compiledEntry struct {
	term     string
	category Category
	re       *regexp.Regexp
}

// Matcher is an immutable set of compiled deny-list patterns. It is safe for
// concurrent use after construction.
type Matcher struct {
	entries []compiledEntry
}

// Compile builds a Matcher from deny entries, first removing any entry whose
// term also appears in allow. Allow-list entries always win over deny-list
// entries for the same term. Each surviving term is escaped and anchored on
// word boundaries, so a deny-listed term never matches as a substring of an
// unrelated word.
//
// A compile failure indicates malformed list data and should be treated as
// fatal at process start.
func Compile(deny []Entry, allow []string) (*Matcher, error) {
	allowed := make(map[string]bool, len(allow))
	for _, term := range allow {
		allowed[strings.ToLower(strings.TrimSpace(term))] = true
	}

	seen := make(map[string]bool, len(deny))
	entries := make([]compiledEntry, 0, len(deny))
	for _, e := range deny {
		term := strings.ToLower(strings.TrimSpace(e.Term))
		if term == "" || seen[term] || allowed[term] {
			continue
		}
		seen[term] = true

		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("wordlist: compile term %q: %w", e.Term, err)
		}
		entries = append(entries, compiledEntry{term: term, category: e.Category, re: re})
	}

	return &Matcher{entries: entries}, nil
}

// Len returns the number of compiled deny-list terms.
func (m *Matcher) Len() int { return len(m.entries) }

// Match returns the distinct deny-list terms found in text, in list order.
// An empty result means the text is clean.
func (m *Matcher) Match(text string) []string {
	var matched []string
	for _, e := range m.entries {
		if e.re.MatchString(text) {
			matched = append(matched, e.term)
		}
	}
	return matched
}

// Categories returns the distinct categories of the deny-list terms found in
// text, for diagnostics and audit records.
func (m *Matcher) Categories(text string) []Category {
	seen := make(map[Category]bool)
	var cats []Category
	for _, e := range m.entries {
		if !seen[e.category] && e.re.MatchString(text) {
			seen[e.category] = true
			cats = append(cats, e.category)
		}
	}
	return cats
}

// Redact replaces every occurrence of every deny-list term in text with a
// run of asterisks, one per character, case-insensitively. The output always
// has the same character length as the input, even when surrounding text is
// multi-byte. Redacting already-redacted text is a no-op: an all-asterisk
// span matches no term.
func (m *Matcher) Redact(text string) string {
	for _, e := range m.entries {
		locs := e.re.FindAllStringIndex(text, -1)
		if locs == nil {
			continue
		}
		var b strings.Builder
		b.Grow(len(text))
		last := 0
		for _, loc := range locs {
			b.WriteString(text[last:loc[0]])
			b.WriteString(strings.Repeat("*", utf8.RuneCountInString(text[loc[0]:loc[1]])))
			last = loc[1]
		}
		b.WriteString(text[last:])
		text = b.String()
	}
	return text
}

// Handle provides single-flight lazy compilation of a Matcher. The build
// function runs at most once; the compiled matcher is then shared read-only
// across goroutines. Inject a Handle into a policy rather than relying on
// package-global state so tests can construct fresh instances.
type Handle struct {
	once  sync.Once
	build func() (*Matcher, error)
	m     *Matcher
	err   error
}

// NewHandle returns a Handle that compiles via build on first use.
func NewHandle(build func() (*Matcher, error)) *Handle {
	return &Handle{build: build}
}

// Matcher returns the compiled matcher, building it on first call. All
// callers observe the same matcher and the same error.
func (h *Handle) Matcher() (*Matcher, error) {
	h.once.Do(func() {
		h.m, h.err = h.build()
	})
	return h.m, h.err
}
