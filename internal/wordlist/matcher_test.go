package wordlist

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"
)

func testMatcher(t *testing.T, deny []Entry, allow []string) *Matcher {
	t.Helper()
	m, err := Compile(deny, allow)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return m
}

func TestMatch_Boundaries(t *testing.T) {
	m := testMatcher(t, []Entry{
		{Term: "badword", Category: CategoryProfanity},
		{Term: "kill yourself", Category: CategoryHateSpeech},
	}, nil)

	tests := []struct {
		name    string
		input   string
		matched bool
		term    string
	}{
		{"exact match", "badword", true, "badword"},
		{"in sentence", "this is badword here", true, "badword"},
		{"case insensitive", "BADWORD", true, "badword"},
		{"mixed case", "BaDwOrD", true, "badword"},
		{"with punctuation", "hello, badword!", true, "badword"},
		{"clean message", "hello world", false, ""},
		{"prefix no match", "badwording is fine", false, ""},
		{"suffix no match", "mybadword", false, ""},
		{"phrase exact", "kill yourself", true, "kill yourself"},
		{"phrase in sentence", "you should kill yourself now", true, "kill yourself"},
		{"phrase extended no match", "kill yourselves", false, ""},
		{"phrase split no match", "kill and yourself", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.input)
			if (len(got) > 0) != tt.matched {
				t.Fatalf("Match(%q) = %v, matched want %v", tt.input, got, tt.matched)
			}
			if tt.matched && got[0] != tt.term {
				t.Errorf("Match(%q)[0] = %q, want %q", tt.input, got[0], tt.term)
			}
		})
	}
}

func TestMatch_DistinctTerms(t *testing.T) {
	m := testMatcher(t, []Entry{
		{Term: "alpha", Category: CategoryProfanity},
		{Term: "beta", Category: CategoryProfanity},
	}, nil)

	got := m.Match("alpha beta alpha alpha beta")
	if len(got) != 2 {
		t.Fatalf("Match returned %d terms, want 2: %v", len(got), got)
	}
	if got[0] != "alpha" || got[1] != "beta" {
		t.Errorf("Match = %v, want [alpha beta]", got)
	}
}

func TestCompile_AllowWins(t *testing.T) {
	m := testMatcher(t, []Entry{
		{Term: "queer", Category: CategoryProfanity},
		{Term: "badword", Category: CategoryProfanity},
	}, []string{"queer"})

	if got := m.Match("queer people are welcome"); len(got) != 0 {
		t.Errorf("allow-listed term matched: %v", got)
	}
	if got := m.Match("badword"); len(got) != 1 {
		t.Errorf("deny-listed term did not match: %v", got)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestCompile_DedupeAndWhitespace(t *testing.T) {
	m := testMatcher(t, []Entry{
		{Term: "badword", Category: CategoryProfanity},
		{Term: " badword ", Category: CategorySlur},
		{Term: "BADWORD", Category: CategoryScam},
		{Term: "", Category: CategoryProfanity},
		{Term: "   ", Category: CategoryProfanity},
	}, nil)

	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	// First occurrence wins, including its category.
	cats := m.Categories("badword")
	if len(cats) != 1 || cats[0] != CategoryProfanity {
		t.Errorf("Categories = %v, want [profanity]", cats)
	}
}

func TestCategories(t *testing.T) {
	m := testMatcher(t, []Entry{
		{Term: "slurword", Category: CategorySlur},
		{Term: "swearword", Category: CategoryProfanity},
		{Term: "otherswear", Category: CategoryProfanity},
		{Term: "free bitcoin", Category: CategoryScam},
	}, nil)

	cats := m.Categories("slurword and swearword and otherswear")
	if len(cats) != 2 {
		t.Fatalf("Categories returned %d entries, want 2: %v", len(cats), cats)
	}
	if cats[0] != CategorySlur || cats[1] != CategoryProfanity {
		t.Errorf("Categories = %v, want [slur profanity]", cats)
	}

	if cats := m.Categories("totally clean"); len(cats) != 0 {
		t.Errorf("Categories on clean text = %v, want empty", cats)
	}
}

func TestRedact(t *testing.T) {
	m := testMatcher(t, []Entry{
		{Term: "badword", Category: CategoryProfanity},
		{Term: "kill yourself", Category: CategoryHateSpeech},
	}, nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single term", "you badword person", "you ******* person"},
		{"case preserved elsewhere", "You BADWORD Person", "You ******* Person"},
		{"multiple occurrences", "badword and badword", "******* and *******"},
		{"phrase includes space", "please kill yourself now", "please ************* now"},
		{"clean text untouched", "hello world", "hello world"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Redact(tt.input)
			if got != tt.want {
				t.Errorf("Redact(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if len(got) != len(tt.input) {
				t.Errorf("Redact(%q) changed length: %d -> %d", tt.input, len(tt.input), len(got))
			}
		})
	}
}

// Case mapping can change the byte length of a rune (Ⱥ grows from two bytes
// to three when lowered, İ shrinks from two to one), so redaction offsets
// must come from the original text, never from a case-shifted copy.
func TestRedact_MultibyteText(t *testing.T) {
	m := testMatcher(t, []Entry{{Term: "badword", Category: CategoryProfanity}}, nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowering grows bytes", "ȺȺȺȺȺȺȺȺ badword", "ȺȺȺȺȺȺȺȺ *******"},
		{"lowering shrinks bytes", "İİİİİİİİ badword", "İİİİİİİİ *******"},
		{"accented neighbors", "café badword café", "café ******* café"},
		{"emoji neighbors", "🙂 badword 🙂", "🙂 ******* 🙂"},
		{"term between multibyte runs", "Ⱥ badword İ badword Ⱥ", "Ⱥ ******* İ ******* Ⱥ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Redact(tt.input)
			if got != tt.want {
				t.Errorf("Redact(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Redact(%q) produced invalid UTF-8: %q", tt.input, got)
			}
			if utf8.RuneCountInString(got) != utf8.RuneCountInString(tt.input) {
				t.Errorf("Redact(%q) changed rune count: %d -> %d",
					tt.input, utf8.RuneCountInString(tt.input), utf8.RuneCountInString(got))
			}
			if strings.Contains(strings.ToLower(got), "badword") {
				t.Errorf("Redact(%q) left the term visible: %q", tt.input, got)
			}
		})
	}
}

func TestRedact_Idempotent(t *testing.T) {
	m := testMatcher(t, []Entry{{Term: "badword", Category: CategoryProfanity}}, nil)

	once := m.Redact("a badword here")
	twice := m.Redact(once)
	if once != twice {
		t.Errorf("Redact not idempotent: %q -> %q", once, twice)
	}
}

func TestSevereList_Compiles(t *testing.T) {
	m := testMatcher(t, SevereList(), nil)
	if m.Len() == 0 {
		t.Fatal("SevereList compiled to an empty matcher")
	}

	for _, term := range []string{"nigger", "faggot", "heil hitler", "fuck", "free bitcoin", "sugar daddy"} {
		if got := m.Match("x " + term + " x"); len(got) == 0 {
			t.Errorf("severe term %q did not match", term)
		}
	}

	// The severe list deliberately excludes mild profanity.
	for _, term := range []string{"shit", "damn", "hell"} {
		if got := m.Match(term); len(got) != 0 {
			t.Errorf("severe list matched mild term %q: %v", term, got)
		}
	}
}

func TestBroadList_WithReclaimedAllow(t *testing.T) {
	m := testMatcher(t, BroadList(), ReclaimedTerms())

	for _, term := range []string{"shit", "bitch", "asshole", "fuck", "dyke"} {
		if got := m.Match(term); len(got) == 0 {
			t.Errorf("broad term %q did not match", term)
		}
	}

	for _, text := range []string{
		"proud queer woman",
		"gay and happy",
		"trans rights",
		"lesbian looking for same",
	} {
		if got := m.Match(text); len(got) != 0 {
			t.Errorf("reclaimed term flagged in %q: %v", text, got)
		}
	}
}

func TestHandle_CompilesOnce(t *testing.T) {
	builds := 0
	h := NewHandle(func() (*Matcher, error) {
		builds++
		return Compile([]Entry{{Term: "badword", Category: CategoryProfanity}}, nil)
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := h.Matcher()
			if err != nil {
				t.Errorf("Matcher() error: %v", err)
				return
			}
			if m.Len() != 1 {
				t.Errorf("Len() = %d, want 1", m.Len())
			}
		}()
	}
	wg.Wait()

	if builds != 1 {
		t.Errorf("build ran %d times, want 1", builds)
	}
}

func TestHandle_SharedError(t *testing.T) {
	wantErr := errors.New("boom")
	h := NewHandle(func() (*Matcher, error) { return nil, wantErr })

	for i := 0; i < 3; i++ {
		if _, err := h.Matcher(); !errors.Is(err, wantErr) {
			t.Fatalf("call %d: err = %v, want %v", i, err, wantErr)
		}
	}
}

func BenchmarkMatch(b *testing.B) {
	m, err := Compile(BroadList(), ReclaimedTerms())
	if err != nil {
		b.Fatal(err)
	}
	msg := strings.Repeat("a perfectly pleasant profile about hiking and coffee. ", 4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Match(msg)
	}
}
