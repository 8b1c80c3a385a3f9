package textnorm

import "testing"

func TestExpandDigits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spelled out run", "five five five", "5 5 5"},
		{"homophones", "won too for ate", "1 2 4 8"},
		{"spoken zero", "oh seven", "0 7"},
		{"case insensitive", "FIVE Six sEvEn", "5 6 7"},
		{"inside sentence", "call me at five five five", "call me at 5 5 5"},
		{"no number words", "hello there", "hello there"},
		{"no match inside words", "forty fortunate informal", "forty fortunate informal"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandDigits(tt.input)
			if got != tt.want {
				t.Errorf("ExpandDigits(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripSeparators(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"5 5 5-1234", "5551234"},
		{"555.123.4567", "5551234567"},
		{"(555) 123-4567", "5551234567"},
		{"a_b/c,d", "abcd"},
		{"no separators", "noseparators"},
		{"", ""},
	}

	for _, tt := range tests {
		got := StripSeparators(tt.input)
		if got != tt.want {
			t.Errorf("StripSeparators(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFoldHomoglyphs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello", "hello"},
		{"uppercase", "INSTAGRAM", "instagram"},
		{"leet digits", "1nstagr@m", "instagram"},
		{"dollar and four", "$n4p", "snap"},
		{"threes", "t3l3gram", "telegram"},
		{"exclaim for i", "k!k", "kik"},
		{"zero width space removed", "insta​gram", "instagram"},
		{"fullwidth to ascii", "ｗｈａｔｓａｐｐ", "whatsapp"},
		{"plus for t", "+ik+ok", "tiktok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FoldHomoglyphs(tt.input)
			if got != tt.want {
				t.Errorf("FoldHomoglyphs(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// FoldHomoglyphs pools its transformer chain; hammer it from multiple
// goroutines to catch state leaking between uses.
func TestFoldHomoglyphs_Concurrent(t *testing.T) {
	done := make(chan bool)
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- true }()
			for j := 0; j < 200; j++ {
				if got := FoldHomoglyphs("1nstagr@m"); got != "instagram" {
					t.Errorf("FoldHomoglyphs = %q, want %q", got, "instagram")
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}

func TestExtractMixedDigits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"alternating digits and words", "1, eight, 4, seven, seven, 5, six, 6, 8", "184775668"},
		{"digit groups", "my number is 555 1234", "5551234"},
		{"all words", "five five five one two three four", "5551234"},
		{"no digits", "hello there friend", ""},
		{"mixed token skipped", "abc123 is not a digit token", ""},
		{"homophones count", "won too three", "123"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractMixedDigits(tt.input)
			if got != tt.want {
				t.Errorf("ExtractMixedDigits(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_AllViews(t *testing.T) {
	v := Normalize("text me at five five five, 1 2 3 4")

	if v.DigitExpanded != "text me at 5 5 5, 1 2 3 4" {
		t.Errorf("DigitExpanded = %q", v.DigitExpanded)
	}
	if v.SeparatorStripped != "textmeat5551234" {
		t.Errorf("SeparatorStripped = %q", v.SeparatorStripped)
	}
	if v.MixedDigits != "5551234" {
		t.Errorf("MixedDigits = %q", v.MixedDigits)
	}
}
