package contact

import (
	"testing"

	"github.com/accordapp/moderation/internal/textnorm"
)

func detect(text string) bool {
	d := NewDetector()
	return d.Detect(text, textnorm.Normalize(text))
}

func TestDetect_PhoneNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain", "call me at 5551234567", true},
		{"dashed", "my number is 555-123-4567", true},
		{"dotted", "reach me at 555.123.4567", true},
		{"parenthesized", "(555) 123-4567", true},
		{"spaced out", "5 5 5 1 2 3 4 5 6 7", true},
		{"spelled out", "five five five one two three four", true},
		{"mixed digits and words", "1, eight, 4, seven, seven, 5, six, 6, 8", true},
		{"homophone obfuscation", "won too three for five six seven", true},
		{"seven digit local", "text me 8675309", true},
		{"age is fine", "I'm 25 years old", false},
		{"short number fine", "meet at 7 at the bar on 5th", false},
		{"no digits", "let's grab coffee sometime", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detect(tt.input)
			if got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHasPhoneNumber_Corroboration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		// 16+ digits falls outside the mixed-digit length window and needs
		// the second pass.
		{"long run with context", "call me 12345678901234567", true},
		{"long run without context", "order confirmation 12345678901234567", true},
		{"hash sigil", "my # is 1234567", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hasPhoneNumber(tt.input, textnorm.Normalize(tt.input))
			if got != tt.want {
				t.Errorf("hasPhoneNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetect_Emails(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain address", "write to jane.doe@example.com please", true},
		{"at dot obfuscated", "jane (at) example (dot) com", true},
		{"bare at dot", "jane at example dot com", true},
		{"email me phrasing", "email me at janedoe99", true},
		{"provider spaced", "jane at g mail dot com", true},
		{"provider misspelled", "my gmale is jane", true},
		{"provider fuzzy", "hit up my gmaul", true},
		{"provider plain mention", "I check gmail every morning", true},
		{"the word email alone", "send me a message, not an email", false},
		{"cloud is fine", "the weather had one grey cloud", false},
		{"clean text", "looking for someone genuine", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detect(tt.input)
			if got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetect_Platforms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"instagram full", "find my instagram", true},
		{"insta short", "my insta is sunny_girl", true},
		{"ig handle", "ig: sunny.girl", true},
		{"snapchat", "add my snapchat", true},
		{"snap short", "snap me", true},
		{"leet instagram", "1nstagr@m sunny_girl", true},
		{"spaced instagram", "i n s t a g r a m sunny", true},
		{"whatsapp spaced", "whats app me anytime", true},
		{"telegram", "I'm on telegram", true},
		{"discord tag", "add sunny#1234", true},
		{"at handle", "message @sunnygirl99", true},
		{"signal with context", "message me on signal", true},
		{"signal as plain word", "that's a good signal of interest", false},
		{"line as plain word", "waiting in line at the store", false},
		{"other dating app", "I'm also on hinge", true},
		{"instant is fine", "we had an instant connection", false},
		{"clean text", "I like photography and travel", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detect(tt.input)
			if got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetect_URLs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"https url", "check https://example.com/me", true},
		{"www url", "visit www.example.com", true},
		{"bare domain", "my site is coolblog.com", true},
		{"linktree", "everything is at linktr.ee/sunny", true},
		{"link in bio", "link in bio for more", true},
		{"check my profile", "check my profile elsewhere", true},
		{"version string fine", "I upgraded to v2.0 yesterday", false},
		{"decimal fine", "pi is roughly 3.14", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detect(tt.input)
			if got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetect_OffPlatformPhrasing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"off this app", "text me off this app", true},
		{"find me on", "find me on the other site", true},
		{"add me on", "add me on there", true},
		{"handle is", "my handle is sunnygirl", true},
		{"hmu at", "hmu at the usual place online", true},
		{"dm me on", "dm me on the other app", true},
		{"talk elsewhere", "let's talk somewhere else", true},
		{"not on here much", "i'm not on here much, so be quick", true},
		{"clean text", "I enjoy long walks and live music", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detect(tt.input)
			if got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewDetectorWithPlatforms(t *testing.T) {
	d := NewDetectorWithPlatforms(nil)

	// Platform table empty, but generic handle shapes still apply.
	text := "reach me @someone_else"
	if !d.hasPlatformReference(text, textnorm.Normalize(text)) {
		t.Error("generic @handle should match with an empty platform table")
	}

	text = "my instagram is sunny"
	views := textnorm.Normalize(text)
	if d.hasPlatformReference(text, views) {
		t.Error("platform name should not match with an empty platform table")
	}
}
