package contact

import (
	"regexp"
	"strings"

	"github.com/accordapp/moderation/internal/textnorm"
)

// PlatformPattern declares the detection rules for one contact channel
// family. RawPatterns run against the raw text; NormalizedSubstrings are
// checked against the homoglyph-folded, separator-stripped view, which is
// what defeats "1nstagr@m" and "s n a p c h a t". New platforms, slang, and
// locales are added here, not in detector logic.
type PlatformPattern struct {
	Platform             string
	RawPatterns          []*regexp.Regexp
	NormalizedSubstrings []string
}

// genericHandlePatterns catch handle shapes that aren't tied to one
// platform: "@handle" mentions and Discord-style "user#1234" tags.
var genericHandlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(^|\s)@[a-zA-Z0-9_.]{3,}`),
	regexp.MustCompile(`\b[a-zA-Z0-9_.]{2,}#\d{4}\b`),
}

// DefaultPlatforms returns the built-in platform pattern table.
func DefaultPlatforms() []PlatformPattern {
	return []PlatformPattern{
		{
			Platform: "instagram",
			RawPatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\binsta(gram)?\b`),
				regexp.MustCompile(`(?i)\big\s*[:@]\s*\S+`),
			},
			NormalizedSubstrings: []string{"instagram"},
		},
		{
			Platform: "snapchat",
			RawPatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bsnap(chat)?\b`),
				regexp.MustCompile(`(?i)\bsc\s*[:@]\s*\S+`),
			},
			NormalizedSubstrings: []string{"snapchat"},
		},
		{
			Platform: "whatsapp",
			RawPatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bwhats\s*app\b`),
				regexp.MustCompile(`(?i)\bwa\.me/`),
			},
			NormalizedSubstrings: []string{"whatsapp"},
		},
		{
			Platform: "telegram",
			RawPatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\btele?gram\b`),
				regexp.MustCompile(`(?i)\bt\.me/`),
			},
			NormalizedSubstrings: []string{"telegram"},
		},
		{
			Platform: "tiktok",
			RawPatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\btik\s*tok\b`),
			},
			NormalizedSubstrings: []string{"tiktok"},
		},
		{
			Platform: "discord",
			RawPatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bdiscord(\.gg)?\b`),
			},
			NormalizedSubstrings: []string{"discord"},
		},
		{
			Platform: "twitter",
			RawPatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\btwitter\b`),
				regexp.MustCompile(`(?i)\bfind me on x\b`),
			},
			NormalizedSubstrings: []string{"twitter"},
		},
		{
			Platform: "facebook",
			RawPatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bfacebook\b|\bfb\s*[:@]\s*\S+`),
				regexp.MustCompile(`(?i)\bfb\.me/`),
			},
			NormalizedSubstrings: []string{"facebook"},
		},
		{
			Platform: "signal",
			RawPatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(on|use|via|my)\s+signal\b`),
			},
			NormalizedSubstrings: nil, // "signal" alone is too common a word
		},
		{
			Platform: "line",
			RawPatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bline\s*id\b`),
				regexp.MustCompile(`(?i)\bline\.me/`),
			},
			NormalizedSubstrings: nil, // "line" alone is too common a word
		},
		{
			Platform: "wechat",
			RawPatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bwe\s*chat\b|\bweixin\b`),
			},
			NormalizedSubstrings: []string{"wechat"},
		},
		{
			Platform: "kik",
			RawPatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bkik\b`),
			},
			NormalizedSubstrings: nil,
		},
		{
			Platform: "viber",
			RawPatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bviber\b`),
			},
			NormalizedSubstrings: []string{"viber"},
		},
		{
			Platform: "dating-apps",
			RawPatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(tinder|bumble|hinge|okcupid|grindr|badoo)\b`),
			},
			NormalizedSubstrings: []string{"tinder", "bumble", "okcupid", "grindr"},
		},
	}
}

// hasPlatformReference checks the platform table and the generic handle
// patterns. Normalized substrings are matched against the folded view with
// separators stripped, so spaced-out or leet-substituted platform names
// still resolve.
func (d *Detector) hasPlatformReference(text string, views textnorm.Views) bool {
	folded := textnorm.StripSeparators(views.HomoglyphFolded)

	for _, p := range d.platforms {
		for _, re := range p.RawPatterns {
			if re.MatchString(text) {
				return true
			}
		}
		for _, sub := range p.NormalizedSubstrings {
			if strings.Contains(folded, sub) {
				return true
			}
		}
	}

	for _, re := range genericHandlePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
