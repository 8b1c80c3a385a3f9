package contact

import "regexp"

// offPlatformPatterns match phrasing that expresses intent to move the
// conversation off the app, even when no concrete handle or number is
// present yet.
var offPlatformPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(text|message|msg|dm|hit me up|hmu)\b.{0,20}\boff (this|the) app\b`),
	regexp.MustCompile(`(?i)\bfind me on\b`),
	regexp.MustCompile(`(?i)\badd me on\b`),
	regexp.MustCompile(`(?i)\bmy (handle|username|user name|tag) is\b`),
	regexp.MustCompile(`(?i)\bhmu (at|on)\b`),
	regexp.MustCompile(`(?i)\b(dm|message) me (at|on)\b`),
	regexp.MustCompile(`(?i)\blet'?s (talk|chat|move|continue) (somewhere else|off here|elsewhere)\b`),
	regexp.MustCompile(`(?i)\bi'?m not on here (much|often)\b`),
}

// hasOffPlatformPhrase detects intent to take the conversation elsewhere.
func hasOffPlatformPhrase(text string) bool {
	for _, re := range offPlatformPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
