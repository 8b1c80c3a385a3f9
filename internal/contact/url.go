package contact

import "regexp"

var (
	// urlPattern matches protocol-prefixed URLs, www. URLs, and bare
	// domain+TLD forms. The bare-domain variant requires a trailing "/" to
	// avoid false positives on version strings like "v2.0" or decimal
	// numbers like "3.14".
	urlPattern = regexp.MustCompile(
		`(?i)(https?://\S+|www\.\S+|\S+\.(com|net|org|io|co|me|xyz|info|biz|link|app)/\S*)`)

	// bareDomainPattern matches "something dot com"-adjacent bare domains
	// without a path, restricted to TLDs that show up in profile text.
	bareDomainPattern = regexp.MustCompile(`(?i)\b[a-z0-9\-]{3,}\.(com|net|org|io)\b`)

	// aggregatorPattern matches link-aggregator services and the phrasing
	// that points at them.
	aggregatorPattern = regexp.MustCompile(
		`(?i)(linktr\.ee|beacons\.ai|allmylinks|\blink in (my )?bio\b|\bcheck my (bio|profile|page)\b)`)
)

// hasURL detects links and link-pointing phrasing.
func hasURL(text string) bool {
	return urlPattern.MatchString(text) ||
		bareDomainPattern.MatchString(text) ||
		aggregatorPattern.MatchString(text)
}
