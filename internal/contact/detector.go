// Package contact detects disguised off-platform contact information in user
// text: phone numbers, email addresses, social-media handles, URLs, and
// phrasing that invites the conversation elsewhere. Each concern lives in
// its own sub-detector file; Detect ORs them together.
package contact

import "github.com/accordapp/moderation/internal/textnorm"

// Detector aggregates the contact-info sub-detectors. The zero value is not
// usable; construct with NewDetector. A Detector is immutable and safe for
// concurrent use.
type Detector struct {
	platforms []PlatformPattern
}

// NewDetector returns a Detector using the default platform pattern table.
func NewDetector() *Detector {
	return &Detector{platforms: DefaultPlatforms()}
}

// NewDetectorWithPlatforms returns a Detector with a custom platform table,
// for tests and locale-specific deployments.
func NewDetectorWithPlatforms(platforms []PlatformPattern) *Detector {
	return &Detector{platforms: platforms}
}

// Detect reports whether text contains contact information in any form.
// It short-circuits on the first positive sub-detector.
func (d *Detector) Detect(text string, views textnorm.Views) bool {
	return hasPhoneNumber(text, views) ||
		hasEmail(text) ||
		d.hasPlatformReference(text, views) ||
		hasURL(text) ||
		hasOffPlatformPhrase(text)
}
