// Package moderation orchestrates the text-safety checks: word-list
// matching, contact-info detection, and gibberish classification, combined
// into a single verdict per a policy configuration. Every call is a pure
// function of (text, static configuration); the only shared state is the
// lazily compiled word-list matcher behind a single-initialization handle.
package moderation

import (
	"strings"

	"github.com/accordapp/moderation/internal/contact"
	"github.com/accordapp/moderation/internal/gibberish"
	"github.com/accordapp/moderation/internal/textnorm"
	"github.com/accordapp/moderation/internal/wordlist"
)

// Config is one moderation stance: which lists are active and which checks
// are allowed to run. Use a preset from presets.go or build a custom one.
type Config struct {
	// Name identifies the policy in logs and metrics ("strict", "permissive").
	Name string

	// Deny and Allow are the active word lists. Allow always wins over Deny
	// for an identical term.
	Deny  []wordlist.Entry
	Allow []string

	// CheckContactInfo gates contact-info detection for the whole policy.
	// When false, ContainsContactInfo always returns false regardless of
	// per-call options: some deployments let matched users exchange contact
	// info freely.
	CheckContactInfo bool

	// Gibberish holds the classifier thresholds.
	Gibberish gibberish.Config
}

// Policy runs the configured checks. Construct with NewPolicy; a Policy is
// safe for concurrent use.
type Policy struct {
	cfg      Config
	lists    *wordlist.Handle
	contact  *contact.Detector
	classify *gibberish.Classifier
}

// NewPolicy builds a Policy from cfg. The word-list matcher compiles
// lazily on first use; call Compile at process start to surface malformed
// list data as a startup failure instead of a first-request panic.
func NewPolicy(cfg Config) *Policy {
	return &Policy{
		cfg: cfg,
		lists: wordlist.NewHandle(func() (*wordlist.Matcher, error) {
			return wordlist.Compile(cfg.Deny, cfg.Allow)
		}),
		contact:  contact.NewDetector(),
		classify: gibberish.NewClassifier(cfg.Gibberish),
	}
}

// Name returns the policy's configured name.
func (p *Policy) Name() string { return p.cfg.Name }

// Compile forces word-list compilation and returns any error. List data is
// static configuration; a failure here is fatal at process start, not
// something to handle per call.
func (p *Policy) Compile() error {
	_, err := p.lists.Matcher()
	return err
}

// DenyListSize returns the number of compiled deny-list terms, for metrics.
func (p *Policy) DenyListSize() int {
	return p.matcher().Len()
}

// matcher returns the compiled matcher. The engine's public operations have
// no error returns (they cannot fail, per the engine contract), so a compile
// error that escaped Compile panics here with the underlying cause.
func (p *Policy) matcher() *wordlist.Matcher {
	m, err := p.lists.Matcher()
	if err != nil {
		panic("moderation: word list failed to compile: " + err.Error())
	}
	return m
}

// ModerateText checks text against the active word lists. Empty or
// whitespace-only text is clean by definition and short-circuits before any
// normalization or matching runs.
func (p *Policy) ModerateText(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{IsClean: true}
	}

	matches := p.matcher().Match(text)
	if len(matches) > 0 {
		return Result{IsClean: false, ProfaneWords: matches}
	}
	return Result{IsClean: true}
}

// CleanText returns text with every deny-list term masked by asterisks of
// equal length, for display purposes. The verdict that blocked a submission
// is independent of this redacted variant.
func (p *Policy) CleanText(text string) string {
	return p.matcher().Redact(text)
}

// MatchedCategories returns the deny-list categories present in text, for
// audit records.
func (p *Policy) MatchedCategories(text string) []wordlist.Category {
	return p.matcher().Categories(text)
}

// ContainsContactInfo reports whether text contains off-platform contact
// information. It honors the policy-level opt-out: a policy with
// CheckContactInfo disabled reports false regardless of detector capability.
func (p *Policy) ContainsContactInfo(text string) bool {
	if !p.cfg.CheckContactInfo {
		return false
	}
	if strings.TrimSpace(text) == "" {
		return false
	}
	return p.contact.Detect(text, textnorm.Normalize(text))
}

// IsGibberish reports whether text fails the gibberish heuristics.
func (p *Policy) IsGibberish(text string) bool {
	return p.classify.IsGibberish(text)
}

// Field validators: thin wrappers over ModerateText that attach the
// redacted variant when the text is unclean.

// ValidateDisplayName moderates a profile display name.
func (p *Policy) ValidateDisplayName(text string) Result {
	return p.validateField(text)
}

// ValidateBio moderates profile biography text.
func (p *Policy) ValidateBio(text string) Result {
	return p.validateField(text)
}

// ValidatePromptAnswer moderates a profile-prompt answer.
func (p *Policy) ValidatePromptAnswer(text string) Result {
	return p.validateField(text)
}

// ValidateMessage moderates a chat message.
func (p *Policy) ValidateMessage(text string) Result {
	return p.validateField(text)
}

func (p *Policy) validateField(text string) Result {
	r := p.ModerateText(text)
	if !r.IsClean {
		r.CleanedText = p.CleanText(text)
	}
	return r
}

// ValidateContent runs the enabled checks in fixed order: gibberish, then
// profanity, then contact info. The first failing check wins and later
// checks do not run. Empty text is always valid.
func (p *Policy) ValidateContent(text string, opts Options) Validation {
	if strings.TrimSpace(text) == "" {
		return Validation{IsValid: true}
	}

	if opts.CheckGibberish && p.IsGibberish(text) {
		return Validation{
			IsValid: false,
			Error:   GibberishErrorMessage(opts.FieldName),
			Result:  &Result{IsClean: false, IsGibberish: true},
		}
	}

	if opts.CheckProfanity {
		r := p.ModerateText(text)
		if !r.IsClean {
			r.CleanedText = p.CleanText(text)
			return Validation{
				IsValid: false,
				Error:   ErrorMessage(opts.FieldName),
				Result:  &r,
			}
		}
	}

	if opts.CheckContactInfo && p.ContainsContactInfo(text) {
		return Validation{
			IsValid: false,
			Error:   ContactInfoErrorMessage(opts.FieldName),
			Result:  &Result{IsClean: false},
		}
	}

	return Validation{IsValid: true}
}

// ErrorMessage returns the user-facing message for a profanity verdict on
// the named field.
func ErrorMessage(field string) string {
	return "Your " + fieldOrDefault(field) + " contains inappropriate language. Please revise it."
}

// GibberishErrorMessage returns the user-facing message for a gibberish
// verdict on the named field.
func GibberishErrorMessage(field string) string {
	return "Your " + fieldOrDefault(field) + " doesn't appear to contain meaningful text. Please try again."
}

// ContactInfoErrorMessage returns the user-facing message for a contact-info
// verdict on the named field.
func ContactInfoErrorMessage(field string) string {
	return "Please don't share contact information in your " + fieldOrDefault(field) + "."
}

func fieldOrDefault(field string) string {
	if field == "" {
		return "text"
	}
	return field
}
