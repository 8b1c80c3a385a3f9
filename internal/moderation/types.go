package moderation

// Result is the outcome of one moderation call. It is produced once per
// call, never persisted by the engine, and immutable after construction.
type Result struct {
	IsClean      bool     `json:"is_clean"`
	ProfaneWords []string `json:"profane_words,omitempty"`
	CleanedText  string   `json:"cleaned_text,omitempty"`
	IsGibberish  bool     `json:"is_gibberish,omitempty"`
}

// Options selects which checks ValidateContent runs and names the field for
// user-facing error messages.
type Options struct {
	CheckProfanity   bool
	CheckContactInfo bool
	CheckGibberish   bool
	FieldName        string
}

// DefaultOptions returns the baseline: profanity checking only, generic
// field name.
func DefaultOptions() Options {
	return Options{CheckProfanity: true, FieldName: "text"}
}

// Validation is the outcome of ValidateContent. When IsValid is false,
// Error carries the field-specific message to surface to the user and
// Result carries the diagnostics that produced the verdict.
type Validation struct {
	IsValid bool    `json:"is_valid"`
	Error   string  `json:"error,omitempty"`
	Result  *Result `json:"result,omitempty"`
}

// CheckRequest is published to moderation.check when a text needs review
// out of process (the chat path).
type CheckRequest struct {
	ClientID  string `json:"client_id"`
	RequestID string `json:"request_id"`
	Field     string `json:"field"`
	Text      string `json:"text"`
	Contact   bool   `json:"check_contact_info"`
	Gibberish bool   `json:"check_gibberish"`
	Ts        int64  `json:"ts"`
}

// CheckResult is published back to moderation.result.<client_id> with the
// review outcome.
type CheckResult struct {
	ClientID  string  `json:"client_id"`
	RequestID string  `json:"request_id"`
	IsValid   bool    `json:"is_valid"`
	Error     string  `json:"error,omitempty"`
	Result    *Result `json:"result,omitempty"`
}
