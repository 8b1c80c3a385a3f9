// Package audit provides PostgreSQL-backed storage for moderation verdicts.
// Only flagged texts are recorded, and only in redacted form, so the audit
// trail never persists the offending content verbatim.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// validChecks is the set of allowed check names, matching the CHECK
// constraint on the moderation_verdicts table.
var validChecks = map[string]bool{
	"profanity":    true,
	"contact_info": true,
	"gibberish":    true,
}

// Store manages moderation verdicts in PostgreSQL.
type Store struct {
	db *sql.DB
}

// Verdict represents a single flagged moderation outcome to be persisted.
type Verdict struct {
	ID           string   // uuid, assigned by Record when empty
	Field        string   // which user field was checked ("bio", "message", ...)
	Check        string   // which check failed ("profanity", "contact_info", "gibberish")
	Policy       string   // active policy preset name
	MatchedTerms []string // deny-list terms that matched, if any
	Categories   []string // deny-list categories that matched, if any
	RedactedText string   // the text with matched terms masked
}

// NewStore creates a verdict store backed by the given database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record inserts a flagged verdict. The check name is validated against the
// allowed set before insertion; an empty ID gets a fresh UUID.
func (s *Store) Record(ctx context.Context, v *Verdict) error {
	if !validChecks[v.Check] {
		return fmt.Errorf("audit: invalid check %q", v.Check)
	}
	if v.ID == "" {
		v.ID = uuid.New().String()
	}

	const query = `
		INSERT INTO moderation_verdicts (id, field, "check", policy, matched_terms, categories, redacted_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		v.ID,
		v.Field,
		v.Check,
		v.Policy,
		pq.Array(v.MatchedTerms),
		pq.Array(v.Categories),
		v.RedactedText,
	)
	if err != nil {
		return fmt.Errorf("audit: insert: %w", err)
	}
	return nil
}

// CountRecent returns the number of verdicts recorded for a check within the
// given time window, for moderator dashboards.
func (s *Store) CountRecent(ctx context.Context, check string, window time.Duration) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM moderation_verdicts
		WHERE "check" = $1
		  AND created_at >= NOW() - make_interval(secs => $2)`

	var count int
	err := s.db.QueryRowContext(ctx, query, check, window.Seconds()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("audit: count recent: %w", err)
	}
	return count, nil
}
