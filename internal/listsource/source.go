// Package listsource loads deny/allow term overrides from Redis and merges
// them over the static list presets. Terms live in two sets:
//
//	Key: modlist:deny   Members: <term> or <category>:<term>
//	Key: modlist:allow  Members: <term>
//
// The source is deliberately fail-open to the static lists: if Redis is
// absent or errors, the engine runs on the compiled-in presets rather than
// refusing to moderate.
package listsource

import (
	"context"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/accordapp/moderation/internal/wordlist"
)

const (
	// DenyKey is the Redis set holding extra deny-list terms.
	DenyKey = "modlist:deny"

	// AllowKey is the Redis set holding extra allow-list terms.
	AllowKey = "modlist:allow"
)

// Source reads term overrides from Redis. A nil *Source or nil client is
// valid and yields the static lists unchanged.
type Source struct {
	client *redis.Client
}

// NewSource creates a Source using the provided Redis client. Pass nil to
// run without dynamic overrides.
func NewSource(client *redis.Client) *Source {
	return &Source{client: client}
}

// Load returns the deny and allow lists with Redis overrides merged over
// the given base lists. Overrides extend the base; they never remove base
// entries. On any Redis error the base lists are returned unchanged.
func (s *Source) Load(ctx context.Context, baseDeny []wordlist.Entry, baseAllow []string) ([]wordlist.Entry, []string) {
	if s == nil || s.client == nil {
		return baseDeny, baseAllow
	}

	deny := baseDeny
	if members, err := s.client.SMembers(ctx, DenyKey).Result(); err != nil {
		log.Printf("[listsource] read %s failed: %v (using static list)", DenyKey, err)
	} else {
		for _, m := range members {
			if e, ok := parseDenyMember(m); ok {
				deny = append(deny, e)
			}
		}
	}

	allow := baseAllow
	if members, err := s.client.SMembers(ctx, AllowKey).Result(); err != nil {
		log.Printf("[listsource] read %s failed: %v (using static list)", AllowKey, err)
	} else {
		for _, m := range members {
			if m = strings.TrimSpace(m); m != "" {
				allow = append(allow, m)
			}
		}
	}

	return deny, allow
}

// AddDeny adds a term override to the deny set.
func (s *Source) AddDeny(ctx context.Context, term string, category wordlist.Category) error {
	return s.client.SAdd(ctx, DenyKey, string(category)+":"+strings.ToLower(term)).Err()
}

// AddAllow adds a term override to the allow set.
func (s *Source) AddAllow(ctx context.Context, term string) error {
	return s.client.SAdd(ctx, AllowKey, strings.ToLower(term)).Err()
}

// RemoveDeny deletes a deny override in both member encodings.
func (s *Source) RemoveDeny(ctx context.Context, term string, category wordlist.Category) error {
	term = strings.ToLower(term)
	return s.client.SRem(ctx, DenyKey, term, string(category)+":"+term).Err()
}

// parseDenyMember decodes a deny-set member. Members are either a bare term
// (defaulting to the profanity category) or "<category>:<term>".
func parseDenyMember(m string) (wordlist.Entry, bool) {
	m = strings.TrimSpace(m)
	if m == "" {
		return wordlist.Entry{}, false
	}

	if cat, term, ok := strings.Cut(m, ":"); ok {
		switch c := wordlist.Category(cat); c {
		case wordlist.CategorySlur, wordlist.CategoryProfanity,
			wordlist.CategoryScam, wordlist.CategoryHateSpeech:
			if term = strings.TrimSpace(term); term != "" {
				return wordlist.Entry{Term: term, Category: c}, true
			}
			return wordlist.Entry{}, false
		}
	}
	return wordlist.Entry{Term: m, Category: wordlist.CategoryProfanity}, true
}
