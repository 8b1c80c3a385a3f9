package listsource

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/accordapp/moderation/internal/wordlist"
)

// newTestSource creates a Source connected to a local Redis instance with
// the override sets cleared. Tests that call this helper require a running
// Redis on localhost:6379.
func newTestSource(t *testing.T) *Source {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}
	client.Del(ctx, DenyKey, AllowKey)
	t.Cleanup(func() {
		client.Del(ctx, DenyKey, AllowKey)
		client.Close()
	})
	return NewSource(client)
}

func TestLoad_NilSource(t *testing.T) {
	baseDeny := []wordlist.Entry{{Term: "badword", Category: wordlist.CategoryProfanity}}
	baseAllow := []string{"queer"}

	var s *Source
	deny, allow := s.Load(context.Background(), baseDeny, baseAllow)
	if len(deny) != 1 || deny[0].Term != "badword" {
		t.Errorf("nil Source changed deny list: %v", deny)
	}
	if len(allow) != 1 || allow[0] != "queer" {
		t.Errorf("nil Source changed allow list: %v", allow)
	}

	s = NewSource(nil)
	deny, allow = s.Load(context.Background(), baseDeny, baseAllow)
	if len(deny) != 1 || len(allow) != 1 {
		t.Errorf("nil-client Source changed lists: %v %v", deny, allow)
	}
}

func TestLoad_MergesOverrides(t *testing.T) {
	s := newTestSource(t)
	ctx := context.Background()

	if err := s.AddDeny(ctx, "cryptobro", wordlist.CategoryScam); err != nil {
		t.Fatalf("AddDeny() error: %v", err)
	}
	if err := s.AddAllow(ctx, "reclaimed"); err != nil {
		t.Fatalf("AddAllow() error: %v", err)
	}

	baseDeny := []wordlist.Entry{{Term: "badword", Category: wordlist.CategoryProfanity}}
	baseAllow := []string{"queer"}

	deny, allow := s.Load(ctx, baseDeny, baseAllow)
	if len(deny) != 2 {
		t.Fatalf("deny has %d entries, want 2: %v", len(deny), deny)
	}
	if deny[0].Term != "badword" {
		t.Errorf("base deny entry lost: %v", deny)
	}
	if deny[1].Term != "cryptobro" || deny[1].Category != wordlist.CategoryScam {
		t.Errorf("override not merged: %+v", deny[1])
	}
	if len(allow) != 2 || allow[0] != "queer" || allow[1] != "reclaimed" {
		t.Errorf("allow = %v, want [queer reclaimed]", allow)
	}
}

func TestRemoveDeny(t *testing.T) {
	s := newTestSource(t)
	ctx := context.Background()

	if err := s.AddDeny(ctx, "cryptobro", wordlist.CategoryScam); err != nil {
		t.Fatalf("AddDeny() error: %v", err)
	}
	if err := s.RemoveDeny(ctx, "cryptobro", wordlist.CategoryScam); err != nil {
		t.Fatalf("RemoveDeny() error: %v", err)
	}

	deny, _ := s.Load(ctx, nil, nil)
	if len(deny) != 0 {
		t.Errorf("deny = %v, want empty after removal", deny)
	}
}

func TestParseDenyMember(t *testing.T) {
	tests := []struct {
		name     string
		member   string
		ok       bool
		term     string
		category wordlist.Category
	}{
		{"bare term", "badword", true, "badword", wordlist.CategoryProfanity},
		{"categorized", "scam:crypto pump", true, "crypto pump", wordlist.CategoryScam},
		{"slur category", "slur:badterm", true, "badterm", wordlist.CategorySlur},
		{"hate speech category", "hate-speech:some phrase", true, "some phrase", wordlist.CategoryHateSpeech},
		{"unknown category kept verbatim", "bogus:term", true, "bogus:term", wordlist.CategoryProfanity},
		{"categorized empty term", "scam:  ", false, "", ""},
		{"empty", "", false, "", ""},
		{"whitespace", "   ", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := parseDenyMember(tt.member)
			if ok != tt.ok {
				t.Fatalf("parseDenyMember(%q) ok = %v, want %v", tt.member, ok, tt.ok)
			}
			if !ok {
				return
			}
			if e.Term != tt.term || e.Category != tt.category {
				t.Errorf("parseDenyMember(%q) = %+v, want {%s %s}", tt.member, e, tt.term, tt.category)
			}
		})
	}
}
