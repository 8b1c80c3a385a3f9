package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/accordapp/moderation/internal/audit"
	"github.com/accordapp/moderation/internal/listsource"
	"github.com/accordapp/moderation/internal/messaging"
	"github.com/accordapp/moderation/internal/metrics"
	"github.com/accordapp/moderation/internal/moderation"
)

func main() {
	log.Println("Starting Accord moderation worker...")

	policyName := "permissive"
	if v := os.Getenv("POLICY"); v != "" {
		policyName = v
	}
	baseCfg, err := moderation.ConfigByName(policyName)
	if err != nil {
		log.Fatalf("invalid POLICY: %v", err)
	}

	// Redis is optional: without it the worker runs on the static lists.
	var source *listsource.Source
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			cancel()
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		cancel()
		source = listsource.NewSource(rdb)
		defer rdb.Close()
	}

	// Postgres audit store is optional: without it verdicts are log-only.
	var auditStore *audit.Store
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		migrationsURL := os.Getenv("MIGRATIONS_URL")
		if migrationsURL == "" {
			migrationsURL = "file://migrations"
		}
		if err := audit.Migrate(migrationsURL, dbURL); err != nil {
			log.Fatalf("failed to migrate audit schema: %v", err)
		}

		db, err := sql.Open("postgres", dbURL)
		if err != nil {
			log.Fatalf("failed to open Postgres: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			cancel()
			log.Fatalf("failed to connect to Postgres: %v", err)
		}
		cancel()
		auditStore = audit.NewStore(db)
		defer db.Close()
	}

	// NATS setup.
	natsConfig := messaging.DefaultNATSConfig()
	if v := os.Getenv("NATS_URL"); v != "" {
		natsConfig.URL = v
	}
	natsConfig.Name = "accord-moderator"

	natsClient, err := messaging.NewNATSClient(natsConfig)
	if err != nil {
		log.Fatalf("failed to connect to NATS: %v", err)
	}

	// Build the policy with Redis overrides merged over the preset lists,
	// behind a mutex so modlist.reload can swap it.
	var (
		mu     sync.RWMutex
		policy = buildPolicy(baseCfg, source)
	)
	if err := policy.Compile(); err != nil {
		log.Fatalf("word list failed to compile: %v", err)
	}
	metrics.DenyListSize.Set(float64(policy.DenyListSize()))

	currentPolicy := func() *moderation.Policy {
		mu.RLock()
		defer mu.RUnlock()
		return policy
	}

	// Subscribe to moderation check requests.
	err = natsClient.SubscribeCheck("moderator", func(data []byte) {
		var req moderation.CheckRequest
		if err := json.Unmarshal(data, &req); err != nil {
			log.Printf("[moderator] failed to unmarshal request: %v", err)
			return
		}

		p := currentPolicy()
		start := time.Now()
		v := p.ValidateContent(req.Text, moderation.Options{
			CheckProfanity:   true,
			CheckContactInfo: req.Contact,
			CheckGibberish:   req.Gibberish,
			FieldName:        req.Field,
		})
		metrics.CheckLatency.Observe(time.Since(start).Seconds())

		if !v.IsValid {
			check := failedCheck(v)
			metrics.BlockedTotal.WithLabelValues(metrics.FieldLabel(req.Field), check).Inc()
			log.Printf("[moderator] FLAGGED client=%s request=%s field=%s check=%s",
				req.ClientID, req.RequestID, req.Field, check)
			recordVerdict(auditStore, p, req, v, check)
		} else {
			log.Printf("[moderator] CLEAN client=%s request=%s field=%s",
				req.ClientID, req.RequestID, req.Field)
		}

		resp := moderation.CheckResult{
			ClientID:  req.ClientID,
			RequestID: req.RequestID,
			IsValid:   v.IsValid,
			Error:     v.Error,
			Result:    v.Result,
		}
		respData, err := json.Marshal(resp)
		if err != nil {
			log.Printf("[moderator] failed to marshal result: %v", err)
			return
		}
		if err := natsClient.PublishResult(req.ClientID, respData); err != nil {
			log.Printf("[moderator] failed to publish result: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("failed to subscribe to moderation checks: %v", err)
	}

	// Rebuild the policy when list overrides change.
	err = natsClient.SubscribeListReload(func() {
		next := buildPolicy(baseCfg, source)
		if err := next.Compile(); err != nil {
			log.Printf("[moderator] reloaded word list failed to compile, keeping current: %v", err)
			return
		}
		mu.Lock()
		policy = next
		mu.Unlock()
		metrics.DenyListSize.Set(float64(next.DenyListSize()))
		log.Printf("[moderator] word lists reloaded (%d deny terms)", next.DenyListSize())
	})
	if err != nil {
		log.Fatalf("failed to subscribe to list reloads: %v", err)
	}

	// Optional metrics endpoint.
	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Printf("[moderator] metrics server error: %v", err)
			}
		}()
		log.Printf("  metrics_addr: %s", addr)
	}

	log.Printf("Accord moderation worker running")
	log.Printf("  policy:    %s", policyName)
	log.Printf("  nats_url:  %s", natsConfig.URL)
	log.Printf("  deny_terms: %d", policy.DenyListSize())

	// Graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("received signal %v, shutting down...", sig)

	natsClient.Close()
}

// buildPolicy merges dynamic list overrides into the preset config.
func buildPolicy(base moderation.Config, source *listsource.Source) *moderation.Policy {
	cfg := base
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cfg.Deny, cfg.Allow = source.Load(ctx, base.Deny, base.Allow)
	return moderation.NewPolicy(cfg)
}

// failedCheck names the check that produced a failed validation.
func failedCheck(v moderation.Validation) string {
	if v.Result != nil && v.Result.IsGibberish {
		return "gibberish"
	}
	if v.Result != nil && len(v.Result.ProfaneWords) > 0 {
		return "profanity"
	}
	return "contact_info"
}

// recordVerdict persists a flagged outcome, redacted. Audit storage is best
// effort; a failed insert never blocks the verdict.
func recordVerdict(store *audit.Store, p *moderation.Policy, req moderation.CheckRequest, v moderation.Validation, check string) {
	if store == nil {
		return
	}

	verdict := &audit.Verdict{
		Field:        req.Field,
		Check:        check,
		Policy:       p.Name(),
		RedactedText: p.CleanText(req.Text),
	}
	if v.Result != nil {
		verdict.MatchedTerms = v.Result.ProfaneWords
	}
	for _, c := range p.MatchedCategories(req.Text) {
		verdict.Categories = append(verdict.Categories, string(c))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := store.Record(ctx, verdict); err != nil {
		log.Printf("[moderator] failed to record verdict: %v", err)
	}
}
