package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/accordapp/moderation/internal/gateway"
	"github.com/accordapp/moderation/internal/listsource"
	"github.com/accordapp/moderation/internal/metrics"
	"github.com/accordapp/moderation/internal/moderation"
	"github.com/accordapp/moderation/internal/ratelimit"
)

func main() {
	config := gateway.DefaultConfig()

	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		config.ListenAddr = addr
	}
	if v := os.Getenv("MAX_CONNECTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.MaxConnections = n
		}
	}
	if v := os.Getenv("READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.ReadTimeout = d
		}
	}
	if v := os.Getenv("WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.WriteTimeout = d
		}
	}

	policyName := "strict"
	if v := os.Getenv("POLICY"); v != "" {
		policyName = v
	}
	cfg, err := moderation.ConfigByName(policyName)
	if err != nil {
		log.Fatalf("invalid POLICY: %v", err)
	}

	// Redis is optional: without it the gateway runs unthrottled on the
	// static lists.
	var (
		limiter *ratelimit.Limiter
		source  *listsource.Source
	)
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			cancel()
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		cancel()
		limiter = ratelimit.NewLimiter(rdb)
		source = listsource.NewSource(rdb)
		defer rdb.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	cfg.Deny, cfg.Allow = source.Load(ctx, cfg.Deny, cfg.Allow)
	cancel()

	policy := moderation.NewPolicy(cfg)
	if err := policy.Compile(); err != nil {
		log.Fatalf("word list failed to compile: %v", err)
	}
	metrics.DenyListSize.Set(float64(policy.DenyListSize()))

	server := gateway.NewServer(config, policy, limiter)

	log.Printf("Accord moderation gateway starting")
	log.Printf("  listen_addr:     %s", config.ListenAddr)
	log.Printf("  policy:          %s", policyName)
	log.Printf("  max_connections: %d", config.MaxConnections)
	log.Printf("  read_timeout:    %s", config.ReadTimeout)
	log.Printf("  write_timeout:   %s", config.WriteTimeout)
	log.Printf("  deny_terms:      %d", policy.DenyListSize())

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("gateway failed: %v", err)
		}
	}()

	// Graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("received signal %v, shutting down...", sig)

	if err := server.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
