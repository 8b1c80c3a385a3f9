// Package gateway serves the moderation engine over HTTP and WebSocket.
// POST /v1/moderate answers a single synchronous check; GET /v1/stream
// upgrades to a WebSocket on which a chat composer can run live checks as
// the user types. Each connection gets its own reader goroutine: the
// gateway's fan-in is a handful of application servers, not a crowd of
// browsers, so an event loop would buy nothing.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/google/uuid"

	"github.com/accordapp/moderation/internal/metrics"
	"github.com/accordapp/moderation/internal/moderation"
	"github.com/accordapp/moderation/internal/protocol"
	"github.com/accordapp/moderation/internal/ratelimit"
)

// Config holds tunable parameters for the gateway.
type Config struct {
	ListenAddr     string        // address to listen on, e.g. ":8080"
	MaxConnections int           // hard cap on stream connections
	ReadTimeout    time.Duration // timeout for WebSocket read operations
	WriteTimeout   time.Duration // timeout for WebSocket write operations
	MaxBodyBytes   int64         // cap on /v1/moderate request bodies
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() Config {
	return Config{
		ListenAddr:     ":8080",
		MaxConnections: 1024,
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxBodyBytes:   16 << 10, // plenty for a 2000-char message
	}
}

// Server is the moderation gateway.
type Server struct {
	config     Config
	policy     *moderation.Policy
	limiter    *ratelimit.Limiter
	conns      *registry
	httpServer *http.Server
	startedAt  time.Time
}

// NewServer creates a gateway serving the given policy. limiter may be nil
// to run unthrottled.
func NewServer(config Config, policy *moderation.Policy, limiter *ratelimit.Limiter) *Server {
	return &Server{
		config:  config,
		policy:  policy,
		limiter: limiter,
		conns:   newRegistry(),
	}
}

// Start begins serving and blocks on http.Server.ListenAndServe.
func (s *Server) Start() error {
	s.startedAt = time.Now()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/moderate", s.handleModerate)
	mux.HandleFunc("/v1/stream", s.handleStream)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", metrics.Handler())

	s.httpServer = &http.Server{
		Addr:    s.config.ListenAddr,
		Handler: mux,
	}

	log.Printf("gateway: listening on %s (policy=%s, max_conns=%d)",
		s.config.ListenAddr, s.policy.Name(), s.config.MaxConnections)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("gateway: http server error: %w", err)
	}
	return nil
}

// moderateRequest is the /v1/moderate request body.
type moderateRequest struct {
	Text             string `json:"text"`
	Field            string `json:"field"`
	CheckContactInfo bool   `json:"check_contact_info"`
	CheckGibberish   bool   `json:"check_gibberish"`
}

// handleModerate answers a single synchronous validation.
func (s *Server) handleModerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ip := remoteIP(r)
	allowed, _ := s.limiter.Allow(r.Context(), ip, ratelimit.RuleModerate)
	if !allowed {
		w.Header().Set("Retry-After", fmt.Sprint(s.limiter.RetryAfter(r.Context(), ip, ratelimit.RuleModerate)))
		http.Error(w, "rate limited", http.StatusTooManyRequests)
		return
	}

	var req moderateRequest
	body := http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	v := s.validate(req.Text, moderation.Options{
		CheckProfanity:   true,
		CheckContactInfo: req.CheckContactInfo,
		CheckGibberish:   req.CheckGibberish,
		FieldName:        req.Field,
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// validate runs ValidateContent with instrumentation.
func (s *Server) validate(text string, opts moderation.Options) moderation.Validation {
	start := time.Now()
	v := s.policy.ValidateContent(text, opts)
	metrics.CheckLatency.Observe(time.Since(start).Seconds())

	failed := ""
	if !v.IsValid {
		failed = checkLabel(v)
		metrics.BlockedTotal.WithLabelValues(metrics.FieldLabel(opts.FieldName), failed).Inc()
	}
	for check, enabled := range map[string]bool{
		"profanity":    opts.CheckProfanity,
		"contact_info": opts.CheckContactInfo,
		"gibberish":    opts.CheckGibberish,
	} {
		if !enabled {
			continue
		}
		outcome := "clean"
		if check == failed {
			outcome = "flagged"
		}
		metrics.ChecksTotal.WithLabelValues(check, outcome).Inc()
	}
	return v
}

// handleStream upgrades to a WebSocket for live composer checks.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if s.conns.Count() >= s.config.MaxConnections {
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	ip := remoteIP(r)
	allowed, _ := s.limiter.Allow(r.Context(), ip, ratelimit.RuleStream)
	if !allowed {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
		return
	}

	netConn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		log.Printf("gateway: upgrade failed: %v", err)
		return
	}

	c := &conn{
		ID:        uuid.New().String(),
		Conn:      netConn,
		RemoteIP:  ip,
		CreatedAt: time.Now(),
	}
	// The pre-upgrade Count check above is advisory; the slot is reserved
	// here, where check and insert share a lock.
	if !s.conns.TryAdd(c, s.config.MaxConnections) {
		_ = netConn.Close()
		return
	}
	metrics.StreamConnections.Set(float64(s.conns.Count()))
	log.Printf("gateway: new stream client=%s ip=%s (total=%d)", c.ID, ip, s.conns.Count())

	go s.readLoop(c)
}

// readLoop reads frames from one stream connection until it closes. Control
// frames are handled by wsutil; each text frame is a check envelope answered
// with a verdict frame.
func (s *Server) readLoop(c *conn) {
	defer s.removeConn(c)

	for {
		if s.config.ReadTimeout > 0 {
			_ = c.Conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		}

		data, op, err := wsutil.ReadClientData(c.Conn)
		if err != nil {
			if err != io.EOF {
				if netErr, ok := err.(net.Error); !ok || !netErr.Timeout() {
					log.Printf("gateway: read error client=%s: %v", c.ID, err)
				}
			}
			return
		}
		if op != ws.OpText || len(data) == 0 {
			continue
		}

		s.handleFrame(c, data)
	}
}

// handleFrame processes one client frame and writes the response.
func (s *Server) handleFrame(c *conn, data []byte) {
	msgType, msg, err := protocol.ParseClientMessage(data)
	if err != nil {
		s.send(c, protocol.TypeError, protocol.ErrorMsg{
			Code:    "bad_message",
			Message: err.Error(),
		})
		return
	}

	switch m := msg.(type) {
	case protocol.PingMsg:
		s.send(c, protocol.TypePong, protocol.PongMsg{})

	case protocol.CheckMsg:
		allowed, _ := s.limiter.Allow(context.Background(), c.ID, ratelimit.RuleModerate)
		if !allowed {
			s.send(c, protocol.TypeRateLimited, protocol.RateLimitedMsg{
				RetryAfter: s.limiter.RetryAfter(context.Background(), c.ID, ratelimit.RuleModerate),
			})
			return
		}

		v := s.validate(m.Text, moderation.Options{
			CheckProfanity:   true,
			CheckContactInfo: m.CheckContactInfo,
			CheckGibberish:   m.CheckGibberish,
			FieldName:        m.Field,
		})
		s.send(c, protocol.TypeVerdict, protocol.VerdictMsg{
			RequestID: m.RequestID,
			IsValid:   v.IsValid,
			Error:     v.Error,
			Result:    v.Result,
		})

	default:
		s.send(c, protocol.TypeError, protocol.ErrorMsg{
			Code:    "unsupported",
			Message: fmt.Sprintf("unsupported message type %q", msgType),
		})
	}
}

// send marshals and writes a server message, logging failures.
func (s *Server) send(c *conn, msgType string, payload interface{}) {
	data, err := protocol.NewServerMessage(msgType, payload)
	if err != nil {
		log.Printf("gateway: build %s failed for client=%s: %v", msgType, c.ID, err)
		return
	}
	if s.config.WriteTimeout > 0 {
		_ = c.Conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	}
	if err := c.WriteMessage(data); err != nil {
		log.Printf("gateway: write %s failed for client=%s: %v", msgType, c.ID, err)
	}
	_ = c.Conn.SetWriteDeadline(time.Time{})
}

// removeConn tears down a connection exactly once.
func (s *Server) removeConn(c *conn) {
	if !s.conns.Remove(c.ID) {
		return
	}
	_ = c.Close()
	metrics.StreamConnections.Set(float64(s.conns.Count()))
	log.Printf("gateway: stream closed client=%s (total=%d)", c.ID, s.conns.Count())
}

// handleHealth responds with the gateway's health status as JSON, including
// the current stream connection count and uptime.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	resp := struct {
		Status      string `json:"status"`
		Policy      string `json:"policy"`
		Connections int    `json:"connections"`
		Uptime      string `json:"uptime"`
	}{
		Status:      "ok",
		Policy:      s.policy.Name(),
		Connections: s.conns.Count(),
		Uptime:      time.Since(s.startedAt).Round(time.Second).String(),
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// Shutdown performs a graceful shutdown: stop the HTTP listener, then close
// all active stream connections.
func (s *Server) Shutdown() error {
	log.Println("gateway: shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("gateway: http shutdown error: %v", err)
	}

	for _, c := range s.conns.All() {
		s.removeConn(c)
	}

	log.Printf("gateway: stopped, all connections closed")
	return nil
}

// remoteIP extracts the client IP, preferring X-Forwarded-For from the load
// balancer.
func remoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// checkLabel names the check that produced a failed validation.
func checkLabel(v moderation.Validation) string {
	if v.Result != nil && v.Result.IsGibberish {
		return "gibberish"
	}
	if v.Result != nil && len(v.Result.ProfaneWords) > 0 {
		return "profanity"
	}
	return "contact_info"
}
