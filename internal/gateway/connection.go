package gateway

import (
	"net"
	"sync"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// conn represents a single WebSocket stream client with a write mutex for
// serializing outbound frames.
type conn struct {
	ID        string   // client ID (UUID), also the rate-limit identity
	Conn      net.Conn // underlying TCP connection
	RemoteIP  string
	CreatedAt time.Time
	writeMu   sync.Mutex // serializes writes to this connection
}

// WriteMessage sends a WebSocket text frame to this connection. The write
// mutex ensures that concurrent goroutines do not interleave frame bytes.
func (c *conn) WriteMessage(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return wsutil.WriteServerMessage(c.Conn, ws.OpText, data)
}

// Close closes the underlying network connection.
func (c *conn) Close() error {
	return c.Conn.Close()
}

// registry is a thread-safe set of active stream connections keyed by
// client ID.
type registry struct {
	mu   sync.RWMutex
	byID map[string]*conn
}

func newRegistry() *registry {
	return &registry{byID: make(map[string]*conn)}
}

// TryAdd inserts the connection unless the registry already holds max
// entries. Check and insert happen under one lock so concurrent upgrades
// cannot push the count past the cap.
func (r *registry) TryAdd(c *conn, max int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.byID) >= max {
		return false
	}
	r.byID[c.ID] = c
	return true
}

// Remove deletes the connection and reports whether it was present, so that
// racing cleanup paths (read error vs shutdown) run the teardown only once.
func (r *registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	return true
}

func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func (r *registry) All() []*conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conns := make([]*conn, 0, len(r.byID))
	for _, c := range r.byID {
		conns = append(conns, c)
	}
	return conns
}
