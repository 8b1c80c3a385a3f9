// Package messaging provides a NATS client wrapper for the moderation
// subjects. It handles connection lifecycle, subject-based subscriptions,
// and convenience methods for the check/result/reload channels.
package messaging

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// NATS subject patterns used by the moderation services.
const (
	SubjectCheck      = "moderation.check"
	SubjectResult     = "moderation.result" // + .<client_id>
	SubjectListReload = "modlist.reload"
)

// NATSClient wraps the NATS connection with helper methods for pub/sub.
type NATSClient struct {
	conn *nats.Conn
	mu   sync.Mutex
	subs map[string]*nats.Subscription
}

// NATSConfig holds NATS connection settings.
type NATSConfig struct {
	URL           string        // nats://localhost:4222
	Name          string        // client name for identification
	ReconnectWait time.Duration // time between reconnect attempts
	MaxReconnects int           // max reconnect attempts (-1 for infinite)
}

// DefaultNATSConfig returns sensible defaults.
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           "nats://localhost:4222",
		Name:          "accord-moderation",
		ReconnectWait: 2 * time.Second,
		MaxReconnects: -1, // infinite reconnects
	}
}

// NewNATSClient connects to NATS with the given config and returns a ready
// client. It returns an error if the initial connection fails.
func NewNATSClient(config NATSConfig) (*NATSClient, error) {
	opts := []nats.Option{
		nats.Name(config.Name),
		nats.ReconnectWait(config.ReconnectWait),
		nats.MaxReconnects(config.MaxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("[nats] disconnected: %v", err)
			} else {
				log.Printf("[nats] disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("[nats] reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			log.Printf("[nats] connection closed")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	log.Printf("[nats] connected to %s", nc.ConnectedUrl())

	return &NATSClient{
		conn: nc,
		subs: make(map[string]*nats.Subscription),
	}, nil
}

// Publish sends data to the given NATS subject.
func (c *NATSClient) Publish(subject string, data []byte) error {
	return c.conn.Publish(subject, data)
}

// Subscribe registers a handler for the given subject and stores the
// subscription internally for later cleanup.
func (c *NATSClient) Subscribe(subject string, handler func(msg *nats.Msg)) error {
	sub, err := c.conn.Subscribe(subject, handler)
	if err != nil {
		return fmt.Errorf("nats subscribe %s: %w", subject, err)
	}

	c.mu.Lock()
	c.subs[subject] = sub
	c.mu.Unlock()

	return nil
}

// PublishCheck publishes a moderation check request.
func (c *NATSClient) PublishCheck(data []byte) error {
	return c.Publish(SubjectCheck, data)
}

// SubscribeCheck subscribes to moderation check requests. Workers use a
// queue group so that multiple instances share the load without duplicate
// processing.
func (c *NATSClient) SubscribeCheck(queue string, handler func(data []byte)) error {
	sub, err := c.conn.QueueSubscribe(SubjectCheck, queue, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return fmt.Errorf("nats queue subscribe %s: %w", SubjectCheck, err)
	}

	c.mu.Lock()
	c.subs[SubjectCheck] = sub
	c.mu.Unlock()
	return nil
}

// PublishResult publishes a moderation result for a specific client.
func (c *NATSClient) PublishResult(clientID string, data []byte) error {
	return c.Publish(SubjectResult+"."+clientID, data)
}

// SubscribeResult subscribes to moderation results for a specific client.
func (c *NATSClient) SubscribeResult(clientID string, handler func(data []byte)) error {
	subject := SubjectResult + "." + clientID
	return c.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
}

// UnsubscribeResult unsubscribes from moderation results for a client.
func (c *NATSClient) UnsubscribeResult(clientID string) error {
	return c.unsubscribe(SubjectResult + "." + clientID)
}

// PublishListReload notifies all services that the word-list overrides
// changed and compiled matchers should be rebuilt.
func (c *NATSClient) PublishListReload() error {
	return c.Publish(SubjectListReload, nil)
}

// SubscribeListReload subscribes to word-list reload notifications.
func (c *NATSClient) SubscribeListReload(handler func()) error {
	return c.Subscribe(SubjectListReload, func(_ *nats.Msg) {
		handler()
	})
}

// Close drains all active subscriptions and closes the NATS connection.
func (c *NATSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for subject, sub := range c.subs {
		if err := sub.Drain(); err != nil {
			log.Printf("[nats] drain %s: %v", subject, err)
		}
	}
	c.subs = make(map[string]*nats.Subscription)

	if err := c.conn.Drain(); err != nil {
		log.Printf("[nats] connection drain: %v", err)
	}

	log.Printf("[nats] client closed")
}

// unsubscribe removes and unsubscribes from a specific subject.
func (c *NATSClient) unsubscribe(subject string) error {
	c.mu.Lock()
	sub, ok := c.subs[subject]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("nats: no subscription for subject %s", subject)
	}
	delete(c.subs, subject)
	c.mu.Unlock()

	if err := sub.Unsubscribe(); err != nil {
		return fmt.Errorf("nats unsubscribe %s: %w", subject, err)
	}
	return nil
}
