// Package mongodb owns the process's single database connection. Everything
// that touches data goes through a Connection that has successfully reached
// the connected state.
package mongodb

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrConnectionFailed marks exhaustion of the bounded retry budget. Callers
// must treat it as fatal for the current request; there is no infinite-retry
// mode.
var ErrConnectionFailed = errs.New("database connection failed")

type State string

const (
	StateDisconnected  State = "disconnected"
	StateConnecting    State = "connecting"
	StateConnected     State = "connected"
	StateDisconnecting State = "disconnecting"
)

// Status is the health-check view of the connection: current state plus
// target metadata with credentials stripped.
type Status struct {
	State    State  `json:"state"`
	Target   string `json:"target"`
	Database string `json:"database"`
	Attempts int    `json:"attempts"`
}

// Connection is an explicit resource with a documented lifecycle: constructed
// at composition time, Connect on process start, Disconnect on shutdown. It is
// injected into repositories rather than reached through a package global.
type Connection struct {
	cfg    config.MongoConfig
	logger *slog.Logger

	mu       sync.Mutex
	state    State
	client   *mongo.Client
	ready    chan struct{} // closed when an in-flight connect settles
	lastErr  error
	attempts int

	// dial and ping are swapped out in tests.
	dial func(ctx context.Context) (*mongo.Client, error)
	ping func(ctx context.Context, client *mongo.Client) error
}

func New(cfg config.MongoConfig, logger *slog.Logger) *Connection {
	c := &Connection{
		cfg:    cfg,
		logger: logger,
		state:  StateDisconnected,
	}
	c.dial = c.defaultDial
	c.ping = func(ctx context.Context, client *mongo.Client) error {
		return client.Ping(ctx, readpref.Primary())
	}
	return c
}

func (c *Connection) defaultDial(ctx context.Context) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(c.cfg.URI).
		SetMaxPoolSize(c.cfg.MaxPoolSize).
		SetConnectTimeout(c.cfg.ConnectTimeout).
		SetServerSelectionTimeout(c.cfg.ServerSelectionTimeout).
		SetSocketTimeout(c.cfg.SocketTimeout)
	return mongo.Connect(ctx, opts)
}

// Connect is idempotent. If another caller is mid-connect, this one waits on
// the shared ready channel instead of issuing a second attempt or polling.
func (c *Connection) Connect(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateConnected:
		c.mu.Unlock()
		return nil
	case StateConnecting:
		ready := c.ready
		c.mu.Unlock()
		select {
		case <-ready:
			c.mu.Lock()
			defer c.mu.Unlock()
			if c.state == StateConnected {
				return nil
			}
			return c.lastErr
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	c.state = StateConnecting
	c.ready = make(chan struct{})
	ready := c.ready
	c.mu.Unlock()

	client, err := c.establish(ctx)

	c.mu.Lock()
	if err != nil {
		c.state = StateDisconnected
		c.lastErr = err
	} else {
		c.state = StateConnected
		c.client = client
		c.lastErr = nil
		c.attempts = 0
	}
	close(ready)
	c.mu.Unlock()
	return err
}

func (c *Connection) establish(ctx context.Context) (*mongo.Client, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxConnectAttempts; attempt++ {
		c.mu.Lock()
		c.attempts = attempt
		c.mu.Unlock()

		client, err := c.tryOnce(ctx)
		if err == nil {
			c.logger.Info("database connected",
				"target", redactURI(c.cfg.URI),
				"attempt", attempt,
			)
			return client, nil
		}
		lastErr = err
		c.logger.Warn("database connection attempt failed",
			"attempt", attempt,
			"max_attempts", c.cfg.MaxConnectAttempts,
			"error", err.Error(),
		)

		if attempt < c.cfg.MaxConnectAttempts {
			select {
			case <-time.After(c.cfg.ConnectRetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, errs.Mark(errs.Wrap(lastErr, "retry budget exhausted"), ErrConnectionFailed)
}

func (c *Connection) tryOnce(ctx context.Context) (*mongo.Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
	defer cancel()

	client, err := c.dial(dialCtx)
	if err != nil {
		return nil, err
	}
	if err := c.ping(dialCtx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Database panics when called before a successful Connect; repositories are
// only wired after the lifecycle OnStart hook has run.
func (c *Connection) Database() *mongo.Database {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConnected || c.client == nil {
		panic("mongodb: Database() called before Connect() succeeded")
	}
	return c.client.Database(c.cfg.Database)
}

func (c *Connection) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		State:    c.state,
		Target:   redactURI(c.cfg.URI),
		Database: c.cfg.Database,
		Attempts: c.attempts,
	}
}

func (c *Connection) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateConnected || c.client == nil {
		c.state = StateDisconnected
		c.mu.Unlock()
		return nil
	}
	c.state = StateDisconnecting
	client := c.client
	c.mu.Unlock()

	err := client.Disconnect(ctx)

	c.mu.Lock()
	c.state = StateDisconnected
	c.client = nil
	c.mu.Unlock()
	return err
}

// redactURI keeps host and port for observability but never credentials.
func redactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "(unparseable)"
	}
	u.User = nil
	u.RawQuery = ""
	return u.String()
}
