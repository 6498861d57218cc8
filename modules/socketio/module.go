package socketio

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/logos-core/lm/internal/ctxlog"
	"github.com/logos-core/lm/internal/registry"
	"github.com/logos-core/lm/modsdk"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Client maintains a socket.io connection on behalf of the host. Connect,
// Emit, and WaitForEvent form the operation surface; the connection itself is
// a single shared resource guarded by mu.
type Client struct {
	modsdk.Base

	mu        sync.Mutex
	manager   *socket.Manager
	io        *socket.Socket
	connected atomic.Bool

	// insecureSkipVerify disables TLS certificate verification; test use only.
	insecureSkipVerify bool
}

// NewClient creates a disconnected client.
func NewClient() *Client {
	return &Client{}
}

// Connect dials the socket.io endpoint and blocks until the connection is
// established, the server rejects it, or ctx expires.
func (c *Client) Connect(ctx context.Context, rawURL string, namespace string) error {
	logger := ctxlog.FromContext(ctx).With("module", "socketio", "url", rawURL, "namespace", namespace)
	logger.Debug("Connecting socket client.")

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if c.insecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	c.mu.Lock()
	if c.io != nil {
		c.mu.Unlock()
		return fmt.Errorf("already connected")
	}
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)
	c.manager = manager
	c.io = io
	c.mu.Unlock()

	done := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		c.connected.Store(true)
		logger.Info("Successfully connected", "sid", io.Id())
		done <- nil
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if err, ok := errs[0].(error); ok {
			done <- err
			return
		}
		done <- fmt.Errorf("connection rejected: %v", errs[0])
	})

	io.Connect()

	select {
	case <-ctx.Done():
		c.Disconnect()
		return fmt.Errorf("timed out while waiting for initial connection")
	case err := <-done:
		if err != nil {
			c.Disconnect()
		}
		return err
	}
}

// Emit sends an event with a string-keyed payload.
func (c *Client) Emit(event string, data map[string]string) error {
	c.mu.Lock()
	io := c.io
	c.mu.Unlock()

	if io == nil || !c.connected.Load() {
		return fmt.Errorf("not connected")
	}
	return io.Emit(event, data)
}

// WaitForEvent blocks until the named event arrives and returns its first
// payload element, or fails when ctx expires first.
func (c *Client) WaitForEvent(ctx context.Context, event string) (any, error) {
	c.mu.Lock()
	io := c.io
	c.mu.Unlock()

	if io == nil {
		return nil, fmt.Errorf("not connected")
	}

	done := make(chan any, 1)
	io.Once(types.EventName(event), func(data ...any) {
		var payload any
		if len(data) > 0 {
			payload = data[0]
		}
		done <- payload
	})

	select {
	case <-ctx.Done():
		if c.connected.Load() {
			return nil, fmt.Errorf("timed out after connecting while waiting for event '%s'", event)
		}
		return nil, fmt.Errorf("timed out while waiting for event '%s'", event)
	case payload := <-done:
		return payload, nil
	}
}

// Disconnect tears the connection down. Safe to call when not connected.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.io != nil {
		c.io.Disconnect()
		c.io = nil
		c.manager = nil
	}
	c.connected.Store(false)
}

// Register registers the client instance with the host registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Entry{
		Name:     "socketio",
		Instance: NewClient(),
	})
}
