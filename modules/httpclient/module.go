package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/logos-core/lm/internal/registry"
	"github.com/logos-core/lm/modsdk"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Probe performs HTTP requests against a target on behalf of the host. The
// underlying client is shared and tuned for connection reuse.
type Probe struct {
	modsdk.Base

	client *http.Client
}

// NewProbe creates a probe with a pooled transport.
func NewProbe(timeout time.Duration) *Probe {
	return &Probe{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Fetch performs a GET request and returns the response body as a string.
func (p *Probe) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response from %s: %w", url, err)
	}
	return string(body), nil
}

// Status performs a GET request and returns only the response status code.
func (p *Probe) Status(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("probing %s: %w", url, err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp.StatusCode, nil
}

// Shutdown implements modsdk.Module, releasing idle connections.
func (p *Probe) Shutdown(ctx context.Context) error {
	p.client.CloseIdleConnections()
	return nil
}

// Register registers the probe instance with the host registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Entry{
		Name:     "http_client",
		Instance: NewProbe(30 * time.Second),
	})
}
