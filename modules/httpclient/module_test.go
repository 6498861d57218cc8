package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logos-core/lm/internal/registry"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/teapot" {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.Write([]byte("pong"))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestProbe_Fetch(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	p := NewProbe(5 * time.Second)

	body, err := p.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "pong", body)
}

func TestProbe_Status(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	p := NewProbe(5 * time.Second)

	status, err := p.Status(context.Background(), server.URL+"/teapot")

	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, status)
}

func TestProbe_FetchUnreachable(t *testing.T) {
	t.Parallel()

	p := NewProbe(time.Second)

	_, err := p.Fetch(context.Background(), "http://127.0.0.1:1/")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching")
}

func TestProbe_Shutdown(t *testing.T) {
	t.Parallel()

	p := NewProbe(time.Second)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestModule_Register(t *testing.T) {
	t.Parallel()

	r := registry.New()
	(&Module{}).Register(r)

	entry, ok := r.Lookup("http_client")
	require.True(t, ok)
	assert.IsType(t, &Probe{}, entry.Instance)
}
