package resio

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/rs/zerolog"

	"github.com/resio/resio-cli/internal/api"
	"github.com/resio/resio-cli/internal/endpoint"
)

// memTokens is an in-memory token store for facade tests.
type memTokens struct {
	mu      sync.Mutex
	access  string
	refresh string
	cleared bool
}

func (m *memTokens) SaveToken(t string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = t
	return nil
}

func (m *memTokens) GetToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access
}

func (m *memTokens) SaveRefreshToken(t string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh = t
	return nil
}

func (m *memTokens) GetRefreshToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh
}

func (m *memTokens) ClearTokens() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	m.refresh = ""
	m.cleared = true
}

// memCache records purges.
type memCache struct {
	purged bool
}

func (c *memCache) Purge() { c.purged = true }

// newFacadeClient stands up a client against handler and returns it
// with its token store.
func newFacadeClient(handler http.Handler) (*api.Client, *memTokens, *httptest.Server) {
	srv := httptest.NewServer(handler)
	tokens := &memTokens{access: "T1", refresh: "R1"}
	r := endpoint.NewResolver(srv.URL, srv.URL, false, zerolog.Nop())
	c := api.NewClient(api.Options{
		Resolver: r,
		Tokens:   tokens,
		Log:      zerolog.Nop(),
	})
	return c, tokens, srv
}

// countingHandler counts requests and serves a fixed JSON body.
type countingHandler struct {
	mu    sync.Mutex
	count int
	body  string
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.count++
	h.mu.Unlock()
	if h.body != "" {
		_, _ = w.Write([]byte(h.body))
	}
}

func (h *countingHandler) calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}
