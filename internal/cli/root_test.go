package cli

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command against a test server with hermetic
// config, cache, and credential locations.
func runCLI(t *testing.T, serverURL string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RESIO_NO_KEYRING", "1")
	t.Setenv("RESIO_BASE_URL", serverURL)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestEventsListCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/home/events", r.URL.Path)
		fmt.Fprint(w, `[{"id": 1, "title": "Rooftop social"}]`)
	}))
	defer srv.Close()

	out, err := runCLI(t, srv.URL, "events", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Rooftop social")
}

func TestAPICommandWithJQ(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v2/home/bulletins", r.URL.Path)
		fmt.Fprint(w, `{"items": [{"id": 1, "title": "Pool closed"}], "total": 1}`)
	}))
	defer srv.Close()

	out, err := runCLI(t, srv.URL, "api", "GET", "home/bulletins", "--api-version", "v2", "--jq", ".items[0].title")
	require.NoError(t, err)
	assert.Contains(t, out, "Pool closed")
}

func TestLoginCommandValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid input must not reach the server")
	}))
	defer srv.Close()

	out, err := runCLI(t, srv.URL, "auth", "login", "not-an-email", "--password", "pw")
	require.Error(t, err)
	assert.Contains(t, out, "VALIDATION_ERROR")
}

func TestUnknownCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	_, err := runCLI(t, srv.URL, "no-such-command")
	assert.Error(t, err)
}

func TestYAMLFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count": 3}`)
	}))
	defer srv.Close()

	out, err := runCLI(t, srv.URL, "bulletins", "unread-count", "--property", "4", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "count: 3")
}
