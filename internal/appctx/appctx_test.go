package appctx

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resio/resio-cli/internal/config"
)

func TestNewBuildsGraph(t *testing.T) {
	t.Setenv("RESIO_NO_KEYRING", "1")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	cfg := config.Default()
	app := New(cfg, io.Discard)

	require.NotNil(t, app.Client)
	require.NotNil(t, app.Auth)
	require.NotNil(t, app.Home)
	require.NotNil(t, app.Tokens)
	require.NotNil(t, app.Cache)
	require.NotNil(t, app.Collector)
	assert.Same(t, cfg, app.Config)
}

func TestWithFrom(t *testing.T) {
	app := &App{}
	ctx := With(context.Background(), app)

	assert.Same(t, app, From(ctx))
}

func TestFromPanicsWithoutApp(t *testing.T) {
	assert.Panics(t, func() {
		From(context.Background())
	})
}
