// Package appctx wires the application's dependencies and carries them
// through the command tree on the context.
package appctx

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/resio/resio-cli/internal/api"
	"github.com/resio/resio-cli/internal/config"
	"github.com/resio/resio-cli/internal/endpoint"
	"github.com/resio/resio-cli/internal/observability"
	"github.com/resio/resio-cli/internal/output"
	"github.com/resio/resio-cli/internal/resio"
	"github.com/resio/resio-cli/internal/secure"
	"github.com/resio/resio-cli/internal/version"
)

// App holds every constructed dependency. Commands receive it through
// the context; nothing here is a package-level singleton.
type App struct {
	Config    *config.Config
	Log       zerolog.Logger
	Tokens    *secure.Store
	Cache     *secure.CacheStore
	Client    *api.Client
	Auth      *resio.AuthAPI
	Home      *resio.HomeAPI
	Collector *observability.Collector
	Out       *output.Writer
}

// New builds the full dependency graph from cfg.
func New(cfg *config.Config, stdout io.Writer) *App {
	log := newLogger(cfg)

	tokens := secure.NewStore(config.GlobalConfigDir(), log)
	cache := secure.NewCacheStore(cfg.CacheDir, log)
	collector := observability.NewCollector()

	resolver := endpoint.NewResolver(
		config.NormalizeBaseURL(cfg.BaseURL),
		config.NormalizeBaseURL(cfg.CardConnectURL),
		cfg.IsDev(),
		log,
	)

	client := api.NewClient(api.Options{
		HTTP:      &http.Client{Timeout: cfg.Timeout()},
		Resolver:  resolver,
		Tokens:    tokens,
		Hooks:     observability.Multi{collector, observability.LogHooks{Log: log}},
		Log:       log,
		UserAgent: version.UserAgent(),
	})

	return &App{
		Config:    cfg,
		Log:       log,
		Tokens:    tokens,
		Cache:     cache,
		Client:    client,
		Auth:      resio.NewAuthAPI(client, cache),
		Home:      resio.NewHomeAPI(client),
		Collector: collector,
		Out:       output.NewWriter(stdout, cfg.Format),
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.WarnLevel
	if cfg.IsDev() || os.Getenv("RESIO_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

type ctxKey struct{}

// With returns a context carrying app.
func With(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, app)
}

// From extracts the App from ctx. It panics when absent, which only
// happens when a command bypasses the root's setup.
func From(ctx context.Context) *App {
	app, ok := ctx.Value(ctxKey{}).(*App)
	if !ok {
		panic("appctx: no App on context")
	}
	return app
}
