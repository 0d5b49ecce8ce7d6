package main

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/justestif/blocify/internal/auth"
	"github.com/justestif/blocify/internal/config"
	"github.com/justestif/blocify/internal/dashboard"
	"github.com/justestif/blocify/internal/db"
	"github.com/justestif/blocify/internal/reporting"
	"github.com/justestif/blocify/internal/spotify"
	"github.com/justestif/blocify/internal/web"
	webfs "github.com/justestif/blocify/web"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the web application",
		Action: serve,
	}
}

func serve(ctx context.Context, _ *cli.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireClientID(); err != nil {
		return err
	}

	if err := reporting.Init(cfg.SentryDSN, cfg.Release); err != nil {
		return fmt.Errorf("initializing error reporting: %w", err)
	}
	defer reporting.Flush(2 * time.Second)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Create sub-filesystems for templates and static files
	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}

	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	// Create and start server
	server, err := web.NewServer(web.ServerConfig{
		Addr:           cfg.Addr,
		ClientID:       cfg.SpotifyClientID,
		RedirectURI:    cfg.RedirectURI,
		TemplatesFS:    templates,
		StaticFS:       static,
		Store:          store,
		NewFetcher:     fetcherFactory(ctx, cfg.APIBase()),
		ViewTTL:        cfg.ViewTTL,
		RateLimit:      rate.Limit(cfg.RateLimitPerSecond),
		RateBurst:      cfg.RateLimitBurst,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run(ctx)
}

// openStore opens the token slot backend selected by STORE_BACKEND.
func openStore(ctx context.Context, cfg *config.Config) (auth.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return auth.NewMemoryStore(), func() {}, nil

	case config.BackendPostgres:
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("migrating database: %w", err)
		}
		return database.Slots(), database.Close, nil

	default:
		store, err := auth.OpenBoltStore(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
}

// fetcherFactory builds API clients against base, or the public API when base is empty.
func fetcherFactory(ctx context.Context, base string) dashboard.FetcherFactory {
	return func(token string) dashboard.Fetcher {
		return spotify.NewForToken(ctx, token, base)
	}
}
