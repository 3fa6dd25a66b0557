package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/planwright/planwright/internal/server"
	"github.com/planwright/planwright/pkg/cache"
	"github.com/planwright/planwright/pkg/session"
	"github.com/planwright/planwright/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		dataDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planwright HTTP API",
		Long: `Run the planwright HTTP API.

The server exposes the stateless engine endpoints (placement checks,
door geometry, snapping), plan CRUD, per-plan reports and rendering,
and editing presence sessions.

Plans go to MongoDB when [mongo] is configured, to a directory of JSON
files with --data, and to memory otherwise. Presence sessions use
Redis when [redis] is configured and memory otherwise. The server
shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, dataDir)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+serveDefaultAddr+")")
	cmd.Flags().StringVar(&dataDir, "data", "", "store plans as JSON files in this directory")

	return cmd
}

const serveDefaultAddr = ":8080"

// runServe wires the configured stores and runs the server until ctx
// is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, dataDir string) error {
	cfg := c.Config
	if addr == "" {
		addr = cfg.Server.Addr
	}
	if addr == "" {
		addr = serveDefaultAddr
	}

	planStore, closeStore, err := c.newPlanStore(ctx, dataDir)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions, closeSessions, err := c.newSessionStore(ctx)
	if err != nil {
		return err
	}
	defer closeSessions()

	runner, err := c.newRunner(false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	// Keep server cache entries out of the CLI namespace.
	runner.Keyer = cache.NewScopedKeyer(runner.Keyer, "serve:")

	srv := server.New(planStore, sessions, runner, cfg, c.Logger)
	if err := srv.ListenAndServe(ctx, addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	c.Logger.Info("server stopped")
	return nil
}

// newPlanStore picks the plan store backend from config and flags.
func (c *CLI) newPlanStore(ctx context.Context, dataDir string) (store.Store, func(), error) {
	cfg := c.Config
	switch {
	case cfg.Mongo.URI != "":
		st, err := store.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		c.Logger.Info("using mongo plan store", "database", cfg.Mongo.Database)
		return st, func() { _ = st.Close(context.Background()) }, nil
	case dataDir != "":
		st, err := store.NewFileStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open data dir: %w", err)
		}
		c.Logger.Info("using file plan store", "dir", dataDir)
		return st, func() {}, nil
	default:
		c.Logger.Warn("no mongo configured, plans are stored in memory")
		return store.NewMemoryStore(), func() {}, nil
	}
}

// newSessionStore picks the presence backend from config.
func (c *CLI) newSessionStore(ctx context.Context) (session.Store, func(), error) {
	cfg := c.Config
	if cfg.Redis.Addr == "" {
		return session.NewMemoryStore(), func() {}, nil
	}
	st, err := session.NewRedisStore(ctx, session.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	c.Logger.Info("using redis sessions", "addr", cfg.Redis.Addr)
	return st, func() { _ = st.Close() }, nil
}
