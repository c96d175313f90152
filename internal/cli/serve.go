package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/printworks/photomatrix/internal/api"
	"github.com/printworks/photomatrix/pkg/cache"
	"github.com/printworks/photomatrix/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
		jobTTL    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the composite generation HTTP API",
		Long: `Run the composite generation HTTP API.

Clients upload photos to POST /api/v1/jobs, poll GET /api/v1/jobs/{id},
and download composites from GET /api/v1/jobs/{id}/composites/{n}.

Rendered composites are cached on disk by default; pass --redis to
share the cache across instances.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, noCache, jobTTL)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for a shared composite cache (host:port)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable composite caching")
	cmd.Flags().DurationVar(&jobTTL, "job-ttl", cache.TTLJob, "how long finished jobs stay downloadable")

	return cmd
}

// runServe builds the cache backend and runs the server until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, noCache bool, jobTTL time.Duration) error {
	store, err := c.serveCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}

	// Scope API keys so a shared redis instance keeps CLI and API
	// entries apart.
	keyer := cache.NewScopedKeyer(nil, "api:")
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	server := api.NewServer(api.Config{
		Runner: runner,
		Logger: c.Logger,
		JobTTL: jobTTL,
	})

	return server.ListenAndServe(ctx, addr)
}

// serveCache picks the cache backend: redis when configured, otherwise
// the local file cache.
func (c *CLI) serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		store, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", redisAddr, err)
		}
		c.Logger.Info("using redis composite cache", "addr", redisAddr)
		return store, nil
	}
	return newCache(false)
}
