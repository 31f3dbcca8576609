package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/facetgrid/internal/api"
	"github.com/matzehuels/facetgrid/pkg/cache"
	"github.com/matzehuels/facetgrid/pkg/pipeline"
	"github.com/matzehuels/facetgrid/pkg/storage"
)

// Environment variables read by the serve command when flags are unset.
const (
	envRedisURL = "FACETGRID_REDIS_URL"
	envMongoURI = "FACETGRID_MONGO_URI"
)

// sweepInterval is how often expired documents are removed from stores
// without native expiry.
const sweepInterval = 10 * time.Minute

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr      string
	redisURL  string
	mongoURI  string
	database  string
	storeDir  string
	ttl       time.Duration
	namespace string
	noCache   bool
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		redisURL: os.Getenv(envRedisURL),
		mongoURI: os.Getenv(envMongoURI),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve facet layouts over HTTP",
		Long: `Serve facet layouts over HTTP.

Layouts are computed from JSON requests and stored so they can be fetched
and rendered later by ID.

Storage backends, in order of preference:
  --mongo-uri   MongoDB (also FACETGRID_MONGO_URI)
  --store-dir   JSON files in a directory
  (default)     in memory, lost on exit

Computed layouts and rendered artifacts are cached in Redis when --redis-url
(or FACETGRID_REDIS_URL) is set, otherwise in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", opts.redisURL, "redis URL for the layout cache")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", opts.mongoURI, "MongoDB URI for layout storage")
	cmd.Flags().StringVar(&opts.database, "mongo-db", storage.DefaultDatabase, "MongoDB database name")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "directory for file-based layout storage")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", storage.DefaultTTL, "how long stored layouts are kept")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "prefix for cache keys, to share one redis between deployments")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the cache and store backends and blocks until ctx ends.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	ch, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(ch, opts.keyer(), c.Logger)
	defer runner.Close()

	store, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()
	go sweepExpired(ctx, store, sweepInterval, c.Logger)

	printSuccess("Serving on %s", StyleLink.Render("http://"+displayAddr(opts.addr)))
	printKeyValue("Cache", opts.cacheBackend())
	printKeyValue("Store", opts.storeBackend())
	printNewline()

	srv := api.New(runner, store, c.Logger, api.WithDocumentTTL(opts.ttl))
	if err := srv.ListenAndServe(ctx, opts.addr); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	printInfo("Server stopped")
	return nil
}

func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache || opts.redisURL == "" {
		return c.newCache(opts.noCache)
	}
	rc, err := cache.NewRedisCache(ctx, opts.redisURL, appName+":")
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.Logger.Info("using redis cache")
	return rc, nil
}

func (c *CLI) serveStore(ctx context.Context, opts serveOpts) (storage.Store, error) {
	switch {
	case opts.mongoURI != "":
		store, err := storage.NewMongoStore(ctx, opts.mongoURI, opts.database)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		c.Logger.Info("using mongo store", "database", opts.database)
		return store, nil
	case opts.storeDir != "":
		store, err := storage.NewFileStore(opts.storeDir)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using file store", "dir", store.Path())
		return store, nil
	}
	c.Logger.Info("using in-memory store")
	return storage.NewMemoryStore(), nil
}

// sweepExpired removes expired documents every interval until ctx ends. It
// returns at once for stores that expire documents themselves.
func sweepExpired(ctx context.Context, store storage.Store, every time.Duration, logger *log.Logger) {
	sw, ok := store.(storage.Sweeper)
	if !ok {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sw.Cleanup(ctx)
			if err != nil {
				logger.Warn("sweep expired layouts", "err", err)
				continue
			}
			if n > 0 {
				logger.Debug("swept expired layouts", "removed", n)
			}
		}
	}
}

// keyer returns nil (the default keyer) unless a namespace is set.
func (o serveOpts) keyer() cache.Keyer {
	if o.namespace == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, o.namespace+":")
}

func (o serveOpts) cacheBackend() string {
	switch {
	case o.noCache:
		return "disabled"
	case o.redisURL != "":
		return "redis"
	}
	return "file"
}

func (o serveOpts) storeBackend() string {
	switch {
	case o.mongoURI != "":
		return "mongo (" + o.database + ")"
	case o.storeDir != "":
		return "file (" + o.storeDir + ")"
	}
	return "memory"
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
