package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/notewerk/blocktree/internal/server"
	"github.com/notewerk/blocktree/pkg/pipeline"
	"github.com/notewerk/blocktree/pkg/source"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	config   string // config file path
	addr     string // listen address
	dir      string // document directory (file source)
	mongoURI string // MongoDB connection string (mongo source)
	cacheSel string // cache backend override
}

// serveCommand creates the serve command for the preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the document preview server",
		Long: `Serve renders documents over HTTP for live preview.

Documents come from a directory of graph JSON files (--dir) or a
MongoDB collection (--mongo-uri). Endpoints:

  GET /healthz              liveness probe
  GET /docs                 list document IDs
  GET /docs/{id}?format=md  render one document (md, html, dot, svg)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default: ~/.config/blocktree/config.toml)")
	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "listen address (default :8080)")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "directory of graph JSON files")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection string")
	cmd.Flags().StringVar(&opts.cacheSel, "cache", "", "cache backend: file (default), redis, none")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	cfg, err := LoadConfig(opts.config)
	if err != nil {
		return err
	}
	applyServeFlags(&cfg, opts)

	src, closeSrc, err := c.newSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	cc, err := newConfiguredCache(ctx, cfg)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cc, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           server.New(src, runner, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("preview server listening", "addr", cfg.Serve.Addr, "cache", cfg.Cache)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		c.Logger.Info("preview server stopped")
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// applyServeFlags overlays command-line flags onto the loaded config.
func applyServeFlags(cfg *Config, opts *serveOpts) {
	if opts.addr != "" {
		cfg.Serve.Addr = opts.addr
	}
	if opts.dir != "" {
		cfg.Serve.Dir = opts.dir
	}
	if opts.mongoURI != "" {
		cfg.Serve.MongoURI = opts.mongoURI
	}
	if opts.cacheSel != "" {
		cfg.Cache = opts.cacheSel
	}
}

// newSource builds the document source the config selects. Mongo wins
// over the file source when a URI is configured.
func (c *CLI) newSource(ctx context.Context, cfg Config) (source.Source, func(), error) {
	if cfg.Serve.MongoURI != "" {
		ms, err := source.NewMongoSource(ctx, cfg.Serve.MongoURI, cfg.Serve.MongoDB, cfg.Serve.MongoCollection)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo source: %w", err)
		}
		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := ms.Close(closeCtx); err != nil {
				c.Logger.Warn("close mongo source", "error", err)
			}
		}
		return ms, closeFn, nil
	}
	fs, err := source.NewFileSource(cfg.Serve.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("file source: %w", err)
	}
	return fs, func() {}, nil
}
