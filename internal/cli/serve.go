package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ioxu/boxer/pkg/buildinfo"
	"github.com/ioxu/boxer/pkg/cache"
	"github.com/ioxu/boxer/pkg/inspect"
)

// serveCommand creates the serve command for the HTTP debug server.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the container tree over HTTP for debugging",
		Long: `Serve the container tree over HTTP for debugging.

The tree is built as by 'layout' (configuration and startup steps) and can
then be inspected and restructured remotely:

  curl localhost:8642/tree
  curl -X POST localhost:8642/containers/<uid>/actions/split-vertical
  curl -X PUT -d '{"view":"graph"}' localhost:8642/containers/<uid>/view`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from config)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	t, err := newTree(cfg, logger)
	if err != nil {
		return err
	}
	if err := t.run(cfg.Startup); err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	ws := inspect.NewWorkspace(t.root, t.reg, logger)
	if url := cfg.Server.RenderCache; url != "" {
		rc, err := sharedRenderCache(ctx, url)
		if err != nil {
			logger.Warn("render cache unavailable, using memory", "url", url, "err", err)
		} else {
			defer rc.Close()
			ws.SetRenderCache(rc)
			logger.Info("render cache", "url", url)
		}
	}
	srv := inspect.NewServer(ws, logger)

	logger.Info("starting", buildinfo.KeyVals()...)
	printInfo("Serving %s at %s", StyleHighlight.Render(t.root.Name), StyleLink.Render("http://"+addr+"/tree"))
	printStats(t.nodeCount(), len(t.root.Leaves()), t.reg.Len())

	err = srv.ListenAndServe(ctx, addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// sharedRenderCache connects to the redis render cache and checks that it
// answers.
func sharedRenderCache(ctx context.Context, url string) (*cache.RedisCache, error) {
	rc, err := cache.NewRedisCache(url, appName+":")
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		rc.Close()
		return nil, err
	}
	return rc, nil
}
