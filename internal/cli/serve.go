package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockgraph/internal/server"
	"github.com/matzehuels/blockgraph/pkg/store"
)

type serveOpts struct {
	addr     string
	mongoURI string
	storeDir string
	noCache  bool
}

// serveCommand creates the serve command, which runs the HTTP render API
// until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP render API",
		Long: `Serve renders projects posted to /v1/render and keeps every result so it
can be fetched again from /v1/renders/{id}. Results go to MongoDB when a URI
is configured and to a local directory otherwise.

Example:
  blockgraph serve --addr :9000
  curl --data-binary @shop.txt 'localhost:9000/v1/render?format=svg'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = opts.addr
			}
			if cmd.Flags().Changed("mongo-uri") {
				c.Config.Server.MongoURI = opts.mongoURI
			}
			if cmd.Flags().Changed("store-dir") {
				c.Config.Server.StoreDir = opts.storeDir
			}
			return c.runServe(cmd.Context(), opts.noCache)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", c.Config.Server.Addr, "listen address")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for stored renders")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "directory for stored renders (without MongoDB)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	cfg := c.Config.Server

	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := server.New(server.Options{
		Runner:        runner,
		Store:         st,
		Logger:        c.Logger,
		Config:        c.Config.Diagram,
		RenderTimeout: cfg.RenderTimeout.Duration,
	})
	printInfo("Serving on %s", StyleHighlight.Render(cfg.Addr))
	return srv.ListenAndServe(ctx, cfg.Addr)
}

// newStore opens MongoDB when a URI is configured and a file store
// otherwise.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	cfg := c.Config.Server
	if cfg.MongoURI != "" {
		st, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("storing renders in mongodb", "database", cfg.MongoDatabase)
		return st, nil
	}

	dir := cfg.StoreDir
	if dir == "" {
		var err error
		if dir, err = dataDir(); err != nil {
			return nil, err
		}
	}
	c.Logger.Info("storing renders on disk", "dir", dir)
	return store.NewFileStore(afero.NewOsFs(), dir)
}

// dataDir returns the default render store (~/.local/share/blockgraph/renders),
// kept apart from the cache so "cache clear" never drops stored renders.
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "renders"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "renders"), nil
}
