// Package cli implements the gridpack command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridpack/internal/config"
	"github.com/matzehuels/gridpack/pkg/buildinfo"
	"github.com/matzehuels/gridpack/pkg/cache"
	"github.com/matzehuels/gridpack/pkg/planner"
	"github.com/matzehuels/gridpack/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "gridpack"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Gridpack places widgets on dashboard grids",
		Long:         `Gridpack checks, packs and repairs widget layouts on fixed-size cell grids, from the command line or as an HTTP service.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/gridpack/config.toml)")

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.repairCommand())
	root.AddCommand(c.snapCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.boardCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads settings once per process.
func (c *CLI) loadConfig() error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg
	c.Logger.Debug("loaded config", "cache", cfg.Cache, "store", cfg.Store, "box_size", cfg.BoxSize)
	return nil
}

// settings returns the loaded config, falling back to defaults for commands
// run without the root pre-run hook (tests).
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		cfg := config.Default()
		c.cfg = &cfg
	}
	return c.cfg
}

// =============================================================================
// Runner & Store Factories
// =============================================================================

// newRunner creates a planner runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*planner.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	return planner.NewRunner(cache.Instrument(ch), keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.settings()
	if noCache || cfg.Cache == config.CacheNone {
		return cache.NewNullCache(), nil
	}

	if cfg.Cache == config.CacheRedis {
		spinner := newSpinnerWithContext(ctx, "Connecting to redis at "+cfg.RedisAddr+"...")
		spinner.Start()
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: cfg.RedisAddr, Prefix: appName + ":"})
		if err != nil {
			spinner.StopWithError("Redis unreachable at " + cfg.RedisAddr)
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		spinner.StopWithSuccess("Connected to redis at " + cfg.RedisAddr)
		return rc, nil
	}

	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore opens the configured board store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	cfg := c.settings()
	if cfg.Store == config.StoreMongo {
		spinner := newSpinnerWithContext(ctx, "Connecting to mongo...")
		spinner.Start()
		s, err := store.NewMongoStore(ctx, store.MongoConfig{URI: cfg.MongoURI})
		if err != nil {
			spinner.StopWithError("Mongo unreachable")
			return nil, err
		}
		spinner.StopWithSuccess("Connected to mongo")
		return s, nil
	}
	return store.NewFileStore(cfg.BoardDir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/gridpack/).
func (c *CLI) cacheDir() (string, error) {
	if dir := c.settings().CacheDir; dir != "" {
		return dir, nil
	}
	return defaultCacheDir()
}

func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
