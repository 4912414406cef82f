package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/teeforge/pkg/buildinfo"
	"github.com/matzehuels/teeforge/pkg/cache"
	"github.com/matzehuels/teeforge/pkg/errors"
	"github.com/matzehuels/teeforge/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "teeforge"

	// redisEnv names the environment variable that provides the --redis default.
	redisEnv = "TEEFORGE_REDIS_URL"
)

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
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Teeforge generates randomized T-shirt style artwork",
		Long:         `Teeforge is a procedural image generator. Every design is reproducible from its seed: a base fill, translucent shape layers, line splashes, noise, a rotated word and a final smoothing pass.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.seedCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.presetCommand())
	root.AddCommand(c.studioCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the artifact cache of a command.
type cacheFlags struct {
	noCache  bool
	redisURL string
}

// addCacheFlags registers --no-cache and --redis on cmd.
func addCacheFlags(cmd *cobra.Command, cf *cacheFlags) {
	cmd.Flags().BoolVar(&cf.noCache, "no-cache", false, "disable the design cache")
	cmd.Flags().StringVar(&cf.redisURL, "redis", os.Getenv(redisEnv), "cache designs in Redis at this URL instead of on disk (env "+redisEnv+")")
}

// newRunner creates a pipeline runner for CLI use.
// Cache keys are scoped to the build version.
func (c *CLI) newRunner(ctx context.Context, cf cacheFlags) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, cf)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func newCache(ctx context.Context, cf cacheFlags) (cache.Cache, error) {
	if cf.noCache {
		return cache.NewNullCache(), nil
	}
	if cf.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cf.redisURL)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "connect to redis")
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/teeforge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
