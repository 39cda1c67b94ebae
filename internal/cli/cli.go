package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lamafmt/pkg/cache"
	"github.com/matzehuels/lamafmt/pkg/config"
	"github.com/matzehuels/lamafmt/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "lamafmt"

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

	// configPath is the value of --config; empty means search.
	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Format Flags
// =============================================================================

// formatFlags are the layout flags shared by fmt, check, inspect, explore and
// serve.
type formatFlags struct {
	width   int
	indent  int
	policy  string
	noCache bool
	refresh bool
}

func (f *formatFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.width, "width", pipeline.DefaultWidth, "page width in columns")
	fs.IntVar(&f.indent, "indent", pipeline.DefaultIndent, "indentation of nested blocks")
	fs.StringVar(&f.policy, "policy", pipeline.DefaultPolicy, "width budget when merging alternatives: max, min, equal")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the output cache")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached output and recompute")
}

// settings is the result of merging defaults, the configuration file and
// flags.
type settings struct {
	opts    pipeline.Options
	file    *config.File
	noCache bool
}

// resolve loads the configuration for inputs in dir and applies flags that
// were set explicitly. Precedence: flags > file > defaults.
func (c *CLI) resolve(cmd *cobra.Command, f *formatFlags, dir string) (*settings, error) {
	file, err := config.Discover(dir, c.configPath)
	if err != nil {
		return nil, err
	}
	if file.Path != "" {
		c.Logger.Debug("loaded config", "path", file.Path)
	}

	var opts pipeline.Options
	file.Apply(&opts)

	fs := cmd.Flags()
	if fs.Changed("width") {
		opts.Width = f.width
	}
	if fs.Changed("indent") {
		opts.Indent = f.indent
	}
	if fs.Changed("policy") {
		opts.Policy = f.policy
	}
	opts.Refresh = f.refresh

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &settings{
		opts:    opts,
		file:    file,
		noCache: f.noCache || !file.CacheEnabled(),
	}, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A nil keyer uses the
// default key layout.
func (c *CLI) newRunner(ctx context.Context, s *settings, keyer cache.Keyer) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, s)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache selects the cache backend: none when disabled, Redis when a URL
// is configured and reachable, otherwise the file cache.
func (c *CLI) newCache(ctx context.Context, s *settings) (cache.Cache, error) {
	if s.noCache {
		return cache.NewNullCache(), nil
	}
	if url := s.file.Cache.RedisURL; url != "" {
		rc, err := cache.NewRedisCache(url)
		if err != nil {
			return nil, err
		}
		if err := rc.Ping(ctx); err != nil {
			c.Logger.Warn("redis unavailable, using file cache", "err", err)
			rc.Close()
		} else {
			c.Logger.Debug("using redis cache")
			return rc, nil
		}
	}
	dir := s.file.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/lamafmt/).
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

// configDir returns the directory searched for a configuration file when
// formatting args.
func configDir(args []string) string {
	if len(args) == 0 || args[0] == "-" {
		return "."
	}
	info, err := os.Stat(args[0])
	if err == nil && info.IsDir() {
		return args[0]
	}
	return filepath.Dir(args[0])
}
