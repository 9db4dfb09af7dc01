// Package cli implements the levelgraph command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/levelgraph/pkg/buildinfo"
	"github.com/matzehuels/levelgraph/pkg/cache"
	"github.com/matzehuels/levelgraph/pkg/graph"
	"github.com/matzehuels/levelgraph/pkg/observability"
	"github.com/matzehuels/levelgraph/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "levelgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configFile string
	envFile    string
	verbose    bool
	noCache    bool
	input      string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Levelgraph arranges ordered sequences into a levelled dependency graph",
		Long: `Levelgraph merges ordered sequences (a -> b -> c) into a directed acyclic
graph, assigns every node a level, and answers relation queries over it.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&c.configFile, "config", "", "config file (default: "+filepath.Join("$XDG_CONFIG_HOME", appName, "config.toml")+")")
	pf.StringVar(&c.envFile, "env-file", ".env", "dotenv file with LEVELGRAPH_* overrides")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the on-disk cache")
	pf.StringVarP(&c.input, "input", "i", "", "input format: json, toml, hcl, text (default: from file extension)")

	root.AddCommand(c.levelsCommand())
	root.AddCommand(c.nodesCommand())
	root.AddCommand(c.sortCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.neighboursCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads configuration and applies the log level before any command runs.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(c.configFile, c.envFile)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)

	if level <= log.DebugLevel {
		hooks := &logHooks{logger: c.Logger}
		observability.SetGraphHooks(hooks)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
	}
	return nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	cache, err := c.newCache()
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, c.newKeyer(), c.Logger), nil
}

func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache || c.Config.NoCache {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) newKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
}

// loadGraph reads the sequence file at path through a cached runner.
func (c *CLI) loadGraph(cmd *cobra.Command, path string) (*graph.Graph[string], error) {
	runner, err := c.newRunner()
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	return runner.Load(cmd.Context(), pipeline.Options{
		Source: path,
		Input:  c.input,
		Logger: c.Logger,
	})
}

// cacheDir returns the configured cache directory, falling back to the XDG
// standard (~/.cache/levelgraph/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	return cacheDir()
}

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

// configDir returns the config directory using XDG standard (~/.config/levelgraph/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// parseList splits a comma-separated flag value, dropping blanks.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
