package cli

import (
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ticketsheet/pkg/buildinfo"
	"github.com/matzehuels/ticketsheet/pkg/cache"
	"github.com/matzehuels/ticketsheet/pkg/config"
	"github.com/matzehuels/ticketsheet/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "ticketsheet"

	// configFileName is the file looked up in the user config directory.
	configFileName = "config.toml"

	// defaultAddr is the listen address of the preview server.
	defaultAddr = "127.0.0.1:8080"
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

	// Out receives console output (summaries, file lists).
	Out io.Writer

	images cache.Cache[image.Image]
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		images: cache.NewMemory[image.Image](),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// applyDebug raises the log level to debug when the configuration asks for
// debug output.
func (c *CLI) applyDebug(cfg config.Config) {
	if cfg.Output.Debug {
		c.SetLogLevel(LogDebug)
	}
}

// verbose reports whether debug logging is enabled.
func (c *CLI) verbose() bool {
	return c.Logger.GetLevel() <= log.DebugLevel
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Ticketsheet generates numbered event tickets ready for printing",
		Long:         `Ticketsheet draws a range of numbered event tickets (front and back) and tiles them onto printable sheets, written as one fronts document and one backs document for duplex printing.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Decoded images are shared
// between runs of the same process unless noCache is set, in which case
// every load decodes the file again.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	if noCache {
		return pipeline.NewRunner(cache.NewNull[image.Image](), c.Logger)
	}
	return pipeline.NewRunner(c.images, c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/ticketsheet/).
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

// defaultConfigPath returns the user config file path.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// loadConfig reads path, or the user config file when path is empty and the
// file exists, or falls back to the defaults. It returns the file it used.
func loadConfig(path string) (config.Config, string, error) {
	if path != "" {
		cfg, err := config.Load(path)
		return cfg, path, err
	}
	def, err := defaultConfigPath()
	if err != nil {
		return config.Default(), "", nil
	}
	if _, err := os.Stat(def); err != nil {
		return config.Default(), "", nil
	}
	cfg, err := config.Load(def)
	return cfg, def, err
}
