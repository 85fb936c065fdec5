// Package cli implements the pinmagik command-line interface.
//
// The CLI is a headless editor for PinMagik documents. Every editing
// command loads a document, applies one change and saves it back. Nodes
// are addressed by their index in the project (0 is the graph input, 1 the
// graph output), and ports by NODE:PORT where PORT is a port index or, on
// the boundary nodes, a GPIO name such as gpio17.
//
// # Commands
//
//   - new, show: create and inspect documents
//   - types, nodes: list project types and node kinds
//   - add, remove, move, set: edit nodes
//   - connect, disconnect: edit wiring
//   - compile: generate the Python control script
//   - graph: draw the wiring as DOT, SVG, PDF or PNG
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The level
// otherwise comes from the [log] section of the config file.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pinmagik/pinmagik/pkg/buildinfo"
	"github.com/pinmagik/pinmagik/pkg/catalog"
	"github.com/pinmagik/pinmagik/pkg/config"
)

// appName is the application name used for display.
const appName = "pinmagik"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger   *log.Logger
	Config   config.Config
	Registry *catalog.Registry

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger, the default
// configuration and the built-in node catalog.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		Config:   config.Default(),
		Registry: catalog.Default(),
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
		Short: "PinMagik turns logic graphs into Raspberry Pi GPIO scripts",
		Long: `PinMagik edits dataflow graphs of logic gates, timers and GPIO pins and
compiles them into a Python control script for the Raspberry Pi.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pinmagik/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.newCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.nodesCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.setCommand())
	root.AddCommand(c.connectCommand())
	root.AddCommand(c.disconnectCommand())
	root.AddCommand(c.compileCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and applies its log level.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	path := c.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			c.Logger.Debug("no config directory", "error", err)
			return nil
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = LogInfo
	}
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	c.Logger.Debug("config loaded", "path", path, "default_type", cfg.DefaultType)
	return nil
}
