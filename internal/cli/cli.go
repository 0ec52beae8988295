// Package cli implements the jigsaw command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/jigsaw/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for config files and display.
const appName = "jigsaw"

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

	out     io.Writer
	v       *viper.Viper
	cfgFile string
}

// New creates a new CLI instance with a default logger. Command output
// goes to out; logs go to logw.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(logw, level),
		out:    out,
		v:      newViper(),
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
		Short: "Jigsaw lays out photo galleries as justified rows",
		Long: `Jigsaw arranges an ordered list of photos into rows that exactly fill
the container width, choosing row breaks that keep row heights close to an
ideal height.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(c.v, c.cfgFile)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default: ./jigsaw.toml or $XDG_CONFIG_HOME/jigsaw/jigsaw.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.tuneCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}
