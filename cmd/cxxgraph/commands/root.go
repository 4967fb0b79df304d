// Package commands implements the CLI commands for cxxgraph.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/cxxgraph/internal/app"
	"go.trai.ch/cxxgraph/internal/build"
)

// CLI represents the command line interface for cxxgraph.
type CLI struct {
	app       Application
	configure func(app.LoggingOptions)
	rootCmd   *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Scan(ctx context.Context, root string, opts app.Options) (*app.Report, error)
	Graph(ctx context.Context, root string, opts app.Options) error
	Watch(ctx context.Context, root string, opts app.Options) error
	Clean(ctx context.Context, root string) error
}

// Option customizes a CLI.
type Option func(*CLI)

// WithLoggingConfigurer registers fn to receive the logging flags before any
// command runs.
func WithLoggingConfigurer(fn func(app.LoggingOptions)) Option {
	return func(c *CLI) {
		c.configure = fn
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "cxxgraph",
		Short:         "Discover C++ sources and modules and derive their build graph",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	// -v belongs to --verbose, so --version has no shorthand.
	rootCmd.Flags().Bool("version", false, "Print the application version")

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Settings file (default <root>/cxxgraph.yaml)")
	rootCmd.PersistentFlags().String("cache", "", "Cache file (default <root>/.cxxgraph/cache.yaml)")
	rootCmd.PersistentFlags().Bool("json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if c.configure == nil {
			return
		}
		jsonLogs, _ := cmd.Flags().GetBool("json")
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.configure(app.LoggingOptions{JSON: jsonLogs, Verbose: verbose})
	}

	rootCmd.AddCommand(c.newScanCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// rootArg returns the scan root named on the command line, or the working
// directory.
func rootArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func scanOptions(cmd *cobra.Command) app.Options {
	configPath, _ := cmd.Flags().GetString("config")
	cachePath, _ := cmd.Flags().GetString("cache")
	return app.Options{ConfigPath: configPath, CachePath: cachePath}
}
