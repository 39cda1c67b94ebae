package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/lamafmt/pkg/buildinfo"
	"github.com/matzehuels/lamafmt/pkg/config"
	"github.com/matzehuels/lamafmt/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level, plus hook events from the pipeline,
//     cache and server
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "lamafmt formats Lama source code",
		Long:          `lamafmt is a width-aware formatter for the Lama language. It explores alternative layouts of every construct and picks the shortest one that fits the page width.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				hooks := observability.NewLogHooks(c.Logger)
				observability.SetFormatHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetServerHooks(hooks)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (default: search for "+config.FileName+")")

	root.AddCommand(c.fmtCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
