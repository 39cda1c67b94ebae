package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lamafmt/pkg/lama"
	"github.com/matzehuels/lamafmt/pkg/pipeline"
)

// exploreCommand creates the explore command, an interactive view of the
// candidate set.
func (c *CLI) exploreCommand() *cobra.Command {
	var ff formatFlags

	cmd := &cobra.Command{
		Use:   "explore <file>",
		Short: "Browse layout candidates interactively",
		Long: `Browse the layout candidates of a source interactively.

Use the arrow keys to move between candidates and +/- to change the page
width. The selected candidate is previewed below the table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.resolve(cmd, &ff, configDir(args))
			if err != nil {
				return err
			}
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			s.opts.Filename = name

			runner := pipeline.NewRunner(nil, nil, c.Logger)
			analyze := func(ctx context.Context, opts pipeline.Options) (*lama.Result, error) {
				return runner.Analyze(ctx, src, opts)
			}

			model := NewExploreModel(cmd.Context(), name, s.opts, analyze)
			p := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	ff.register(cmd)
	return cmd
}
