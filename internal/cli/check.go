package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	lerrors "github.com/matzehuels/lamafmt/pkg/errors"
)

// checkCommand creates the check command, which fails when a source is not
// formatted.
func (c *CLI) checkCommand() *cobra.Command {
	var ff formatFlags
	var jobs int

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check that Lama sources are formatted",
		Long: `Check that Lama sources are formatted.

Files whose formatting differs are listed on stdout and the command exits
with a non-zero status. Nothing is written.`,
		Example: `  lamafmt check src/
  lamafmt check --width 80 < main.lama`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.resolve(cmd, &ff, configDir(args))
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), s, nil)
			if err != nil {
				return err
			}
			defer runner.Close()

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			if isStdin(args) {
				res, err := formatStdin(cmd, runner, s.opts)
				if err != nil {
					return err
				}
				if res.Changed {
					fmt.Fprintln(out, stdinName)
					return lerrors.New(lerrors.ErrCodeNotFormatted, "%s is not formatted", stdinName)
				}
				return nil
			}

			results, err := c.formatPaths(cmd, runner, args, s.opts, jobs, true)
			if err != nil {
				return err
			}
			for _, r := range results {
				switch {
				case r.Err != nil:
					printError(errOut, "%s", lerrors.UserMessage(r.Err))
				case r.Result.Changed:
					fmt.Fprintln(out, r.Path)
				}
			}

			st := collectStats(results)
			switch {
			case st.failed > 0:
				return fmt.Errorf("%d of %d files could not be formatted", st.failed, st.files)
			case st.changed > 0:
				printNextStep(errOut, "Reformat in place with", "lamafmt fmt -w "+strings.Join(args, " "))
				return lerrors.New(lerrors.ErrCodeNotFormatted, "%d of %d files are not formatted", st.changed, st.files)
			}
			if st.files > 0 {
				printSuccess(errOut, "%d files formatted", st.files)
			}
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of files checked in parallel (default 8)")
	return cmd
}
