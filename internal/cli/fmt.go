package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	lerrors "github.com/matzehuels/lamafmt/pkg/errors"
	"github.com/matzehuels/lamafmt/pkg/pipeline"
)

// stdinName is the display name of source read from standard input.
const stdinName = "<stdin>"

// fmtFlags holds flags for the fmt command.
type fmtFlags struct {
	formatFlags
	write bool
	list  bool
	jobs  int
}

// fmtCommand creates the fmt command for formatting Lama sources.
func (c *CLI) fmtCommand() *cobra.Command {
	var ff fmtFlags

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Format Lama source files",
		Long: `Format Lama source files.

With no paths, or with "-", source is read from stdin and the formatted
result is written to stdout. Directories are searched recursively for .lama
files. By default formatted sources are printed; use --write to update the
files in place or --list to print the names of files that would change.`,
		Example: `  # Format stdin
  lamafmt fmt < main.lama

  # Rewrite every file under src/ for an 80 column page
  lamafmt fmt -w --width 80 src/

  # List files whose formatting differs
  lamafmt fmt -l .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFmt(cmd, args, &ff)
		},
	}

	ff.register(cmd)
	cmd.Flags().BoolVarP(&ff.write, "write", "w", false, "write result to the source files instead of stdout")
	cmd.Flags().BoolVarP(&ff.list, "list", "l", false, "list files whose formatting differs")
	cmd.Flags().IntVarP(&ff.jobs, "jobs", "j", pipeline.DefaultConcurrency, "number of files formatted in parallel")

	return cmd
}

func (c *CLI) runFmt(cmd *cobra.Command, args []string, ff *fmtFlags) error {
	s, err := c.resolve(cmd, &ff.formatFlags, configDir(args))
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
		if ff.list {
			if res.Changed {
				fmt.Fprintln(out, stdinName)
			}
			return nil
		}
		_, err = io.WriteString(out, res.Formatted)
		return err
	}

	results, err := c.formatPaths(cmd, runner, args, s.opts, ff.jobs, ff.write)
	if err != nil {
		return err
	}

	for i := range results {
		r := &results[i]
		if r.Err != nil {
			printError(errOut, "%s", lerrors.UserMessage(r.Err))
			continue
		}
		switch {
		case ff.list:
			if r.Result.Changed {
				fmt.Fprintln(out, r.Path)
			}
		case ff.write:
			if r.Result.Changed {
				if err := writeSource(r.Path, r.Result.Formatted); err != nil {
					r.Err = fmt.Errorf("write %s: %w", r.Path, err)
					printError(errOut, "%v", r.Err)
					continue
				}
				printFile(errOut, r.Path)
			}
		default:
			if _, err := io.WriteString(out, r.Result.Formatted); err != nil {
				return err
			}
		}
	}

	st := collectStats(results)
	if ff.write {
		printStats(errOut, st)
	}
	if st.failed > 0 {
		return fmt.Errorf("%d of %d files could not be formatted", st.failed, st.files)
	}
	return nil
}

// formatPaths expands args and formats the files concurrently. A spinner is
// shown on stderr while more than one file is in flight and the results are
// not streamed to stdout.
func (c *CLI) formatPaths(cmd *cobra.Command, runner *pipeline.Runner, args []string, opts pipeline.Options, jobs int, spin bool) ([]pipeline.FileResult, error) {
	paths, err := pipeline.ExpandPaths(args)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		printWarning(cmd.ErrOrStderr(), "no .lama files found")
		return nil, nil
	}

	ctx := cmd.Context()
	prog := newProgress(loggerFromContext(ctx))

	if spin && len(paths) > 1 && !c.verbose {
		sp := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Formatting %d files...", len(paths)))
		sp.Start()
		defer sp.Stop()
	}

	results, err := runner.FormatFiles(ctx, paths, opts, jobs)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Processed %d files", len(paths)))
	return results, nil
}

// formatStdin formats source read from the command's input.
func formatStdin(cmd *cobra.Command, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	opts.Filename = stdinName
	return runner.Format(cmd.Context(), string(src), opts)
}

func isStdin(args []string) bool {
	return len(args) == 0 || (len(args) == 1 && args[0] == "-")
}

// writeSource is the file writer used by fmt --write.
var writeSource = writeFormatted

// writeFormatted replaces the contents of path, keeping its permissions.
func writeFormatted(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), info.Mode().Perm())
}
