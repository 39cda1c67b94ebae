package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	lerrors "github.com/matzehuels/lamafmt/pkg/errors"
	"github.com/matzehuels/lamafmt/pkg/inspect"
	"github.com/matzehuels/lamafmt/pkg/lama"
	"github.com/matzehuels/lamafmt/pkg/pipeline"
)

// inspectFlags holds flags for the inspect command.
type inspectFlags struct {
	formatFlags
	candidate int
	dot       bool
	svg       string
	show      bool
}

// inspectCommand creates the inspect command, which shows the candidate set
// the formatter chose from.
func (c *CLI) inspectCommand() *cobra.Command {
	var fl inspectFlags

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the layout candidates of a source",
		Long: `Show the layout candidates of a source.

By default a table of the surviving candidates and their measures is
printed; the highlighted row is the one fmt would pick. --dot prints the
layout tree of a candidate in Graphviz DOT format and --svg renders it.`,
		Example: `  lamafmt inspect main.lama
  lamafmt inspect --width 40 --candidate 1 --show main.lama
  lamafmt inspect --svg tree.svg main.lama`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args, &fl)
		},
	}

	fl.register(cmd)
	cmd.Flags().IntVar(&fl.candidate, "candidate", -1, "candidate to show (default: the best)")
	cmd.Flags().BoolVar(&fl.dot, "dot", false, "print the layout tree in DOT format")
	cmd.Flags().StringVar(&fl.svg, "svg", "", "render the layout tree to an SVG file")
	cmd.Flags().BoolVar(&fl.show, "show", false, "print the text of the candidate")

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, args []string, fl *inspectFlags) error {
	s, err := c.resolve(cmd, &fl.formatFlags, configDir(args))
	if err != nil {
		return err
	}
	name, src, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	s.opts.Filename = name

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	res, err := runner.Analyze(cmd.Context(), src, s.opts)
	if err != nil {
		return err
	}

	idx := fl.candidate
	if idx < 0 {
		idx = inspect.Best(res.Set)
	}
	if idx < 0 || idx >= res.Set.Len() {
		return lerrors.New(lerrors.ErrCodeInvalidInput, "candidate %d out of range (%d candidates)", idx, res.Set.Len())
	}
	f := res.Set.Candidates()[idx]
	out := cmd.OutOrStdout()

	switch {
	case fl.dot:
		_, err := io.WriteString(out, inspect.ToDOT(f))
		return err
	case fl.svg != "":
		data, err := inspect.RenderSVG(cmd.Context(), inspect.ToDOT(f))
		if err != nil {
			return err
		}
		if err := os.WriteFile(fl.svg, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", fl.svg, err)
		}
		printSuccess(cmd.ErrOrStderr(), "Rendered candidate %d", idx)
		printFile(cmd.ErrOrStderr(), fl.svg)
		return nil
	case fl.show:
		_, err := io.WriteString(out, f.Text()+"\n")
		return err
	}

	printSummary(out, name, s.opts, res)
	fmt.Fprintln(out, inspect.Table(res.Set, StyleHighlight))
	return nil
}

func printSummary(w io.Writer, name string, opts pipeline.Options, res *lama.Result) {
	fmt.Fprintln(w, StyleTitle.Render(name))
	printKeyValue(w, "width", StyleNumber.Render(strconv.Itoa(opts.Width)))
	printKeyValue(w, "indent", StyleNumber.Render(strconv.Itoa(opts.Indent)))
	printKeyValue(w, "policy", opts.Policy)
	printKeyValue(w, "choices", StyleNumber.Render(strconv.Itoa(res.Stats.Choices)))
	printKeyValue(w, "peak", StyleNumber.Render(strconv.Itoa(res.Stats.PeakCandidates)))
	printKeyValue(w, "comments", StyleNumber.Render(strconv.Itoa(res.Stats.Comments)))
	printKeyValue(w, "candidates", StyleNumber.Render(strconv.Itoa(res.Set.Len())))
}

// readSource reads the single file in args, or stdin when args is empty or
// "-".
func readSource(cmd *cobra.Command, args []string) (name, src string, err error) {
	if isStdin(args) {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return stdinName, string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", lerrors.Wrap(lerrors.ErrCodeFileNotFound, err, "file not found: %s", args[0])
		}
		return "", "", err
	}
	return args[0], string(data), nil
}
