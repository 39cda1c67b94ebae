package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/lamafmt/pkg/errors"
)

// FileResult is the outcome of formatting one file. Exactly one of Result
// and Err is set.
type FileResult struct {
	Path   string
	Result *Result
	Err    error
}

// FormatFile reads and formats the file at path.
func (r *Runner) FormatFile(ctx context.Context, path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	opts.Filename = path
	return r.Format(ctx, string(data), opts)
}

// FormatFiles formats paths concurrently, at most limit at a time (a limit
// of zero or less means DefaultConcurrency). Results are returned in the order
// of paths. A failure in one file does not stop the others; only context
// cancellation aborts the run.
func (r *Runner) FormatFiles(ctx context.Context, paths []string, opts Options, limit int) ([]FileResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.FormatFile(gctx, path, opts)
			results[i] = FileResult{Path: path, Result: res, Err: err}
			if err != nil {
				r.Logger.Debug("format failed", "file", path, "err", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ExpandPaths resolves the command-line arguments to a sorted list of source
// files. Directories are walked recursively for files with the source
// extension; hidden directories are skipped. Plain file arguments are kept
// as given.
func ExpandPaths(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", arg)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", arg)
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && len(d.Name()) > 1 && d.Name()[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if errors.ValidateSourcePath(path) == nil {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "walk %s", arg)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
