package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/lamafmt/pkg/lama"
	"github.com/matzehuels/lamafmt/pkg/observability"
)

// Layout builds the candidate set of doc and reports the stage to the format
// hooks. opts must be validated.
func Layout(ctx context.Context, doc *lama.Document, opts Options) (*lama.Result, error) {
	hooks := observability.Format()
	hooks.OnLayoutStart(ctx, opts.Filename, opts.Width)
	start := time.Now()

	res, err := doc.Layout(opts.LamaOptions())
	candidates := 0
	if res != nil {
		candidates = res.Set.Len()
	}
	hooks.OnLayoutComplete(ctx, opts.Filename, candidates, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return res, nil
}
