package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/lamafmt/pkg/lama"
	"github.com/matzehuels/lamafmt/pkg/observability"
)

// Parse parses src and reports the stage to the format hooks.
func Parse(ctx context.Context, src string, opts Options) (*lama.Document, error) {
	hooks := observability.Format()
	hooks.OnParseStart(ctx, opts.Filename)
	start := time.Now()

	doc, err := lama.Parse(opts.Filename, src)
	hooks.OnParseComplete(ctx, opts.Filename, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
