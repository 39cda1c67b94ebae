// Package pipeline runs the parse → layout → render steps of the formatter
// with caching, hooks and logging.
//
// The CLI and the HTTP server both go through a [Runner] so that options are
// validated, defaulted and cached the same way everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Format(ctx, src, pipeline.Options{Width: 80})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(res.Formatted)
//
// Many files are formatted concurrently with [Runner.FormatFiles].
package pipeline

import (
	"time"

	"github.com/matzehuels/lamafmt/pkg/cache"
	"github.com/matzehuels/lamafmt/pkg/errors"
	"github.com/matzehuels/lamafmt/pkg/lama"
	"github.com/matzehuels/lamafmt/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the page width used when none is given.
	DefaultWidth = layout.DefaultWidth

	// DefaultIndent is the shift of nested blocks.
	DefaultIndent = lama.DefaultIndent

	// DefaultPolicy merges alternatives under the larger width budget.
	DefaultPolicy = "max"

	// DefaultConcurrency bounds FormatFiles when no limit is given.
	DefaultConcurrency = 8
)

// =============================================================================
// Options
// =============================================================================

// Options configures a formatting run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Filename string `json:"filename,omitempty"` // used in messages only
	Width    int    `json:"width,omitempty"`
	Indent   int    `json:"indent,omitempty"`
	Policy   string `json:"policy,omitempty"` // max, min or equal
	Refresh  bool   `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	CacheTTL time.Duration `json:"-"`

	policy    layout.WidthPolicy
	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if err := errors.ValidateWidth(o.Width); err != nil {
		return err
	}
	if o.Indent == 0 {
		o.Indent = DefaultIndent
	}
	if err := errors.ValidateIndent(o.Indent); err != nil {
		return err
	}
	if o.Policy == "" {
		o.Policy = DefaultPolicy
	}
	p, err := layout.ParseWidthPolicy(o.Policy)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPolicy, err, "invalid policy %q (must be one of: max, min, equal)", o.Policy)
	}
	o.policy = p
	if o.CacheTTL == 0 {
		o.CacheTTL = cache.TTLFormat
	}
	o.validated = true
	return nil
}

// LamaOptions returns the printer options. The options must be validated.
func (o *Options) LamaOptions() lama.Options {
	return lama.Options{Width: o.Width, Indent: o.Indent, Policy: o.policy}
}

// KeyOpts returns the cache key options.
func (o *Options) KeyOpts() cache.FormatKeyOpts {
	return cache.FormatKeyOpts{Width: o.Width, Indent: o.Indent, Policy: o.Policy}
}

// =============================================================================
// Results
// =============================================================================

// Result is the output of formatting one source.
type Result struct {
	// Formatted is the rendered source.
	Formatted string

	// Changed reports whether Formatted differs from the input.
	Changed bool

	// Height is the number of lines of the chosen layout.
	Height int

	// Candidates is the size of the final candidate set.
	Candidates int

	// Stats holds printer counters. Zero on a cache hit.
	Stats lama.Stats

	// Cached reports whether the output came from the cache.
	Cached bool

	// Duration is the wall time of the run.
	Duration time.Duration
}

// cachedResult is the cache representation of a Result.
type cachedResult struct {
	Formatted  string `json:"formatted"`
	Height     int    `json:"height"`
	Candidates int    `json:"candidates"`
}
