package lama

import (
	"errors"
	"strings"

	lerrors "github.com/matzehuels/lamafmt/pkg/errors"
	"github.com/matzehuels/lamafmt/pkg/layout"
)

// DefaultIndent is the number of columns nested blocks are shifted by.
const DefaultIndent = 3

// Options control how a Document is laid out.
type Options struct {
	Width  int                // page width in columns
	Indent int                // shift of nested blocks
	Policy layout.WidthPolicy // budget of merged alternatives
}

// DefaultOptions returns the options used by [Format].
func DefaultOptions() Options {
	return Options{
		Width:  layout.DefaultWidth,
		Indent: DefaultIndent,
		Policy: layout.WidthMax,
	}
}

// Stats describes the work done while laying out a document.
type Stats struct {
	Choices        int `json:"choices"`         // alternatives merged
	PeakCandidates int `json:"peak_candidates"` // largest frontier after a merge
	Comments       int `json:"comments"`        // comments placed
}

// Result is the layout of a whole document.
type Result struct {
	Set   layout.Set
	Stats Stats
}

// Best returns the candidate with the fewest lines.
func (r *Result) Best() (*layout.Format, error) {
	f, err := layout.PickBest(r.Set)
	if err != nil {
		return nil, lerrors.Wrap(lerrors.ErrCodeEmptyCandidateSet, err,
			"no layout fits within %d columns", r.Set.Width())
	}
	return f, nil
}

// Text renders the best candidate. Trailing whitespace is removed from every
// line outside multi-line literals and non-empty output ends with a newline.
func (r *Result) Text() (string, error) {
	f, err := r.Best()
	if err != nil {
		return "", err
	}
	return tidy(f), nil
}

// Layout builds the candidate set of the whole document.
func (d *Document) Layout(opts Options) (*Result, error) {
	p := newPrinter(opts, d.Comments)
	set := p.unit(d.Unit)
	if p.err != nil {
		code := lerrors.ErrCodeInternal
		if errors.Is(p.err, layout.ErrEmptyCandidateSet) {
			code = lerrors.ErrCodeEmptyCandidateSet
		}
		return nil, lerrors.Wrap(code, p.err, "layout %s", displayName(d.Filename))
	}
	p.stats.Comments = p.next
	return &Result{Set: set, Stats: p.stats}, nil
}

// Format parses src and renders it within cfg.Width columns using
// [DefaultIndent] and [layout.WidthMax].
func Format(src string, cfg layout.Config) (string, error) {
	doc, err := Parse("", src)
	if err != nil {
		return "", err
	}
	opts := DefaultOptions()
	opts.Width = cfg.Width
	res, err := doc.Layout(opts)
	if err != nil {
		return "", err
	}
	return res.Text()
}

func tidy(f *layout.Format) string {
	s := f.TrimmedText()
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s + "\n"
}
