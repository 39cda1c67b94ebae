package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lamafmt/pkg/cache"
	"github.com/matzehuels/lamafmt/pkg/lama"
	"github.com/matzehuels/lamafmt/pkg/observability"
)

// keyType labels cache events for this package.
const keyType = "format"

// Runner encapsulates formatting with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Format formats src, consulting the cache first unless opts.Refresh is set.
func (r *Runner) Format(ctx context.Context, src string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	start := time.Now()
	key := r.Keyer.FormatKey(cache.Hash([]byte(src)), opts.KeyOpts())

	if !opts.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			res.Changed = res.Formatted != src
			res.Duration = time.Since(start)
			r.Logger.Debug("cache hit", "file", opts.Filename, "duration", res.Duration)
			return res, nil
		}
	}

	res, err := r.format(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)
	r.store(ctx, key, res, opts.CacheTTL)

	r.Logger.Debug("formatted",
		"file", opts.Filename,
		"width", opts.Width,
		"candidates", res.Candidates,
		"peak", res.Stats.PeakCandidates,
		"duration", res.Duration)
	return res, nil
}

// Analyze parses and lays out src without touching the cache. It exposes the
// whole candidate set for debug views.
func (r *Runner) Analyze(ctx context.Context, src string, opts Options) (*lama.Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	doc, err := Parse(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	return Layout(ctx, doc, opts)
}

func (r *Runner) format(ctx context.Context, src string, opts Options) (*Result, error) {
	doc, err := Parse(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	lres, err := Layout(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	best, err := lres.Best()
	if err != nil {
		return nil, err
	}
	text, err := lres.Text()
	if err != nil {
		return nil, err
	}
	return &Result{
		Formatted:  text,
		Changed:    text != src,
		Height:     best.Height,
		Candidates: lres.Set.Len(),
		Stats:      lres.Stats,
	}, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	var entry cachedResult
	if err := json.Unmarshal(data, &entry); err != nil {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return &Result{
		Formatted:  entry.Formatted,
		Height:     entry.Height,
		Candidates: entry.Candidates,
		Cached:     true,
	}, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result, ttl time.Duration) {
	data, err := json.Marshal(cachedResult{
		Formatted:  res.Formatted,
		Height:     res.Height,
		Candidates: res.Candidates,
	})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
