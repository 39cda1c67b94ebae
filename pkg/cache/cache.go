// Package cache stores formatted output keyed by source content and
// formatting options.
//
// Three backends are provided:
//   - [FileCache] keeps entries as JSON files under a directory (CLI default)
//   - [RedisCache] shares entries between processes (used by the HTTP server)
//   - [NullCache] stores nothing (caching disabled)
//
// Keys are produced by a [Keyer] so that every backend sees the same key for
// the same source and options.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// FormatKeyOpts are the options that change formatter output.
type FormatKeyOpts struct {
	Width  int    `json:"width"`
	Indent int    `json:"indent"`
	Policy string `json:"policy"`
}

// Keyer generates cache keys.
type Keyer interface {
	// FormatKey returns the key for the formatted output of a source whose
	// content hash is sourceHash.
	FormatKey(sourceHash string, opts FormatKeyOpts) string
}

// TTLFormat is how long formatted output stays cached.
const TTLFormat = 7 * 24 * time.Hour

// KeyVersion is bumped whenever the formatter output changes for the same
// input, invalidating older entries.
const KeyVersion = "v2"

// DefaultKeyer produces "fmt:<version>:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FormatKey implements Keyer.
func (DefaultKeyer) FormatKey(sourceHash string, opts FormatKeyOpts) string {
	return formatKey("fmt:"+KeyVersion, sourceHash, opts)
}

// ScopedKeyer prefixes the keys of another Keyer, giving callers that share a
// backend separate namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// FormatKey implements Keyer.
func (k *ScopedKeyer) FormatKey(sourceHash string, opts FormatKeyOpts) string {
	return k.prefix + k.inner.FormatKey(sourceHash, opts)
}
