// Package config loads .lamafmt.toml files.
//
// A configuration file is found by walking from the directory of the input
// upwards until a file named [FileName] is found. Values from the file sit
// between built-in defaults and command-line flags:
//
//	width  = 100
//	indent = 2
//	policy = "max"
//
//	[cache]
//	enabled   = true
//	dir       = "/tmp/lamafmt"
//	ttl       = "24h"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	lerrors "github.com/matzehuels/lamafmt/pkg/errors"
	"github.com/matzehuels/lamafmt/pkg/pipeline"
)

// FileName is the name searched for by Find.
const FileName = ".lamafmt.toml"

// File is the decoded contents of a configuration file. Pointer fields are
// nil when the key is absent.
type File struct {
	Width  *int    `toml:"width"`
	Indent *int    `toml:"indent"`
	Policy *string `toml:"policy"`
	Cache  Cache   `toml:"cache"`

	// Path is the file the values were read from, empty for defaults.
	Path string `toml:"-"`
}

// Cache configures the formatter cache.
type Cache struct {
	Enabled  *bool         `toml:"enabled"`
	Dir      string        `toml:"dir"`
	TTL      time.Duration `toml:"ttl"`
	RedisURL string        `toml:"redis_url"`
}

// CacheEnabled reports whether caching is on. Caching defaults to on.
func (f *File) CacheEnabled() bool {
	return f.Cache.Enabled == nil || *f.Cache.Enabled
}

// Apply copies the values present in f into opts.
func (f *File) Apply(opts *pipeline.Options) {
	if f.Width != nil {
		opts.Width = *f.Width
	}
	if f.Indent != nil {
		opts.Indent = *f.Indent
	}
	if f.Policy != nil {
		opts.Policy = *f.Policy
	}
	if f.Cache.TTL > 0 {
		opts.CacheTTL = f.Cache.TTL
	}
}

// Find returns the path of the nearest configuration file at or above dir,
// or "" if there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, FileName)
		info, err := os.Stat(path)
		switch {
		case err == nil && !info.IsDir():
			return path, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load decodes the file at path. Unknown keys are rejected.
func Load(path string) (*File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, lerrors.Wrap(lerrors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, lerrors.Wrap(lerrors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, lerrors.New(lerrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	f.Path = path
	return &f, nil
}

// Discover finds and loads the configuration for inputs in dir. An explicit
// path skips the search. With no file found, an empty File is returned.
func Discover(dir, explicit string) (*File, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, err := Find(dir)
	if err != nil {
		return nil, lerrors.Wrap(lerrors.ErrCodeInvalidConfig, err, "search for %s", FileName)
	}
	if path == "" {
		return &File{}, nil
	}
	return Load(path)
}
