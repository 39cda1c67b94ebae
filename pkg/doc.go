// Package pkg provides the libraries behind the lamafmt formatter.
//
// # Overview
//
// lamafmt lays out Lama source code by building, for every construct, the
// set of its Pareto-optimal renderings under a page width, and printing the
// shortest one. The pkg directory is organized into these areas:
//
//  1. [layout] - The layout algebra (formats, measures, candidate sets)
//  2. [lama] - Lama parser and printer built on the algebra
//  3. [pipeline] - Orchestration (parse → layout → render) with caching
//  4. [cache], [config], [errors], [observability] - Infrastructure
//  5. [inspect], [server] - Debug views and the HTTP service
//
// # Architecture
//
// The typical data flow through lamafmt:
//
//	Lama source
//	     ↓
//	[lama] package (parse into a syntax tree with comments)
//	     ↓
//	[layout] package (combine candidate sets bottom-up)
//	     ↓
//	best candidate → formatted text
//
// # Quick Start
//
// Format a source string with the default options:
//
//	import (
//	    "github.com/matzehuels/lamafmt/pkg/lama"
//	    "github.com/matzehuels/lamafmt/pkg/layout"
//	)
//
//	out, err := lama.Format(src, layout.Config{Width: 80})
//
// Or run through the cached pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Format(ctx, src, pipeline.Options{Width: 80})
//	fmt.Print(res.Formatted)
//
// [layout]: github.com/matzehuels/lamafmt/pkg/layout
// [lama]: github.com/matzehuels/lamafmt/pkg/lama
// [pipeline]: github.com/matzehuels/lamafmt/pkg/pipeline
// [cache]: github.com/matzehuels/lamafmt/pkg/cache
// [config]: github.com/matzehuels/lamafmt/pkg/config
// [errors]: github.com/matzehuels/lamafmt/pkg/errors
// [observability]: github.com/matzehuels/lamafmt/pkg/observability
// [inspect]: github.com/matzehuels/lamafmt/pkg/inspect
// [server]: github.com/matzehuels/lamafmt/pkg/server
package pkg
