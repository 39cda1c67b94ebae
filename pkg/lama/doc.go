// Package lama parses Lama source code and pretty-prints it within a page
// width.
//
// # Overview
//
// Formatting happens in three steps:
//
//  1. [Parse] turns source text into a [Document]: the syntax tree plus the
//     comments found in the file.
//  2. [Document.Layout] walks the tree and builds a [layout.Set] for every
//     construct. Each construct offers a flat one-line variant and one or more
//     vertical variants; the page width prunes what does not fit.
//  3. [Result.Text] renders the candidate with the fewest lines.
//
// [Format] runs all three steps for callers that only need the text:
//
//	out, err := lama.Format(src, layout.Config{Width: 80})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Supported Syntax
//
// The grammar covers imports, function, infix and variable definitions,
// expression sequences, binary operator chains, calls, indexing, field access,
// literals, lambdas, lists, arrays, S-expressions, if/elif/else, while, do-while,
// for, case with patterns, let-in, lazy, eta and syntax(...) parser
// expressions. String literals may span lines; their text is printed
// unchanged.
//
// # Comments
//
// Line (--) and block ((* *)) comments are kept. A comment is placed on its own
// line above the first definition, statement or case branch that starts after
// it. Comments after the last construct are appended at the end. The lines of
// a block comment keep their indentation relative to its first line.
//
// # Errors
//
// Parse failures are returned as errors with code [errors.ErrCodeParse] that
// wrap an [errors.SyntaxError]. When nothing fits the page width the error has
// code [errors.ErrCodeEmptyCandidateSet] and wraps
// [layout.ErrEmptyCandidateSet].
//
// [errors.ErrCodeParse]: github.com/matzehuels/lamafmt/pkg/errors.ErrCodeParse
// [errors.SyntaxError]: github.com/matzehuels/lamafmt/pkg/errors.SyntaxError
// [errors.ErrCodeEmptyCandidateSet]: github.com/matzehuels/lamafmt/pkg/errors.ErrCodeEmptyCandidateSet
package lama
