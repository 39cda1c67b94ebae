package lama

import (
	"errors"

	"github.com/alecthomas/participle/v2"

	lerrors "github.com/matzehuels/lamafmt/pkg/errors"
)

var unitParser = participle.MustBuild[Unit](
	participle.Lexer(lamaLexer),
	participle.Elide("Whitespace", "LineComment", "BlockComment"),
	participle.UseLookahead(32),
)

// Document is a parsed source file.
type Document struct {
	Filename string
	Unit     *Unit
	Comments []Comment
}

// Parse parses src. The filename is only used in error messages.
func Parse(filename, src string) (*Document, error) {
	if err := lerrors.ValidateSource(src); err != nil {
		return nil, err
	}

	comments, err := scanComments(filename, src)
	if err != nil {
		return nil, syntaxError(filename, err)
	}
	unit, err := unitParser.ParseString(filename, src)
	if err != nil {
		return nil, syntaxError(filename, err)
	}
	return &Document{Filename: filename, Unit: unit, Comments: comments}, nil
}

func syntaxError(filename string, err error) error {
	var perr participle.Error
	if !errors.As(err, &perr) {
		return lerrors.Wrap(lerrors.ErrCodeParse, err, "parse %s", displayName(filename))
	}
	pos := perr.Position()
	syn := &lerrors.SyntaxError{
		Filename: filename,
		Line:     pos.Line,
		Column:   pos.Column,
		Message:  perr.Message(),
	}
	return lerrors.Wrap(lerrors.ErrCodeParse, syn, "parse %s", displayName(filename))
}

func displayName(filename string) string {
	if filename == "" {
		return "<input>"
	}
	return filename
}
