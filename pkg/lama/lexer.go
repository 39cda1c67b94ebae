package lama

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

var (
	lamaLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "BlockComment", Pattern: `\(\*(?s:.*?)\*\)`},
		{Name: "LineComment", Pattern: `--[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "String", Pattern: `"(?:[^"]|"")*"`},
		{Name: "Char", Pattern: `'(?:[^']|''|\\n|\\t)'`},
		{Name: "Keyword", Pattern: `(?:import|public|fun|var|if|then|elif|else|fi|while|do|od|for|case|of|esac|skip|true|false|infixl|infixr|infix|lazy|eta|syntax|let|in)\b`},
		{Name: "UIdent", Pattern: `[A-Z][A-Za-z0-9_]*`},
		{Name: "LIdent", Pattern: `[a-z][A-Za-z0-9_]*`},
		{Name: "Number", Pattern: `[0-9]+`},
		{Name: "Operator", Pattern: `[-+*/%$#@!|&^~?<>:=]+`},
		{Name: "Punct", Pattern: `[(){}\[\],;._]`},
	})

	operatorTokenType     = mustTokenType("Operator")
	lineCommentTokenType  = mustTokenType("LineComment")
	blockCommentTokenType = mustTokenType("BlockComment")
)

// reservedOperators never act as binary operators. They delimit case
// branches, definitions and patterns.
var reservedOperators = map[string]bool{
	"|":  true,
	"->": true,
	"=":  true,
	"@":  true,
	"@#": true,
}

// Comment is a source comment with the lines it spans.
type Comment struct {
	Text      string
	StartLine int
	EndLine   int
}

// scanComments lexes src and returns its comments in source order.
func scanComments(filename, src string) ([]Comment, error) {
	lex, err := lamaLexer.LexString(filename, src)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}

	var comments []Comment
	for _, tok := range tokens {
		if tok.Type != lineCommentTokenType && tok.Type != blockCommentTokenType {
			continue
		}
		text := strings.TrimRight(tok.Value, " \t\r")
		if tok.Type == blockCommentTokenType {
			text = dedent(text, tok.Pos.Column-1)
		}
		comments = append(comments, Comment{
			Text:      text,
			StartLine: tok.Pos.Line,
			EndLine:   tok.Pos.Line + strings.Count(tok.Value, "\n"),
		})
	}
	return comments, nil
}

// dedent removes from the continuation lines of a block comment the
// indentation they share, but never more than the column the comment opened
// at. The printer adds its own margin back.
func dedent(text string, column int) string {
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		return text
	}
	strip := column
	for _, l := range lines[1:] {
		if strings.TrimSpace(l) == "" {
			continue
		}
		strip = min(strip, len(l)-len(strings.TrimLeft(l, " \t")))
	}
	for i, l := range lines[1:] {
		n := min(strip, len(l)-len(strings.TrimLeft(l, " \t")))
		lines[i+1] = strings.TrimRight(l[n:], " \t\r")
	}
	return strings.Join(lines, "\n")
}

func mustTokenType(name string) lexer.TokenType {
	tt, ok := lamaLexer.Symbols()[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
