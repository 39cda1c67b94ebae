package lama

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Unit is the root of a Lama source file.
type Unit struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Imports []*Import      `parser:"@@*"`
	Body    *Scope         `parser:"@@"`
}

// Import is a single "import Name;" line.
type Import struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name string         `parser:"'import' @UIdent ';'"`
}

// Scope is a run of definitions followed by an optional expression.
type Scope struct {
	Definitions []*Definition `parser:"@@*"`
	Expr        *Expr         `parser:"@@?"`
}

// IsEmpty reports whether the scope has neither definitions nor an expression.
func (s *Scope) IsEmpty() bool {
	return s == nil || (len(s.Definitions) == 0 && s.Expr == nil)
}

// Definition is a function, infix operator or variable definition.
type Definition struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Fun   *FunDef        `parser:"  @@"`
	Infix *InfixDef      `parser:"| @@"`
	Var   *VarDef        `parser:"| @@"`
}

// FunDef is "[public] fun name (args) { body }".
type FunDef struct {
	Public bool       `parser:"@'public'?"`
	Name   string     `parser:"'fun' @LIdent"`
	Args   []*Pattern `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
	Body   *Scope     `parser:"'{' @@ '}'"`
}

// InfixDef is "[public] infixl op at other (args) { body }".
type InfixDef struct {
	Public bool       `parser:"@'public'?"`
	Kind   string     `parser:"@( 'infixl' | 'infixr' | 'infix' )"`
	Op     string     `parser:"@Operator"`
	Level  string     `parser:"@( 'at' | 'before' | 'after' )"`
	Other  string     `parser:"@Operator"`
	Args   []*Pattern `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
	Body   *Scope     `parser:"'{' @@ '}'"`
}

// VarDef is "var a, b = e;" or "public a, b = e;".
type VarDef struct {
	Public bool       `parser:"( @'public' | 'var' )"`
	Items  []*VarItem `parser:"@@ ( ',' @@ )* ';'"`
}

// VarItem is one variable of a VarDef with its optional initializer.
type VarItem struct {
	Name  string     `parser:"@LIdent"`
	Value *BasicExpr `parser:"( '=' @@ )?"`
}

// Expr is a let-in expression or a ";"-separated sequence of basic
// expressions.
type Expr struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Let  *LetIn         `parser:"  @@"`
	Head *BasicExpr     `parser:"| @@"`
	Tail *Expr          `parser:"  ( ';' @@ )?"`
}

// LetIn is "let pattern = e in body".
type LetIn struct {
	Pattern *Pattern `parser:"'let' @@"`
	Value   *Expr    `parser:"'=' @@"`
	Body    *Expr    `parser:"'in' @@"`
}

// BasicExpr is a chain of postfix expressions joined by binary operators.
// Operators are kept in source order; precedence does not affect layout.
type BasicExpr struct {
	Head *PostfixExpr `parser:"@@"`
	Ops  []*BinaryOp  `parser:"@@*"`
}

// BinaryOp is one "op operand" step of a BasicExpr.
type BinaryOp struct {
	Op    Operator     `parser:"@@"`
	Right *PostfixExpr `parser:"@@"`
}

// Operator is a binary operator token. Tokens in reservedOperators are
// rejected so that "|" can end a case branch.
type Operator string

// Parse implements participle.Parseable.
func (o *Operator) Parse(lex *lexer.PeekingLexer) error {
	tok := lex.Peek()
	if tok.EOF() || tok.Type != operatorTokenType || reservedOperators[tok.Value] {
		return participle.NextMatch
	}
	lex.Next()
	*o = Operator(tok.Value)
	return nil
}

// PostfixExpr is an optionally negated primary followed by calls, indexing
// and field accesses.
type PostfixExpr struct {
	Neg      bool       `parser:"@'-'?"`
	Primary  *Primary   `parser:"@@"`
	Suffixes []*Postfix `parser:"@@*"`
}

// Postfix is a call, an index or a field access.
type Postfix struct {
	Call  *Call  `parser:"  @@"`
	Index *Expr  `parser:"| '[' @@ ']'"`
	Field *Field `parser:"| '.' @@"`
}

// Call is a parenthesised argument list.
type Call struct {
	Args []*Expr `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
}

// Field is ".name" with an optional call, as in ".length" or "x.f(y)".
type Field struct {
	Name string `parser:"@LIdent"`
	Call *Call  `parser:"@@?"`
}

// Primary is an atom of an expression.
type Primary struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Number  *string        `parser:"  @Number"`
	String  *string        `parser:"| @String"`
	Char    *string        `parser:"| @Char"`
	Bool    *string        `parser:"| @( 'true' | 'false' )"`
	Infix   *string        `parser:"| 'infix' @Operator"`
	Lambda  *Lambda        `parser:"| @@"`
	Skip    bool           `parser:"| @'skip'"`
	List    *List          `parser:"| @@"`
	Array   *Array         `parser:"| @@"`
	Sexp    *Sexp          `parser:"| @@"`
	If      *If            `parser:"| @@"`
	While   *While         `parser:"| @@"`
	DoWhile *DoWhile       `parser:"| @@"`
	For     *For           `parser:"| @@"`
	Case    *Case          `parser:"| @@"`
	Lazy    *BasicExpr     `parser:"| 'lazy' @@"`
	Eta     *BasicExpr     `parser:"| 'eta' @@"`
	Syntax  *SyntaxGroup   `parser:"| 'syntax' @@"`
	Paren   *Scope         `parser:"| '(' @@ ')'"`
	Ident   *string        `parser:"| @LIdent"`
}

// SyntaxGroup is a parenthesised list of parser alternatives, as in
// "syntax (x=a {x} | b)".
type SyntaxGroup struct {
	Alts []*SyntaxSeq `parser:"'(' @@ ( '|' @@ )* ')'"`
}

// SyntaxSeq is one alternative: a run of bindings with an optional semantic
// action.
type SyntaxSeq struct {
	Bindings []*SyntaxBinding `parser:"@@+"`
	Action   *Scope           `parser:"( '{' @@ '}' )?"`
}

// SyntaxBinding is "[-] [pattern =] item". A leading "-" drops the parsed
// value.
type SyntaxBinding struct {
	Omit    bool           `parser:"@'-'?"`
	Pattern *Pattern       `parser:"( @@ '=' )?"`
	Item    *SyntaxPostfix `parser:"@@"`
}

// SyntaxPostfix is a syntax primary with an optional repetition suffix.
type SyntaxPostfix struct {
	Primary *SyntaxPrimary `parser:"@@"`
	Repeat  string         `parser:"@( '*' | '+' | '?' )?"`
}

// SyntaxPrimary is a parser name with bracketed arguments, a nested group
// or an escaped expression "$(e)".
type SyntaxPrimary struct {
	Rule   *SyntaxRule  `parser:"  @@"`
	Group  *SyntaxGroup `parser:"| @@"`
	Escape *Expr        `parser:"| '$' '(' @@ ')'"`
}

// SyntaxRule is "name" or "name[a, b][c]".
type SyntaxRule struct {
	Name string        `parser:"@LIdent"`
	Args []*SyntaxArgs `parser:"@@*"`
}

// SyntaxArgs is one bracketed argument list of a SyntaxRule.
type SyntaxArgs struct {
	Exprs []*Expr `parser:"'[' @@ ( ',' @@ )* ']'"`
}

// Lambda is "fun (args) { body }".
type Lambda struct {
	Args []*Pattern `parser:"'fun' '(' ( @@ ( ',' @@ )* )? ')'"`
	Body *Scope     `parser:"'{' @@ '}'"`
}

// List is "{a, b, c}".
type List struct {
	Elems []*Expr `parser:"'{' ( @@ ( ',' @@ )* )? '}'"`
}

// Array is "[a, b, c]".
type Array struct {
	Elems []*Expr `parser:"'[' ( @@ ( ',' @@ )* )? ']'"`
}

// Sexp is an S-expression "Tag" or "Tag(a, b)".
type Sexp struct {
	Tag  string  `parser:"@UIdent"`
	Args []*Expr `parser:"( '(' @@ ( ',' @@ )* ')' )?"`
}

// If is "if c then s (elif c then s)* (else s)? fi".
type If struct {
	Cond  *Expr   `parser:"'if' @@"`
	Then  *Scope  `parser:"'then' @@"`
	Elifs []*Elif `parser:"@@*"`
	Else  *Scope  `parser:"( 'else' @@ )? 'fi'"`
}

// Elif is one "elif c then s" part of an If.
type Elif struct {
	Cond *Expr  `parser:"'elif' @@"`
	Then *Scope `parser:"'then' @@"`
}

// While is "while c do s od".
type While struct {
	Cond *Expr  `parser:"'while' @@"`
	Body *Scope `parser:"'do' @@ 'od'"`
}

// DoWhile is "do s while c od".
type DoWhile struct {
	Body *Scope `parser:"'do' @@"`
	Cond *Expr  `parser:"'while' @@ 'od'"`
}

// For is "for init, cond, step do s od".
type For struct {
	Init *Scope `parser:"'for' @@"`
	Cond *Expr  `parser:"',' @@"`
	Step *Expr  `parser:"',' @@"`
	Body *Scope `parser:"'do' @@ 'od'"`
}

// Case is "case e of p -> s | p -> s esac".
type Case struct {
	Subject  *Expr    `parser:"'case' @@ 'of'"`
	Branches []*Branch `parser:"@@ ( '|' @@ )* 'esac'"`
}

// Branch is one "pattern -> scope" arm of a Case.
type Branch struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Pattern *Pattern       `parser:"@@"`
	Body    *Scope         `parser:"'->' @@"`
}

// Pattern is a simple pattern optionally consed onto another pattern.
type Pattern struct {
	Head *SimplePattern `parser:"@@"`
	Tail *Pattern       `parser:"( ':' @@ )?"`
}

// SimplePattern is a pattern without a top-level cons.
type SimplePattern struct {
	Wildcard bool          `parser:"  @'_'"`
	Sexp     *SexpPattern  `parser:"| @@"`
	Array    *ArrayPattern `parser:"| @@"`
	List     *ListPattern  `parser:"| @@"`
	As       *AsPattern    `parser:"| @@"`
	Number   *string       `parser:"| @( '-'? Number )"`
	String   *string       `parser:"| @String"`
	Char     *string       `parser:"| @Char"`
	Bool     *string       `parser:"| @( 'true' | 'false' )"`
	Shape    *string       `parser:"| '#' @LIdent"`
	Paren    *Pattern      `parser:"| '(' @@ ')'"`
}

// SexpPattern is "Tag" or "Tag(p, q)".
type SexpPattern struct {
	Tag  string     `parser:"@UIdent"`
	Args []*Pattern `parser:"( '(' @@ ( ',' @@ )* ')' )?"`
}

// ArrayPattern is "[p, q]".
type ArrayPattern struct {
	Elems []*Pattern `parser:"'[' ( @@ ( ',' @@ )* )? ']'"`
}

// ListPattern is "{p, q}".
type ListPattern struct {
	Elems []*Pattern `parser:"'{' ( @@ ( ',' @@ )* )? '}'"`
}

// AsPattern is a variable, optionally bound to a nested pattern with "@" or
// to a shape test with "@#".
type AsPattern struct {
	Name  string   `parser:"@LIdent"`
	Bound *Pattern `parser:"( '@' @@"`
	Shape *string  `parser:"| '@#' @LIdent )?"`
}
