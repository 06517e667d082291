package salt

import (
	"fmt"
	"strings"
)

// LexError reports a character the lexer does not recognise or a literal it
// cannot represent.
type LexError struct {
	Loc  *Location
	Char rune
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s lex error: %s", e.Loc, e.Msg)
}

// ParseError reports a token that does not fit the grammar. Found is the
// end-of-input token when the source stopped early.
type ParseError struct {
	Loc      *Location
	Expected string
	Found    Token
	Msg      string
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s parse error: %s", e.Loc, e.Msg)
	}

	return fmt.Sprintf("%s parse error: expected %s, found %s", e.Loc, e.Expected, e.Found)
}

// AtEOF reports whether more input could have completed the parse.
func (e *ParseError) AtEOF() bool {
	return e.Found.Typ == TokenEOF
}

type LoadError struct {
	Loc  *Location
	Name string
	Msg  string
}

func (e *LoadError) Error() string {
	if e.Loc == nil {
		return fmt.Sprintf("load error: %s", e.Msg)
	}

	return fmt.Sprintf("%s load error: %s", e.Loc, e.Msg)
}

type TypeError struct {
	Loc      *Location
	Op       string
	Expected ValueKind
	Got      []ValueKind
}

func (e *TypeError) Error() string {
	got := make([]string, len(e.Got))
	for i, k := range e.Got {
		got[i] = k.String()
	}

	return fmt.Sprintf("%s type error: %s expects %s, got %s", e.Loc, e.Op, e.Expected, strings.Join(got, " and "))
}

const (
	UndefinedVariable = "variable"
	UndefinedFunction = "function"
)

type UndefinedError struct {
	Loc  *Location
	Kind string
	Name string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("%s undefined %s: %s", e.Loc, e.Kind, e.Name)
}

type ArityError struct {
	Loc      *Location
	Name     string
	Expected int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s arity error: %s takes %d argument(s), got %d", e.Loc, e.Name, e.Expected, e.Got)
}

type ArithmeticError struct {
	Loc *Location
	Op  BinaryOp
}

func (e *ArithmeticError) Error() string {
	what := "division"
	if e.Op == BinaryModulo {
		what = "modulo"
	}

	return fmt.Sprintf("%s arithmetic error: %s by zero", e.Loc, what)
}

type StackOverflowError struct {
	Loc   *Location
	Name  string
	Depth int
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("%s stack overflow: call to %s exceeds depth %d", e.Loc, e.Name, e.Depth)
}
