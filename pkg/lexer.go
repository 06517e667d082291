package salt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

// EOF is returned by the reader helpers once the input is exhausted.
const EOF rune = -1

const (
	TokenEOF TokenType = iota
	TokenInteger
	TokenName

	TokenFn
	TokenIf
	TokenWhile
	TokenReturn
	TokenLet
	TokenPrint
	TokenTime
	TokenTrue
	TokenFalse

	TokenOpenParentheses
	TokenCloseParentheses
	TokenOpenCurly
	TokenCloseCurly
	TokenSemicolon
	TokenComma

	TokenAssign
	TokenEqual
	TokenNotEqual
	TokenLess
	TokenLessEqual
	TokenGreater
	TokenGreaterEqual
	TokenPlus
	TokenMinus
	TokenMulti
	TokenDiv
	TokenMod
	TokenBang
)

var keywordTable = map[string]TokenType{
	"fn":     TokenFn,
	"if":     TokenIf,
	"while":  TokenWhile,
	"return": TokenReturn,
	"let":    TokenLet,
	"print":  TokenPrint,
	"time":   TokenTime,
	"true":   TokenTrue,
	"false":  TokenFalse,
}

var operatorTable = map[string]TokenType{
	"(":  TokenOpenParentheses,
	")":  TokenCloseParentheses,
	"{":  TokenOpenCurly,
	"}":  TokenCloseCurly,
	";":  TokenSemicolon,
	",":  TokenComma,
	"=":  TokenAssign,
	"==": TokenEqual,
	"!=": TokenNotEqual,
	"<":  TokenLess,
	"<=": TokenLessEqual,
	">":  TokenGreater,
	">=": TokenGreaterEqual,
	"+":  TokenPlus,
	"-":  TokenMinus,
	"*":  TokenMulti,
	"/":  TokenDiv,
	"%":  TokenMod,
	"!":  TokenBang,
}

var tokenNames = map[TokenType]string{
	TokenEOF:     "end of input",
	TokenInteger: "integer",
	TokenName:    "name",
}

func init() {
	for word, typ := range keywordTable {
		tokenNames[typ] = "'" + word + "'"
	}

	for op, typ := range operatorTable {
		tokenNames[typ] = "'" + op + "'"
	}
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return "TokenType(" + strconv.FormatUint(uint64(t), 10) + ")"
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   *Location
}

func (t Token) String() string {
	switch t.Typ {
	case TokenName, TokenInteger:
		return t.Typ.String() + " '" + t.Value + "'"
	default:
		return t.Typ.String()
	}
}

type Lexer struct {
	reader *bufio.Reader
	tokens []Token
	err    error

	line, col int
	start     Location
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		line:   1,
		col:    1,
	}
}

// Lex tokenizes a complete source text. The end of input is not part of the
// returned tokens.
func Lex(src string) ([]Token, error) {
	return NewLexer(strings.NewReader(src)).Run()
}

// Run drives the lexer to the end of its input. The first invalid character
// aborts the run and no tokens are returned.
func (l *Lexer) Run() ([]Token, error) {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	if l.err != nil {
		return nil, l.err
	}

	return l.tokens, nil
}

func defaultState(l *Lexer) stateFunc {
	for {
		l.start = Location{Line: l.line, Col: l.col}

		switch r := l.peek(); {
		case r == EOF:
			return nil
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			l.next()
		case r == '#':
			return lineCommentState
		case isDigit(r):
			return numberState
		case isLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func lineCommentState(l *Lexer) stateFunc {
	for r := l.next(); r != '\n' && r != EOF; r = l.next() {
	}

	return defaultState
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for r := l.peek(); isDigit(r); r = l.peek() {
		num.WriteRune(l.next())
	}

	if _, err := strconv.ParseInt(num.String(), 10, 64); err != nil {
		return l.errorf(0, "integer literal %s does not fit in 64 bits", num.String())
	}

	return l.emit(TokenInteger, num.String())
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); isLetter(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emit(t, id.String())
	}

	return l.emit(TokenName, id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if r == '=' || r == '!' || r == '<' || r == '>' { // Some operators can be two runes
		if l.peek() == '=' {
			l.next()
			op := string(r) + "="
			return l.emit(operatorTable[op], op)
		}
	}

	if tok, ok := operatorTable[string(r)]; ok {
		return l.emit(tok, string(r))
	}

	return l.errorf(r, "invalid symbol %q", r)
}

func (l *Lexer) errorf(r rune, format string, args ...interface{}) stateFunc {
	loc := l.start
	l.err = &LexError{
		Loc:  &loc,
		Char: r,
		Msg:  fmt.Sprintf(format, args...),
	}

	return nil
}

func (l *Lexer) emit(t TokenType, val string) stateFunc {
	loc := l.start
	l.tokens = append(l.tokens, Token{
		Typ:   t,
		Value: val,
		Loc:   &loc,
	})

	return defaultState
}

func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return EOF
	}

	_ = l.reader.UnreadRune()
	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// Names are ASCII letters and underscores; digits never continue a name.
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}
