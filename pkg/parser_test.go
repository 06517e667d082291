package salt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(v int64) *LiteralExpr {
	return &LiteralExpr{Value: Integer(v)}
}

func name(n string) *Identifier {
	return &Identifier{Name: n}
}

// mainWith wraps tokens in fn main() { ... }.
func mainWith(body ...Token) []Token {
	toks := []Token{
		{TokenFn, "fn", nil},
		{TokenName, "main", nil},
		{TokenOpenParentheses, "(", nil},
		{TokenCloseParentheses, ")", nil},
		{TokenOpenCurly, "{", nil},
	}
	toks = append(toks, body...)
	return append(toks, Token{TokenCloseCurly, "}", nil})
}

func mainProgram(stmts ...Statement) *Program {
	return &Program{
		Functions: []*Function{
			{Name: "main", Body: &Block{Statements: stmts}},
		},
	}
}

func TestParser(t *testing.T) {
	cases := []struct {
		data   []Token
		expect *Program
	}{
		{
			nil,
			&Program{},
		},
		{
			mainWith(),
			mainProgram(),
		},
		{
			[]Token{
				{TokenFn, "fn", nil},
				{TokenName, "add", nil},
				{TokenOpenParentheses, "(", nil},
				{TokenName, "a", nil},
				{TokenComma, ",", nil},
				{TokenName, "b", nil},
				{TokenCloseParentheses, ")", nil},
				{TokenOpenCurly, "{", nil},
				{TokenReturn, "return", nil},
				{TokenName, "a", nil},
				{TokenPlus, "+", nil},
				{TokenName, "b", nil},
				{TokenSemicolon, ";", nil},
				{TokenCloseCurly, "}", nil},
			},
			&Program{
				Functions: []*Function{
					{
						Name:   "add",
						Params: []string{"a", "b"},
						Body: &Block{
							Statements: []Statement{
								&ReturnStmt{
									Value: &BinaryExpr{
										Operation: BinaryAddition,
										Op1:       name("a"),
										Op2:       name("b"),
									},
								},
							},
						},
					},
				},
			},
		},
		{
			// return 1 + 2 * 3;
			mainWith(
				Token{TokenReturn, "return", nil},
				Token{TokenInteger, "1", nil},
				Token{TokenPlus, "+", nil},
				Token{TokenInteger, "2", nil},
				Token{TokenMulti, "*", nil},
				Token{TokenInteger, "3", nil},
				Token{TokenSemicolon, ";", nil},
			),
			mainProgram(
				&ReturnStmt{
					Value: &BinaryExpr{
						Operation: BinaryAddition,
						Op1:       num(1),
						Op2: &BinaryExpr{
							Operation: BinaryMultiplication,
							Op1:       num(2),
							Op2:       num(3),
						},
					},
				},
			),
		},
		{
			// return 1 - 3 + 1;
			mainWith(
				Token{TokenReturn, "return", nil},
				Token{TokenInteger, "1", nil},
				Token{TokenMinus, "-", nil},
				Token{TokenInteger, "3", nil},
				Token{TokenPlus, "+", nil},
				Token{TokenInteger, "1", nil},
				Token{TokenSemicolon, ";", nil},
			),
			mainProgram(
				&ReturnStmt{
					Value: &BinaryExpr{
						Operation: BinaryAddition,
						Op1: &BinaryExpr{
							Operation: BinarySubtraction,
							Op1:       num(1),
							Op2:       num(3),
						},
						Op2: num(1),
					},
				},
			),
		},
		{
			// return 8 / 4 % 3;
			mainWith(
				Token{TokenReturn, "return", nil},
				Token{TokenInteger, "8", nil},
				Token{TokenDiv, "/", nil},
				Token{TokenInteger, "4", nil},
				Token{TokenMod, "%", nil},
				Token{TokenInteger, "3", nil},
				Token{TokenSemicolon, ";", nil},
			),
			mainProgram(
				&ReturnStmt{
					Value: &BinaryExpr{
						Operation: BinaryModulo,
						Op1: &BinaryExpr{
							Operation: BinaryDivision,
							Op1:       num(8),
							Op2:       num(4),
						},
						Op2: num(3),
					},
				},
			),
		},
		{
			// return (1 + 3) * 2;
			mainWith(
				Token{TokenReturn, "return", nil},
				Token{TokenOpenParentheses, "(", nil},
				Token{TokenInteger, "1", nil},
				Token{TokenPlus, "+", nil},
				Token{TokenInteger, "3", nil},
				Token{TokenCloseParentheses, ")", nil},
				Token{TokenMulti, "*", nil},
				Token{TokenInteger, "2", nil},
				Token{TokenSemicolon, ";", nil},
			),
			mainProgram(
				&ReturnStmt{
					Value: &BinaryExpr{
						Operation: BinaryMultiplication,
						Op1: &BinaryExpr{
							Operation: BinaryAddition,
							Op1:       num(1),
							Op2:       num(3),
						},
						Op2: num(2),
					},
				},
			),
		},
		{
			// return - -x < 2 + 1;
			mainWith(
				Token{TokenReturn, "return", nil},
				Token{TokenMinus, "-", nil},
				Token{TokenMinus, "-", nil},
				Token{TokenName, "x", nil},
				Token{TokenLess, "<", nil},
				Token{TokenInteger, "2", nil},
				Token{TokenPlus, "+", nil},
				Token{TokenInteger, "1", nil},
				Token{TokenSemicolon, ";", nil},
			),
			mainProgram(
				&ReturnStmt{
					Value: &BinaryExpr{
						Operation: BinaryLess,
						Op1: &UnaryExpr{
							Operation: UnaryNegative,
							Operand: &UnaryExpr{
								Operation: UnaryNegative,
								Operand:   name("x"),
							},
						},
						Op2: &BinaryExpr{
							Operation: BinaryAddition,
							Op1:       num(2),
							Op2:       num(1),
						},
					},
				},
			),
		},
		{
			// let x = foo(true, time()); x = bar(); baz(x); print(false);
			mainWith(
				Token{TokenLet, "let", nil},
				Token{TokenName, "x", nil},
				Token{TokenAssign, "=", nil},
				Token{TokenName, "foo", nil},
				Token{TokenOpenParentheses, "(", nil},
				Token{TokenTrue, "true", nil},
				Token{TokenComma, ",", nil},
				Token{TokenTime, "time", nil},
				Token{TokenOpenParentheses, "(", nil},
				Token{TokenCloseParentheses, ")", nil},
				Token{TokenCloseParentheses, ")", nil},
				Token{TokenSemicolon, ";", nil},
				Token{TokenName, "x", nil},
				Token{TokenAssign, "=", nil},
				Token{TokenName, "bar", nil},
				Token{TokenOpenParentheses, "(", nil},
				Token{TokenCloseParentheses, ")", nil},
				Token{TokenSemicolon, ";", nil},
				Token{TokenName, "baz", nil},
				Token{TokenOpenParentheses, "(", nil},
				Token{TokenName, "x", nil},
				Token{TokenCloseParentheses, ")", nil},
				Token{TokenSemicolon, ";", nil},
				Token{TokenPrint, "print", nil},
				Token{TokenOpenParentheses, "(", nil},
				Token{TokenFalse, "false", nil},
				Token{TokenCloseParentheses, ")", nil},
				Token{TokenSemicolon, ";", nil},
			),
			mainProgram(
				&Binding{
					Name: "x",
					Value: &FuncCall{
						Name: "foo",
						Args: []Expr{
							&LiteralExpr{Value: Boolean(true)},
							&TimeExpr{},
						},
					},
				},
				&Binding{
					Name:  "x",
					Value: &FuncCall{Name: "bar"},
				},
				&ExprStmt{
					Value: &FuncCall{Name: "baz", Args: []Expr{name("x")}},
				},
				&PrintStmt{
					Value: &LiteralExpr{Value: Boolean(false)},
				},
			),
		},
		{
			// while i != 0 { if i == 1 { return i; } }
			mainWith(
				Token{TokenWhile, "while", nil},
				Token{TokenName, "i", nil},
				Token{TokenNotEqual, "!=", nil},
				Token{TokenInteger, "0", nil},
				Token{TokenOpenCurly, "{", nil},
				Token{TokenIf, "if", nil},
				Token{TokenName, "i", nil},
				Token{TokenEqual, "==", nil},
				Token{TokenInteger, "1", nil},
				Token{TokenOpenCurly, "{", nil},
				Token{TokenReturn, "return", nil},
				Token{TokenName, "i", nil},
				Token{TokenSemicolon, ";", nil},
				Token{TokenCloseCurly, "}", nil},
				Token{TokenCloseCurly, "}", nil},
			),
			mainProgram(
				&WhileStmt{
					Cond: &BinaryExpr{
						Operation: BinaryNotEqual,
						Op1:       name("i"),
						Op2:       num(0),
					},
					Body: &Block{
						Statements: []Statement{
							&IfStmt{
								Cond: &BinaryExpr{
									Operation: BinaryEqual,
									Op1:       name("i"),
									Op2:       num(1),
								},
								Body: &Block{
									Statements: []Statement{
										&ReturnStmt{Value: name("i")},
									},
								},
							},
						},
					},
				},
			),
		},
	}

	for _, c := range cases {
		got, err := Parse(c.data)
		require.NoError(t, err)
		assert.Equal(t, c.expect, got)
	}
}

func TestParserErrors(t *testing.T) {
	cases := []struct {
		src   string
		atEOF bool
		msg   string
	}{
		{"fn main() { return 1 < 2 < 3; }", false, "cannot be chained"},
		{"fn main() { return 1 == 2 != 3; }", false, "cannot be chained"},
		{"fn main() { return 1 }", false, "expected ';'"},
		{"fn main() { 1 = 2; }", false, "malformed assignment target"},
		{"fn main() { f() = 2; }", false, "malformed assignment target"},
		{"fn main() { let 1 = 2; }", false, "expected name"},
		{"fn main() { print 1; }", false, "expected '('"},
		{"fn main() { x; y }", false, "expected ';' or '='"},
		{"fn () {}", false, "expected name"},
		{"fn main(a b) {}", false, "expected ',' or ')'"},
		{"fn main(a,) {}", false, "expected name"},
		{"fn main() { return f(1 2); }", false, "expected ',' or ')'"},
		{"fn main() { return !x; }", false, "expected expression"},
		{"fn main() { return time; }", false, "expected '('"},
		{"main() {}", false, "expected 'fn'"},
		{"fn main() { return (1 + 2; }", false, "expected ')'"},
		{"fn main() {", true, "expected '}'"},
		{"fn main() { return", true, "expected expression"},
		{"fn main(", true, ""},
		{"fn", true, "expected name"},
	}

	for _, c := range cases {
		toks, err := Lex(c.src)
		require.NoError(t, err, c.src)

		_, err = Parse(toks)
		require.Error(t, err, c.src)

		perr, ok := err.(*ParseError)
		require.True(t, ok, "%s: expected *ParseError, got %T", c.src, err)
		assert.Equal(t, c.atEOF, perr.AtEOF(), c.src)
		assert.Contains(t, perr.Error(), c.msg, c.src)
	}
}

func TestParserChainedComparisonNeedsParentheses(t *testing.T) {
	toks, err := Lex("fn main() { return (1 < 2) == 3; }")
	require.NoError(t, err)

	_, err = Parse(toks)
	assert.NoError(t, err)
}

func TestParserLocations(t *testing.T) {
	toks, err := Lex("fn main() {\n  return x + f(1);\n}")
	require.NoError(t, err)

	prog, err := Parse(toks)
	require.NoError(t, err)

	fn := prog.Functions[0]
	assert.Equal(t, &Location{Line: 1, Col: 1}, fn.Loc)

	ret := fn.Body.Statements[0].(*ReturnStmt)
	sum := ret.Value.(*BinaryExpr)
	assert.Equal(t, &Location{Line: 2, Col: 12}, sum.Loc)
	assert.Equal(t, &Location{Line: 2, Col: 10}, sum.Op1.(*Identifier).Loc)
	assert.Equal(t, &Location{Line: 2, Col: 14}, sum.Op2.(*FuncCall).Loc)
}

func TestParserStatements(t *testing.T) {
	toks, err := Lex("let x = 2; x = x * 3; print(x);")
	require.NoError(t, err)

	stmts, err := NewParser(toks).Statements()
	require.NoError(t, err)
	require.Len(t, stmts, 3)

	assert.IsType(t, &Binding{}, stmts[0])
	assert.IsType(t, &Binding{}, stmts[1])
	assert.IsType(t, &PrintStmt{}, stmts[2])
}
