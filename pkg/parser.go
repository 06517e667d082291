package salt

import "strconv"

var comparisonOps = map[TokenType]BinaryOp{
	TokenEqual:        BinaryEqual,
	TokenNotEqual:     BinaryNotEqual,
	TokenLess:         BinaryLess,
	TokenLessEqual:    BinaryLessEqual,
	TokenGreater:      BinaryGreater,
	TokenGreaterEqual: BinaryGreaterEqual,
}

var additiveOps = map[TokenType]BinaryOp{
	TokenPlus:  BinaryAddition,
	TokenMinus: BinarySubtraction,
}

var multiplicativeOps = map[TokenType]BinaryOp{
	TokenMulti: BinaryMultiplication,
	TokenDiv:   BinaryDivision,
	TokenMod:   BinaryModulo,
}

// Parser is a recursive-descent parser over a lexed token sequence. Each
// precedence level has its own method, lowest first.
type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
	}
}

// Parse builds a program out of the whole token sequence.
func Parse(tokens []Token) (*Program, error) {
	return NewParser(tokens).Run()
}

func (p *Parser) Run() (*Program, error) {
	prog := &Program{}

	for !p.check(TokenEOF) {
		fn, err := p.funcDecl()
		if err != nil {
			return nil, err
		}

		prog.Functions = append(prog.Functions, fn)
	}

	return prog, nil
}

// Statements parses a bare statement list, as typed at the REPL.
func (p *Parser) Statements() ([]Statement, error) {
	var stmts []Statement

	for !p.check(TokenEOF) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	return stmts, nil
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		eof := Token{Typ: TokenEOF}
		if len(p.tokens) > 0 {
			eof.Loc = p.tokens[len(p.tokens)-1].Loc
		}

		return eof
	}

	return p.tokens[p.pos]
}

func (p *Parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}

	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

func (p *Parser) expect(typ TokenType) (Token, error) {
	tok := p.next()
	if tok.Typ != typ {
		return tok, p.unexpected(tok, typ.String())
	}

	return tok, nil
}

func (p *Parser) unexpected(tok Token, expected string) error {
	return &ParseError{
		Loc:      tok.Loc,
		Expected: expected,
		Found:    tok,
	}
}

func (p *Parser) funcDecl() (*Function, error) {
	start, err := p.expect(TokenFn)
	if err != nil {
		return nil, err
	}

	name, err := p.expect(TokenName)
	if err != nil {
		return nil, err
	}

	params, err := p.params()
	if err != nil {
		return nil, err
	}

	body, err := p.blockStmt()
	if err != nil {
		return nil, err
	}

	return &Function{
		Name:   name.Value,
		Params: params,
		Body:   body,
		Loc:    start.Loc,
	}, nil
}

func (p *Parser) params() ([]string, error) {
	if _, err := p.expect(TokenOpenParentheses); err != nil {
		return nil, err
	}

	var params []string
	if p.check(TokenCloseParentheses) {
		p.next()
		return params, nil
	}

	for {
		name, err := p.expect(TokenName)
		if err != nil {
			return nil, err
		}

		params = append(params, name.Value)

		switch tok := p.next(); tok.Typ {
		case TokenCloseParentheses:
			return params, nil
		case TokenComma:
			continue
		default:
			return nil, p.unexpected(tok, "',' or ')'")
		}
	}
}

func (p *Parser) blockStmt() (*Block, error) {
	if _, err := p.expect(TokenOpenCurly); err != nil {
		return nil, err
	}

	block := &Block{}
	for !p.check(TokenCloseCurly) {
		if p.check(TokenEOF) {
			return nil, p.unexpected(p.peek(), TokenCloseCurly.String())
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		block.Statements = append(block.Statements, stmt)
	}

	p.next() // Skip the closing curly
	return block, nil
}

func (p *Parser) statement() (Statement, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenIf:
		return p.ifStmt()
	case TokenWhile:
		return p.whileStmt()
	case TokenReturn:
		return p.returnStmt()
	case TokenLet:
		return p.letStmt()
	case TokenPrint:
		return p.printStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) ifStmt() (Statement, error) {
	start := p.next() // if keyword

	cond, err := p.expr()
	if err != nil {
		return nil, err
	}

	body, err := p.blockStmt()
	if err != nil {
		return nil, err
	}

	return &IfStmt{Cond: cond, Body: body, Loc: start.Loc}, nil
}

func (p *Parser) whileStmt() (Statement, error) {
	start := p.next() // while keyword

	cond, err := p.expr()
	if err != nil {
		return nil, err
	}

	body, err := p.blockStmt()
	if err != nil {
		return nil, err
	}

	return &WhileStmt{Cond: cond, Body: body, Loc: start.Loc}, nil
}

func (p *Parser) returnStmt() (Statement, error) {
	p.next() // return keyword

	val, err := p.terminatedExpr()
	if err != nil {
		return nil, err
	}

	return &ReturnStmt{Value: val}, nil
}

func (p *Parser) letStmt() (Statement, error) {
	p.next() // let keyword

	name, err := p.expect(TokenName)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenAssign); err != nil {
		return nil, err
	}

	val, err := p.terminatedExpr()
	if err != nil {
		return nil, err
	}

	return &Binding{Name: name.Value, Value: val}, nil
}

func (p *Parser) printStmt() (Statement, error) {
	p.next() // print keyword

	if _, err := p.expect(TokenOpenParentheses); err != nil {
		return nil, err
	}

	val, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return &PrintStmt{Value: val}, nil
}

// exprStmt handles both `name = expr;` and a bare `expr;`.
func (p *Parser) exprStmt() (Statement, error) {
	lhs, err := p.expr()
	if err != nil {
		return nil, err
	}

	switch tok := p.next(); tok.Typ {
	case TokenSemicolon:
		return &ExprStmt{Value: lhs}, nil
	case TokenAssign:
		id, ok := lhs.(*Identifier)
		if !ok {
			return nil, &ParseError{
				Loc:   tok.Loc,
				Found: tok,
				Msg:   "malformed assignment target: only a name can be assigned to",
			}
		}

		val, err := p.terminatedExpr()
		if err != nil {
			return nil, err
		}

		return &Binding{Name: id.Name, Value: val}, nil
	default:
		return nil, p.unexpected(tok, "';' or '='")
	}
}

func (p *Parser) terminatedExpr() (Expr, error) {
	val, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return val, nil
}

func (p *Parser) expr() (Expr, error) {
	return p.comparisonExpr()
}

// comparisonExpr accepts at most one comparison operator.
func (p *Parser) comparisonExpr() (Expr, error) {
	lhs, err := p.additiveExpr()
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	op, ok := comparisonOps[tok.Typ]
	if !ok {
		return lhs, nil
	}

	p.next()

	rhs, err := p.additiveExpr()
	if err != nil {
		return nil, err
	}

	if next := p.peek(); comparisonOps[next.Typ] != "" {
		return nil, &ParseError{
			Loc:   next.Loc,
			Found: next,
			Msg:   "comparisons cannot be chained, use parentheses",
		}
	}

	return &BinaryExpr{
		Operation: op,
		Op1:       lhs,
		Op2:       rhs,
		Loc:       tok.Loc,
	}, nil
}

func (p *Parser) additiveExpr() (Expr, error) {
	return p.leftAssociative(additiveOps, p.multiplicativeExpr)
}

func (p *Parser) multiplicativeExpr() (Expr, error) {
	return p.leftAssociative(multiplicativeOps, p.unaryExpr)
}

// leftAssociative parses operand (op operand)* and folds the chain to the
// left, so 1 - 3 + 1 is (1 - 3) + 1.
func (p *Parser) leftAssociative(ops map[TokenType]BinaryOp, operand func() (Expr, error)) (Expr, error) {
	lhs, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		op, ok := ops[tok.Typ]
		if !ok {
			return lhs, nil
		}

		p.next()

		rhs, err := operand()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Operation: op,
			Op1:       lhs,
			Op2:       rhs,
			Loc:       tok.Loc,
		}
	}
}

func (p *Parser) unaryExpr() (Expr, error) {
	if p.check(TokenMinus) { // Unary negative
		tok := p.next()

		operand, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}

		return &UnaryExpr{
			Operation: UnaryNegative,
			Operand:   operand,
			Loc:       tok.Loc,
		}, nil
	}

	return p.primary()
}

func (p *Parser) primary() (Expr, error) {
	switch tok := p.next(); tok.Typ {
	case TokenOpenParentheses:
		exp, err := p.expr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenCloseParentheses); err != nil {
			return nil, err
		}

		return exp, nil
	case TokenInteger:
		v, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, &ParseError{Loc: tok.Loc, Found: tok, Msg: "invalid integer literal " + tok.Value}
		}

		return &LiteralExpr{Value: Integer(v)}, nil
	case TokenTrue:
		return &LiteralExpr{Value: Boolean(true)}, nil
	case TokenFalse:
		return &LiteralExpr{Value: Boolean(false)}, nil
	case TokenTime:
		if _, err := p.expect(TokenOpenParentheses); err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenCloseParentheses); err != nil {
			return nil, err
		}

		return &TimeExpr{}, nil
	case TokenName:
		if p.check(TokenOpenParentheses) {
			return p.funcCall(tok)
		}

		return &Identifier{Name: tok.Value, Loc: tok.Loc}, nil
	default:
		return nil, p.unexpected(tok, "expression")
	}
}

func (p *Parser) funcCall(name Token) (Expr, error) {
	p.next() // Skip the opening parenthesis

	call := &FuncCall{
		Name: name.Value,
		Loc:  name.Loc,
	}

	if p.check(TokenCloseParentheses) {
		p.next()
		return call, nil
	}

	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}

		call.Args = append(call.Args, arg)

		switch tok := p.next(); tok.Typ {
		case TokenCloseParentheses:
			return call, nil
		case TokenComma:
			continue
		default:
			return nil, p.unexpected(tok, "',' or ')'")
		}
	}
}
