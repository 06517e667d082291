package salt

// Program holds the top-level function definitions in source order.
type Program struct {
	Functions []*Function
}

type Function struct {
	Name   string
	Params []string
	Body   *Block
	Loc    *Location
}

type Block struct {
	Statements []Statement
}

// Statement is one of *IfStmt, *WhileStmt, *ReturnStmt, *Binding, *PrintStmt
// or *ExprStmt.
type Statement interface {
	stmtNode()
}

type IfStmt struct {
	Cond Expr
	Body *Block
	Loc  *Location
}

type WhileStmt struct {
	Cond Expr
	Body *Block
	Loc  *Location
}

type ReturnStmt struct {
	Value Expr
}

// Binding declares or rebinds a name in the current call frame.
type Binding struct {
	Name  string
	Value Expr
}

type PrintStmt struct {
	Value Expr
}

type ExprStmt struct {
	Value Expr
}

func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*ReturnStmt) stmtNode() {}
func (*Binding) stmtNode()    {}
func (*PrintStmt) stmtNode()  {}
func (*ExprStmt) stmtNode()   {}

// Expr is one of *LiteralExpr, *Identifier, *UnaryExpr, *BinaryExpr,
// *FuncCall or *TimeExpr.
type Expr interface {
	exprNode()
}

type LiteralExpr struct {
	Value Value
}

type Identifier struct {
	Name string
	Loc  *Location
}

type UnaryOp string

const (
	UnaryNegative UnaryOp = "-"
)

type UnaryExpr struct {
	Operation UnaryOp
	Operand   Expr
	Loc       *Location
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
	BinaryModulo         BinaryOp = "%"
	BinaryEqual          BinaryOp = "=="
	BinaryNotEqual       BinaryOp = "!="
	BinaryLess           BinaryOp = "<"
	BinaryLessEqual      BinaryOp = "<="
	BinaryGreater        BinaryOp = ">"
	BinaryGreaterEqual   BinaryOp = ">="
)

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
	Loc       *Location
}

type FuncCall struct {
	Name string
	Args []Expr
	Loc  *Location
}

// TimeExpr reads the wall clock.
type TimeExpr struct{}

func (*LiteralExpr) exprNode() {}
func (*Identifier) exprNode()  {}
func (*UnaryExpr) exprNode()   {}
func (*BinaryExpr) exprNode()  {}
func (*FuncCall) exprNode()    {}
func (*TimeExpr) exprNode()    {}
