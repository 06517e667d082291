package salt

import (
	"fmt"
	"io"
	"os"
	"time"

	"fortio.org/log"
)

type Option func(*Interpreter)

// WithOutput sets where print writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) {
		in.out = w
	}
}

// WithClock replaces the wall clock read by time().
func WithClock(clock func() time.Time) Option {
	return func(in *Interpreter) {
		in.clock = clock
	}
}

// WithMaxDepth limits how many calls may be active at once. Zero means no
// limit other than the Go stack.
func WithMaxDepth(depth int) Option {
	return func(in *Interpreter) {
		in.maxDepth = depth
	}
}

// Interpreter walks the AST. The function table is filled once by Load and
// only read while the program runs; every call gets its own Environment.
type Interpreter struct {
	functions map[string]*Function
	out       io.Writer
	clock     func() time.Time

	maxDepth int
	depth    int
}

func NewInterpreter(opts ...Option) *Interpreter {
	in := &Interpreter{
		functions: make(map[string]*Function),
		out:       os.Stdout,
		clock:     time.Now,
	}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// Load builds the function table from prog. Duplicate names and a missing
// main are rejected before anything runs.
func (in *Interpreter) Load(prog *Program) error {
	functions := make(map[string]*Function, len(prog.Functions))
	for _, fn := range prog.Functions {
		if prev, ok := functions[fn.Name]; ok {
			return &LoadError{
				Loc:  fn.Loc,
				Name: fn.Name,
				Msg:  fmt.Sprintf("function %s already defined at %s", fn.Name, prev.Loc),
			}
		}

		functions[fn.Name] = fn
	}

	if _, ok := functions["main"]; !ok {
		return &LoadError{Name: "main", Msg: "no main function"}
	}

	in.functions = functions
	log.Debugf("loaded %d function(s)", len(functions))
	return nil
}

// Define adds fn to the function table, replacing any function of the same
// name.
func (in *Interpreter) Define(fn *Function) {
	in.functions[fn.Name] = fn
}

func (in *Interpreter) Lookup(name string) (*Function, bool) {
	fn, ok := in.functions[name]
	return fn, ok
}

// Run calls main without arguments and returns its value.
func (in *Interpreter) Run() (Value, error) {
	return in.Call("main")
}

func (in *Interpreter) Call(name string, args ...Value) (Value, error) {
	fn, ok := in.functions[name]
	if !ok {
		return Unit, &UndefinedError{Kind: UndefinedFunction, Name: name}
	}

	return in.invoke(fn, args, fn.Loc)
}

func (in *Interpreter) invoke(fn *Function, args []Value, loc *Location) (Value, error) {
	if len(args) != len(fn.Params) {
		return Unit, &ArityError{
			Loc:      loc,
			Name:     fn.Name,
			Expected: len(fn.Params),
			Got:      len(args),
		}
	}

	if in.maxDepth > 0 && in.depth >= in.maxDepth {
		return Unit, &StackOverflowError{Loc: loc, Name: fn.Name, Depth: in.maxDepth}
	}

	in.depth++
	defer func() { in.depth-- }()

	env := NewEnvironment()
	for i, param := range fn.Params {
		env.Set(param, args[i])
	}

	log.LogVf("call %s%v at depth %d", fn.Name, args, in.depth)

	v, returned, err := in.execBlock(fn.Body, env)
	if err != nil {
		return Unit, err
	}

	if !returned {
		return Unit, nil
	}

	return v, nil
}

// execBlock runs statements in order. The bool result is true once a return
// statement produced the value.
func (in *Interpreter) execBlock(b *Block, env *Environment) (Value, bool, error) {
	for _, stmt := range b.Statements {
		v, returned, err := in.exec(stmt, env)
		if err != nil || returned {
			return v, returned, err
		}
	}

	return Unit, false, nil
}

func (in *Interpreter) exec(stmt Statement, env *Environment) (Value, bool, error) {
	switch s := stmt.(type) {
	case *IfStmt:
		cond, err := in.condition(s.Cond, "if", s.Loc, env)
		if err != nil {
			return Unit, false, err
		}

		log.LogVf("if at %s is %t", s.Loc, cond)
		if !cond {
			return Unit, false, nil
		}

		return in.execBlock(s.Body, env)
	case *WhileStmt:
		for {
			cond, err := in.condition(s.Cond, "while", s.Loc, env)
			if err != nil {
				return Unit, false, err
			}

			if !cond {
				return Unit, false, nil
			}

			v, returned, err := in.execBlock(s.Body, env)
			if err != nil || returned {
				return v, returned, err
			}
		}
	case *ReturnStmt:
		v, err := in.eval(s.Value, env)
		if err != nil {
			return Unit, false, err
		}

		return v, true, nil
	case *Binding:
		v, err := in.eval(s.Value, env)
		if err != nil {
			return Unit, false, err
		}

		log.LogVf("let %s = %s", s.Name, v)
		env.Set(s.Name, v)
	case *PrintStmt:
		v, err := in.eval(s.Value, env)
		if err != nil {
			return Unit, false, err
		}

		if err := builtinPrint(in.out, v); err != nil {
			return Unit, false, err
		}
	case *ExprStmt:
		if _, err := in.eval(s.Value, env); err != nil {
			return Unit, false, err
		}
	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}

	return Unit, false, nil
}

func (in *Interpreter) condition(expr Expr, keyword string, loc *Location, env *Environment) (bool, error) {
	v, err := in.eval(expr, env)
	if err != nil {
		return false, err
	}

	if v.Kind != KindBoolean {
		return false, &TypeError{
			Loc:      loc,
			Op:       "'" + keyword + "' condition",
			Expected: KindBoolean,
			Got:      []ValueKind{v.Kind},
		}
	}

	return v.Bool, nil
}

func (in *Interpreter) eval(expr Expr, env *Environment) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *Identifier:
		v, ok := env.Get(e.Name)
		if !ok {
			return Unit, &UndefinedError{Loc: e.Loc, Kind: UndefinedVariable, Name: e.Name}
		}

		return v, nil
	case *UnaryExpr:
		return in.unaryExpression(e, env)
	case *BinaryExpr:
		return in.binaryExpression(e, env)
	case *FuncCall:
		return in.functionCall(e, env)
	case *TimeExpr:
		return builtinTime(in.clock), nil
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func (in *Interpreter) functionCall(call *FuncCall, env *Environment) (Value, error) {
	fn, ok := in.functions[call.Name]
	if !ok {
		return Unit, &UndefinedError{Loc: call.Loc, Kind: UndefinedFunction, Name: call.Name}
	}

	args := make([]Value, 0, len(call.Args))
	for _, arg := range call.Args {
		v, err := in.eval(arg, env)
		if err != nil {
			return Unit, err
		}

		args = append(args, v)
	}

	return in.invoke(fn, args, call.Loc)
}

func (in *Interpreter) unaryExpression(expr *UnaryExpr, env *Environment) (Value, error) {
	v, err := in.eval(expr.Operand, env)
	if err != nil {
		return Unit, err
	}

	switch expr.Operation {
	case UnaryNegative:
		if v.Kind != KindInteger {
			return Unit, &TypeError{
				Loc:      expr.Loc,
				Op:       "unary '-'",
				Expected: KindInteger,
				Got:      []ValueKind{v.Kind},
			}
		}

		return Integer(-v.Int), nil
	default:
		panic("unexpected unary op: " + expr.Operation)
	}
}

// binaryExpression applies an integer operator. Arithmetic wraps on overflow.
func (in *Interpreter) binaryExpression(expr *BinaryExpr, env *Environment) (Value, error) {
	l, err := in.eval(expr.Op1, env)
	if err != nil {
		return Unit, err
	}

	r, err := in.eval(expr.Op2, env)
	if err != nil {
		return Unit, err
	}

	if l.Kind != KindInteger || r.Kind != KindInteger {
		return Unit, &TypeError{
			Loc:      expr.Loc,
			Op:       "'" + string(expr.Operation) + "'",
			Expected: KindInteger,
			Got:      []ValueKind{l.Kind, r.Kind},
		}
	}

	a, b := l.Int, r.Int

	switch expr.Operation {
	case BinaryAddition:
		return Integer(a + b), nil
	case BinarySubtraction:
		return Integer(a - b), nil
	case BinaryMultiplication:
		return Integer(a * b), nil
	case BinaryDivision, BinaryModulo:
		if b == 0 {
			return Unit, &ArithmeticError{Loc: expr.Loc, Op: expr.Operation}
		}

		if expr.Operation == BinaryDivision {
			return Integer(a / b), nil
		}

		return Integer(a % b), nil
	case BinaryEqual:
		return Boolean(a == b), nil
	case BinaryNotEqual:
		return Boolean(a != b), nil
	case BinaryLess:
		return Boolean(a < b), nil
	case BinaryLessEqual:
		return Boolean(a <= b), nil
	case BinaryGreater:
		return Boolean(a > b), nil
	case BinaryGreaterEqual:
		return Boolean(a >= b), nil
	default:
		panic("unexpected binary op: " + expr.Operation)
	}
}
