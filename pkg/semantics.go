package salt

import "fmt"

// Analyze looks for mistakes that are certain to abort a run if the code
// involved is reached: unknown functions, calls with the wrong number of
// arguments, names that are never bound in their function, duplicate
// functions and a missing main. It reports them without rejecting the
// program and does no type checking.
func Analyze(prog *Program) []error {
	a := &analyzer{
		functions: make(map[string]*Function),
	}

	a.define(prog)
	for _, fn := range prog.Functions {
		a.function(fn)
	}

	return a.errors
}

type analyzer struct {
	functions map[string]*Function
	errors    []error
}

func (a *analyzer) addError(err error) {
	a.errors = append(a.errors, err)
}

func (a *analyzer) define(prog *Program) {
	for _, fn := range prog.Functions {
		if prev, ok := a.functions[fn.Name]; ok {
			a.addError(&LoadError{
				Loc:  fn.Loc,
				Name: fn.Name,
				Msg:  fmt.Sprintf("function %s already defined at %s", fn.Name, prev.Loc),
			})

			continue
		}

		a.functions[fn.Name] = fn
	}

	if _, ok := a.functions["main"]; !ok {
		a.addError(&LoadError{Name: "main", Msg: "no main function"})
	}
}

func (a *analyzer) function(fn *Function) {
	stab := NewSymbolTable()
	for _, param := range fn.Params {
		stab.Add(param)
	}

	// Frames are flat, so a binding anywhere in the body makes the name
	// possibly defined everywhere in it.
	collectBindings(stab, fn.Body)

	a.block(stab, fn.Body)
}

func collectBindings(stab *SymbolTable, b *Block) {
	for _, stmt := range b.Statements {
		switch s := stmt.(type) {
		case *Binding:
			stab.Add(s.Name)
		case *IfStmt:
			collectBindings(stab, s.Body)
		case *WhileStmt:
			collectBindings(stab, s.Body)
		}
	}
}

func (a *analyzer) block(stab *SymbolTable, b *Block) {
	for _, stmt := range b.Statements {
		switch s := stmt.(type) {
		case *IfStmt:
			a.expr(stab, s.Cond)
			a.block(stab, s.Body)
		case *WhileStmt:
			a.expr(stab, s.Cond)
			a.block(stab, s.Body)
		case *ReturnStmt:
			a.expr(stab, s.Value)
		case *Binding:
			a.expr(stab, s.Value)
		case *PrintStmt:
			a.expr(stab, s.Value)
		case *ExprStmt:
			a.expr(stab, s.Value)
		}
	}
}

func (a *analyzer) expr(stab *SymbolTable, expr Expr) {
	switch e := expr.(type) {
	case *Identifier:
		if !stab.Has(e.Name) {
			a.addError(&UndefinedError{Loc: e.Loc, Kind: UndefinedVariable, Name: e.Name})
		}
	case *UnaryExpr:
		a.expr(stab, e.Operand)
	case *BinaryExpr:
		a.expr(stab, e.Op1)
		a.expr(stab, e.Op2)
	case *FuncCall:
		for _, arg := range e.Args {
			a.expr(stab, arg)
		}

		fn, ok := a.functions[e.Name]
		if !ok {
			a.addError(&UndefinedError{Loc: e.Loc, Kind: UndefinedFunction, Name: e.Name})
			break
		}

		if len(fn.Params) != len(e.Args) {
			a.addError(&ArityError{
				Loc:      e.Loc,
				Name:     e.Name,
				Expected: len(fn.Params),
				Got:      len(e.Args),
			})
		}
	}
}

// SymbolTable is the set of names a function may bind.
type SymbolTable struct {
	Entries map[string]struct{}
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Entries: make(map[string]struct{}),
	}
}

func (t *SymbolTable) Add(name string) {
	t.Entries[name] = struct{}{}
}

func (t *SymbolTable) Has(name string) bool {
	_, ok := t.Entries[name]
	return ok
}
