package salt

import (
	"fmt"
	"sort"
)

// Session keeps an interpreter alive across several inputs, as the REPL
// needs. Function definitions accumulate and top-level statements share one
// environment.
type Session struct {
	interp *Interpreter
	env    *Environment
}

func NewSession(opts ...Option) *Session {
	return &Session{
		interp: NewInterpreter(opts...),
		env:    NewEnvironment(),
	}
}

// Eval runs one input. Input starting with fn defines functions, redefining
// any earlier ones of the same name. Anything else is a statement list; its
// value is what a return statement yields, or the value of the last
// expression statement, or unit.
func (s *Session) Eval(src string) (Value, error) {
	toks, err := Lex(src)
	if err != nil {
		return Unit, err
	}

	if len(toks) > 0 && toks[0].Typ == TokenFn {
		prog, err := Parse(toks)
		if err != nil {
			return Unit, err
		}

		s.Define(prog)
		return Unit, nil
	}

	stmts, err := NewParser(toks).Statements()
	if err != nil {
		return Unit, err
	}

	result := Unit
	for _, stmt := range stmts {
		if e, ok := stmt.(*ExprStmt); ok {
			if result, err = s.interp.eval(e.Value, s.env); err != nil {
				return Unit, err
			}

			continue
		}

		v, returned, err := s.interp.exec(stmt, s.env)
		if err != nil {
			return Unit, err
		}

		if returned {
			return v, nil
		}

		result = Unit
	}

	return result, nil
}

// Define adds every function of prog to the session.
func (s *Session) Define(prog *Program) {
	for _, fn := range prog.Functions {
		s.interp.Define(fn)
	}
}

// Functions lists the names defined so far, sorted.
func (s *Session) Functions() []string {
	names := make([]string, 0, len(s.interp.functions))
	for name := range s.interp.functions {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func (s *Session) Lookup(name string) (Value, bool) {
	return s.env.Get(name)
}

func (s *Session) String() string {
	return fmt.Sprintf("session(%d function(s), %d binding(s))", len(s.interp.functions), s.env.Len())
}
