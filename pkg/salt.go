package salt

import (
	"os"

	"fortio.org/log"
	"github.com/pkg/errors"
)

// Run lexes, parses, loads and runs src, returning the value of main.
func Run(src string, opts ...Option) (Value, error) {
	prog, err := Compile(src)
	if err != nil {
		return Unit, err
	}

	in := NewInterpreter(opts...)
	if err := in.Load(prog); err != nil {
		return Unit, err
	}

	log.Debugf("running main")
	return in.Run()
}

func RunFile(filename string, opts ...Option) (Value, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return Unit, errors.Wrap(err, "reading source")
	}

	v, err := Run(string(src), opts...)
	return v, errors.WithMessage(err, filename)
}

// Compile runs the front end only: source text to AST.
func Compile(src string) (*Program, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}

	log.Debugf("lexed %d token(s)", len(toks))
	return Parse(toks)
}

func CompileFile(filename string) (*Program, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "reading source")
	}

	prog, err := Compile(string(src))
	return prog, errors.WithMessage(err, filename)
}
