package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/davecgh/go-spew/spew"
	"github.com/peterh/liner"
	"github.com/pkg/errors"

	"go.salt.dev/internal/config"
	"go.salt.dev/pkg"
)

const usage = `usage: salt [flags] [FILE | run FILE | tokens FILE | ast FILE | check FILE | repl]

With no arguments salt starts a REPL.
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("salt", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", config.DefaultFilename, "YAML configuration file")
	logLevel := fs.String("loglevel", "", "log level, overrides the configuration")
	maxDepth := fs.Int("max-depth", -1, "maximum call depth, 0 for unlimited")
	printResult := fs.Bool("result", false, "print the value returned by main")
	evalStr := fs.String("e", "", "run the given source text and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log.SetDefaultsForClientTools()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Errf("%v", err)
		return 1
	}

	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if err := log.SetLogLevelStr(cfg.LogLevel); err != nil {
		log.Errf("%v", err)
		return 1
	}

	if *maxDepth >= 0 {
		cfg.MaxCallDepth = *maxDepth
	}

	if *printResult {
		cfg.PrintResult = true
	}

	opts := []salt.Option{salt.WithMaxDepth(cfg.MaxCallDepth)}

	rest := fs.Args()
	if *evalStr != "" {
		v, err := salt.Run(*evalStr, opts...)
		return report(cfg, v, err)
	}

	if len(rest) == 0 {
		return runREPL(cfg, opts)
	}

	cmd, file := rest[0], ""
	if len(rest) > 1 {
		file = rest[1]
	}

	switch cmd {
	case "repl":
		return runREPL(cfg, opts)
	case "run", "tokens", "ast", "check":
		if file == "" {
			fs.Usage()
			return 2
		}
	default:
		cmd, file = "run", rest[0]
	}

	switch cmd {
	case "tokens":
		return dumpTokens(file)
	case "ast":
		return dumpAST(file)
	case "check":
		return check(file)
	default:
		v, err := salt.RunFile(file, opts...)
		return report(cfg, v, err)
	}
}

func report(cfg *config.Config, v salt.Value, err error) int {
	if err != nil {
		printError(err)
		return 1
	}

	log.Infof("main returned %s", v)
	if cfg.PrintResult {
		fmt.Println(v)
	}

	return 0
}

func dumpTokens(file string) int {
	src, err := os.ReadFile(file)
	if err != nil {
		printError(err)
		return 1
	}

	toks, err := salt.Lex(string(src))
	if err != nil {
		printError(errors.WithMessage(err, file))
		return 1
	}

	for _, tok := range toks {
		fmt.Printf("%-8s %-12s %s\n", tok.Loc, tok.Typ, tok.Value)
	}

	return 0
}

func dumpAST(file string) int {
	prog, err := salt.CompileFile(file)
	if err != nil {
		printError(err)
		return 1
	}

	dumper := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	dumper.Fdump(os.Stdout, prog)

	return 0
}

func check(file string) int {
	prog, err := salt.CompileFile(file)
	if err != nil {
		printError(err)
		return 1
	}

	errs := salt.Analyze(prog)
	for _, err := range errs {
		printError(errors.WithMessage(err, file))
	}

	if len(errs) != 0 {
		return 1
	}

	log.Infof("%s: %d function(s), no problems found", file, len(prog.Functions))
	return 0
}

func printError(err error) {
	switch e := errors.Cause(err).(type) {
	case *salt.LexError, *salt.ParseError:
		fmt.Fprintln(os.Stderr, "Syntax error:", err)
	case *salt.LoadError:
		fmt.Fprintln(os.Stderr, "Load error:", err)
	case *salt.UndefinedError:
		fmt.Fprintln(os.Stderr, "Undefined", e.Kind+":", e.Name, "at", e.Loc)
	case *salt.TypeError:
		fmt.Fprintln(os.Stderr, "Type error:", err)
	case *salt.ArityError:
		fmt.Fprintln(os.Stderr, "Wrong number of arguments:", e.Name, "takes", e.Expected, "got", e.Got, "at", e.Loc)
	case *salt.ArithmeticError:
		fmt.Fprintln(os.Stderr, "Arithmetic error:", err)
	case *salt.StackOverflowError:
		fmt.Fprintln(os.Stderr, "Stack overflow:", e.Name, "at", e.Loc, "exceeds depth", e.Depth)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
}

const replHelp = `REPL commands:
  :help          Show this help
  :quit / :exit  Leave the REPL
  :load FILE     Define the functions of FILE in this session
  :funcs         List the defined functions
  :reset         Start a new, empty session
Input starting with 'fn' defines functions; anything else runs as statements.
`

func runREPL(cfg *config.Config, opts []salt.Option) int {
	fmt.Println("salt REPL. Ctrl+C cancels input, Ctrl+D exits. Type :help for commands.")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(cfg.REPL.HistoryFile); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		f, err := os.Create(cfg.REPL.HistoryFile)
		if err != nil {
			log.Warnf("could not save history: %v", err)
			return
		}

		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}()

	session := salt.NewSession(opts...)
	for {
		src, ok := readInput(ln, cfg.REPL.Prompt, cfg.REPL.Continue)
		if !ok {
			fmt.Println()
			return 0
		}

		line := strings.TrimSpace(src)
		if line == "" {
			continue
		}

		ln.AppendHistory(src)

		if strings.HasPrefix(line, ":") {
			var quit bool
			if session, quit = replCommand(session, line, opts); quit {
				return 0
			}

			continue
		}

		v, err := session.Eval(src)
		if err != nil {
			printError(err)
			continue
		}

		if v != salt.Unit {
			fmt.Println(v)
		}
	}
}

func replCommand(session *salt.Session, line string, opts []salt.Option) (*salt.Session, bool) {
	fields := strings.Fields(line)

	switch fields[0] {
	case ":quit", ":exit":
		return session, true
	case ":help":
		fmt.Print(replHelp)
	case ":reset":
		return salt.NewSession(opts...), false
	case ":funcs":
		for _, name := range session.Functions() {
			fmt.Println(name)
		}
	case ":load":
		if len(fields) != 2 {
			fmt.Println("usage: :load FILE")
			break
		}

		prog, err := salt.CompileFile(fields[1])
		if err != nil {
			printError(err)
			break
		}

		session.Define(prog)
		fmt.Printf("loaded %d function(s)\n", len(prog.Functions))
	default:
		fmt.Println("unknown command, type :help for help")
	}

	return session, false
}

// readInput gathers lines until they lex and parse, or until the error is
// one that more input cannot fix.
func readInput(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}

		line, err := ln.Prompt(p)
		if err == io.EOF {
			return "", false
		}

		if err != nil {
			// Ctrl+C drops the pending input
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !incomplete(src) {
			return src, true
		}
	}
}

func incomplete(src string) bool {
	toks, err := salt.Lex(src)
	if err != nil {
		return false
	}

	if len(toks) > 0 && toks[0].Typ == salt.TokenFn {
		_, err = salt.Parse(toks)
	} else {
		_, err = salt.NewParser(toks).Statements()
	}

	var perr *salt.ParseError
	return errors.As(err, &perr) && perr.AtEOF()
}
