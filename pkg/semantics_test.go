package salt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		expect []string
	}{
		{
			"clean program",
			fibSource,
			nil,
		},
		{
			"binding later in the function counts",
			"fn main() { while true { if x > 1 { return x; } let x = 2; } }",
			nil,
		},
		{
			"unknown function",
			"fn main() { return f(); }",
			[]string{"undefined function: f"},
		},
		{
			"unknown variable",
			"fn main() { return y; }",
			[]string{"undefined variable: y"},
		},
		{
			"variables do not leak between functions",
			"fn main() { let x = 1; return f(); } fn f() { return x; }",
			[]string{"undefined variable: x"},
		},
		{
			"arity",
			"fn main() { return f(1); } fn f(a, b) { return a + b; }",
			[]string{"takes 2 argument(s), got 1"},
		},
		{
			"missing main and duplicates",
			"fn f() { } fn f() { }",
			[]string{"already defined", "no main function"},
		},
		{
			"dead code is still reported",
			"fn main() { if false { print(g(z)); } }",
			[]string{"undefined variable: z", "undefined function: g"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			errs := Analyze(mustCompile(t, c.src))
			require.Len(t, errs, len(c.expect))

			for i, msg := range c.expect {
				assert.Contains(t, errs[i].Error(), msg)
			}
		})
	}
}

func TestAnalyzeDoesNotReject(t *testing.T) {
	// A call to an undefined function that never runs is fine at runtime.
	src := "fn main() { if false { return missing(); } return 1; }"

	assert.Len(t, Analyze(mustCompile(t, src)), 1)

	v, _, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, Integer(1), v)
}

func TestSymbolTable(t *testing.T) {
	stab := NewSymbolTable()
	stab.Add("a")

	assert.True(t, stab.Has("a"))
	assert.False(t, stab.Has("b"))
}
