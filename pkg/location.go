package salt

import "fmt"

// Location points at the first character of a token in the source text.
// Lines and columns start at 1.
type Location struct {
	Line int
	Col  int
}

func (l *Location) String() string {
	if l == nil {
		return "?:?"
	}

	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}
