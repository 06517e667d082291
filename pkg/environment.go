package salt

// Environment holds the bindings of one function activation. Nested if and
// while bodies use the same Environment as the function around them.
type Environment struct {
	vals map[string]Value
}

func NewEnvironment() *Environment {
	return &Environment{
		vals: make(map[string]Value),
	}
}

func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.vals[name]
	return v, ok
}

func (e *Environment) Set(name string, v Value) {
	e.vals[name] = v
}

func (e *Environment) Len() int {
	return len(e.vals)
}
