package evaluator

// Env is the single flat variable environment. Loops do not introduce
// scopes: a loop variable is an ordinary binding that survives the loop.
type Env struct {
	vars map[string]Value
}

func NewEnv() *Env {
	return &Env{vars: make(map[string]Value)}
}

func (e *Env) Get(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

func (e *Env) Set(name string, v Value) {
	e.vars[name] = v
}

func (e *Env) Has(name string) bool {
	_, ok := e.vars[name]
	return ok
}
