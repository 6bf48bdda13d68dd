// Package letexpr evaluates a small expression language with let
// bindings, assignments and block scoping. Programs are parsed once and
// cached in a Pool; every evaluation runs against a fresh scope chain
// seeded from the caller's variables.
package letexpr

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	metro "github.com/dgryski/go-metro"
)

var (
	ErrUnsupportedType = errors.New("unsupported type")
	ErrDivideZero      = errors.New("divide zero")
)

type (
	// BuiltinFunc is a Go function callable from expressions. Arguments
	// arrive unwrapped as int64, float64, string, bool or nil.
	BuiltinFunc func(...any) (any, error)

	// Expr is a parsed program ready for evaluation.
	Expr struct {
		src  string
		prog *Program
		pool *Pool
	}

	// Vars supplies the root-scope bindings for an evaluation. Values
	// must be Go numerics, strings or bools; anything else reads as
	// missing.
	Vars map[string]any
)

var (
	defaultPool = func() *Pool {
		p, err := NewPool()
		if err != nil {
			panic(err)
		}
		return p
	}()

	defaultOnVarMissing = func(varName string) (Value, error) {
		return Value{}, fmt.Errorf("var `%s' missing", varName)
	}
)

// New parses src, reusing the pool's cached program when available. A
// nil pool selects the shared default pool.
func New(src string, pool *Pool) (*Expr, error) {
	src = strings.TrimSpace(src)
	if pool == nil {
		pool = defaultPool
	}
	if e, ok := pool.get(src); ok {
		return e, nil
	}
	e := &Expr{src: src, pool: pool}
	if err := e.parse(src); err != nil {
		return nil, err
	}
	pool.set(src, e)
	return e, nil
}

// parse parses string src
func (e *Expr) parse(src string) error {
	if src == "" {
		return fmt.Errorf("parse error: empty string")
	}
	tokens, err := Tokenize(src)
	if err != nil {
		return err
	}
	prog, err := NewParser(tokens).ParseProgram()
	if err != nil {
		return err
	}
	if err := checkCalls(prog, e.pool); err != nil {
		return err
	}
	e.prog = prog
	return nil
}

// checkCalls rejects calls to functions the pool does not provide, so
// a bad program fails at parse time rather than mid-evaluation.
func checkCalls(node Node, pool *Pool) error {
	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Body {
			if err := checkCalls(stmt, pool); err != nil {
				return err
			}
		}
		if n.Tail != nil {
			return checkCalls(n.Tail, pool)
		}
	case *LetStmt:
		return checkCalls(n.Init, pool)
	case *AssignStmt:
		return checkCalls(n.Value, pool)
	case *ExprStmt:
		return checkCalls(n.X, pool)
	case *UnaryExpr:
		return checkCalls(n.X, pool)
	case *BinaryExpr:
		if err := checkCalls(n.Left, pool); err != nil {
			return err
		}
		return checkCalls(n.Right, pool)
	case *CallExpr:
		if _, ok := pool.builtinList[n.Name]; !ok {
			return fmt.Errorf("undefined function `%v`", n.Name)
		}
		for _, arg := range n.Args {
			if err := checkCalls(arg, pool); err != nil {
				return err
			}
		}
	case *BlockExpr:
		for _, stmt := range n.Stmts {
			if err := checkCalls(stmt, pool); err != nil {
				return err
			}
		}
		if n.Tail != nil {
			return checkCalls(n.Tail, pool)
		}
	case *IfExpr:
		if err := checkCalls(n.Cond, pool); err != nil {
			return err
		}
		if err := checkCalls(n.Then, pool); err != nil {
			return err
		}
		if n.Else != nil {
			return checkCalls(n.Else, pool)
		}
	}
	return nil
}

// Eval runs the program. vars seed the root scope; top-level lets join
// them there, and every block below gets its own scope.
func (e *Expr) Eval(vars Vars) (Value, error) {
	if e.prog == nil {
		return NilVal(), nil
	}
	env := scopedEnv(vars)
	ev := &evaluator{env: env, pool: e.pool}
	return ev.evalProgram(e.prog)
}

// Eval parses and runs src in one call.
func Eval(src string, vars Vars, pool *Pool) (Value, error) {
	e, err := New(src, pool)
	if err != nil {
		return Value{}, err
	}
	return e.Eval(vars)
}

type (
	// VarMissingFunc resolves reads of names with no binding.
	VarMissingFunc func(string) (Value, error)

	// Pool caches parsed programs and holds the builtin registry shared
	// by every Expr created against it.
	Pool struct {
		locker sync.RWMutex
		pool   map[uint64]*Expr

		builtinList  map[string]BuiltinFunc
		onVarMissing VarMissingFunc
	}
)

// NewPool creates a pool with the given builtin registries merged.
func NewPool(builtinList ...map[string]BuiltinFunc) (*Pool, error) {
	p := &Pool{
		pool:         make(map[uint64]*Expr),
		builtinList:  map[string]BuiltinFunc{},
		onVarMissing: defaultOnVarMissing,
	}
	for _, builtin := range builtinList {
		for name, fn := range builtin {
			p.builtinList[name] = fn
		}
	}
	return p, nil
}

// SetOnVarMissing replaces the handler for reads of unbound variables.
func (p *Pool) SetOnVarMissing(fn VarMissingFunc) {
	p.onVarMissing = fn
}

// poolKey hashes program text for the compiled cache.
func poolKey(s string) uint64 {
	return metro.Hash64Str(s, 0)
}

func (p *Pool) get(s string) (*Expr, bool) {
	p.locker.RLock()
	defer p.locker.RUnlock()
	e, ok := p.pool[poolKey(s)]
	// the stored source settles hash collisions
	return e, ok && e != nil && e.src == s
}

func (p *Pool) set(s string, e *Expr) {
	p.locker.Lock()
	defer p.locker.Unlock()
	p.pool[poolKey(s)] = e
}

func (p *Pool) builtinCall(name string, args ...Value) (Value, error) {
	if fn, ok := p.builtinList[name]; ok {
		v, err := fn(valuesToAny(args...)...)
		if err == nil {
			return NewValue(v)
		}
		return Value{}, err
	}
	return Value{}, fmt.Errorf("undefined function `%v`", name)
}
