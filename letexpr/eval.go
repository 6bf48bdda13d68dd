package letexpr

import (
	"fmt"

	"github.com/shreyasm-dev/scoped-stack/scoped"
)

// evaluator walks the AST with a scope chain as its environment. Each
// block pushes a scope on entry and pops it on exit, so block-local
// bindings shadow outer ones and vanish when the block ends.
type evaluator struct {
	env  *scoped.Stack[string, Value]
	pool *Pool
}

// scopedEnv builds the root environment from caller variables. Values
// that do not convert are left out and read as missing.
func scopedEnv(vars Vars) *scoped.Stack[string, Value] {
	env := scoped.New[string, Value]()
	for name, v := range vars {
		if val, err := NewValue(v); err == nil {
			env.Insert(name, val)
		}
	}
	return env
}

func (ev *evaluator) evalProgram(prog *Program) (Value, error) {
	for _, stmt := range prog.Body {
		if err := ev.exec(stmt); err != nil {
			return Value{}, err
		}
	}
	if prog.Tail != nil {
		return ev.eval(prog.Tail)
	}
	return NilVal(), nil
}

func (ev *evaluator) exec(stmt Statement) error {
	switch n := stmt.(type) {
	case *LetStmt:
		v, err := ev.eval(n.Init)
		if err != nil {
			return err
		}
		ev.env.Insert(n.Name, v)
		return nil

	case *AssignStmt:
		v, err := ev.eval(n.Value)
		if err != nil {
			return err
		}
		if !ev.env.Update(n.Name, v) {
			return fmt.Errorf("assignment to unbound var `%s' at line %d", n.Name, n.Pos())
		}
		return nil

	case *DelStmt:
		if _, ok := ev.env.Remove(n.Name); !ok {
			return fmt.Errorf("delete of unbound var `%s' at line %d", n.Name, n.Pos())
		}
		return nil

	case *ExprStmt:
		_, err := ev.eval(n.X)
		return err
	}
	return fmt.Errorf("unexpected statement type %T", stmt)
}

func (ev *evaluator) eval(node Expression) (Value, error) {
	switch n := node.(type) {
	case *Literal:
		return n.Value, nil

	case *Ident:
		if v, ok := ev.env.Get(n.Name); ok {
			return v, nil
		}
		return ev.pool.onVarMissing(n.Name)

	case *UnaryExpr:
		x, err := ev.eval(n.X)
		if err != nil {
			return Value{}, err
		}
		switch n.Op {
		case TokPlus:
			return x, nil
		case TokMinus:
			return x.Neg()
		case TokNot:
			return BoolVal(!x.Truthy()), nil
		}
		return Value{}, fmt.Errorf("unsupported unary op: %v", n.Op)

	case *BinaryExpr:
		// && and || short-circuit on the left operand's truth
		if n.Op == TokAnd || n.Op == TokOr {
			x, err := ev.eval(n.Left)
			if err != nil {
				return Value{}, err
			}
			if n.Op == TokAnd && !x.Truthy() {
				return BoolVal(false), nil
			}
			if n.Op == TokOr && x.Truthy() {
				return BoolVal(true), nil
			}
			y, err := ev.eval(n.Right)
			if err != nil {
				return Value{}, err
			}
			return BoolVal(y.Truthy()), nil
		}

		x, err := ev.eval(n.Left)
		if err != nil {
			return Value{}, err
		}
		y, err := ev.eval(n.Right)
		if err != nil {
			return Value{}, err
		}
		switch n.Op {
		case TokPlus:
			return x.Add(y)
		case TokMinus:
			return x.Sub(y)
		case TokStar:
			return x.Mul(y)
		case TokSlash:
			return x.Quo(y)
		case TokPercent:
			return x.Rem(y)
		case TokEq:
			return x.Eq(y)
		case TokNe:
			return x.Ne(y)
		case TokGt:
			return x.Gt(y)
		case TokGe:
			return x.Ge(y)
		case TokLt:
			return x.Lt(y)
		case TokLe:
			return x.Le(y)
		}
		return Value{}, fmt.Errorf("unexpected binary operator: %v", n.Op)

	case *CallExpr:
		args := make([]Value, 0, len(n.Args))
		for _, arg := range n.Args {
			val, err := ev.eval(arg)
			if err != nil {
				return Value{}, err
			}
			args = append(args, val)
		}
		return ev.pool.builtinCall(n.Name, args...)

	case *BlockExpr:
		return ev.evalBlock(n)

	case *IfExpr:
		cond, err := ev.eval(n.Cond)
		if err != nil {
			return Value{}, err
		}
		if cond.Truthy() {
			return ev.evalBlock(n.Then)
		}
		if n.Else != nil {
			return ev.eval(n.Else)
		}
		return NilVal(), nil
	}
	return Value{}, fmt.Errorf("unexpected node type %T", node)
}

func (ev *evaluator) evalBlock(b *BlockExpr) (Value, error) {
	ev.env.PushScope()
	defer ev.env.PopScope()

	for _, stmt := range b.Stmts {
		if err := ev.exec(stmt); err != nil {
			return Value{}, err
		}
	}
	if b.Tail != nil {
		return ev.eval(b.Tail)
	}
	return NilVal(), nil
}
