package letexpr

import (
	"strconv"
)

// Kind discriminates the value representations.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	}
	return "invalid"
}

// Value is a tagged constant or evaluation result. The zero Value is nil.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

func NilVal() Value            { return Value{} }
func BoolVal(b bool) Value     { return Value{kind: KindBool, b: b} }
func IntVal(i int64) Value     { return Value{kind: KindInt, i: i} }
func FloatVal(f float64) Value { return Value{kind: KindFloat, f: f} }
func StringVal(s string) Value { return Value{kind: KindString, s: s} }

// NewValue converts a plain Go value.
func NewValue(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return NilVal(), nil
	case Value:
		return v, nil
	case bool:
		return BoolVal(v), nil
	case int:
		return IntVal(int64(v)), nil
	case int8:
		return IntVal(int64(v)), nil
	case int16:
		return IntVal(int64(v)), nil
	case int32:
		return IntVal(int64(v)), nil
	case int64:
		return IntVal(v), nil
	case uint:
		return IntVal(int64(v)), nil
	case uint8:
		return IntVal(int64(v)), nil
	case uint16:
		return IntVal(int64(v)), nil
	case uint32:
		return IntVal(int64(v)), nil
	case uint64:
		return IntVal(int64(v)), nil
	case float32:
		return FloatVal(float64(v)), nil
	case float64:
		return FloatVal(v), nil
	case string:
		return StringVal(v), nil
	}
	return Value{}, ErrUnsupportedType
}

func (v Value) Kind() Kind  { return v.kind }
func (v Value) IsNil() bool { return v.kind == KindNil }

// Int returns the numeric payload truncated to int64.
func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return int64(v.f)
	}
	return 0
}

// Float returns the numeric payload widened to float64.
func (v Value) Float() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindFloat:
		return v.f
	}
	return 0
}

// Bool returns the bool payload.
func (v Value) Bool() bool { return v.kind == KindBool && v.b }

// Truthy reports the value's truth in conditions: nil, false, zero and
// the empty string are false, everything else true.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindString:
		return v.s != ""
	}
	return false
}

// String renders the value for display.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	}
	return "nil"
}

func (v Value) isNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// numeric pairs operate in int64 unless either side is a float
func bothInt(v, v2 Value) bool {
	return v.kind == KindInt && v2.kind == KindInt
}

func (v Value) Add(v2 Value) (Value, error) {
	switch {
	case v.kind == KindString && v2.kind == KindString:
		return StringVal(v.s + v2.s), nil
	case bothInt(v, v2):
		return IntVal(v.i + v2.i), nil
	case v.isNumeric() && v2.isNumeric():
		return FloatVal(v.Float() + v2.Float()), nil
	}
	return Value{}, ErrUnsupportedType
}

func (v Value) Sub(v2 Value) (Value, error) {
	switch {
	case bothInt(v, v2):
		return IntVal(v.i - v2.i), nil
	case v.isNumeric() && v2.isNumeric():
		return FloatVal(v.Float() - v2.Float()), nil
	}
	return Value{}, ErrUnsupportedType
}

func (v Value) Mul(v2 Value) (Value, error) {
	switch {
	case bothInt(v, v2):
		return IntVal(v.i * v2.i), nil
	case v.isNumeric() && v2.isNumeric():
		return FloatVal(v.Float() * v2.Float()), nil
	}
	return Value{}, ErrUnsupportedType
}

func (v Value) Quo(v2 Value) (Value, error) {
	switch {
	case bothInt(v, v2):
		if v2.i == 0 {
			return Value{}, ErrDivideZero
		}
		return IntVal(v.i / v2.i), nil
	case v.isNumeric() && v2.isNumeric():
		return FloatVal(v.Float() / v2.Float()), nil
	}
	return Value{}, ErrUnsupportedType
}

func (v Value) Rem(v2 Value) (Value, error) {
	if bothInt(v, v2) {
		if v2.i == 0 {
			return Value{}, ErrDivideZero
		}
		return IntVal(v.i % v2.i), nil
	}
	return Value{}, ErrUnsupportedType
}

func (v Value) Neg() (Value, error) {
	switch v.kind {
	case KindInt:
		return IntVal(-v.i), nil
	case KindFloat:
		return FloatVal(-v.f), nil
	}
	return Value{}, ErrUnsupportedType
}

func (v Value) Eq(v2 Value) (Value, error) {
	switch {
	case v.kind == KindNil || v2.kind == KindNil:
		return BoolVal(v.kind == v2.kind), nil
	case bothInt(v, v2):
		return BoolVal(v.i == v2.i), nil
	case v.isNumeric() && v2.isNumeric():
		return BoolVal(v.Float() == v2.Float()), nil
	case v.kind == KindString && v2.kind == KindString:
		return BoolVal(v.s == v2.s), nil
	case v.kind == KindBool && v2.kind == KindBool:
		return BoolVal(v.b == v2.b), nil
	}
	return Value{}, ErrUnsupportedType
}

func (v Value) Ne(v2 Value) (Value, error) {
	eq, err := v.Eq(v2)
	if err != nil {
		return Value{}, err
	}
	return BoolVal(!eq.b), nil
}

func (v Value) Gt(v2 Value) (Value, error) {
	switch {
	case v.kind == KindString && v2.kind == KindString:
		return BoolVal(v.s > v2.s), nil
	case v.isNumeric() && v2.isNumeric():
		return BoolVal(v.Float() > v2.Float()), nil
	}
	return Value{}, ErrUnsupportedType
}

func (v Value) Ge(v2 Value) (Value, error) {
	switch {
	case v.kind == KindString && v2.kind == KindString:
		return BoolVal(v.s >= v2.s), nil
	case v.isNumeric() && v2.isNumeric():
		return BoolVal(v.Float() >= v2.Float()), nil
	}
	return Value{}, ErrUnsupportedType
}

func (v Value) Lt(v2 Value) (Value, error) {
	switch {
	case v.kind == KindString && v2.kind == KindString:
		return BoolVal(v.s < v2.s), nil
	case v.isNumeric() && v2.isNumeric():
		return BoolVal(v.Float() < v2.Float()), nil
	}
	return Value{}, ErrUnsupportedType
}

func (v Value) Le(v2 Value) (Value, error) {
	switch {
	case v.kind == KindString && v2.kind == KindString:
		return BoolVal(v.s <= v2.s), nil
	case v.isNumeric() && v2.isNumeric():
		return BoolVal(v.Float() <= v2.Float()), nil
	}
	return Value{}, ErrUnsupportedType
}

// valuesToAny unwraps arguments for builtin calls.
func valuesToAny(args ...Value) []any {
	out := make([]any, 0, len(args))
	for _, v := range args {
		switch v.kind {
		case KindBool:
			out = append(out, v.b)
		case KindInt:
			out = append(out, v.i)
		case KindFloat:
			out = append(out, v.f)
		case KindString:
			out = append(out, v.s)
		default:
			out = append(out, nil)
		}
	}
	return out
}
