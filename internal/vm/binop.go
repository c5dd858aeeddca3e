package vm

import (
	"math"

	"github.com/lox/pokerquery/internal/deck"
	"github.com/lox/pokerquery/internal/query"
)

// BinOp is the executable form of a binary operator.
type BinOp struct {
	Op query.BinOpKind
}

func (b BinOp) isArith() bool {
	switch b.Op {
	case query.OpAdd, query.OpSub, query.OpMul, query.OpDiv:
		return true
	default:
		return false
	}
}

// ResolveType type-checks the operator against its operand types and
// returns the result type. Arithmetic needs numeric operands and division
// always widens to double; comparisons need numerics or equal ordered
// types, equality additionally accepts equal-typed unordered operands.
func (b BinOp) ResolveType(l, r Type) (Type, error) {
	if b.isArith() {
		if !l.IsNum() || !r.IsNum() {
			return TypeInvalid, &ArithUnsupportedError{Op: b.Op, L: l, R: r}
		}
		if b.Op == query.OpDiv {
			return TypeDouble, nil
		}
		if l.isInt() && r.isInt() {
			return TypeLong, nil
		}
		return TypeDouble, nil
	}

	bothNum := l.IsNum() && r.IsNum()
	same := l == r

	if b.Op == query.OpEq {
		if bothNum || same {
			return TypeBoolean, nil
		}
	} else if bothNum || (same && l.IsOrdered()) {
		return TypeBoolean, nil
	}

	return TypeInvalid, &CmpUnsupportedError{Op: b.Op, L: l, R: r}
}

// Execute pops the two operands and pushes the result.
func (b BinOp) Execute(ctx *ExecContext) error {
	r, err := ctx.pop()
	if err != nil {
		return err
	}
	l, err := ctx.pop()
	if err != nil {
		return err
	}

	var res Value
	if b.isArith() {
		res, err = arith(b.Op, l, r)
	} else if b.Op == query.OpEq && !l.IsNum() {
		res = BoolValue(l.Equal(r))
	} else {
		var ord int
		var comparable bool
		ord, comparable, err = Compare(ctx.Game, l, r)
		if err == nil {
			res = BoolValue(comparable && matches(b.Op, ord))
		}
	}
	if err != nil {
		return err
	}

	ctx.push(res)
	return nil
}

func matches(op query.BinOpKind, ord int) bool {
	switch op {
	case query.OpEq:
		return ord == 0
	case query.OpLt:
		return ord < 0
	case query.OpGt:
		return ord > 0
	case query.OpLe:
		return ord <= 0
	default: // OpGe
		return ord >= 0
	}
}

// arith evaluates an arithmetic operator. Integer operands stay integer
// with overflow checks; anything involving a double or fraction widens.
func arith(op query.BinOpKind, l, r Value) (Value, error) {
	if !l.IsNum() || !r.IsNum() {
		return Value{}, ErrNonNumericValue
	}

	if op != query.OpDiv && l.isInt() && r.isInt() {
		a, b := l.asLong(), r.asLong()
		switch op {
		case query.OpAdd:
			if sum := a + b; (sum > a) == (b > 0) {
				return LongValue(sum), nil
			}
			return Value{}, ErrAddOverflow
		case query.OpSub:
			if diff := a - b; (diff < a) == (b > 0) {
				return LongValue(diff), nil
			}
			return Value{}, ErrSubOverflow
		default: // OpMul
			if a == 0 || b == 0 {
				return LongValue(0), nil
			}
			prod := a * b
			if prod/b != a {
				return Value{}, ErrMulOverflow
			}
			return LongValue(prod), nil
		}
	}

	a, b := l.AsDouble(), r.AsDouble()
	switch op {
	case query.OpAdd:
		return DoubleValue(a + b), nil
	case query.OpSub:
		return DoubleValue(a - b), nil
	case query.OpMul:
		return DoubleValue(a * b), nil
	default: // OpDiv
		return DoubleValue(a / b), nil
	}
}

// Compare orders two stack values under the game's strength ladder.
// comparable is false when a NaN is involved; a type pairing the compiler
// would have rejected returns an internal error.
func Compare(g deck.Game, l, r Value) (ord int, comparable bool, err error) {
	switch {
	case l.typ == TypeRank && r.typ == TypeRank,
		l.typ == TypeHiRating && r.typ == TypeHiRating:
		return cmpInt(l.i, r.i), true, nil

	case l.typ == TypeHandType && r.typ == TypeHandType:
		return l.HandType().Compare(r.HandType(), g), true, nil

	case l.typ == TypeFlopHandCategory && r.typ == TypeFlopHandCategory:
		return l.FlopCategory().Compare(r.FlopCategory(), g), true, nil

	case l.IsNum() && r.IsNum():
		if l.isInt() && r.isInt() {
			return cmpInt(l.asLong(), r.asLong()), true, nil
		}
		a, b := l.AsDouble(), r.AsDouble()
		if math.IsNaN(a) || math.IsNaN(b) {
			return 0, false, nil
		}
		switch {
		case a < b:
			return -1, true, nil
		case a > b:
			return 1, true, nil
		default:
			return 0, true, nil
		}

	default:
		return 0, false, ErrNonNumericValue
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
