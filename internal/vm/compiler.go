package vm

import (
	"strconv"

	"github.com/lox/pokerquery/internal/deck"
	"github.com/lox/pokerquery/internal/evaluator"
	"github.com/lox/pokerquery/internal/query"
)

// compiler walks selector expressions and emits the instruction stream.
type compiler struct {
	sd    *StaticData
	reg   *Registry
	store *Store
	ins   []Instruction
}

// Compile turns a parsed statement into an executable program against the
// statement's static data. Each selector expression is type-checked under
// the selector kind and ends with a write to that selector's result slot.
func Compile(stmt *query.Statement, sd *StaticData, reg *Registry) (*Program, error) {
	c := &compiler{sd: sd, reg: reg, store: &Store{}}

	var infos []SelectorInfo
	for i, sel := range stmt.Selectors {
		t, err := c.compileExpr(sel.Expr, TypeInvalid)
		if err != nil {
			return nil, err
		}

		ok := false
		switch sel.Kind {
		case query.Avg:
			ok = t.IsNum()
		case query.Count:
			ok = t == TypeBoolean
		default: // Max, Min
			ok = t.IsNum() || t.IsOrdered()
		}
		if !ok {
			return nil, query.NewError(sel.Expr.Loc(), &SelectorUnsupportedError{Kind: sel.Kind, Type: t})
		}

		slot := c.store.AddSlot(Value{})
		c.emit(Instruction{Op: OpWrite, Idx: slot})
		infos = append(infos, SelectorInfo{
			Kind: sel.Kind,
			Name: sel.Name(i + 1),
			Slot: slot,
			Type: t,
		})
	}

	return &Program{Ins: c.ins, Store: c.store, Selectors: infos}, nil
}

func (c *compiler) emit(ins Instruction) {
	c.ins = append(c.ins, ins)
}

// compileExpr emits code for the expression and returns its static type.
// expected directs identifier and literal resolution; TypeInvalid leaves
// them untyped.
func (c *compiler) compileExpr(e query.Expr, expected Type) (Type, error) {
	switch e := e.(type) {
	case *query.Ident:
		return c.compileIdent(e, expected)
	case *query.Num:
		return c.compileNum(e, expected)
	case *query.Str:
		return c.compileStr(e, expected)
	case *query.FnCall:
		return c.compileFnCall(e)
	case *query.BinOp:
		return c.compileBinOp(e)
	default:
		return TypeInvalid, query.NewError(e.Loc(), ErrInvalidVmValue)
	}
}

// compileIdent resolves an identifier type-directed: with an expected
// type it must parse as that type; untyped identifiers are tried as flop
// category, hand type, then street.
func (c *compiler) compileIdent(e *query.Ident, expected Type) (Type, error) {
	switch expected {
	case TypeInvalid:
		if cat, err := evaluator.ParseFlopCategory(e.Name); err == nil {
			c.emit(Instruction{Op: OpPush, Val: FlopCategoryValue(cat)})
			return TypeFlopHandCategory, nil
		}
		if ht, err := evaluator.ParseHandType(e.Name); err == nil {
			c.emit(Instruction{Op: OpPush, Val: HandTypeValue(ht)})
			return TypeHandType, nil
		}
		if st, err := deck.ParseStreet(e.Name); err == nil {
			c.emit(Instruction{Op: OpPush, Val: StreetValue(st)})
			return TypeStreet, nil
		}
		return TypeInvalid, query.NewError(e.Span, &UnrecognizedIdentError{Name: e.Name})

	case TypeFlopHandCategory:
		cat, err := evaluator.ParseFlopCategory(e.Name)
		if err != nil {
			return TypeInvalid, query.NewError(e.Span, &UnrecognizedIdentError{Name: e.Name})
		}
		c.emit(Instruction{Op: OpPush, Val: FlopCategoryValue(cat)})
		return expected, nil

	case TypeHandType:
		ht, err := evaluator.ParseHandType(e.Name)
		if err != nil {
			return TypeInvalid, query.NewError(e.Span, &UnrecognizedIdentError{Name: e.Name})
		}
		c.emit(Instruction{Op: OpPush, Val: HandTypeValue(ht)})
		return expected, nil

	case TypeStreet:
		st, err := deck.ParseStreet(e.Name)
		if err != nil {
			return TypeInvalid, query.NewError(e.Span, &UnrecognizedIdentError{Name: e.Name})
		}
		c.emit(Instruction{Op: OpPush, Val: StreetValue(st)})
		return expected, nil

	case TypePlayer:
		idx, ok := c.sd.Player(e.Name)
		if !ok {
			return TypeInvalid, query.Errorf(e.Span, "%w: %q", ErrInvalidPlayer, e.Name)
		}
		c.emit(Instruction{Op: OpPush, Val: PlayerValue(idx)})
		return expected, nil

	default:
		return TypeInvalid, query.NewError(e.Span, &TypeMismatchError{Expected: expected, Actual: TypeInvalid})
	}
}

func (c *compiler) compileNum(e *query.Num, expected Type) (Type, error) {
	switch expected {
	case TypeDouble:
		f, err := strconv.ParseFloat(e.Text, 64)
		if err != nil {
			return TypeInvalid, query.Errorf(e.Span, "invalid number %q", e.Text)
		}
		c.emit(Instruction{Op: OpPush, Val: DoubleValue(f)})
		return TypeDouble, nil

	case TypeCardCount:
		n, err := strconv.ParseUint(e.Text, 10, 8)
		if err != nil || e.IsFloat {
			return TypeInvalid, query.Errorf(e.Span, "invalid card count %q", e.Text)
		}
		c.emit(Instruction{Op: OpPush, Val: CountValue(uint8(n))})
		return TypeCardCount, nil

	case TypeInvalid, TypeLong, TypeNumeric:
		if e.IsFloat {
			f, err := strconv.ParseFloat(e.Text, 64)
			if err != nil {
				return TypeInvalid, query.Errorf(e.Span, "invalid number %q", e.Text)
			}
			c.emit(Instruction{Op: OpPush, Val: DoubleValue(f)})
			return TypeDouble, nil
		}
		n, err := strconv.ParseInt(e.Text, 10, 64)
		if err != nil {
			return TypeInvalid, query.Errorf(e.Span, "invalid number %q", e.Text)
		}
		c.emit(Instruction{Op: OpPush, Val: LongValue(n)})
		return TypeLong, nil

	default:
		return TypeInvalid, query.NewError(e.Span, &TypeMismatchError{Expected: expected, Actual: TypeLong})
	}
}

func (c *compiler) compileStr(e *query.Str, expected Type) (Type, error) {
	if expected != TypeInvalid && expected != TypeString {
		return TypeInvalid, query.NewError(e.Span, &TypeMismatchError{Expected: expected, Actual: TypeString})
	}
	idx := c.store.Intern(e.Value)
	c.emit(Instruction{Op: OpPushStoreRef, Idx: idx})
	return TypeString, nil
}

func (c *compiler) compileFnCall(e *query.FnCall) (Type, error) {
	fn, ok := c.reg.Lookup(e.Name)
	if !ok {
		return TypeInvalid, query.NewError(e.NameLoc, &UnknownFunctionError{Name: e.Name})
	}

	want := fn.ArgTypes()
	if len(e.Args) != len(want) {
		return TypeInvalid, query.NewError(e.Span, &ArityError{Name: fn.Name(), Want: len(want), Got: len(e.Args)})
	}

	for i, arg := range e.Args {
		got, err := c.compileExpr(arg, want[i])
		if err != nil {
			return TypeInvalid, err
		}
		if got == want[i] {
			continue
		}
		switch {
		case want[i] == TypeCardCount && got.IsNum():
			c.emit(Instruction{Op: OpCastNum, Cast: TypeCardCount})
		case want[i] == TypeNumeric && got.IsNum():
		default:
			return TypeInvalid, query.NewError(arg.Loc(), &TypeMismatchError{Expected: want[i], Actual: got})
		}
	}

	c.emit(Instruction{Op: OpFnCall, Fn: fn})
	return fn.ReturnType(), nil
}

func (c *compiler) compileBinOp(e *query.BinOp) (Type, error) {
	lt, err := c.compileExpr(e.LHS, TypeInvalid)
	if err != nil {
		return TypeInvalid, err
	}
	rt, err := c.compileExpr(e.RHS, TypeInvalid)
	if err != nil {
		return TypeInvalid, err
	}

	op := BinOp{Op: e.Op}
	res, err := op.ResolveType(lt, rt)
	if err != nil {
		return TypeInvalid, query.NewError(e.Span, err)
	}

	c.emit(Instruction{Op: OpBinOp, Bin: op})
	return res, nil
}
