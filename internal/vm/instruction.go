package vm

import (
	"github.com/lox/pokerquery/internal/deck"
	"github.com/lox/pokerquery/internal/query"
)

// Opcode tags an instruction.
type Opcode uint8

const (
	OpPush Opcode = iota
	OpPushStoreRef
	OpRead
	OpWrite
	OpBinOp
	OpCastNum
	OpFnCall
)

// Instruction is one step of a compiled program. Fields beyond Op are
// operand slots; which ones are meaningful depends on the opcode.
type Instruction struct {
	Op   Opcode
	Val  Value // OpPush
	Idx  int   // OpPushStoreRef, OpRead, OpWrite
	Bin  BinOp // OpBinOp
	Cast Type  // OpCastNum
	Fn   Fn    // OpFnCall
}

// ExecContext is the per-trial execution state: the stack, the worker's
// store, the sampled cards and the game context.
type ExecContext struct {
	Game  deck.Game
	Dead  deck.Card64
	Stack []Value
	Store *Store
	Sample *Sample
}

func (ctx *ExecContext) push(v Value) {
	ctx.Stack = append(ctx.Stack, v)
}

func (ctx *ExecContext) pop() (Value, error) {
	if len(ctx.Stack) == 0 {
		return Value{}, ErrStackUnderflow
	}
	v := ctx.Stack[len(ctx.Stack)-1]
	ctx.Stack = ctx.Stack[:len(ctx.Stack)-1]
	return v, nil
}

// Execute runs one instruction against the context.
func (ins *Instruction) Execute(ctx *ExecContext) error {
	switch ins.Op {
	case OpPush:
		ctx.push(ins.Val)
		return nil

	case OpPushStoreRef:
		ctx.push(StringValue(ins.Idx))
		return nil

	case OpRead:
		ctx.push(ctx.Store.Get(ins.Idx))
		return nil

	case OpWrite:
		v, err := ctx.pop()
		if err != nil {
			return err
		}
		ctx.Store.Set(ins.Idx, v)
		return nil

	case OpBinOp:
		return ins.Bin.Execute(ctx)

	case OpCastNum:
		v, err := ctx.pop()
		if err != nil {
			return err
		}
		cast, err := castNum(v, ins.Cast)
		if err != nil {
			return err
		}
		ctx.push(cast)
		return nil

	case OpFnCall:
		args := make([]Value, len(ins.Fn.ArgTypes()))
		for i := len(args) - 1; i >= 0; i-- {
			v, err := ctx.pop()
			if err != nil {
				return err
			}
			args[i] = v
		}
		res, err := ins.Fn.Call(ctx, args)
		if err != nil {
			return err
		}
		ctx.push(res)
		return nil

	default:
		return ErrInvalidVmValue
	}
}

// castNum coerces the top-of-stack numeric to the target type. Only the
// Long to CardCount narrowing exists today; out-of-range values fail at
// run time.
func castNum(v Value, target Type) (Value, error) {
	if target != TypeCardCount {
		return Value{}, ErrUnexpectedTypeCast
	}

	switch v.Type() {
	case TypeLong, TypePlayerCount:
		n := v.asLong()
		if n < 0 || n > 255 {
			return Value{}, &ValueRetrievalError{Type: TypeCardCount}
		}
		return CountValue(uint8(n)), nil
	case TypeCardCount:
		return v, nil
	case TypeDouble, TypeFraction, TypeEquity:
		return Value{}, &ValueRetrievalError{Type: TypeCardCount}
	default:
		return Value{}, ErrUnexpectedTypeCast
	}
}

// SelectorInfo records where a compiled selector stores its per-trial
// result.
type SelectorInfo struct {
	Kind query.SelectorKind
	Name string
	Slot int
	Type Type
}

// Program is a compiled statement: the instruction stream, the template
// store, and the per-selector result slots. The instruction stream and
// interned strings are shared read-only across workers; each worker
// clones the store.
type Program struct {
	Ins       []Instruction
	Store     *Store
	Selectors []SelectorInfo
}

// Run executes the whole program for one trial. The stack must come back
// empty: every selector ends in a write.
func (p *Program) Run(ctx *ExecContext) error {
	ctx.Stack = ctx.Stack[:0]

	for i := range p.Ins {
		if err := p.Ins[i].Execute(ctx); err != nil {
			return err
		}
	}

	if len(ctx.Stack) != 0 {
		return ErrBrokenStack
	}
	return nil
}
