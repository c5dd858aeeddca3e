package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/pokerquery/internal/deck"
	"github.com/lox/pokerquery/internal/evaluator"
	"github.com/lox/pokerquery/internal/query"
)

// compileStmt compiles a statement with a default trial budget.
func compileStmt(t *testing.T, src string) (*Program, *StaticData) {
	t.Helper()

	stmt := parseStmt(t, src)
	sd, err := BuildStaticData(stmt, 100)
	require.NoError(t, err)

	prog, err := Compile(stmt, sd, NewRegistry())
	require.NoError(t, err)
	return prog, sd
}

// runFixed executes the program once against a fixed deal and returns the
// selector slots.
func runFixed(t *testing.T, prog *Program, sd *StaticData, cards string) []Value {
	t.Helper()

	sample := NewSample(len(sd.PlayerNames), sd.Game.HoleCards())
	copy(sample.Cards, deck.MustParseCards(cards))

	ctx := &ExecContext{
		Game:   sd.Game,
		Dead:   sd.DeadCards,
		Store:  prog.Store.Clone(),
		Sample: sample,
	}
	require.NoError(t, prog.Run(ctx))

	vals := make([]Value, len(prog.Selectors))
	for i, sel := range prog.Selectors {
		vals[i] = ctx.Store.Get(sel.Slot)
	}
	return vals
}

func TestCompileLiteralArithmetic(t *testing.T) {
	prog, sd := compileStmt(t, "select avg(1 + 2 * 3), count(1 > 0) from hero='AA'")

	require.Equal(t, TypeLong, prog.Selectors[0].Type)
	require.Equal(t, TypeBoolean, prog.Selectors[1].Type)

	vals := runFixed(t, prog, sd, "As Ah 2c 3d 4h 5s 6c")
	require.Equal(t, int64(7), vals[0].Long())
	require.True(t, vals[1].Bool())
}

func TestCompileHandTypeComparison(t *testing.T) {
	prog, sd := compileStmt(t, "select count(handType(hero, river) = FLUSH) from hero='AA'")

	// Board gives hero the nut flush.
	vals := runFixed(t, prog, sd, "As Ah 2s 5s 7s 9s Kc")
	require.True(t, vals[0].Bool())

	// Only one spade on the board, no flush.
	vals = runFixed(t, prog, sd, "As Ah 2s 5d 7c 9h Kc")
	require.False(t, vals[0].Bool())
}

func TestCompileFlopCategory(t *testing.T) {
	prog, sd := compileStmt(t, "select max(flopHandCategory(hero)) from hero='7hAh'")

	vals := runFixed(t, prog, sd, "7h Ah 7s 8h Tc 2d 3c")
	require.Equal(t, evaluator.FlopThirdPair, vals[0].FlopCategory())
}

func TestCompileSelectorNames(t *testing.T) {
	prog, _ := compileStmt(t, "select avg(1) as one, avg(2) from hero='AA'")
	require.Equal(t, "one", prog.Selectors[0].Name)
	require.Equal(t, "avg2", prog.Selectors[1].Name)
}

func TestCompileEquity(t *testing.T) {
	prog, sd := compileStmt(t, "select avg(equity(hero, river)), avg(equity(villain, river)) from hero='AsAh', villain='KsKh'")

	// Hero wins outright on this runout.
	vals := runFixed(t, prog, sd, "As Ah Ks Kh 2c 7d 9h Js Qd")
	require.Equal(t, 1.0, vals[0].Double())
	require.Equal(t, 0.0, vals[1].Double())

	// A chopped board splits the pot.
	prog2, sd2 := compileStmt(t, "select avg(equity(hero, river)) from hero='2s2h', villain='3s3h'")
	vals = runFixed(t, prog2, sd2, "2s 2h 3s 3h As Ks Qs Js Ts")
	require.Equal(t, 0.5, vals[0].Double())
}

func TestCompileCardCountCoercion(t *testing.T) {
	prog, sd := compileStmt(t, "select max(nthRank(1, boardRanks(river))) from hero='AA'")
	_ = sd

	// Literal 1 was compiled directly as a card count.
	found := false
	for _, ins := range prog.Ins {
		if ins.Op == OpPush && ins.Val.Type() == TypeCardCount {
			found = true
		}
	}
	require.True(t, found, "expected a card count literal push")
}

func TestCompileCastNumRuntimeFailure(t *testing.T) {
	// 255 + 1.0 is a double at compile time; narrowing it to a card
	// count fails during execution.
	prog, sd := compileStmt(t, "select max(nthRank(255 + 1.0, boardRanks(river))) from hero='AA'")

	sample := NewSample(1, 2)
	copy(sample.Cards, deck.MustParseCards("As Ah 2c 3d 4h 5s 6c"))
	ctx := &ExecContext{Game: sd.Game, Store: prog.Store.Clone(), Sample: sample}

	err := prog.Run(ctx)
	require.Error(t, err)
	var vre *ValueRetrievalError
	require.ErrorAs(t, err, &vre)
	require.Equal(t, TypeCardCount, vre.Type)
}

func TestCompileErrors(t *testing.T) {
	compileErr := func(src string) error {
		stmt := parseStmt(t, src)
		sd, err := BuildStaticData(stmt, 100)
		require.NoError(t, err, src)

		_, err = Compile(stmt, sd, NewRegistry())
		require.Error(t, err, src)
		return err
	}

	var selErr *SelectorUnsupportedError
	require.ErrorAs(t, compileErr("select avg(handType(hero, river)) from hero='AA'"), &selErr)
	require.ErrorAs(t, compileErr("select count(1 + 1) from hero='AA'"), &selErr)

	require.ErrorIs(t, compileErr("select max(equity(ghost, river)) from hero='AA'"), ErrInvalidPlayer)

	var fnErr *UnknownFunctionError
	require.ErrorAs(t, compileErr("select avg(mystery(hero)) from hero='AA'"), &fnErr)

	var arityErr *ArityError
	require.ErrorAs(t, compileErr("select avg(equity(hero)) from hero='AA'"), &arityErr)

	var identErr *UnrecognizedIdentError
	require.ErrorAs(t, compileErr("select avg(nonsense) from hero='AA'"), &identErr)

	var arithErr *ArithUnsupportedError
	require.ErrorAs(t, compileErr("select avg(1 + flop) from hero='AA'"), &arithErr)

	var cmpErr *CmpUnsupportedError
	require.ErrorAs(t, compileErr("select count(flop < river) from hero='AA'"), &cmpErr)
	require.ErrorAs(t, compileErr("select count(handType(hero, river) = FLOPSET) from hero='AA'"), &cmpErr)
}

func TestCompileErrorLocations(t *testing.T) {
	src := "select avg(mystery(hero)) from hero='AA'"
	stmt := parseStmt(t, src)
	sd, err := BuildStaticData(stmt, 100)
	require.NoError(t, err)

	_, err = Compile(stmt, sd, NewRegistry())
	require.Error(t, err)

	span, ok := query.SpanOf(err)
	require.True(t, ok)
	require.Equal(t, "mystery", src[span.Start:span.End])
}

func TestCompileCardEquality(t *testing.T) {
	prog, sd := compileStmt(t, "select count(turnCard() = riverCard()) from hero='AA'")
	vals := runFixed(t, prog, sd, "As Ah 2c 3d 4h 5s 6c")
	require.False(t, vals[0].Bool())
}

func TestCompileOutsFunction(t *testing.T) {
	prog, sd := compileStmt(t, "select avg(minOutsToHandType(hero, flop, straight_flush)) from hero='JsTs'")
	vals := runFixed(t, prog, sd, "Js Ts 9s 8s 2d 3c 4h")
	require.Equal(t, TypeCardCount, vals[0].Type())
	require.Equal(t, uint8(2), vals[0].Count())
}
