package vm

import (
	"strings"

	"github.com/lox/pokerquery/internal/deck"
	"github.com/lox/pokerquery/internal/evaluator"
)

// Fn is one built-in poker function: its positional argument types, its
// return type and its runtime dispatcher.
type Fn interface {
	Name() string
	ArgTypes() []Type
	ReturnType() Type
	Call(ctx *ExecContext, args []Value) (Value, error)
}

// Registry resolves function names case-insensitively. It is built once
// at startup and shared read-only.
type Registry struct {
	fns map[string]Fn
}

// NewRegistry builds the registry of built-in functions.
func NewRegistry() *Registry {
	r := &Registry{fns: map[string]Fn{}}

	for _, fn := range []Fn{
		fnEquity{},
		fnWinsHi{},
		fnTiesHi{},
		fnHandType{},
		fnHiRating{},
		fnBestHiRating{},
		fnFlopHandCategory{},
		fnBoardRanks{},
		fnNthRank{},
		fnTurnCard{},
		fnRiverCard{},
		fnOuts{name: "outsToHandType"},
		fnOuts{name: "minOutsToHandType"},
	} {
		r.fns[strings.ToLower(fn.Name())] = fn
	}

	return r
}

// Lookup resolves a function by name; ok is false when unknown.
func (r *Registry) Lookup(name string) (Fn, bool) {
	fn, ok := r.fns[strings.ToLower(name)]
	return fn, ok
}

// ratePlayer rates the player's hand against the board visible on the
// street.
func ratePlayer(ctx *ExecContext, player int, street deck.Street) evaluator.Rating {
	return evaluator.Rate(ctx.Game, ctx.Sample.PlayerC64(player), ctx.Sample.BoardC64(street))
}

// showdown rates every player and returns the best rating plus how many
// players hold it.
func showdown(ctx *ExecContext, street deck.Street) (best evaluator.Rating, winners int) {
	for p := 0; p < ctx.Sample.NumPlayers; p++ {
		r := ratePlayer(ctx, p, street)
		switch {
		case winners == 0 || r > best:
			best, winners = r, 1
		case r == best:
			winners++
		}
	}
	return best, winners
}

// equity(player, street): the player's share of the pot if the hands were
// shown down on the street; winners split one unit equally.
type fnEquity struct{}

func (fnEquity) Name() string      { return "equity" }
func (fnEquity) ArgTypes() []Type  { return []Type{TypePlayer, TypeStreet} }
func (fnEquity) ReturnType() Type  { return TypeEquity }

func (fnEquity) Call(ctx *ExecContext, args []Value) (Value, error) {
	player, street := args[0].Player(), args[1].Street()

	best, winners := showdown(ctx, street)
	if ratePlayer(ctx, player, street) == best {
		return EquityValue(1 / float64(winners)), nil
	}
	return EquityValue(0), nil
}

// winsHi(player, street): the player alone holds the best hand.
type fnWinsHi struct{}

func (fnWinsHi) Name() string      { return "winsHi" }
func (fnWinsHi) ArgTypes() []Type  { return []Type{TypePlayer, TypeStreet} }
func (fnWinsHi) ReturnType() Type  { return TypeBoolean }

func (fnWinsHi) Call(ctx *ExecContext, args []Value) (Value, error) {
	player, street := args[0].Player(), args[1].Street()

	best, winners := showdown(ctx, street)
	return BoolValue(winners == 1 && ratePlayer(ctx, player, street) == best), nil
}

// tiesHi(player, street): the player shares the best hand with another.
type fnTiesHi struct{}

func (fnTiesHi) Name() string      { return "tiesHi" }
func (fnTiesHi) ArgTypes() []Type  { return []Type{TypePlayer, TypeStreet} }
func (fnTiesHi) ReturnType() Type  { return TypeBoolean }

func (fnTiesHi) Call(ctx *ExecContext, args []Value) (Value, error) {
	player, street := args[0].Player(), args[1].Street()

	best, winners := showdown(ctx, street)
	return BoolValue(winners > 1 && ratePlayer(ctx, player, street) == best), nil
}

// handType(player, street): the categorical type of the player's hand.
type fnHandType struct{}

func (fnHandType) Name() string      { return "handType" }
func (fnHandType) ArgTypes() []Type  { return []Type{TypePlayer, TypeStreet} }
func (fnHandType) ReturnType() Type  { return TypeHandType }

func (fnHandType) Call(ctx *ExecContext, args []Value) (Value, error) {
	return HandTypeValue(ratePlayer(ctx, args[0].Player(), args[1].Street()).HandType()), nil
}

// hiRating(player, street): the full tie-break rating.
type fnHiRating struct{}

func (fnHiRating) Name() string      { return "hiRating" }
func (fnHiRating) ArgTypes() []Type  { return []Type{TypePlayer, TypeStreet} }
func (fnHiRating) ReturnType() Type  { return TypeHiRating }

func (fnHiRating) Call(ctx *ExecContext, args []Value) (Value, error) {
	return RatingValue(ratePlayer(ctx, args[0].Player(), args[1].Street())), nil
}

// bestHiRating(street): the strongest rating among all players.
type fnBestHiRating struct{}

func (fnBestHiRating) Name() string      { return "bestHiRating" }
func (fnBestHiRating) ArgTypes() []Type  { return []Type{TypeStreet} }
func (fnBestHiRating) ReturnType() Type  { return TypeHiRating }

func (fnBestHiRating) Call(ctx *ExecContext, args []Value) (Value, error) {
	best, _ := showdown(ctx, args[0].Street())
	return RatingValue(best), nil
}

// flopHandCategory(player): the fine-grained flop classification.
type fnFlopHandCategory struct{}

func (fnFlopHandCategory) Name() string      { return "flopHandCategory" }
func (fnFlopHandCategory) ArgTypes() []Type  { return []Type{TypePlayer} }
func (fnFlopHandCategory) ReturnType() Type  { return TypeFlopHandCategory }

func (fnFlopHandCategory) Call(ctx *ExecContext, args []Value) (Value, error) {
	cat := evaluator.FlopCategory(ctx.Game, ctx.Sample.PlayerC64(args[0].Player()), ctx.Sample.Board())
	return FlopCategoryValue(cat), nil
}

// boardRanks(street): the set of ranks on the visible board.
type fnBoardRanks struct{}

func (fnBoardRanks) Name() string      { return "boardRanks" }
func (fnBoardRanks) ArgTypes() []Type  { return []Type{TypeStreet} }
func (fnBoardRanks) ReturnType() Type  { return TypeRankSet }

func (fnBoardRanks) Call(ctx *ExecContext, args []Value) (Value, error) {
	return RankSetValue(ctx.Sample.BoardC64(args[0].Street()).Ranks()), nil
}

// nthRank(n, ranks): the nth highest rank of the set, 1-indexed.
type fnNthRank struct{}

func (fnNthRank) Name() string      { return "nthRank" }
func (fnNthRank) ArgTypes() []Type  { return []Type{TypeCardCount, TypeRankSet} }
func (fnNthRank) ReturnType() Type  { return TypeRank }

func (fnNthRank) Call(_ *ExecContext, args []Value) (Value, error) {
	r, ok := args[1].RankSet().NthRank(args[0].Count())
	if !ok {
		return Value{}, &ValueRetrievalError{Type: TypeRank}
	}
	return RankValue(r), nil
}

// turnCard(): the sampled turn card.
type fnTurnCard struct{}

func (fnTurnCard) Name() string      { return "turnCard" }
func (fnTurnCard) ArgTypes() []Type  { return nil }
func (fnTurnCard) ReturnType() Type  { return TypeCard }

func (fnTurnCard) Call(ctx *ExecContext, _ []Value) (Value, error) {
	c, _ := ctx.Sample.Board().TurnCard()
	return CardValue(c), nil
}

// riverCard(): the sampled river card.
type fnRiverCard struct{}

func (fnRiverCard) Name() string      { return "riverCard" }
func (fnRiverCard) ArgTypes() []Type  { return nil }
func (fnRiverCard) ReturnType() Type  { return TypeCard }

func (fnRiverCard) Call(ctx *ExecContext, _ []Value) (Value, error) {
	c, _ := ctx.Sample.Board().RiverCard()
	return CardValue(c), nil
}

// fnOuts implements outsToHandType and minOutsToHandType: how many unseen
// cards lift the player to exactly the target hand type on the next
// street. With a single player per invocation the two names coincide.
type fnOuts struct {
	name string
}

func (f fnOuts) Name() string      { return f.name }
func (fnOuts) ArgTypes() []Type    { return []Type{TypePlayer, TypeStreet, TypeHandType} }
func (fnOuts) ReturnType() Type    { return TypeCardCount }

func (fnOuts) Call(ctx *ExecContext, args []Value) (Value, error) {
	outs := evaluator.OutsToHandType(
		ctx.Game,
		ctx.Sample.PlayerCards(args[0].Player()),
		ctx.Sample.Board(),
		args[1].Street(),
		args[2].HandType(),
		ctx.Dead,
	)
	return CountValue(outs), nil
}
