package vm

import (
	"fmt"
	"strconv"

	"github.com/lox/pokerquery/internal/deck"
	"github.com/lox/pokerquery/internal/evaluator"
)

// Value is the run-time representation of every expression result: a type
// tag plus an integer and a float lane. String-like objects live in the
// store and are referenced by index through the integer lane.
type Value struct {
	typ Type
	i   int64
	f   float64
}

// Type returns the type tag of the value.
func (v Value) Type() Type {
	return v.typ
}

// Constructors.

func BoolValue(b bool) Value {
	var i int64
	if b {
		i = 1
	}
	return Value{typ: TypeBoolean, i: i}
}

func LongValue(n int64) Value {
	return Value{typ: TypeLong, i: n}
}

func CountValue(n uint8) Value {
	return Value{typ: TypeCardCount, i: int64(n)}
}

func PlayerCountValue(n uint8) Value {
	return Value{typ: TypePlayerCount, i: int64(n)}
}

func DoubleValue(f float64) Value {
	return Value{typ: TypeDouble, f: f}
}

func EquityValue(f float64) Value {
	return Value{typ: TypeEquity, f: f}
}

// FractionValue keeps an exact numerator and denominator; arithmetic
// degrades it to a double.
func FractionValue(num, den int32) Value {
	return Value{typ: TypeFraction, i: int64(num)<<32 | int64(uint32(den))}
}

func CardValue(c deck.Card) Value {
	return Value{typ: TypeCard, i: int64(c.Rank)<<8 | int64(c.Suit)}
}

func RankValue(r deck.Rank) Value {
	return Value{typ: TypeRank, i: int64(r)}
}

func RankSetValue(rs deck.Rank16) Value {
	return Value{typ: TypeRankSet, i: int64(rs)}
}

func StreetValue(s deck.Street) Value {
	return Value{typ: TypeStreet, i: int64(s)}
}

func HandTypeValue(ht evaluator.HandType) Value {
	return Value{typ: TypeHandType, i: int64(ht)}
}

func FlopCategoryValue(c evaluator.FlopHandCategory) Value {
	return Value{typ: TypeFlopHandCategory, i: int64(c)}
}

func RatingValue(r evaluator.Rating) Value {
	return Value{typ: TypeHiRating, i: int64(r)}
}

func PlayerValue(idx int) Value {
	return Value{typ: TypePlayer, i: int64(idx)}
}

// StringValue references an interned string in the store.
func StringValue(idx int) Value {
	return Value{typ: TypeString, i: int64(idx)}
}

// Accessors. Each assumes the matching type tag; the compiler's type
// checking guarantees it.

func (v Value) Bool() bool                              { return v.i != 0 }
func (v Value) Long() int64                             { return v.i }
func (v Value) Count() uint8                            { return uint8(v.i) }
func (v Value) Double() float64                         { return v.f }
func (v Value) Card() deck.Card                         { return deck.Card{Rank: deck.Rank(v.i >> 8), Suit: deck.Suit(v.i & 0xff)} }
func (v Value) Rank() deck.Rank                         { return deck.Rank(v.i) }
func (v Value) RankSet() deck.Rank16                    { return deck.Rank16(v.i) }
func (v Value) Street() deck.Street                     { return deck.Street(v.i) }
func (v Value) HandType() evaluator.HandType            { return evaluator.HandType(v.i) }
func (v Value) FlopCategory() evaluator.FlopHandCategory { return evaluator.FlopHandCategory(v.i) }
func (v Value) Rating() evaluator.Rating                { return evaluator.Rating(v.i) }
func (v Value) Player() int                             { return int(v.i) }
func (v Value) StringIndex() int                        { return int(v.i) }

// Fraction returns the numerator and denominator lanes.
func (v Value) Fraction() (int32, int32) {
	return int32(v.i >> 32), int32(uint32(v.i))
}

// IsNum reports whether the value takes part in arithmetic.
func (v Value) IsNum() bool {
	return v.typ.IsNum()
}

// isInt reports whether the value is integer-backed.
func (v Value) isInt() bool {
	return v.typ.isInt()
}

// AsDouble converts any numeric value to a float64.
func (v Value) AsDouble() float64 {
	switch v.typ {
	case TypeDouble, TypeEquity, TypeNumeric:
		return v.f
	case TypeFraction:
		num, den := v.Fraction()
		return float64(num) / float64(den)
	default:
		return float64(v.i)
	}
}

// asLong converts an integer-backed numeric value to an int64.
func (v Value) asLong() int64 {
	return v.i
}

// Equal compares two values of the same type for equality; numerics
// compare across numeric kinds.
func (v Value) Equal(o Value) bool {
	if v.IsNum() && o.IsNum() {
		if v.isInt() && o.isInt() {
			return v.asLong() == o.asLong()
		}
		return v.AsDouble() == o.AsDouble()
	}
	return v.typ == o.typ && v.i == o.i && v.f == o.f
}

// String renders the value the way results are printed.
func (v Value) String() string {
	switch v.typ {
	case TypeBoolean:
		return strconv.FormatBool(v.Bool())
	case TypeCardCount, TypeLong, TypePlayerCount:
		return strconv.FormatInt(v.i, 10)
	case TypeDouble, TypeEquity:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeFraction:
		num, den := v.Fraction()
		return fmt.Sprintf("%d/%d", num, den)
	case TypeCard:
		return v.Card().String()
	case TypeRank:
		return v.Rank().String()
	case TypeRankSet:
		return v.RankSet().String()
	case TypeStreet:
		return v.Street().String()
	case TypeHandType:
		return v.HandType().String()
	case TypeFlopHandCategory:
		return v.FlopCategory().String()
	case TypeHiRating:
		return v.Rating().String()
	case TypePlayer:
		return fmt.Sprintf("player%d", v.Player())
	default:
		return fmt.Sprintf("<%s>", v.typ)
	}
}
