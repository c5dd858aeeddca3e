package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/pokerquery/internal/deck"
)

// HandType classifies a poker hand into its standard category. The
// declaration order matches Hold'em strength; use Compare for ordering so
// Short Deck's Flush/FullHouse swap is honoured.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	Trips
	Straight
	Flush
	FullHouse
	Quads
	StraightFlush

	NumHandTypes = 9
)

// AllHandTypes lists the hand types in Hold'em order.
var AllHandTypes = [NumHandTypes]HandType{
	HighCard, Pair, TwoPair, Trips, Straight,
	Flush, FullHouse, Quads, StraightFlush,
}

// String returns the uppercase query-language spelling.
func (ht HandType) String() string {
	switch ht {
	case HighCard:
		return "HIGH_CARD"
	case Pair:
		return "PAIR"
	case TwoPair:
		return "TWO_PAIR"
	case Trips:
		return "TRIPS"
	case Straight:
		return "STRAIGHT"
	case Flush:
		return "FLUSH"
	case FullHouse:
		return "FULL_HOUSE"
	case Quads:
		return "QUADS"
	case StraightFlush:
		return "STRAIGHT_FLUSH"
	default:
		return "?"
	}
}

// ordinal positions the hand type on the strength ladder of the game.
// Flush sits between Straight and FullHouse in Hold'em and between
// FullHouse and Quads in Short Deck; the top families leave a gap for it.
func (ht HandType) ordinal(g deck.Game) int {
	switch ht {
	case Flush:
		if g.IsShortDeck() {
			return 7
		}
		return 5
	case FullHouse:
		return 6
	case Quads:
		return 8
	case StraightFlush:
		return 9
	default:
		return int(ht)
	}
}

// Compare orders two hand types under the game's strength ladder,
// returning -1, 0 or 1.
func (ht HandType) Compare(other HandType, g deck.Game) int {
	l, r := ht.ordinal(g), other.ordinal(g)
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

// MinHandType returns the weakest hand type of the game.
func MinHandType(deck.Game) HandType {
	return HighCard
}

// MaxHandType returns the strongest hand type of the game.
func MaxHandType(deck.Game) HandType {
	return StraightFlush
}

// ParseHandType parses a hand type name, ignoring case, underscores and
// surrounding space, so both "fullhouse" and "FULL_HOUSE" are accepted.
func ParseHandType(s string) (HandType, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "") {
	case "highcard":
		return HighCard, nil
	case "pair":
		return Pair, nil
	case "twopair":
		return TwoPair, nil
	case "trips":
		return Trips, nil
	case "straight":
		return Straight, nil
	case "flush":
		return Flush, nil
	case "fullhouse":
		return FullHouse, nil
	case "quads":
		return Quads, nil
	case "straightflush":
		return StraightFlush, nil
	default:
		return 0, fmt.Errorf("invalid hand type %q", s)
	}
}
