package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/pokerquery/internal/deck"
)

// FlopHandCategory is the fine-grained classification of a hand against
// the flop: pairs are split by which flop card they connect with, two
// pairs by which two. Declaration order is Hold'em strength order.
type FlopHandCategory uint8

const (
	FlopNothing FlopHandCategory = iota
	FlopUnderPair
	FlopThirdPair
	FlopPocket23
	FlopSecondPair
	FlopPocket12
	FlopTopPair
	FlopOverpair
	FlopBottomTwo
	FlopTopAndBottom
	FlopTopTwo
	FlopTrips
	FlopSet
	FlopStraight
	FlopFlush
	FlopFullHouse
	FlopQuads
	FlopStraightFlush

	NumFlopCategories = 18
)

// String returns the uppercase query-language spelling.
func (c FlopHandCategory) String() string {
	switch c {
	case FlopNothing:
		return "FLOPNOTHING"
	case FlopUnderPair:
		return "FLOPUNDERPAIR"
	case FlopThirdPair:
		return "FLOPTHIRDPAIR"
	case FlopPocket23:
		return "FLOPPOCKET23"
	case FlopSecondPair:
		return "FLOPSECONDPAIR"
	case FlopPocket12:
		return "FLOPPOCKET12"
	case FlopTopPair:
		return "FLOPTOPPAIR"
	case FlopOverpair:
		return "FLOPOVERPAIR"
	case FlopBottomTwo:
		return "FLOPBOTTOMTWO"
	case FlopTopAndBottom:
		return "FLOPTOPANDBOTTOM"
	case FlopTopTwo:
		return "FLOPTOPTWO"
	case FlopTrips:
		return "FLOPTRIPS"
	case FlopSet:
		return "FLOPSET"
	case FlopStraight:
		return "FLOPSTRAIGHT"
	case FlopFlush:
		return "FLOPFLUSH"
	case FlopFullHouse:
		return "FLOPFULLHOUSE"
	case FlopQuads:
		return "FLOPQUADS"
	case FlopStraightFlush:
		return "FLOPSTRAIGHTFLUSH"
	default:
		return "?"
	}
}

func (c FlopHandCategory) ordinal(g deck.Game) int {
	switch c {
	case FlopFlush:
		if g.IsShortDeck() {
			return 16
		}
		return 14
	case FlopFullHouse:
		return 15
	case FlopQuads:
		return 17
	case FlopStraightFlush:
		return 18
	default:
		return int(c)
	}
}

// Compare orders two categories under the game's strength ladder,
// returning -1, 0 or 1.
func (c FlopHandCategory) Compare(other FlopHandCategory, g deck.Game) int {
	l, r := c.ordinal(g), other.ordinal(g)
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

// MinFlopCategory returns the weakest category of the game.
func MinFlopCategory(deck.Game) FlopHandCategory {
	return FlopNothing
}

// MaxFlopCategory returns the strongest category of the game.
func MaxFlopCategory(deck.Game) FlopHandCategory {
	return FlopStraightFlush
}

// ParseFlopCategory parses a category name, ignoring case and surrounding
// space.
func ParseFlopCategory(s string) (FlopHandCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flopnothing":
		return FlopNothing, nil
	case "flopunderpair":
		return FlopUnderPair, nil
	case "flopthirdpair":
		return FlopThirdPair, nil
	case "floppocket23":
		return FlopPocket23, nil
	case "flopsecondpair":
		return FlopSecondPair, nil
	case "floppocket12":
		return FlopPocket12, nil
	case "floptoppair":
		return FlopTopPair, nil
	case "flopoverpair":
		return FlopOverpair, nil
	case "flopbottomtwo":
		return FlopBottomTwo, nil
	case "floptopandbottom":
		return FlopTopAndBottom, nil
	case "floptoptwo":
		return FlopTopTwo, nil
	case "floptrips":
		return FlopTrips, nil
	case "flopset":
		return FlopSet, nil
	case "flopstraight":
		return FlopStraight, nil
	case "flopflush":
		return FlopFlush, nil
	case "flopfullhouse":
		return FlopFullHouse, nil
	case "flopquads":
		return FlopQuads, nil
	case "flopstraightflush":
		return FlopStraightFlush, nil
	default:
		return 0, fmt.Errorf("invalid flop hand category %q", s)
	}
}
