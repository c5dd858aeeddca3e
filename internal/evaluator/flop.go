package evaluator

import "github.com/lox/pokerquery/internal/deck"

// FlopCategory classifies the player's hand against the flop alone. Pair
// and two-pair hands are refined by which of the ordered flop ranks they
// connect with; everything from a straight up maps to its own category.
func FlopCategory(g deck.Game, player deck.Card64, board deck.Board) FlopHandCategory {
	if board.Len() < 3 {
		return FlopNothing
	}

	flop := board.FlopCards()
	flop64 := deck.Card64From(flop[:])

	rating := Rate(g, player, flop64)
	high, _ := rating.highLow()

	switch rating.HandType() {
	case StraightFlush:
		return FlopStraightFlush
	case Quads:
		return FlopQuads
	case FullHouse:
		return FlopFullHouse
	case Flush:
		return FlopFlush
	case Straight:
		return FlopStraight
	case Trips:
		tripsRank, _ := high.MaxRank()
		if flop64.CountByRank(tripsRank) == 2 {
			return FlopTrips
		}
		return FlopSet
	case TwoPair:
		_, mid, top := board.SortedFlopRanks()
		switch {
		case high.ContainsRank(top) && high.ContainsRank(mid):
			return FlopTopTwo
		case high.ContainsRank(top):
			return FlopTopAndBottom
		default:
			return FlopBottomTwo
		}
	case Pair:
		pairRank, _ := high.MaxRank()
		btm, mid, top := board.SortedFlopRanks()
		switch {
		case pairRank > top:
			return FlopOverpair
		case pairRank == top:
			return FlopTopPair
		case pairRank > mid:
			return FlopPocket12
		case pairRank == mid:
			return FlopSecondPair
		case pairRank > btm:
			return FlopPocket23
		case pairRank == btm:
			return FlopThirdPair
		default:
			return FlopUnderPair
		}
	default:
		return FlopNothing
	}
}
