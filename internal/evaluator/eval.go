package evaluator

import "github.com/lox/pokerquery/internal/deck"

// countRanks derives, from the four suit lanes, the sets of ranks
// appearing at least one, two, three and four times.
func countRanks(c64 deck.Card64) (has1, has2, has3, has4 deck.Rank16) {
	s := c64.RanksBySuit(deck.Spades)
	h := c64.RanksBySuit(deck.Hearts)
	d := c64.RanksBySuit(deck.Diamonds)
	c := c64.RanksBySuit(deck.Clubs)

	has1 = s | h | d | c
	has2 = (s & h) | (s & d) | (s & c) | (h & d) | (h & c) | (d & c)
	has3 = (s & h & d) | (s & h & c) | (s & d & c) | (h & d & c)
	has4 = s & h & d & c

	return has1, has2, has3, has4
}

// flushRanks returns the rank lane of a suit holding five or more cards.
func flushRanks(c64 deck.Card64) (deck.Rank16, bool) {
	for s := deck.Spades; s <= deck.Clubs; s++ {
		if lane := c64.RanksBySuit(s); lane.Count() >= 5 {
			return lane, true
		}
	}
	return 0, false
}

var straightMasks = [...]deck.Rank16{
	deck.StraightTJQKA,
	deck.Straight9TJQK,
	deck.Straight89TJQ,
	deck.Straight789TJ,
	deck.Straight6789T,
	deck.Straight56789,
	deck.Straight45678,
	deck.Straight34567,
	deck.Straight23456,
}

// evalStraight finds the highest straight in the rank set. The wheel
// (A2345, or A6789 in Short Deck) reports its conventional high card.
func evalStraight(has1 deck.Rank16, shortDeck bool) (deck.Rank16, bool) {
	masks := straightMasks[:]
	if shortDeck {
		masks = straightMasks[:5]
	}

	for _, m := range masks {
		if has1&m == m {
			return m, true
		}
	}

	if shortDeck {
		if has1&deck.StraightA6789 == deck.StraightA6789 {
			return deck.Straight56789, true
		}
	} else if has1&deck.StraightA2345 == deck.StraightA2345 {
		return deck.Rank16Of(deck.Five), true
	}

	return 0, false
}

func evalQuads(has4, has1 deck.Rank16) (Rating, bool) {
	if has4.IsEmpty() {
		return 0, false
	}
	return newQuads(has4, has1.Diff(has4)), true
}

func evalFullHouse(has3, has2 deck.Rank16, shortDeck bool) (Rating, bool) {
	if has3.IsEmpty() || has2.Count() < 2 {
		return 0, false
	}
	hi := has3.RetainHighest()
	return newFullHouse(hi, has2.Diff(hi), shortDeck), true
}

func evalTrips(has3, has1 deck.Rank16) (Rating, bool) {
	if has3.IsEmpty() {
		return 0, false
	}
	hi := has3.RetainHighest()
	return newTrips(hi, has1.Diff(hi)), true
}

func evalTwoPair(has2, has1 deck.Rank16) (Rating, bool) {
	if has2.Count() < 2 {
		return 0, false
	}
	hi := has2.RetainHighest2()
	return newTwoPair(hi, has1.Diff(hi)), true
}

func evalPair(has2, has1 deck.Rank16) (Rating, bool) {
	if has2.IsEmpty() {
		return 0, false
	}
	hi := has2.RetainHighest()
	return newPair(hi, has1.Diff(hi)), true
}

// evalFlush rates a flush or straight flush when one exists.
func evalFlush(c64 deck.Card64, shortDeck bool) (Rating, bool) {
	ranks, ok := flushRanks(c64)
	if !ok {
		return 0, false
	}
	if sr, ok := evalStraight(ranks, shortDeck); ok {
		return newStraightFlush(sr), true
	}
	return newFlush(ranks.RetainHighest5(), shortDeck), true
}

func evalNoFlush(c64 deck.Card64, shortDeck bool) Rating {
	has1, has2, has3, has4 := countRanks(c64)

	if r, ok := evalQuads(has4, has1); ok {
		return r
	}
	if r, ok := evalFullHouse(has3, has2, shortDeck); ok {
		return r
	}
	if sr, ok := evalStraight(has1, shortDeck); ok {
		return newStraight(sr)
	}
	if r, ok := evalTrips(has3, has1); ok {
		return r
	}
	if r, ok := evalTwoPair(has2, has1); ok {
		return r
	}
	if r, ok := evalPair(has2, has1); ok {
		return r
	}

	return newHighCard(has1.RetainHighest5())
}

// EvalHoldem rates the best five-card hand of a 5-7 card Hold'em set.
func EvalHoldem(c64 deck.Card64) Rating {
	if r, ok := evalFlush(c64, false); ok {
		return r
	}
	return evalNoFlush(c64, false)
}

// EvalShortDeck rates a 5-7 card Short Deck set: the A6789 wheel replaces
// A2345 and Flush out-ranks Full House.
func EvalShortDeck(c64 deck.Card64) Rating {
	if r, ok := evalFlush(c64, true); ok {
		return r
	}
	return evalNoFlush(c64, true)
}

// Rate dispatches to the variant evaluator. For Hold'em and Short Deck
// the player and board sets are simply merged; Omaha keeps them apart.
func Rate(g deck.Game, player, board deck.Card64) Rating {
	switch g {
	case deck.Omaha:
		return EvalOmaha(player, board)
	case deck.ShortDeck:
		return EvalShortDeck(player | board)
	default:
		return EvalHoldem(player | board)
	}
}
