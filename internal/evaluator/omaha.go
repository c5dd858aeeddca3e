package evaluator

import "github.com/lox/pokerquery/internal/deck"

// An Omaha hand uses exactly two player cards and three board cards. Each
// family below enumerates the ways it can be assembled from that split
// (pair in hand vs pair on board, and so on) and keeps the best case.

type hiLo struct {
	hi, lo deck.Rank16
}

func intersect(l, r deck.Rank16) (deck.Rank16, bool) {
	v := l & r
	return v, v != 0
}

func highestFromEach(l, r deck.Rank16) deck.Rank16 {
	return l.RetainHighest() | r.RetainHighest()
}

// betterOf keeps the case with the stronger high ranks. Comparing the low
// side never changes the outcome for hands built from the same card set.
func betterOf(l, r *hiLo) *hiLo {
	if l == nil {
		return r
	}
	if r == nil {
		return l
	}
	if l.hi > r.hi {
		return l
	}
	return r
}

// PAIR case I: pair on board, best kicker from board or hand.
func omahaPair1(p1, b2, b1 deck.Rank16) *hiLo {
	if b2.IsEmpty() {
		return nil
	}
	hi := b2.RetainHighest()
	return &hiLo{hi, b1.Diff(hi).RetainHighest() | p1.RetainHighest2()}
}

// PAIR case II: one hand card pairs the board.
func omahaPair2(p1, b1 deck.Rank16) *hiLo {
	hi, ok := intersect(p1, b1)
	if !ok {
		return nil
	}
	return &hiLo{hi, b1.Diff(hi).RetainHighest2() | p1.Diff(hi).RetainHighest()}
}

// PAIR case III: pocket pair.
func omahaPair3(p2, b1 deck.Rank16) *hiLo {
	if p2.IsEmpty() {
		return nil
	}
	return &hiLo{p2, b1.RetainHighest3()}
}

func omahaPair(p2, p1, b2, b1 deck.Rank16) (Rating, bool) {
	best := betterOf(betterOf(omahaPair1(p1, b2, b1), omahaPair2(p1, b1)), omahaPair3(p2, b1))
	if best == nil {
		return 0, false
	}
	return newPair(best.hi, best.lo), true
}

// TWOPAIR case I: pocket pair plus board pair.
func omahaTwoPair1(p2, b2, b1 deck.Rank16) *hiLo {
	if b2.IsEmpty() || p2.IsEmpty() {
		return nil
	}
	hi := highestFromEach(p2, b2)
	return &hiLo{hi, b1.Diff(hi)}
}

// TWOPAIR case II: board pair plus a hand card pairing the board.
func omahaTwoPair2(p1, b2, b1 deck.Rank16) *hiLo {
	pair, ok := intersect(b1, p1)
	if !ok || b2.IsEmpty() {
		return nil
	}
	hi := highestFromEach(pair, b2)
	return &hiLo{hi, p1.Diff(hi)}
}

// TWOPAIR case III: two hand cards each pairing the board.
func omahaTwoPair3(p1, b1 deck.Rank16) *hiLo {
	pair, ok := intersect(p1, b1)
	if !ok || pair.Count() < 2 {
		return nil
	}
	hi := pair.RetainHighest2()
	return &hiLo{hi, b1.Diff(hi)}
}

func omahaTwoPair(p2, p1, b2, b1 deck.Rank16) (Rating, bool) {
	best := betterOf(betterOf(omahaTwoPair1(p2, b2, b1), omahaTwoPair2(p1, b2, b1)), omahaTwoPair3(p1, b1))
	if best == nil {
		return 0, false
	}
	return newTwoPair(best.hi, best.lo), true
}

// TRIPS case I: trips on board, kickers from hand.
func omahaTrips1(p1, b3 deck.Rank16) *hiLo {
	if b3.IsEmpty() {
		return nil
	}
	return &hiLo{b3, p1.RetainHighest2()}
}

// TRIPS case II: board pair matched by a hand card.
func omahaTrips2(p1, b2, b1 deck.Rank16) *hiLo {
	hi, ok := intersect(b2, p1)
	if !ok {
		return nil
	}
	return &hiLo{hi, highestFromEach(b1.Diff(hi), p1.Diff(hi))}
}

// TRIPS case III: pocket pair matching the board.
func omahaTrips3(p2, b1 deck.Rank16) *hiLo {
	trips, ok := intersect(p2, b1)
	if !ok {
		return nil
	}
	hi := trips.RetainHighest()
	return &hiLo{hi, b1.Diff(hi).RetainHighest2()}
}

func omahaTrips(p2, p1, b3, b2, b1 deck.Rank16) (Rating, bool) {
	best := betterOf(betterOf(omahaTrips1(p1, b3), omahaTrips2(p1, b2, b1)), omahaTrips3(p2, b1))
	if best == nil {
		return 0, false
	}
	return newTrips(best.hi, best.lo), true
}

// omahaStraight requires two hand ranks and three board ranks inside the
// mask.
func omahaStraightMask(mask, p1, b1 deck.Rank16) bool {
	return (p1|b1)&mask == mask &&
		(mask&p1).Count() >= 2 &&
		(mask&b1).Count() >= 3
}

func omahaStraight(p1, b1 deck.Rank16) (deck.Rank16, bool) {
	for _, m := range straightMasks {
		if omahaStraightMask(m, p1, b1) {
			return m, true
		}
	}
	if omahaStraightMask(deck.StraightA2345, p1, b1) {
		return deck.Rank16Of(deck.Five), true
	}
	return 0, false
}

// FULLHOUSE case I: trips on board plus pocket pair.
func omahaFullHouse1(p2, b3 deck.Rank16) *hiLo {
	if b3.IsEmpty() || p2.IsEmpty() {
		return nil
	}
	return &hiLo{b3, p2}
}

// FULLHOUSE case II: pocket pair matching the board, board pair below.
func omahaFullHouse2(p2, b2, b1 deck.Rank16) *hiLo {
	trips, ok := intersect(p2, b1)
	if !ok {
		return nil
	}
	hi := trips.RetainHighest()
	lo := b2.Diff(hi)
	if lo.IsEmpty() {
		return nil
	}
	return &hiLo{hi, lo}
}

// FULLHOUSE case III: both hand cards pairing the board, one into trips.
func omahaFullHouse3(p1, b2, b1 deck.Rank16) *hiLo {
	trips, ok := intersect(b2, p1)
	if !ok {
		return nil
	}
	hi := trips.RetainHighest()
	lo, ok := intersect(b1.Diff(hi), p1)
	if !ok {
		return nil
	}
	return &hiLo{hi, lo}
}

func omahaFullHouse(p2, p1, b3, b2, b1 deck.Rank16) (Rating, bool) {
	best := betterOf(betterOf(omahaFullHouse1(p2, b3), omahaFullHouse2(p2, b2, b1)), omahaFullHouse3(p1, b2, b1))
	if best == nil {
		return 0, false
	}
	return newFullHouse(best.hi, best.lo.RetainHighest(), false), true
}

// QUADS case I: pocket pair plus matching board pair.
func omahaQuads1(p2, b2, b1 deck.Rank16) *hiLo {
	quad, ok := intersect(p2, b2)
	if !ok {
		return nil
	}
	hi := quad.RetainHighest()
	return &hiLo{hi, b1.Diff(hi)}
}

// QUADS case II: trips on board matched by a hand card.
func omahaQuads2(p1, b3 deck.Rank16) *hiLo {
	hi, ok := intersect(p1, b3)
	if !ok {
		return nil
	}
	return &hiLo{hi, p1.Diff(hi)}
}

func omahaQuads(p2, p1, b3, b2, b1 deck.Rank16) (Rating, bool) {
	best := betterOf(omahaQuads1(p2, b2, b1), omahaQuads2(p1, b3))
	if best == nil {
		return 0, false
	}
	return newQuads(best.hi, best.lo.RetainHighest()), true
}

// flushRanksOmaha finds a suit where the player holds at least two cards
// and the board at least three.
func flushRanksOmaha(player, board deck.Card64) (p, b deck.Rank16, ok bool) {
	for s := deck.Spades; s <= deck.Clubs; s++ {
		p, b = player.RanksBySuit(s), board.RanksBySuit(s)
		if p.Count() >= 2 && b.Count() >= 3 {
			return p, b, true
		}
	}
	return 0, 0, false
}

func evalOmahaFlush(player, board deck.Card64) (Rating, bool) {
	p, b, ok := flushRanksOmaha(player, board)
	if !ok {
		return 0, false
	}
	if hi, ok := omahaStraight(p, b); ok {
		return newStraightFlush(hi), true
	}
	return newFlush(p.RetainHighest2()|b.RetainHighest3(), false), true
}

func evalOmahaNoFlush(player, board deck.Card64) Rating {
	p1, p2, _, _ := countRanks(player)
	b1, b2, b3, _ := countRanks(board)

	if r, ok := omahaQuads(p2, p1, b3, b2, b1); ok {
		return r
	}
	if r, ok := omahaFullHouse(p2, p1, b3, b2, b1); ok {
		return r
	}
	if hi, ok := omahaStraight(p1, b1); ok {
		return newStraight(hi)
	}
	if r, ok := omahaTrips(p2, p1, b3, b2, b1); ok {
		return r
	}
	if r, ok := omahaTwoPair(p2, p1, b2, b1); ok {
		return r
	}
	if r, ok := omahaPair(p2, p1, b2, b1); ok {
		return r
	}

	return newHighCard(b1.RetainHighest3() | p1.RetainHighest2())
}

// EvalOmaha rates the best hand formed from exactly two of the four
// player cards and three of the board cards.
func EvalOmaha(player, board deck.Card64) Rating {
	nf := evalOmahaNoFlush(player, board)
	if f, ok := evalOmahaFlush(player, board); ok && f > nf {
		return f
	}
	return nf
}
