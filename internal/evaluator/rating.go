// Package evaluator implements the hand-rating kernel for Hold'em, Omaha
// and Short Deck, the flop-category classifier, and the out counter.
//
// A rating packs a hand type and its tie-break ranks into a single uint16
// whose integer order equals poker order within the variant it was produced
// for. Ratings from different variants are not comparable: Short Deck swaps
// the Flush and Full House family constants so Flush out-ranks Full House.
//
// Memory layout (family bits 15..13 first):
//
//	StraightFlush 1110ssss 00000000  s: rank of highest card
//	Quads         11100000 qqqqkkkk  q: quads rank, k: kicker (low byte)
//	FullHouse     11011111 ttttpppp  t: trips rank, p: pair (low byte)
//	Flush         101rrrrr rrrrrrrr  r: bit flags of the five ranks
//	Straight      10000000 0000ssss
//	Trips         0110tttt 0kkkkkkk  k: combination index of two kickers
//	TwoPair       01000ppp ppppkkkk  p: combination index of the pairs
//	Pair          001ppppk kkkkkkkk  k: combination index of three kickers
//	HighCard      000rrrrr rrrrrrrr
//
// Short Deck uses 110 for Flush and 101 for Full House; the two are told
// apart by bit population (a flush rating always has exactly seven set
// bits).
package evaluator

import (
	"fmt"
	"math/bits"

	"github.com/lox/pokerquery/internal/deck"
)

// Rating is the totally ordered 16-bit hand rating.
type Rating uint16

const (
	maskStraightFlush Rating = 0b1110_0000_0000_0000
	maskQuads         Rating = 0b1110_0000_0000_0000
	maskFullHouse     Rating = 0b1100_0000_0000_0000
	maskFlush         Rating = 0b1010_0000_0000_0000
	maskStraight      Rating = 0b1000_0000_0000_0000
	maskTrips         Rating = 0b0110_0000_0000_0000
	maskTwoPair       Rating = 0b0100_0000_0000_0000
	maskPair          Rating = 0b0010_0000_0000_0000
	maskHighCard      Rating = 0b0000_0000_0000_0000

	// Short Deck swaps the two families.
	maskFullHouseSD = maskFlush
	maskFlushSD     = maskFullHouse

	maskKind Rating = 0b1110_0000_0000_0000
	maskLo   Rating = 0b0000_0000_1111_1111

	fullHousePadding Rating = 0b0001_1111_0000_0000

	offsetRankIdx = 4
	offsetComb3   = 9
	offsetHi      = 8

	flushSetBits = 7
)

// RatingMin is below every real rating of any variant.
const RatingMin Rating = 0

// RatingMax is above every real rating of any variant.
const RatingMax Rating = 0xffff

// rankIdx returns the index of the highest rank of a non-empty set.
func rankIdx(rs deck.Rank16) Rating {
	r, _ := rs.MaxRank()
	return Rating(r)
}

func revRankIdx(v Rating) deck.Rank16 {
	return deck.Rank16Of(deck.Rank(v & 0b1111))
}

func nc2(n uint16) uint16 {
	return n * (n - 1) / 2
}

func nc3(n uint16) uint16 {
	return nc2(n) * (n - 2) / 3
}

// comb2 maps the two highest ranks of the set to a combination index in
// [0, 78).
func comb2(rs deck.Rank16) Rating {
	hi, _ := rs.MaxRank()
	lo, _ := rs.Diff(deck.Rank16Of(hi)).MaxRank()

	return Rating(nc2(uint16(hi)) + uint16(lo))
}

// comb3 maps the three highest ranks of the set to a combination index in
// [0, 286).
func comb3(rs deck.Rank16) Rating {
	hi, _ := rs.MaxRank()
	rest := rs.Diff(deck.Rank16Of(hi))
	mid, _ := rest.MaxRank()
	lo, _ := rest.Diff(deck.Rank16Of(mid)).MaxRank()

	return Rating(nc3(uint16(hi)) + nc2(uint16(mid)) + uint16(lo))
}

func revComb2(idx Rating) deck.Rank16 {
	var res deck.Rank16
	remaining := uint16(idx) & 0x7f
	need := 2

	for r := int(deck.Ace); r >= 0; r-- {
		m := uint16(r)
		if need == 2 {
			m = nc2(uint16(r))
		}
		if m <= remaining {
			remaining -= m
			need--
			res.Set(deck.Rank(r))
			if need == 0 {
				break
			}
		}
	}

	return res
}

func revComb3(idx Rating) deck.Rank16 {
	var res deck.Rank16
	remaining := uint16(idx) & 0x1ff
	need := 3

	for r := int(deck.Ace); r >= 0; r-- {
		var m uint16
		switch need {
		case 3:
			m = nc3(uint16(r))
		case 2:
			m = nc2(uint16(r))
		default:
			m = uint16(r)
		}
		if m <= remaining {
			remaining -= m
			need--
			res.Set(deck.Rank(r))
			if need == 0 {
				break
			}
		}
	}

	return res
}

func newHighCard(ranks deck.Rank16) Rating {
	return maskHighCard | Rating(ranks)
}

func newPair(pair, kickers deck.Rank16) Rating {
	return maskPair | rankIdx(pair)<<offsetComb3 | comb3(kickers)
}

func newTwoPair(pairs, kicker deck.Rank16) Rating {
	return maskTwoPair | comb2(pairs)<<offsetRankIdx | rankIdx(kicker)
}

func newTrips(trips, kickers deck.Rank16) Rating {
	return maskTrips | rankIdx(trips)<<offsetHi | comb2(kickers)
}

func newStraight(ranks deck.Rank16) Rating {
	return maskStraight | rankIdx(ranks)
}

func newFlush(ranks deck.Rank16, shortDeck bool) Rating {
	if shortDeck {
		return maskFlushSD | Rating(ranks)
	}
	return maskFlush | Rating(ranks)
}

func newFullHouse(trips, pair deck.Rank16, shortDeck bool) Rating {
	mask := maskFullHouse
	if shortDeck {
		mask = maskFullHouseSD
	}
	return mask | fullHousePadding | rankIdx(trips)<<offsetRankIdx | rankIdx(pair)
}

func newQuads(quads, kicker deck.Rank16) Rating {
	return maskQuads | rankIdx(quads)<<offsetRankIdx | rankIdx(kicker)
}

func newStraightFlush(ranks deck.Rank16) Rating {
	return maskStraightFlush | rankIdx(ranks)<<offsetHi
}

// HandType extracts the categorical hand type from the rating. It works
// for both Hold'em/Omaha and Short Deck ratings: the families that share
// mask bits are told apart by the bit-population test.
func (r Rating) HandType() HandType {
	switch r & maskKind {
	case maskQuads:
		if r&maskLo == 0 {
			return StraightFlush
		}
		return Quads
	case maskFullHouse, maskFlush:
		if bits.OnesCount16(uint16(r)) == flushSetBits {
			return Flush
		}
		return FullHouse
	case maskStraight:
		return Straight
	case maskTrips:
		return Trips
	case maskTwoPair:
		return TwoPair
	case maskPair:
		return Pair
	default:
		return HighCard
	}
}

// highLow decodes the tie-break rank sets of the rating. For single-rank
// families the sets carry one rank each.
func (r Rating) highLow() (high, low deck.Rank16) {
	switch r.HandType() {
	case StraightFlush:
		return revRankIdx(r >> offsetHi), 0
	case Quads, FullHouse:
		return revRankIdx(r >> offsetRankIdx), revRankIdx(r)
	case Flush, HighCard:
		return deck.Rank16(r) & deck.AllRank16(false), 0
	case Straight:
		return revRankIdx(r), 0
	case Trips:
		return revRankIdx(r >> offsetHi), revComb2(r)
	case TwoPair:
		return revComb2(r >> offsetRankIdx), revRankIdx(r)
	default: // Pair
		return revRankIdx((r ^ maskPair) >> offsetComb3), revComb3(r)
	}
}

// String renders the rating as its hand type plus tie-break ranks, e.g.
// "FULL_HOUSE(T, A)" or "FLUSH(6789J)".
func (r Rating) String() string {
	ht := r.HandType()
	high, low := r.highLow()

	switch ht {
	case HighCard, Straight, Flush, StraightFlush:
		return fmt.Sprintf("%s(%s)", ht, high)
	default:
		return fmt.Sprintf("%s(%s, %s)", ht, high, low)
	}
}
