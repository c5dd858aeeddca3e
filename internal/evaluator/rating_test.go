package evaluator

import (
	"testing"

	"github.com/lox/pokerquery/internal/deck"
)

func TestRatingString(t *testing.T) {
	cases := []struct {
		cards string
		want  string
	}{
		{"As Ks Qs Js Ts", "STRAIGHT_FLUSH(A)"},
		{"Kh As Ah Ac Ad", "QUADS(A, K)"},
		{"As Ah Ts Th Td", "FULL_HOUSE(T, A)"},
		{"6s 7s 8s 9s Js", "FLUSH(6789J)"},
		{"9s 8h 7d 6c 5s", "STRAIGHT(9)"},
		{"Ts Th Td As Kh", "TRIPS(T, KA)"},
		{"Ts Th 6s 6h Ks", "TWO_PAIR(6T, K)"},
		{"Js Jh 8d 9c Ks", "PAIR(J, 89K)"},
		{"8d 9c Js Qh Kd", "HIGH_CARD(89JQK)"},
	}

	for _, tc := range cases {
		if got := EvalHoldem(c64(tc.cards)).String(); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.cards, tc.want, got)
		}
	}
}

func TestStraightFlushLowByteZero(t *testing.T) {
	// Straight flush ratings keep their low byte clear; that is how they
	// are told apart from quads.
	hands := []string{
		"As Ks Qs Js Ts",
		"9h 8h 7h 6h 5h",
		"Ad 5d 4d 3d 2d",
	}
	for _, cs := range hands {
		r := EvalHoldem(c64(cs))
		if r&maskLo != 0 {
			t.Errorf("%s: low byte not zero: %016b", cs, uint16(r))
		}
		if r.HandType() != StraightFlush {
			t.Errorf("%s: expected STRAIGHT_FLUSH, got %s", cs, r.HandType())
		}
	}
}

func TestHandTypeFromRatingStable(t *testing.T) {
	// Every hand type constructor round-trips through the family bits.
	ranks5 := r16("45689")
	checks := []struct {
		rating Rating
		want   HandType
	}{
		{newHighCard(ranks5), HighCard},
		{newPair(r16("J"), r16("89K")), Pair},
		{newTwoPair(r16("6T"), r16("K")), TwoPair},
		{newTrips(r16("T"), r16("AK")), Trips},
		{newStraight(deck.Straight56789), Straight},
		{newFlush(ranks5, false), Flush},
		{newFlush(ranks5, true), Flush},
		{newFullHouse(r16("T"), r16("9"), false), FullHouse},
		{newFullHouse(r16("T"), r16("9"), true), FullHouse},
		{newQuads(r16("A"), r16("K")), Quads},
		{newStraightFlush(deck.StraightTJQKA), StraightFlush},
	}

	for i, c := range checks {
		if got := c.rating.HandType(); got != c.want {
			t.Errorf("case %d: expected %s, got %s", i, c.want, got)
		}
	}
}

func TestCombIndexRoundTrip(t *testing.T) {
	pairs := []string{"AK", "32", "T6", "QJ"}
	for _, s := range pairs {
		rs := r16(s)
		if got := revComb2(comb2(rs)); got != rs {
			t.Errorf("comb2 round trip of %s: got %s", s, got)
		}
	}

	triples := []string{"AKQ", "432", "T64", "J97"}
	for _, s := range triples {
		rs := r16(s)
		if got := revComb3(comb3(rs)); got != rs {
			t.Errorf("comb3 round trip of %s: got %s", s, got)
		}
	}
}

func TestHandTypeParse(t *testing.T) {
	cases := map[string]HandType{
		"straightflush":  StraightFlush,
		"STRAIGHT_FLUSH": StraightFlush,
		"FullHouse":      FullHouse,
		" pair ":         Pair,
		"HIGH_CARD":      HighCard,
	}
	for src, want := range cases {
		got, err := ParseHandType(src)
		if err != nil || got != want {
			t.Errorf("%q: got %v, %v", src, got, err)
		}
	}

	if _, err := ParseHandType("royal"); err == nil {
		t.Error("expected error for unknown hand type")
	}
}

func TestHandTypeCompareShortDeck(t *testing.T) {
	if FullHouse.Compare(Flush, deck.ShortDeck) >= 0 {
		t.Error("short deck: FULL_HOUSE must rank below FLUSH")
	}
	if Flush.Compare(FullHouse, deck.Holdem) >= 0 {
		t.Error("holdem: FLUSH must rank below FULL_HOUSE")
	}
	if Flush.Compare(Quads, deck.ShortDeck) >= 0 {
		t.Error("short deck: FLUSH must rank below QUADS")
	}
}
