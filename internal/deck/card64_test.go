package deck

import "testing"

func TestCard64RoundTrip(t *testing.T) {
	cards := MustParseCards("As Kh 2d 7c 7s")
	c64 := Card64From(cards)

	got := map[Card]bool{}
	for _, c := range c64.Cards() {
		got[c] = true
	}

	if len(got) != len(cards) {
		t.Fatalf("expected %d cards, got %d", len(cards), len(got))
	}
	for _, c := range cards {
		if !got[c] {
			t.Errorf("missing %v after round trip", c)
		}
	}
}

func TestCard64SetUnset(t *testing.T) {
	var c64 Card64
	c := NewCard(Queen, Hearts)

	c64.Set(c)
	if !c64.ContainsCard(c) {
		t.Error("expected card after Set")
	}
	c64.Unset(c)
	if !c64.ContainsCard(c) == false {
		t.Error("expected card gone after Unset")
	}
	if !c64.IsEmpty() {
		t.Error("expected empty set")
	}
}

func TestCard64Counts(t *testing.T) {
	c64 := Card64From(MustParseCards("As Ah 2d 2c 2s Kh"))

	if n := c64.Count(); n != 6 {
		t.Errorf("Count: expected 6, got %d", n)
	}
	if n := c64.CountByRank(Two); n != 3 {
		t.Errorf("CountByRank(2): expected 3, got %d", n)
	}
	if n := c64.CountBySuit(Hearts); n != 2 {
		t.Errorf("CountBySuit(h): expected 2, got %d", n)
	}
}

func TestCard64Ranks(t *testing.T) {
	c64 := Card64From(MustParseCards("As Ah Kd 2c"))

	want := Rank16From([]Rank{Ace, King, Two})
	if got := c64.Ranks(); got != want {
		t.Errorf("Ranks: expected %v, got %v", want, got)
	}

	if got := c64.RanksBySuit(Spades); got != Rank16Of(Ace) {
		t.Errorf("RanksBySuit(s): expected A, got %v", got)
	}
}

func TestCard64FromRanks(t *testing.T) {
	c64 := Card64FromRanks(Rank16Of(Ace))
	if c64.Count() != 4 {
		t.Errorf("expected 4 aces, got %d", c64.Count())
	}
	for s := Spades; s <= Clubs; s++ {
		if !c64.ContainsCard(NewCard(Ace, s)) {
			t.Errorf("missing A%v", s)
		}
	}
}

func TestCard64Not(t *testing.T) {
	c64 := Card64From(MustParseCards("As"))
	inv := c64.Not()

	if inv.ContainsCard(NewCard(Ace, Spades)) {
		t.Error("complement contains As")
	}
	if inv.Count() != 51 {
		t.Errorf("expected 51 cards, got %d", inv.Count())
	}
	if inv|c64 != Card64All {
		t.Error("complement plus original should be the full deck")
	}
}

func TestCard64LaneInvariant(t *testing.T) {
	// The three high bits of every 16-bit lane stay zero through every
	// constructor.
	const laneJunk = 0xe000e000e000e000

	sets := []Card64{
		Card64All,
		AllCard64(true),
		Card64From(AllCards(false)),
		Card64FromRanks(AllRank16(false)),
		Card64FromSuit(Clubs),
		Card64From(MustParseCards("As Kh")).Not(),
	}
	for _, s := range sets {
		if uint64(s)&laneJunk != 0 {
			t.Errorf("lane invariant violated: %064b", uint64(s))
		}
	}
}

func TestCard64IterOrder(t *testing.T) {
	// Cards come out in (suit, rank) order: all spades first, ascending.
	cards := Card64From(MustParseCards("2h As Ks Ac")).Cards()

	want := []Card{
		{Rank: King, Suit: Spades},
		{Rank: Ace, Suit: Spades},
		{Rank: Two, Suit: Hearts},
		{Rank: Ace, Suit: Clubs},
	}
	for i, c := range cards {
		if c != want[i] {
			t.Errorf("position %d: expected %v, got %v", i, want[i], c)
		}
	}
}
