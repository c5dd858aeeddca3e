package deck

import (
	"testing"

	"github.com/lox/pokerquery/internal/randutil"
)

func any(_ []Card) bool { return true }

func TestDealerDealsDistinctCards(t *testing.T) {
	d := NewDealer(randutil.New(1), false, 0)
	d.Reset()
	d.Begin()

	if !d.DealN(any, 5) {
		t.Fatal("deal failed on a fresh deck")
	}

	dealt := d.Dealt()
	if len(dealt) != 5 {
		t.Fatalf("expected 5 cards, got %d", len(dealt))
	}
	if Card64From(dealt).Count() != 5 {
		t.Error("dealt duplicate cards")
	}
	if d.Remaining() != 47 {
		t.Errorf("expected 47 remaining, got %d", d.Remaining())
	}
}

func TestDealerExcludesDeadCards(t *testing.T) {
	dead := Card64From(MustParseCards("As Ah Ad Ac"))
	d := NewDealer(randutil.New(2), false, dead)
	d.Reset()
	d.Begin()

	if !d.DealN(any, 48) {
		t.Fatal("deal failed")
	}
	for _, c := range d.Dealt() {
		if dead.ContainsCard(c) {
			t.Errorf("dealt dead card %v", c)
		}
	}
	if d.Remaining() != 0 {
		t.Errorf("expected empty deck, got %d", d.Remaining())
	}
}

func TestDealerPredicateRetry(t *testing.T) {
	// Only aces are acceptable; rejected candidates must return to the
	// deck for the next round.
	acesOnly := func(cs []Card) bool {
		return cs[len(cs)-1].Rank == Ace
	}

	d := NewDealer(randutil.New(3), false, 0)
	d.Reset()
	d.Begin()

	if !d.DealN(acesOnly, 4) {
		t.Fatal("deal failed")
	}
	for _, c := range d.Dealt() {
		if c.Rank != Ace {
			t.Errorf("predicate violated: dealt %v", c)
		}
	}
	if d.Remaining() != 48 {
		t.Errorf("rejected cards not recycled: %d remaining", d.Remaining())
	}
}

func TestDealerImpossiblePredicate(t *testing.T) {
	never := func([]Card) bool { return false }

	d := NewDealer(randutil.New(4), false, 0)
	d.Reset()
	d.Begin()

	if d.DealN(never, 1) {
		t.Error("expected failure for an unsatisfiable predicate")
	}
}

func TestDealerReset(t *testing.T) {
	d := NewDealer(randutil.New(5), true, 0)
	d.Reset()
	d.Begin()
	d.DealN(any, 10)

	d.Reset()
	if d.Remaining() != 36 {
		t.Errorf("expected 36 after reset, got %d", d.Remaining())
	}
}

func TestDealerGrowingPrefix(t *testing.T) {
	// The predicate sees the accumulated window across DealN calls, the
	// way board ranges see flop, then flop+turn, then the full board.
	var sizes []int
	record := func(cs []Card) bool {
		sizes = append(sizes, len(cs))
		return true
	}

	d := NewDealer(randutil.New(6), false, 0)
	d.Reset()
	d.Begin()
	d.DealN(record, 3)
	d.DealN(record, 1)
	d.DealN(record, 1)

	want := []int{1, 2, 3, 4, 5}
	if len(sizes) != len(want) {
		t.Fatalf("expected %v, got %v", want, sizes)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, sizes)
		}
	}
	if len(d.Dealt()) != 5 {
		t.Errorf("expected 5 accumulated cards, got %d", len(d.Dealt()))
	}
}

func TestDealerDeterministicSeed(t *testing.T) {
	deal := func() []Card {
		d := NewDealer(randutil.ForWorker(42, 0), false, 0)
		d.Reset()
		d.Begin()
		d.DealN(any, 5)
		return append([]Card(nil), d.Dealt()...)
	}

	a, b := deal(), deal()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different deals: %v vs %v", a, b)
		}
	}
}
