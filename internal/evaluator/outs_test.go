package evaluator

import (
	"testing"

	"github.com/lox/pokerquery/internal/deck"
)

func outs(t *testing.T, g deck.Game, hand, board string, street deck.Street, target HandType, dead string) uint8 {
	t.Helper()
	var deadSet deck.Card64
	if dead != "" {
		deadSet = c64(dead)
	}
	return OutsToHandType(g, deck.MustParseCards(hand), deck.BoardFrom(deck.MustParseCards(board)), street, target, deadSet)
}

func TestOutsToStraightOnFlop(t *testing.T) {
	// Open-ended straight draw: eight outs to the straight.
	if got := outs(t, deck.Holdem, "Js Th", "9h 8s 2c", deck.Flop, Straight, ""); got != 8 {
		t.Errorf("expected 8 outs, got %d", got)
	}

	// A dead seven removes one of them.
	if got := outs(t, deck.Holdem, "Js Th", "9h 8s 2c", deck.Flop, Straight, "7s"); got != 7 {
		t.Errorf("expected 7 outs with 7s dead, got %d", got)
	}
}

func TestOutsExcludeStrongerHands(t *testing.T) {
	// Th9h on 8h7h2c3c: Jh and 6h complete a straight flush, so only six
	// cards make exactly a straight.
	if got := outs(t, deck.Holdem, "Th 9h", "8h 7h 2c 3c", deck.Turn, Straight, ""); got != 6 {
		t.Errorf("expected 6 straight outs, got %d", got)
	}
}

func TestOutsZeroWhenAlreadyBetter(t *testing.T) {
	// The made straight flush has no outs to a mere straight.
	if got := outs(t, deck.Holdem, "Td 9d", "8d 7d 2d", deck.Flop, Straight, ""); got != 0 {
		t.Errorf("expected 0 outs, got %d", got)
	}
}

func TestOutsToStraightFlush(t *testing.T) {
	// JsTs on 9s8s2d: Qs and 7s make the straight flush.
	if got := outs(t, deck.Holdem, "Js Ts", "9s 8s 2d", deck.Flop, StraightFlush, ""); got != 2 {
		t.Errorf("expected 2 outs, got %d", got)
	}
}

func TestOutsOnRiver(t *testing.T) {
	if got := outs(t, deck.Holdem, "Js Ts", "9s 8s 2d 3c 4h", deck.River, StraightFlush, ""); got != 0 {
		t.Errorf("river has no next card: expected 0, got %d", got)
	}
}

func TestOutsShortDeck(t *testing.T) {
	// Short deck: only ranks from six up exist, so the draw below has
	// fewer live cards than in the full deck.
	got := outs(t, deck.ShortDeck, "Js Th", "9h 8s Ac", deck.Flop, Straight, "")
	if got != 8 {
		t.Errorf("expected 8 outs (Q and 7 in four suits), got %d", got)
	}
}

func TestOutsOmaha(t *testing.T) {
	// Omaha wrap: hand JT98 double-suited on Q92 rainbow. Count via the
	// same next-card enumeration the implementation uses, so this guards
	// the street plumbing rather than the combinatorics.
	got := outs(t, deck.Omaha, "Js Th 9c 8d", "Qh 9s 2c", deck.Flop, Straight, "")
	if got == 0 {
		t.Error("expected straight outs for the wrap draw")
	}
}
