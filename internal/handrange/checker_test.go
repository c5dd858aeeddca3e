package handrange

import (
	"errors"
	"testing"

	"github.com/lox/pokerquery/internal/deck"
)

func mustChecker(t *testing.T, src string, n int) *Checker {
	t.Helper()
	c, err := New(src, deck.Holdem, n)
	if err != nil {
		t.Fatalf("compiling %q: %v", src, err)
	}
	return c
}

func mustBoard(t *testing.T, src string) *Checker {
	t.Helper()
	c, err := NewBoard(src, deck.Holdem)
	if err != nil {
		t.Fatalf("compiling board %q: %v", src, err)
	}
	return c
}

func assertChecker(t *testing.T, c *Checker, in []string, out []string) {
	t.Helper()
	for _, hand := range in {
		if !c.IsSatisfied(deck.MustParseCards(hand)) {
			t.Errorf("unexpected: %q not in %q", hand, c.Src())
		}
	}
	for _, hand := range out {
		if c.IsSatisfied(deck.MustParseCards(hand)) {
			t.Errorf("unexpected: %q in %q", hand, c.Src())
		}
	}
}

func TestCheckerCard(t *testing.T) {
	assertChecker(t, mustChecker(t, "AwRsOyKd", 4), []string{"AhJsTcKd"}, nil)
}

func TestCheckerRankConst(t *testing.T) {
	c := mustChecker(t, "AK", 2)
	assertChecker(t, c, []string{"As", "Ks", "As Ks"}, []string{"As 2s"})
}

func TestCheckerRankVar(t *testing.T) {
	assertChecker(t, mustChecker(t, "RR", 2), []string{"As Ah", "Ks Kh"}, []string{"As Ks"})
	assertChecker(t, mustChecker(t, "RO", 2), []string{"As Ks"}, []string{"As Ah", "Ks Kh"})
	assertChecker(t, mustChecker(t, "AKQB", 4), []string{"As Ks Qs 2s"}, []string{"As Ks Qs Qh"})
	assertChecker(t, mustChecker(t, "AKBB", 4), []string{"As Ks Qs Qh"}, []string{"As Ks Qs Jh"})
	assertChecker(t, mustChecker(t, "RRRO", 4), []string{"As Ah Ad Kc"}, []string{"As Ah Ad Ac"})
	assertChecker(t, mustChecker(t, "[A,K][4-]2sB", 4), []string{"As 3s 2s Ah", "As 3s 2s 3h"}, nil)
}

func TestCheckerSuitConst(t *testing.T) {
	c := mustChecker(t, "sh", 2)
	assertChecker(t, c, []string{"As", "Kh", "Ah Ks"}, []string{"As 2s"})
}

func TestCheckerSuitVar(t *testing.T) {
	assertChecker(t, mustChecker(t, "sw", 2), []string{"As Ah"}, []string{"As Ks"})
	assertChecker(t, mustChecker(t, "xx", 2), []string{"As Ks", "Ah Kh"}, []string{"As Kh"})
	assertChecker(t, mustChecker(t, "xy", 2), []string{"As Kh"}, []string{"As Ks", "Ah Kh"})
	assertChecker(t, mustChecker(t, "ssww", 4), []string{"As Ks Qh Jh"}, []string{"As Ks Qh Jd"})
	assertChecker(t, mustChecker(t, "xxxy", 4), []string{"As Ks Qs Jh"}, []string{"As Ks Qs Js"})
	assertChecker(t, mustChecker(t, "[h][4s-]2dw", 4),
		[]string{"Ah 3s 2d Ts", "Ah 3s 2d Th", "Ah 3s 2d Tc"},
		[]string{"Ah 3s 2d Td"})
}

func TestCheckerMixedVars(t *testing.T) {
	assertChecker(t, mustChecker(t, "AxRs", 2), []string{"Ah Ks"}, []string{"As Kh"})
	assertChecker(t, mustChecker(t, "RxOy", 2), []string{"Ah Ks"}, []string{"As Ah", "As Ks"})
}

func TestCheckerSpan(t *testing.T) {
	assertChecker(t, mustChecker(t, "AKs-", 2), []string{"As Ks", "3h"}, []string{"As Kh"})
	assertChecker(t, mustChecker(t, "22+", 2), []string{"As Ah"}, []string{"As Kh"})
	assertChecker(t, mustChecker(t, "AKQT-", 4), []string{"As Ks", "Qs Th", "3h"}, []string{"2s 3s 4s"})
	assertChecker(t, mustChecker(t, "AK-JT", 2), []string{"Qs Jh"}, []string{"Ts 9h"})
}

func TestCheckerSpanPrefix(t *testing.T) {
	c := mustChecker(t, "AKK+", 3)
	assertChecker(t, c, []string{"As Ah"}, []string{"As Ah Ks"})
}

func TestCheckerList(t *testing.T) {
	assertChecker(t, mustChecker(t, "[2c,A,s]Td", 2),
		[]string{"Td 2c", "Td Ah", "Td Ks"},
		[]string{"Td 2d"})
	assertChecker(t, mustChecker(t, "[2c,A,s]Td9d8d", 4),
		[]string{"Td9d8d 2c", "Td9d8d Ah", "Td9d8d Ks"},
		[]string{"Td9d8d 2d"})
	assertChecker(t, mustChecker(t, "[s][h][d][c]", 4),
		[]string{"2s 2h 3d 3c"},
		nil)
}

func TestCheckerNot(t *testing.T) {
	c := mustChecker(t, "A!K", 2)
	assertChecker(t, c, []string{"As Qs"}, []string{"As Ks"})
}

func TestCheckerOr(t *testing.T) {
	c := mustChecker(t, "AA,KK", 2)
	assertChecker(t, c, []string{"As Ah", "Ks Kh"}, nil)
}

func TestCheckerAnd(t *testing.T) {
	c := mustChecker(t, "A:K", 2)
	assertChecker(t, c, []string{"As Kh"}, nil)
}

func TestCheckerAny(t *testing.T) {
	assertChecker(t, mustChecker(t, "*", 2), []string{"2c 7d", "As Ah"}, nil)
	assertChecker(t, mustChecker(t, "*", 4), []string{"2c 7d 9h Js"}, nil)
}

func TestCheckerPairRange(t *testing.T) {
	// The canonical "AA" range: pocket aces, including on a one-card
	// prefix, excluding anything else.
	c := mustChecker(t, "AA", 2)
	assertChecker(t, c,
		[]string{"As Ah", "As"},
		[]string{"As Kh", "Ks"})
}

func TestBoardChecker(t *testing.T) {
	c := mustBoard(t, "AKQJ[T,3s]")
	assertChecker(t, c,
		[]string{"As Ks Qs Js Ts", "Ks Qs As Js Ts", "As Ks Qs Js 3s"},
		[]string{"As Ks Qs Ts Js", "Ts Ks Qs Js As", "As Ks Qs Js 3h"})

	c = mustBoard(t, "AA,JJ")
	assertChecker(t, c,
		[]string{"Js Jh 2d 2c 3s", "Js 2h Jd 2c 3s"},
		[]string{"Js 2h 2s Jc Jd"})

	c = mustBoard(t, "222[2]s")
	assertChecker(t, c,
		[]string{"2s2h2d2c 3s"},
		[]string{"2s2h2d2c 3h"})
}

func TestBoardCheckerExact(t *testing.T) {
	// Flop order is immaterial; turn and river are positional.
	c := mustBoard(t, "AKQJT")
	assertChecker(t, c,
		[]string{"As Ks Qs Js Ts", "Qh Kh Ah Jh Th"},
		[]string{"As Ks Js Qs Ts", "2s Ks Qs Js Ts"})
}

func TestCheckerPrefixMonotone(t *testing.T) {
	// If a full deal satisfies the range, so does every prefix of it;
	// that is what lets the sampler reject early.
	ranges := []string{"AA", "AKs-", "RR,JTs", "A!K", "[A,K][4-]2sB", "xx:R[9-]"}
	deals := []string{
		"As Ah", "As Ks", "Jh Th", "Qd Qc", "9s 2s",
		"As 3s 2s Ah", "Kd 4d 2s 3h",
	}

	for _, src := range ranges {
		c, err := New(src, deck.Holdem, 4)
		if err != nil {
			t.Fatalf("compiling %q: %v", src, err)
		}
		for _, d := range deals {
			cards := deck.MustParseCards(d)
			if c.IsSatisfied(cards) {
				for i := 1; i < len(cards); i++ {
					if !c.IsSatisfied(cards[:i]) {
						t.Errorf("%q: full deal %q satisfied but prefix %v is not", src, d, cards[:i])
					}
				}
			}
		}
	}
}

func TestCheckerShortDeckRejectsLowRanks(t *testing.T) {
	for _, src := range []string{"22", "A5s-", "[4-]A"} {
		_, err := New(src, deck.ShortDeck, 2)
		var re *Error
		if !errors.As(err, &re) || re.Kind != ErrInvalidRank {
			t.Errorf("%q: expected InvalidRank, got %v", src, err)
		}
	}

	if _, err := New("66+", deck.ShortDeck, 2); err != nil {
		t.Errorf("66+ should be valid in short deck: %v", err)
	}
}

func TestCheckerErrors(t *testing.T) {
	assertErr := func(src string, kind ErrorKind, start, end int) {
		t.Helper()
		_, err := New(src, deck.Holdem, 2)
		var re *Error
		if !errors.As(err, &re) {
			t.Fatalf("%q: expected range error, got %v", src, err)
		}
		if re.Kind != kind {
			t.Errorf("%q: expected %v, got %v", src, kind, re.Kind)
		}
		if start >= 0 && (re.Start != start || re.End != end) {
			t.Errorf("%q: expected span (%d,%d), got (%d,%d)", src, start, end, re.Start, re.End)
		}
	}

	assertErr("AK*", ErrTooManyCardsInRange, 0, 3)
	assertErr("*!AAA", ErrTooManyCardsInRange, 2, 5)
	assertErr("*:AAA", ErrTooManyCardsInRange, 2, 5)
	assertErr("*,AAA", ErrTooManyCardsInRange, 2, 5)
	assertErr("AAA!*", ErrTooManyCardsInRange, 0, 3)
	assertErr("AAA:*", ErrTooManyCardsInRange, 0, 3)
	assertErr("AAA,*", ErrTooManyCardsInRange, 0, 3)

	assertErr("AK-JTs", ErrSuitMismatchInSpan, -1, -1)
	assertErr("AKQ-JT", ErrNumberOfRanksMismatchInSpan, -1, -1)
	assertErr("AK-J9", ErrRankDistanceMismatchInSpan, -1, -1)
	assertErr("*-", ErrInvalidSpan, -1, -1)
	assertErr("R+", ErrInvalidSpan, -1, -1)
	assertErr("[]A", ErrInvalidList, -1, -1)
	assertErr("?", ErrInvalidToken, -1, -1)
}

func TestCheckerDefaultBoard(t *testing.T) {
	c := mustBoard(t, "*")
	assertChecker(t, c, []string{"As Ks Qs Js Ts", "2c 7d 9h Js Qd"}, nil)
}
