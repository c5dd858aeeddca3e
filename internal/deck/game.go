package deck

import (
	"fmt"
	"strings"
)

// Game identifies the poker variant being simulated.
type Game uint8

const (
	Holdem Game = iota
	Omaha
	ShortDeck
)

// String returns the lowercase game name as used in queries.
func (g Game) String() string {
	switch g {
	case Holdem:
		return "holdem"
	case Omaha:
		return "omaha"
	case ShortDeck:
		return "shortdeck"
	default:
		return "?"
	}
}

// HoleCards returns the number of hole cards dealt per player.
func (g Game) HoleCards() int {
	if g == Omaha {
		return 4
	}
	return 2
}

// IsShortDeck reports whether the 36-card deck and its hand ordering apply.
func (g Game) IsShortDeck() bool {
	return g == ShortDeck
}

// ParseGame parses a game name, ignoring case and surrounding space.
func ParseGame(s string) (Game, error) {
	switch normalizeName(s) {
	case "holdem":
		return Holdem, nil
	case "omaha":
		return Omaha, nil
	case "shortdeck":
		return ShortDeck, nil
	default:
		return 0, fmt.Errorf("invalid game %q", s)
	}
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
