package deck

import "fmt"

// Street identifies how many board cards are revealed.
type Street uint8

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

// String returns the lowercase street name.
func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "?"
	}
}

// BoardCards returns how many board cards are visible on the street.
func (s Street) BoardCards() int {
	switch s {
	case Flop:
		return 3
	case Turn:
		return 4
	case River:
		return 5
	default:
		return 0
	}
}

// ParseStreet parses a street name, ignoring case and surrounding space.
func ParseStreet(s string) (Street, error) {
	switch normalizeName(s) {
	case "preflop":
		return Preflop, nil
	case "flop":
		return Flop, nil
	case "turn":
		return Turn, nil
	case "river":
		return River, nil
	default:
		return 0, fmt.Errorf("invalid street %q", s)
	}
}

// Board holds up to five community cards: a flop of three, then turn and
// river. Valid sizes are 0, 3, 4 and 5.
type Board struct {
	cards [5]Card
	n     int
}

// BoardFrom builds a board from a prefix of community cards. It panics on
// sizes other than 0, 3, 4 or 5; sampled boards always satisfy this.
func BoardFrom(cards []Card) Board {
	switch len(cards) {
	case 0, 3, 4, 5:
	default:
		panic(fmt.Sprintf("invalid board size %d", len(cards)))
	}

	var b Board
	b.n = len(cards)
	copy(b.cards[:], cards)
	return b
}

// Len returns the number of dealt board cards.
func (b Board) Len() int {
	return b.n
}

// At returns the visible cards of the street, clipped to what has been
// dealt.
func (b Board) At(street Street) []Card {
	n := street.BoardCards()
	if n > b.n {
		n = b.n
	}
	return b.cards[:n]
}

// FlopCards returns the three flop cards. Valid only when Len() >= 3.
func (b Board) FlopCards() [3]Card {
	return [3]Card{b.cards[0], b.cards[1], b.cards[2]}
}

// TurnCard returns the turn card; ok is false before the turn is dealt.
func (b Board) TurnCard() (Card, bool) {
	if b.n < 4 {
		return Card{}, false
	}
	return b.cards[3], true
}

// RiverCard returns the river card; ok is false before the river is dealt.
func (b Board) RiverCard() (Card, bool) {
	if b.n < 5 {
		return Card{}, false
	}
	return b.cards[4], true
}

// WithTurn returns a copy of the board with the turn card replaced.
func (b Board) WithTurn(c Card) Board {
	b.cards[3] = c
	if b.n < 4 {
		b.n = 4
	}
	return b
}

// WithRiver returns a copy of the board with the river card replaced.
func (b Board) WithRiver(c Card) Board {
	b.cards[4] = c
	if b.n < 5 {
		b.n = 5
	}
	return b
}

// SortedFlopRanks returns the flop ranks as (bottom, middle, top).
func (b Board) SortedFlopRanks() (Rank, Rank, Rank) {
	f := b.FlopCards()
	rs := []Rank{f[0].Rank, f[1].Rank, f[2].Rank}
	if rs[0] > rs[1] {
		rs[0], rs[1] = rs[1], rs[0]
	}
	if rs[1] > rs[2] {
		rs[1], rs[2] = rs[2], rs[1]
	}
	if rs[0] > rs[1] {
		rs[0], rs[1] = rs[1], rs[0]
	}
	return rs[0], rs[1], rs[2]
}
