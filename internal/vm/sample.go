package vm

import "github.com/lox/pokerquery/internal/deck"

// Sample exposes one trial's dealt cards to the built-in functions. The
// card slice is laid out as each player's hole cards in player order,
// followed by the five board cards.
type Sample struct {
	Cards      []deck.Card
	NumPlayers int
	HoleCards  int
}

// NewSample allocates the card buffer for a trial.
func NewSample(numPlayers, holeCards int) *Sample {
	return &Sample{
		Cards:      make([]deck.Card, numPlayers*holeCards+5),
		NumPlayers: numPlayers,
		HoleCards:  holeCards,
	}
}

func (s *Sample) boardStart() int {
	return s.NumPlayers * s.HoleCards
}

// PlayerCards returns the hole cards of the player.
func (s *Sample) PlayerCards(player int) []deck.Card {
	n := s.HoleCards
	return s.Cards[player*n : (player+1)*n]
}

// BoardCards returns the board cards visible on the street.
func (s *Sample) BoardCards(street deck.Street) []deck.Card {
	i := s.boardStart()
	return s.Cards[i : i+street.BoardCards()]
}

// Board returns the full five-card board of the trial.
func (s *Sample) Board() deck.Board {
	i := s.boardStart()
	return deck.BoardFrom(s.Cards[i : i+5])
}

// PlayerC64 returns the player's hole cards as a bitset.
func (s *Sample) PlayerC64(player int) deck.Card64 {
	return deck.Card64From(s.PlayerCards(player))
}

// BoardC64 returns the visible board as a bitset.
func (s *Sample) BoardC64(street deck.Street) deck.Card64 {
	return deck.Card64From(s.BoardCards(street))
}

// EachPlayerCombo invokes fn for every possible hole-card combination of
// the game, for aggregations that sweep a player against all holdings.
func (s *Sample) EachPlayerCombo(g deck.Game, fn func(deck.Card64)) {
	cards := deck.AllCards(g.IsShortDeck())

	if g.HoleCards() == 2 {
		for i := 0; i < len(cards); i++ {
			for j := i + 1; j < len(cards); j++ {
				fn(deck.Card64Of(cards[i]) | deck.Card64Of(cards[j]))
			}
		}
		return
	}

	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			for k := j + 1; k < len(cards); k++ {
				for l := k + 1; l < len(cards); l++ {
					fn(deck.Card64Of(cards[i]) | deck.Card64Of(cards[j]) |
						deck.Card64Of(cards[k]) | deck.Card64Of(cards[l]))
				}
			}
		}
	}
}
