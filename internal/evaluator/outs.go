package evaluator

import "github.com/lox/pokerquery/internal/deck"

// OutsToHandType counts the unseen cards that would lift the hand to
// exactly the target hand type on the next street. On the flop each
// candidate is tried as the turn, on the turn as the river; the river has
// no next card so the count is zero. A candidate only counts when the new
// rating strictly beats the current one: a card that makes a straight
// flush is not a straight out, and a hand already above the target has no
// outs to it.
func OutsToHandType(g deck.Game, hand []deck.Card, board deck.Board, street deck.Street, target HandType, dead deck.Card64) uint8 {
	var nextIsRiver bool
	switch street {
	case deck.Flop:
		nextIsRiver = false
	case deck.Turn:
		nextIsRiver = true
	default:
		return 0
	}

	player := deck.Card64From(hand)
	used := player | deck.Card64From(board.At(street)) | dead

	current := Rate(g, player, deck.Card64From(board.At(street)))
	if target.Compare(current.HandType(), g) < 0 {
		return 0
	}

	var outs uint8
	for _, c := range deck.AllCards(g.IsShortDeck()) {
		if used.ContainsCard(c) {
			continue
		}

		next := board.WithTurn(c)
		nextStreet := deck.Turn
		if nextIsRiver {
			next = board.WithRiver(c)
			nextStreet = deck.River
		}

		rating := Rate(g, player, deck.Card64From(next.At(nextStreet)))
		if rating > current && rating.HandType() == target {
			outs++
		}
	}

	return outs
}
