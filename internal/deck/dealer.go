package deck

import rand "math/rand/v2"

// Predicate decides whether a dealt prefix of cards is still acceptable.
type Predicate func(cards []Card) bool

// Dealer draws uniformly random cards from the remaining deck under a
// predicate, recycling rejected candidates for later draws. One Dealer is
// owned by exactly one simulation worker.
type Dealer struct {
	initial []Card
	current []Card
	mem     []Card // cards accepted during the current Begin window
	unused  []Card // candidates rejected by the predicate this round
	rng     *rand.Rand
}

// NewDealer builds a dealer over the deck of the game minus any dead cards.
func NewDealer(rng *rand.Rand, shortDeck bool, dead Card64) *Dealer {
	all := AllCards(shortDeck)
	initial := make([]Card, 0, len(all))
	for _, c := range all {
		if !dead.ContainsCard(c) {
			initial = append(initial, c)
		}
	}

	return &Dealer{
		initial: initial,
		current: make([]Card, 0, len(initial)),
		mem:     make([]Card, 0, 5),
		unused:  make([]Card, 0, len(initial)),
		rng:     rng,
	}
}

// Reset restores the full deck for a fresh trial.
func (d *Dealer) Reset() {
	d.current = append(d.current[:0], d.initial...)
}

// Begin clears the dealt-card window. Subsequent DealN calls accumulate
// into a single prefix that the predicate sees grow.
func (d *Dealer) Begin() {
	d.mem = d.mem[:0]
	d.unused = d.unused[:0]
}

// DealN draws n cards that keep the predicate satisfied on the growing
// prefix. Candidates the predicate rejects are parked and merged back into
// the deck once the n cards are found. It reports false when the deck runs
// out, which marks the trial as failed.
func (d *Dealer) DealN(pred Predicate, n int) bool {
	for n > 0 {
		if len(d.current) == 0 {
			return false
		}

		i := d.rng.IntN(len(d.current))
		c := d.current[i]
		d.current[i] = d.current[len(d.current)-1]
		d.current = d.current[:len(d.current)-1]

		d.mem = append(d.mem, c)
		if pred(d.mem) {
			n--
		} else {
			d.mem = d.mem[:len(d.mem)-1]
			d.unused = append(d.unused, c)
		}
	}

	d.current = append(d.current, d.unused...)
	d.unused = d.unused[:0]

	return true
}

// Dealt returns the cards accepted since the last Begin.
func (d *Dealer) Dealt() []Card {
	return d.mem
}

// Remaining returns how many cards are still in the deck.
func (d *Dealer) Remaining() int {
	return len(d.current)
}
