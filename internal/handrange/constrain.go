package handrange

import "github.com/lox/pokerquery/internal/deck"

type rankConstraintKind uint8

const (
	rankNil rankConstraintKind = iota
	rankFixed
	rankVariable
	rankDiff
)

type rankConstraint struct {
	kind   rankConstraintKind
	fixed  deck.Rank16
	eq     []uint8 // slots that must share this slot's rank
	neq    []uint8 // slots that must differ from this slot's rank
	banned deck.Rank16
	prev   uint8 // rankDiff: the slot this one is measured from
	delta  int8  // rankDiff: required prev.rank - this.rank
}

type suitConstraintKind uint8

const (
	suitNil suitConstraintKind = iota
	suitFixed
	suitVariable
)

type suitConstraint struct {
	kind   suitConstraintKind
	fixed  deck.Suit4
	eq     []uint8
	neq    []uint8
	banned deck.Suit4
}

// constrain restricts one slot of a term: an optional allowed-card set
// from lists, plus rank and suit constraints.
type constrain struct {
	hasAllowed bool
	allowed    deck.Card64
	rank       rankConstraint
	suit       suitConstraint
}

// rankVarInfo collects, for a rank variable at slot self, the slots bound
// to the same variable, the slots bound to other variables, and the rank
// constants appearing elsewhere in the term (which the variable must not
// take).
func rankVarInfo(t *term, v byte, self int) rankConstraint {
	rc := rankConstraint{kind: rankVariable}

	for i, e := range t.elems {
		if i == self || e.kind != elemCard {
			continue
		}
		switch {
		case e.card.hasRank:
			rc.banned.Set(e.card.rank)
		case e.card.rankVar == v:
			rc.eq = append(rc.eq, uint8(i))
		case e.card.rankVar != 0:
			rc.neq = append(rc.neq, uint8(i))
		}
	}

	return rc
}

func suitVarInfo(t *term, v byte, self int) suitConstraint {
	sc := suitConstraint{kind: suitVariable}

	for i, e := range t.elems {
		if i == self || e.kind != elemCard {
			continue
		}
		switch {
		case e.card.hasSuit:
			sc.banned.Set(e.card.suit)
		case e.card.suitVar == v:
			sc.eq = append(sc.eq, uint8(i))
		case e.card.suitVar != 0:
			sc.neq = append(sc.neq, uint8(i))
		}
	}

	return sc
}

// constrainFromCard lowers one slot specifier, resolving variables against
// the rest of the term.
func constrainFromCard(t *term, c rangeCard, slot int) constrain {
	var con constrain

	switch {
	case c.hasRank:
		con.rank = rankConstraint{kind: rankFixed, fixed: deck.Rank16Of(c.rank)}
	case c.rankVar != 0:
		con.rank = rankVarInfo(t, c.rankVar, slot)
	}

	switch {
	case c.hasSuit:
		con.suit = suitConstraint{kind: suitFixed, fixed: deck.Suit4Of(c.suit)}
	case c.suitVar != 0:
		con.suit = suitVarInfo(t, c.suitVar, slot)
	}

	return con
}

// spanDepth is how far the span extends from its head rank: negative for
// descending spans, positive for ascending ones.
func spanDepth(span *spanNode) int8 {
	switch span.kind {
	case spanDown:
		min := span.head[0].rank
		for _, e := range span.head[1:] {
			if e.rank < min {
				min = e.rank
			}
		}
		return -int8(min)
	case spanUp:
		max := span.head[0].rank
		for _, e := range span.head[1:] {
			if e.rank > max {
				max = e.rank
			}
		}
		return int8(deck.Ace) - int8(max)
	default: // spanTo
		return int8(span.tail[0].rank) - int8(span.head[0].rank)
	}
}

// rank16FromDepth builds the rank window covered by the span head.
func rank16FromDepth(rank deck.Rank, depth int8) deck.Rank16 {
	width := uint(depth)
	if depth < 0 {
		width = uint(-depth)
	}
	ones := deck.Rank16(1<<(width+1) - 1)

	if depth > 0 {
		return (ones << rank) & deck.AllRank16(false)
	}

	shift := int(rank) + int(depth)
	if shift < 0 {
		shift = 0
	}
	return (ones << shift) & deck.AllRank16(false)
}

func spanSuitConstraint(e spanElem) suitConstraint {
	if !e.hasSuit {
		return suitConstraint{}
	}
	return suitConstraint{kind: suitFixed, fixed: deck.Suit4Of(e.suit)}
}

// constrainsFromSpan lowers a span: the head slot carries the rank window
// and every following slot is chained to its predecessor by the rank
// distance of the pattern.
func constrainsFromSpan(span *spanNode) []constrain {
	depth := spanDepth(span)
	head := span.head

	cons := make([]constrain, 0, len(head))
	cons = append(cons, constrain{
		rank: rankConstraint{kind: rankFixed, fixed: rank16FromDepth(head[0].rank, depth)},
		suit: spanSuitConstraint(head[0]),
	})

	for i := 1; i < len(head); i++ {
		cons = append(cons, constrain{
			rank: rankConstraint{
				kind:  rankDiff,
				prev:  uint8(i - 1),
				delta: int8(head[i-1].rank) - int8(head[i].rank),
			},
			suit: spanSuitConstraint(head[i]),
		})
	}

	return cons
}

// lowerTerm compiles a term into one constraint per slot, padded with
// unconstrained slots up to n so that shorter patterns can match any
// subset of the dealt cards.
func lowerTerm(t *term, n int) ([]constrain, error) {
	if t.slots() > n {
		return nil, newErr(ErrTooManyCardsInRange, t.start, t.end)
	}

	var cons []constrain
	if t.span != nil {
		cons = constrainsFromSpan(t.span)
	} else {
		cons = make([]constrain, 0, len(t.elems))
		for i, e := range t.elems {
			if e.kind == elemList {
				cons = append(cons, constrain{hasAllowed: true, allowed: e.list.allowed})
			} else {
				cons = append(cons, constrainFromCard(t, e.card, i))
			}
		}
	}

	for len(cons) < n {
		cons = append(cons, constrain{})
	}

	return cons, nil
}

// reject reports whether the permutation perm (mapping card positions to
// slots) is refuted by the dealt prefix cs.
func reject(cons []constrain, cs []deck.Card, perm []uint8) bool {
	// posOf[s] is the card position slot s received, or -1.
	var posOf [8]int8
	for i := range posOf {
		posOf[i] = -1
	}
	for i, s := range perm {
		posOf[s] = int8(i)
	}

	for i, s := range perm {
		con := &cons[s]
		c := cs[i]

		if con.hasAllowed && !con.allowed.ContainsCard(c) {
			return true
		}

		switch con.rank.kind {
		case rankFixed:
			if !con.rank.fixed.ContainsRank(c.Rank) {
				return true
			}
		case rankVariable:
			if con.rank.banned.ContainsRank(c.Rank) {
				return true
			}
			for _, other := range con.rank.eq {
				if p := posOf[other]; p >= 0 && cs[p].Rank != c.Rank {
					return true
				}
			}
			for _, other := range con.rank.neq {
				if p := posOf[other]; p >= 0 && cs[p].Rank == c.Rank {
					return true
				}
			}
		case rankDiff:
			if p := posOf[con.rank.prev]; p >= 0 && int8(cs[p].Rank)-int8(c.Rank) != con.rank.delta {
				return true
			}
		}

		switch con.suit.kind {
		case suitFixed:
			if !con.suit.fixed.ContainsSuit(c.Suit) {
				return true
			}
		case suitVariable:
			if con.suit.banned.ContainsSuit(c.Suit) {
				return true
			}
			for _, other := range con.suit.eq {
				if p := posOf[other]; p >= 0 && cs[p].Suit != c.Suit {
					return true
				}
			}
			for _, other := range con.suit.neq {
				if p := posOf[other]; p >= 0 && cs[p].Suit == c.Suit {
					return true
				}
			}
		}
	}

	return false
}
