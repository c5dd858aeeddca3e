package handrange

import (
	"strings"

	"github.com/lox/pokerquery/internal/deck"
)

// parser is a hand-written recursive descent parser over the range
// grammar. Whitespace is skipped between slot specifiers and operators; a
// suit part is only read when it directly follows its rank.
type parser struct {
	src       string
	pos       int
	shortDeck bool
}

const (
	rankVarChars = "BEFGILMNOPRUV"
	suitVarChars = "wxyz"
)

func isRankChar(c byte) bool {
	switch c {
	case '2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K', 'A':
		return true
	default:
		return false
	}
}

func isSuitChar(c byte) bool {
	return c == 's' || c == 'h' || c == 'd' || c == 'c'
}

// parse compiles the range source into an expression tree.
func parse(src string, shortDeck bool) (*exprNode, error) {
	p := &parser{src: src, shortDeck: shortDeck}

	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, newErr(ErrInvalidToken, p.pos, p.pos+1)
	}

	return expr, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

// peek returns the next significant byte without consuming it; 0 at EOF.
func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) parseOr() (*exprNode, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.peek() == ',' {
		p.pos++
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &exprNode{op: opOr, lhs: lhs, rhs: rhs}
	}

	return lhs, nil
}

func (p *parser) parseAnd() (*exprNode, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek() {
		case ':':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			lhs = &exprNode{op: opAnd, lhs: lhs, rhs: rhs}
		case '!':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			lhs = &exprNode{op: opAnd, lhs: lhs, rhs: &exprNode{op: opNot, lhs: rhs}}
		default:
			return lhs, nil
		}
	}
}

// parseTerm reads one card pattern: either a span (a run of card constants
// closed by '-' or '+') or a sequence of card and list slot specifiers.
func (p *parser) parseTerm() (*exprNode, error) {
	p.skipSpace()
	start := p.pos
	t := &term{start: start}

	for {
		c := p.peek()
		switch {
		case c == 0 || c == ',' || c == ':' || c == '!':
			if len(t.elems) == 0 {
				if c == 0 {
					return nil, newErr(ErrUnexpectedEOF, len(p.src), len(p.src))
				}
				return nil, newErr(ErrInvalidToken, p.pos, p.pos+1)
			}
			t.end = p.pos
			return &exprNode{op: opTerm, term: t}, nil

		case c == '-' || c == '+':
			p.pos++
			return p.finishSpan(t, c)

		case c == '[':
			list, err := p.parseList()
			if err != nil {
				return nil, err
			}
			t.elems = append(t.elems, termElem{kind: elemList, list: list})

		default:
			card, err := p.parseCard()
			if err != nil {
				return nil, err
			}
			t.elems = append(t.elems, termElem{kind: elemCard, card: card})
		}
	}
}

// finishSpan converts the card elements collected so far into a span. The
// marker byte is '-' (descending, or an explicit second endpoint) or '+'
// (ascending).
func (p *parser) finishSpan(t *term, marker byte) (*exprNode, error) {
	head, err := p.spanElems(t)
	if err != nil {
		return nil, err
	}

	span := &spanNode{kind: spanDown, head: head}
	if marker == '+' {
		span.kind = spanUp
	} else if isRankChar(p.peek()) {
		// A second endpoint follows: "AKs-JTs".
		span.kind = spanTo

		tail := &term{start: p.pos}
		for {
			c := p.peek()
			if c == 0 || c == ',' || c == ':' || c == '!' {
				break
			}
			card, err := p.parseCard()
			if err != nil {
				return nil, err
			}
			tail.elems = append(tail.elems, termElem{kind: elemCard, card: card})
		}

		span.tail, err = p.spanElems(tail)
		if err != nil {
			return nil, err
		}
	}

	t.end = p.pos
	t.elems = nil
	t.span = span

	if err := validateSpan(span, t.start, t.end); err != nil {
		return nil, err
	}

	return &exprNode{op: opTerm, term: t}, nil
}

// spanElems requires every collected element to be a rank constant with an
// optional suit constant.
func (p *parser) spanElems(t *term) ([]spanElem, error) {
	if len(t.elems) == 0 {
		return nil, newErr(ErrInvalidSpan, t.start, p.pos)
	}

	elems := make([]spanElem, 0, len(t.elems))
	for _, e := range t.elems {
		if e.kind != elemCard || !e.card.hasRank || e.card.suitVar != 0 || e.card.rankVar != 0 {
			return nil, newErr(ErrInvalidSpan, t.start, p.pos)
		}
		elems = append(elems, spanElem{rank: e.card.rank, hasSuit: e.card.hasSuit, suit: e.card.suit})
	}

	return elems, nil
}

func validateSpan(span *spanNode, start, end int) error {
	if span.kind != spanTo {
		return nil
	}

	head, tail := span.head, span.tail
	if len(head) != len(tail) {
		return newErr(ErrNumberOfRanksMismatchInSpan, start, end)
	}

	for i := range head {
		if i+1 < len(head) {
			dh := int(head[i+1].rank) - int(head[i].rank)
			dt := int(tail[i+1].rank) - int(tail[i].rank)
			if dh != dt {
				return newErr(ErrRankDistanceMismatchInSpan, start, end)
			}
		}
		if head[i].hasSuit != tail[i].hasSuit || (head[i].hasSuit && head[i].suit != tail[i].suit) {
			return newErr(ErrSuitMismatchInSpan, start, end)
		}
	}

	return nil
}

func (p *parser) parseRankByte() (deck.Rank, error) {
	c := p.src[p.pos]
	r, err := deck.ParseRank(c)
	if err != nil || strings.IndexByte("23456789TJQKA", c) < 0 {
		return 0, newErr(ErrInvalidRank, p.pos, p.pos+1)
	}
	if p.shortDeck && r < deck.Six {
		return 0, newErr(ErrInvalidRank, p.pos, p.pos+1)
	}
	p.pos++
	return r, nil
}

// parseCard reads one slot specifier: a rank constant, rank variable, suit
// constant, suit variable, '*', or a rank followed by a suit part.
func (p *parser) parseCard() (rangeCard, error) {
	var card rangeCard

	c := p.peek()
	switch {
	case c == '*':
		p.pos++
		return card, nil

	case isRankChar(c):
		r, err := p.parseRankByte()
		if err != nil {
			return card, err
		}
		card.hasRank = true
		card.rank = r

	case strings.IndexByte(rankVarChars, c) >= 0:
		card.rankVar = c
		p.pos++

	case isSuitChar(c):
		card.hasSuit = true
		card.suit, _ = deck.ParseSuit(c)
		p.pos++
		return card, nil

	case strings.IndexByte(suitVarChars, c) >= 0:
		card.suitVar = c
		p.pos++
		return card, nil

	case c == 0:
		return card, newErr(ErrUnexpectedEOF, len(p.src), len(p.src))

	default:
		return card, newErr(ErrInvalidToken, p.pos, p.pos+1)
	}

	// A rank part may be followed directly by a suit part.
	if p.pos < len(p.src) {
		c := p.src[p.pos]
		if isSuitChar(c) {
			card.hasSuit = true
			card.suit, _ = deck.ParseSuit(c)
			p.pos++
		} else if strings.IndexByte(suitVarChars, c) >= 0 {
			card.suitVar = c
			p.pos++
		}
	}

	return card, nil
}

// parseList reads a bracketed union. Items are rank/suit constants or
// constant rank spans; commas between items are optional.
func (p *parser) parseList() (listNode, error) {
	open := p.pos
	p.pos++ // consume '['

	var allowed deck.Card64

	for {
		c := p.peek()
		switch {
		case c == 0:
			return listNode{}, newErr(ErrUnexpectedEOF, len(p.src), len(p.src))

		case c == ']':
			p.pos++
			if allowed.IsEmpty() {
				return listNode{}, newErr(ErrInvalidList, open, p.pos)
			}
			return listNode{allowed: allowed}, nil

		case c == ',':
			p.pos++

		default:
			c64, err := p.parseListItem(open)
			if err != nil {
				return listNode{}, err
			}
			allowed |= c64
		}
	}
}

func (p *parser) parseListItem(open int) (deck.Card64, error) {
	c := p.peek()

	if isSuitChar(c) {
		p.pos++
		s, _ := deck.ParseSuit(c)
		return deck.Card64FromSuit(s), nil
	}

	if !isRankChar(c) {
		return 0, newErr(ErrInvalidList, open, p.pos+1)
	}

	rank, err := p.parseRankByte()
	if err != nil {
		return 0, err
	}

	hasSuit := false
	var suit deck.Suit
	if p.pos < len(p.src) && isSuitChar(p.src[p.pos]) {
		hasSuit = true
		suit, _ = deck.ParseSuit(p.src[p.pos])
		p.pos++
	}

	lo, hi := rank, rank
	switch p.peek() {
	case '-':
		p.pos++
		if c := p.peek(); isRankChar(c) {
			// Explicit bottom endpoint: "[A-5]".
			bottom, err := p.parseRankByte()
			if err != nil {
				return 0, err
			}
			if p.pos < len(p.src) && isSuitChar(p.src[p.pos]) {
				if !hasSuit || p.src[p.pos] != suit.String()[0] {
					return 0, newErr(ErrInvalidList, open, p.pos+1)
				}
				p.pos++
			}
			lo, hi = bottom, rank
			if lo > hi {
				lo, hi = hi, lo
			}
		} else {
			lo = deck.Two
			if p.shortDeck {
				lo = deck.Six
			}
		}
	case '+':
		p.pos++
		hi = deck.Ace
	}

	var ranks deck.Rank16
	for r := lo; r <= hi; r++ {
		ranks.Set(r)
	}

	if hasSuit {
		var c64 deck.Card64
		for r := lo; r <= hi; r++ {
			c64.Set(deck.NewCard(r, suit))
		}
		return c64, nil
	}

	return deck.Card64FromRanks(ranks), nil
}
