package handrange

import "github.com/lox/pokerquery/internal/deck"

// rangeCard is one slot specifier of a term: any combination of a rank
// constant, rank variable or wildcard with a suit constant, suit variable
// or wildcard.
type rangeCard struct {
	hasRank bool
	rank    deck.Rank
	rankVar byte // 'B'..'V', 0 when absent

	hasSuit bool
	suit    deck.Suit
	suitVar byte // 'w'..'z', 0 when absent
}

// spanElem is one slot of a span pattern; only rank constants with an
// optional suit constant are legal inside spans.
type spanElem struct {
	rank    deck.Rank
	hasSuit bool
	suit    deck.Suit
}

type spanKind uint8

const (
	spanDown spanKind = iota // "AKs-"
	spanUp                   // "22+"
	spanTo                   // "AKs-JTs"
)

type spanNode struct {
	kind spanKind
	head []spanElem
	tail []spanElem // spanTo only
}

// listNode is a bracketed union of card restrictions; it compiles to a
// single allowed-card set for one slot.
type listNode struct {
	allowed deck.Card64
}

type elemKind uint8

const (
	elemCard elemKind = iota
	elemList
)

type termElem struct {
	kind elemKind
	card rangeCard
	list listNode
}

// term is one card pattern: either a sequence of card/list slot
// specifiers, or a single span.
type term struct {
	elems []termElem
	span  *spanNode
	start int
	end   int
}

func (t *term) slots() int {
	if t.span != nil {
		return len(t.span.head)
	}
	return len(t.elems)
}

type exprOp uint8

const (
	opTerm exprOp = iota
	opAnd
	opOr
	opNot
)

type exprNode struct {
	op       exprOp
	lhs, rhs *exprNode
	term     *term
}
