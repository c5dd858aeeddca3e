package handrange

import "github.com/lox/pokerquery/internal/deck"

// matcher is the lowered form of the range expression: terms become
// per-slot constraint lists, boolean structure is kept.
type matcher struct {
	op       exprOp
	lhs, rhs *matcher
	cons     []constrain
}

// Checker decides whether a partial card assignment can still complete a
// range. It is immutable after construction and safe to share across
// workers.
type Checker struct {
	root  *matcher
	n     int
	board bool
	perms [][][]uint8 // perms[r] lists the slot assignments for r cards
	src   string
}

// New compiles a player range over numCards slots (two for Hold'em and
// Short Deck, four for Omaha).
func New(src string, game deck.Game, numCards int) (*Checker, error) {
	return compile(src, game, numCards, false)
}

// NewBoard compiles a board range: five slots, where the three flop slots
// are interchangeable but turn and river are positional.
func NewBoard(src string, game deck.Game) (*Checker, error) {
	return compile(src, game, 5, true)
}

func compile(src string, game deck.Game, n int, board bool) (*Checker, error) {
	expr, err := parse(src, game.IsShortDeck())
	if err != nil {
		return nil, err
	}

	root, err := lower(expr, n)
	if err != nil {
		return nil, err
	}

	perms := make([][][]uint8, n+1)
	for r := 1; r <= n; r++ {
		perms[r] = slotPerms(n, r, board)
	}

	return &Checker{root: root, n: n, board: board, perms: perms, src: src}, nil
}

func lower(e *exprNode, n int) (*matcher, error) {
	switch e.op {
	case opTerm:
		cons, err := lowerTerm(e.term, n)
		if err != nil {
			return nil, err
		}
		return &matcher{op: opTerm, cons: cons}, nil

	case opNot:
		lhs, err := lower(e.lhs, n)
		if err != nil {
			return nil, err
		}
		return &matcher{op: opNot, lhs: lhs}, nil

	default:
		lhs, err := lower(e.lhs, n)
		if err != nil {
			return nil, err
		}
		rhs, err := lower(e.rhs, n)
		if err != nil {
			return nil, err
		}
		return &matcher{op: e.op, lhs: lhs, rhs: rhs}, nil
	}
}

// Src returns the range source text.
func (c *Checker) Src() string {
	return c.src
}

// NumCards returns the number of slots of the range.
func (c *Checker) NumCards() int {
	return c.n
}

// IsSatisfied reports whether the dealt prefix can still complete the
// range: some permutation of slots accepts the cards seen so far. Negated
// subexpressions stay open until the prefix is complete, so the sampler
// never rejects a deal that a later card could still save.
func (c *Checker) IsSatisfied(cs []deck.Card) bool {
	if len(cs) == 0 {
		return true
	}
	if len(cs) > c.n {
		cs = cs[:c.n]
	}
	return c.satisfied(c.root, cs)
}

func (c *Checker) satisfied(m *matcher, cs []deck.Card) bool {
	switch m.op {
	case opTerm:
		for _, perm := range c.perms[len(cs)] {
			if !reject(m.cons, cs, perm) {
				return true
			}
		}
		return false

	case opNot:
		if len(cs) < c.n {
			return true
		}
		return !c.satisfied(m.lhs, cs)

	case opAnd:
		return c.satisfied(m.lhs, cs) && c.satisfied(m.rhs, cs)

	default: // opOr
		return c.satisfied(m.lhs, cs) || c.satisfied(m.rhs, cs)
	}
}

// slotPerms enumerates the injective assignments of r card positions to n
// slots. Board ranges only permute the three flop slots; turn and river
// are fixed in place.
func slotPerms(n, r int, board bool) [][]uint8 {
	if !board {
		return permutations(n, r)
	}

	if r <= 3 {
		return permutations(3, r)
	}

	var res [][]uint8
	for _, flop := range permutations(3, 3) {
		perm := make([]uint8, r)
		copy(perm, flop)
		for i := 3; i < r; i++ {
			perm[i] = uint8(i)
		}
		res = append(res, perm)
	}
	return res
}

// permutations lists every ordered selection of r distinct values from
// 0..n-1.
func permutations(n, r int) [][]uint8 {
	var res [][]uint8
	var cur []uint8
	var used [8]bool

	var walk func()
	walk = func() {
		if len(cur) == r {
			res = append(res, append([]uint8(nil), cur...))
			return
		}
		for v := 0; v < n; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			cur = append(cur, uint8(v))
			walk()
			cur = cur[:len(cur)-1]
			used[v] = false
		}
	}
	walk()

	return res
}
