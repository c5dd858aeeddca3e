// Package runner drives a compiled statement: it fans trials out across
// workers, folds per-trial results into aggregators and renders the final
// values.
package runner

import (
	"fmt"
	"strconv"

	"github.com/lox/pokerquery/internal/deck"
	"github.com/lox/pokerquery/internal/query"
	"github.com/lox/pokerquery/internal/vm"
)

// Aggregator folds one selector's per-trial values. Each worker owns one
// instance per selector; Merge combines worker states and is commutative
// and associative, so join order does not matter.
type Aggregator interface {
	Add(v vm.Value)
	Merge(other Aggregator)
	Result() string
}

// NewAggregator builds the aggregator for a selector kind. Max and Min
// compare under the game's strength ladder.
func NewAggregator(kind query.SelectorKind, game deck.Game) Aggregator {
	switch kind {
	case query.Avg:
		return &avgAggregator{}
	case query.Count:
		return &countAggregator{}
	case query.Max:
		return &extremeAggregator{game: game, max: true}
	default:
		return &extremeAggregator{game: game, max: false}
	}
}

type avgAggregator struct {
	num float64
	den uint64
}

func (a *avgAggregator) Add(v vm.Value) {
	a.num += v.AsDouble()
	a.den++
}

func (a *avgAggregator) Merge(other Aggregator) {
	b := other.(*avgAggregator)
	a.num += b.num
	a.den += b.den
}

func (a *avgAggregator) Result() string {
	if a.den == 0 {
		return "NaN"
	}
	return strconv.FormatFloat(a.num/float64(a.den), 'g', -1, 64)
}

type countAggregator struct {
	count  uint64
	trials uint64
}

func (a *countAggregator) Add(v vm.Value) {
	if v.Bool() {
		a.count++
	}
	a.trials++
}

func (a *countAggregator) Merge(other Aggregator) {
	b := other.(*countAggregator)
	a.count += b.count
	a.trials += b.trials
}

func (a *countAggregator) Result() string {
	if a.trials == 0 {
		return "0%(0)"
	}
	pct := 100 * float64(a.count) / float64(a.trials)
	return fmt.Sprintf("%g%%(%d)", pct, a.count)
}

// extremeAggregator tracks the running maximum or minimum. Ties keep the
// first value seen.
type extremeAggregator struct {
	game deck.Game
	max  bool
	val  *vm.Value
}

func (a *extremeAggregator) Add(v vm.Value) {
	if a.val == nil {
		a.val = &v
		return
	}

	ord, comparable, err := vm.Compare(a.game, *a.val, v)
	if err != nil || !comparable {
		return
	}
	if (a.max && ord < 0) || (!a.max && ord > 0) {
		a.val = &v
	}
}

func (a *extremeAggregator) Merge(other Aggregator) {
	b := other.(*extremeAggregator)
	if b.val != nil {
		a.Add(*b.val)
	}
}

func (a *extremeAggregator) Result() string {
	if a.val == nil {
		return "none"
	}
	return a.val.String()
}
