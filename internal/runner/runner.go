package runner

import (
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerquery/internal/deck"
	"github.com/lox/pokerquery/internal/query"
	"github.com/lox/pokerquery/internal/randutil"
	"github.com/lox/pokerquery/internal/vm"
)

// DefaultTrials is the trial budget when none is configured.
const DefaultTrials = 100000

// Options configures a Runner.
type Options struct {
	Trials  int
	Workers int
	Seed    int64
	Logger  *log.Logger
}

// Runner compiles statements and drives their Monte Carlo execution.
type Runner struct {
	trials  int
	workers int
	seed    int64
	logger  *log.Logger
	reg     *vm.Registry
}

// New builds a runner. Zero options fall back to sane defaults: the
// trial budget to DefaultTrials and the worker count to the CPU count.
func New(opts Options) *Runner {
	if opts.Trials <= 0 {
		opts.Trials = DefaultTrials
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Runner{
		trials:  opts.Trials,
		workers: opts.Workers,
		seed:    opts.Seed,
		logger:  opts.Logger,
		reg:     vm.NewRegistry(),
	}
}

// Result is one selector's aggregated output.
type Result struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StatementResult reports one statement's outputs and its effective
// sample size.
type StatementResult struct {
	Results   []Result `json:"results"`
	Requested int      `json:"requested"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
}

// Run parses and executes every statement of src, writing result lines to
// out. A failing statement is reported with its source snippet and does
// not stop the following statements.
func (r *Runner) Run(src string, out, errOut io.Writer) error {
	stmts, err := query.Parse(src)
	if err != nil {
		reportError(errOut, src, err)
		return err
	}

	var firstErr error
	for i := range stmts {
		res, err := r.ExecStatement(&stmts[i])
		if err != nil {
			reportError(errOut, src, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		for _, line := range res.Results {
			fmt.Fprintf(out, "%s = %s\n", line.Name, line.Value)
		}
		if res.Failed > 0 {
			r.logger.Warn("some deals were unsatisfiable",
				"requested", res.Requested, "succeeded", res.Succeeded, "failed", res.Failed)
		}
	}

	return firstErr
}

// reportError prints a diagnostic, pointing at the offending query text
// when the error carries a location.
func reportError(w io.Writer, src string, err error) {
	fmt.Fprintf(w, "Error:\n%v\n", err)
	if span, ok := query.SpanOf(err); ok && span.Start < span.End && span.End <= len(src) {
		fmt.Fprintf(w, "%s\n", src[span.Start:span.End])
	}
}

type workerOutcome struct {
	aggs      []Aggregator
	succeeded int
	failed    int
}

// ExecStatement compiles and runs one statement: static data, one
// compile, N worker clones, merge.
func (r *Runner) ExecStatement(stmt *query.Statement) (*StatementResult, error) {
	sd, err := vm.BuildStaticData(stmt, r.trials)
	if err != nil {
		return nil, err
	}

	prog, err := vm.Compile(stmt, sd, r.reg)
	if err != nil {
		return nil, err
	}

	workers := r.workers
	if workers > sd.Trials {
		workers = sd.Trials
	}
	if workers < 1 {
		workers = 1
	}

	r.logger.Debug("running statement",
		"game", sd.Game, "players", len(sd.PlayerNames), "trials", sd.Trials, "workers", workers)

	outcomes := make([]workerOutcome, workers)
	var g errgroup.Group

	share := sd.Trials / workers
	remainder := sd.Trials % workers

	for w := 0; w < workers; w++ {
		target := share
		if w == 0 {
			target += remainder
		}
		w := w
		g.Go(func() error {
			outcome, err := r.runWorker(prog, sd, w, target)
			if err != nil {
				return err
			}
			outcomes[w] = outcome
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := outcomes[0]
	for _, o := range outcomes[1:] {
		for i := range merged.aggs {
			merged.aggs[i].Merge(o.aggs[i])
		}
		merged.succeeded += o.succeeded
		merged.failed += o.failed
	}

	res := &StatementResult{
		Requested: sd.Trials,
		Succeeded: merged.succeeded,
		Failed:    merged.failed,
	}
	for i, sel := range prog.Selectors {
		res.Results = append(res.Results, Result{Name: sel.Name, Value: merged.aggs[i].Result()})
	}

	return res, nil
}

// runWorker runs up to target successful trials, allowing as many failed
// draws again before giving up. Unsatisfiable draws are retried, not
// fatal; the effective sample is reported back.
func (r *Runner) runWorker(prog *vm.Program, sd *vm.StaticData, worker, target int) (workerOutcome, error) {
	rng := randutil.ForWorker(r.seed, worker)
	dealer := deck.NewDealer(rng, sd.Game.IsShortDeck(), sd.DeadCards)
	sample := vm.NewSample(len(sd.PlayerNames), sd.Game.HoleCards())

	ctx := &vm.ExecContext{
		Game:   sd.Game,
		Dead:   sd.DeadCards,
		Store:  prog.Store.Clone(),
		Sample: sample,
	}

	aggs := make([]Aggregator, len(prog.Selectors))
	for i, sel := range prog.Selectors {
		aggs[i] = NewAggregator(sel.Kind, sd.Game)
	}

	outcome := workerOutcome{aggs: aggs}
	for outcome.succeeded < target && outcome.failed < target {
		if !sampleDeal(dealer, sd, sample) {
			outcome.failed++
			continue
		}

		if err := prog.Run(ctx); err != nil {
			return outcome, err
		}

		for i, sel := range prog.Selectors {
			aggs[i].Add(ctx.Store.Get(sel.Slot))
		}
		outcome.succeeded++
	}

	return outcome, nil
}

// sampleDeal draws one full deal: each player's hole cards under their
// range, then the board in flop, turn, river steps so the board range
// sees its prefixes grow.
func sampleDeal(dealer *deck.Dealer, sd *vm.StaticData, sample *vm.Sample) bool {
	dealer.Reset()

	n := sd.Game.HoleCards()
	for i, checker := range sd.PlayerRanges {
		dealer.Begin()
		if !dealer.DealN(checker.IsSatisfied, n) {
			return false
		}
		copy(sample.Cards[i*n:(i+1)*n], dealer.Dealt())
	}

	board := sd.BoardRange
	dealer.Begin()
	if !dealer.DealN(board.IsSatisfied, 3) ||
		!dealer.DealN(board.IsSatisfied, 1) ||
		!dealer.DealN(board.IsSatisfied, 1) {
		return false
	}
	copy(sample.Cards[len(sd.PlayerRanges)*n:], dealer.Dealt())

	return true
}
