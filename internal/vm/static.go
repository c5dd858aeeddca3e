package vm

import (
	"fmt"

	"github.com/lox/pokerquery/internal/deck"
	"github.com/lox/pokerquery/internal/handrange"
	"github.com/lox/pokerquery/internal/query"
)

// MaxPlayers bounds how many players a from clause may declare.
const MaxPlayers = 10

// Reserved from-clause keys; every other key names a player.
const (
	keyGame  = "game"
	keyBoard = "board"
	keyDead  = "dead"
)

// StaticData is the immutable per-statement simulation setup: the game,
// the named player ranges, the board range, dead cards and the trial
// budget. It is shared read-only by all workers.
type StaticData struct {
	Game         deck.Game
	PlayerNames  []string
	PlayerRanges []*handrange.Checker
	BoardRange   *handrange.Checker
	DeadCards    deck.Card64
	Trials       int
}

// Player resolves a player name to its index; ok is false when the from
// clause does not declare it.
func (sd *StaticData) Player(name string) (int, bool) {
	for i, n := range sd.PlayerNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// BuildStaticData resolves the from clause: game (default holdem), player
// ranges in declaration order, board range (default "*"), and dead cards.
// Failures point at the offending literal; the too-many-players error
// points at the whole from clause.
func BuildStaticData(stmt *query.Statement, trials int) (*StaticData, error) {
	sd := &StaticData{Game: deck.Holdem, Trials: trials}

	if item, ok := findItem(stmt, keyGame); ok {
		g, err := deck.ParseGame(item.Value)
		if err != nil {
			return nil, query.Errorf(item.ValueLoc, "%w %q", ErrInvalidGame, item.Value)
		}
		sd.Game = g
	}

	for _, item := range stmt.From {
		switch item.Key {
		case keyGame, keyBoard, keyDead:
			continue
		}

		checker, err := handrange.New(item.Value, sd.Game, sd.Game.HoleCards())
		if err != nil {
			return nil, query.NewError(item.ValueLoc, fmt.Errorf("player %s: %w", item.Key, err))
		}
		sd.PlayerNames = append(sd.PlayerNames, item.Key)
		sd.PlayerRanges = append(sd.PlayerRanges, checker)
	}

	if n := len(sd.PlayerNames); n > MaxPlayers {
		return nil, query.NewError(stmt.FromLoc, &ExceededMaxPlayersError{N: n})
	}

	boardSrc := "*"
	boardLoc := stmt.FromLoc
	if item, ok := findItem(stmt, keyBoard); ok {
		boardSrc = item.Value
		boardLoc = item.ValueLoc
	}
	board, err := handrange.NewBoard(boardSrc, sd.Game)
	if err != nil {
		return nil, query.NewError(boardLoc, fmt.Errorf("board: %w", err))
	}
	sd.BoardRange = board

	if item, ok := findItem(stmt, keyDead); ok {
		cards, err := deck.ParseCards(item.Value)
		if err != nil || len(cards) == 0 {
			return nil, query.NewError(item.ValueLoc, ErrInvalidDeadcards)
		}
		c64 := deck.Card64From(cards)
		if int(c64.Count()) != len(cards) {
			return nil, query.NewError(item.ValueLoc, ErrInvalidDeadcards)
		}
		sd.DeadCards = c64
	}

	return sd, nil
}

func findItem(stmt *query.Statement, key string) (query.FromItem, bool) {
	for _, item := range stmt.From {
		if item.Key == key {
			return item, true
		}
	}
	return query.FromItem{}, false
}
