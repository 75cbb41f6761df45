// Package application binds the game engine to its history and logger and
// exposes the operations the presentation layer calls.
package application

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/luca-patrignani/pseudo-blackjack/domain/blackjack"
	"github.com/luca-patrignani/pseudo-blackjack/ledger"
)

// Table is one hot-seat game in front of the players.
type Table struct {
	engine  *blackjack.Engine
	history *ledger.Ledger
	logger  *slog.Logger
}

// View is everything the presentation layer renders.
type View struct {
	Scores         []int
	Status         string
	Cards          [2]blackjack.Card
	CurrentPlayer  int
	CanDeal        bool
	CanHit         bool
	CanUndo        bool
	GameOver       bool
	Result         blackjack.Result
	HistoryEntries int
}

func NewTable(engine *blackjack.Engine, logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Table{
		engine:  engine,
		history: ledger.New(),
		logger:  logger,
	}
}

// Deal serves the initial two cards to the current player.
func (t *Table) Deal() error {
	return t.apply(blackjack.ActionDeal)
}

// Hit serves one more card to the current player.
func (t *Table) Hit() error {
	return t.apply(blackjack.ActionHit)
}

// EndTurn passes the turn on, computing the result after the last player.
func (t *Table) EndTurn() error {
	return t.apply(blackjack.ActionEndTurn)
}

// NewGame starts over with all scores at zero and a fresh history.
func (t *Table) NewGame() error {
	t.history = ledger.New()
	return t.apply(blackjack.ActionReset)
}

func (t *Table) apply(kind blackjack.ActionType) error {
	a := blackjack.Action{Type: kind, PlayerID: t.engine.CurrentPlayer()}
	before, err := t.engine.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot before %s: %w", kind, err)
	}
	if err := t.engine.Apply(a); err != nil {
		t.logger.Debug("action rejected", "action", kind, "player", a.PlayerID+1, "error", err)
		if rerr := t.rollback(before); rerr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rerr)
		}
		return err
	}
	state := t.engine.State()
	after, err := t.engine.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot after %s: %w", kind, err)
	}
	if err := t.history.Append(a, state, after); err != nil {
		return fmt.Errorf("record %s: %w", kind, err)
	}
	t.logger.Info("action applied",
		"action", kind,
		"player", a.PlayerID+1,
		"score", state.Scores[a.PlayerID],
		"status", state.Status,
	)
	if r, over := t.engine.Result(); over && kind == blackjack.ActionEndTurn {
		t.logger.Info("game over", "result", r.String(), "scores", state.Scores)
	}
	return nil
}

// rollback puts the engine back to before when a rejected action changed it.
func (t *Table) rollback(before []byte) error {
	now, err := t.engine.Snapshot()
	if err != nil {
		return err
	}
	if bytes.Equal(now, before) {
		return nil
	}
	t.logger.Error("rejected action changed the game, restoring")
	return t.engine.Restore(before)
}

// Restore puts the game back to the state recorded by a history entry and
// drops the entries after it.
func (t *Table) Restore(index int) error {
	snap, err := t.history.Truncate(index)
	if err != nil {
		return err
	}
	if err := t.engine.Restore(snap); err != nil {
		return fmt.Errorf("restore entry %d: %w", index, err)
	}
	t.logger.Info("game restored", "entry", index, "status", t.engine.Status())
	return nil
}

// Undo goes back to the state before the last recorded action.
func (t *Table) Undo() error {
	if t.history.Len() < 2 {
		return fmt.Errorf("%w: nothing to undo", blackjack.ErrInvalidAction)
	}
	return t.Restore(t.history.Len() - 1)
}

// View returns a read-only picture of the game.
func (t *Table) View() View {
	v := View{
		Scores:         t.engine.Scores(),
		Status:         t.engine.Status(),
		Cards:          t.engine.LastDrawnCards(),
		CurrentPlayer:  t.engine.CurrentPlayer(),
		CanDeal:        t.engine.IsInitialDealAllowed(),
		CanHit:         t.engine.IsExtraCardAllowed(),
		HistoryEntries: t.history.Len(),
		CanUndo:        t.history.Len() > 1,
	}
	v.Result, v.GameOver = t.engine.Result()
	return v
}

// History returns the actions of the current game after checking the chain.
func (t *Table) History() ([]ledger.Entry, error) {
	if err := t.history.Verify(); err != nil {
		return nil, fmt.Errorf("history corrupted: %w", err)
	}
	return t.history.Entries(), nil
}
