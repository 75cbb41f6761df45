package blackjack

import (
	"encoding/json"
	"fmt"
)

// Validate checks whether an action is legal in the current state. It never
// changes the state.
func (e *Engine) Validate(a Action) error {
	if a.Type == ActionReset {
		return nil
	}
	s := e.state
	if s.Phase == PhaseGameOver {
		return ErrGameOver
	}
	if a.PlayerID != s.CurrentPlayer {
		return fmt.Errorf("%w: current turn %d, player %d", ErrNotPlayersTurn, s.CurrentPlayer, a.PlayerID)
	}

	switch a.Type {
	case ActionDeal:
		if s.HasDealtFirstTwo() {
			return ErrAlreadyDealt
		}
	case ActionHit:
		if !s.HasDealtFirstTwo() {
			return ErrNotDealt
		}
		if Busted(s.Scores[s.CurrentPlayer]) {
			return ErrBusted
		}
	case ActionEndTurn:
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, a.Type)
	}
	return nil
}

// Apply validates an action and applies it to the state. A rejected action
// leaves the state untouched.
func (e *Engine) Apply(a Action) error {
	if err := e.Validate(a); err != nil {
		e.logger.Debug("action rejected", "action", a.Type, "player", a.PlayerID+1, "error", err)
		return err
	}
	switch a.Type {
	case ActionDeal:
		e.dealInitialCards()
	case ActionHit:
		e.dealExtraCard()
	case ActionEndTurn:
		e.endTurn()
	case ActionReset:
		e.resetGame()
	}
	return nil
}

// Snapshot serializes the current state.
func (e *Engine) Snapshot() ([]byte, error) {
	return json.Marshal(e.state)
}

// Restore replaces the state with a snapshot taken from an engine with the
// same number of players.
func (e *Engine) Restore(data []byte) error {
	var s GameState
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if err := e.checkState(s); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	e.state = s
	return nil
}

func (e *Engine) checkState(s GameState) error {
	if len(s.Scores) != e.players || len(s.Naturals) != e.players {
		return fmt.Errorf("expected %d players, got %d scores and %d naturals", e.players, len(s.Scores), len(s.Naturals))
	}
	if s.CurrentPlayer < 0 || s.CurrentPlayer >= e.players {
		return fmt.Errorf("current player %d out of range", s.CurrentPlayer)
	}
	switch s.Phase {
	case PhaseAwaitingDeal, PhaseDrawing:
		if s.Result != nil {
			return fmt.Errorf("result set in phase %s", s.Phase)
		}
	case PhaseGameOver:
		if s.Result == nil {
			return fmt.Errorf("game over without result")
		}
	default:
		return fmt.Errorf("unknown phase %q", s.Phase)
	}
	for i, natural := range s.Naturals {
		if natural && s.Scores[i] < Target {
			return fmt.Errorf("player %d has a natural with %d points", i+1, s.Scores[i])
		}
	}
	for _, c := range s.LastDrawn {
		if c != NoCard && !c.Valid() {
			return fmt.Errorf("invalid card %d", c)
		}
	}
	return nil
}
