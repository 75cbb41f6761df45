package blackjack

import (
	"errors"
	"fmt"
)

// Phase is the position of the game in its state machine.
type Phase string

const (
	PhaseAwaitingDeal Phase = "awaiting_deal"
	PhaseDrawing      Phase = "drawing"
	PhaseGameOver     Phase = "game_over"
)

type ActionType string

const (
	ActionDeal    ActionType = "deal"
	ActionHit     ActionType = "hit"
	ActionEndTurn ActionType = "end_turn"
	ActionReset   ActionType = "reset"
)

// Action is a request to move the game forward on behalf of a player.
type Action struct {
	Type     ActionType `json:"type"`
	PlayerID int        `json:"player_id"`
}

var (
	ErrInvalidAction = errors.New("invalid action")

	ErrAlreadyDealt   = fmt.Errorf("%w: initial cards already dealt this turn", ErrInvalidAction)
	ErrNotDealt       = fmt.Errorf("%w: initial cards not dealt yet", ErrInvalidAction)
	ErrBusted         = fmt.Errorf("%w: player is over %d points", ErrInvalidAction, Target)
	ErrGameOver       = fmt.Errorf("%w: game is over", ErrInvalidAction)
	ErrNotPlayersTurn = fmt.Errorf("%w: not player's turn", ErrInvalidAction)
	ErrUnknownAction  = fmt.Errorf("%w: unknown action", ErrInvalidAction)
)

// Rules holds the table rules that can change between games.
type Rules struct {
	// RevokeTieOnHigherScore lets a later, strictly higher qualifying score
	// clear a tie found earlier in the winner scan. When false a tie at the
	// best score seen so far always ends the game in a draw.
	RevokeTieOnHigherScore bool `json:"revoke_tie_on_higher_score"`
}

// GameState is the whole state of one game. It is owned by an Engine.
type GameState struct {
	Scores        []int   `json:"scores"`
	CurrentPlayer int     `json:"current_player"`
	Phase         Phase   `json:"phase"`
	Naturals      []bool  `json:"naturals"`
	LastDrawn     [2]Card `json:"last_drawn"`
	Status        string  `json:"status"`
	Result        *Result `json:"result,omitempty"`
}

func newGameState(players int) GameState {
	return GameState{
		Scores:        make([]int, players),
		CurrentPlayer: 0,
		Phase:         PhaseAwaitingDeal,
		Naturals:      make([]bool, players),
		LastDrawn:     [2]Card{NoCard, NoCard},
		Status:        turnStatus(0),
	}
}

// HasDealtFirstTwo reports whether the current player received the initial deal.
func (s GameState) HasDealtFirstTwo() bool {
	return s.Phase == PhaseDrawing
}

// NaturalPlayers returns the indexes of the players holding a natural, in order.
func (s GameState) NaturalPlayers() []int {
	var players []int
	for i, natural := range s.Naturals {
		if natural {
			players = append(players, i)
		}
	}
	return players
}

// clone returns a deep copy of s.
func (s GameState) clone() GameState {
	cp := s
	cp.Scores = append([]int(nil), s.Scores...)
	cp.Naturals = append([]bool(nil), s.Naturals...)
	if s.Result != nil {
		r := *s.Result
		cp.Result = &r
	}
	return cp
}

func turnStatus(player int) string {
	return fmt.Sprintf("Player %d turn", player+1)
}
