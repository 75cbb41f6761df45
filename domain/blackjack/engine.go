package blackjack

import (
	"fmt"
	"log/slog"

	"github.com/luca-patrignani/pseudo-blackjack/domain/deck"
)

// MinPlayers is the smallest table the game can be played at.
const MinPlayers = 2

// Source produces card ranks in [1,13]. Draws never fail and never deplete.
type Source interface {
	Draw() uint8
}

// Engine runs one game at a time for a fixed number of players.
type Engine struct {
	state   GameState
	players int
	rules   Rules
	source  Source
	logger  *slog.Logger
}

type engineOption func(Engine) Engine

// WithRules sets the table rules used by DetermineResult.
func WithRules(rules Rules) engineOption {
	return func(e Engine) Engine {
		e.rules = rules
		return e
	}
}

// WithSource replaces the default random card source.
func WithSource(source Source) engineOption {
	return func(e Engine) Engine {
		e.source = source
		return e
	}
}

func WithLogger(logger *slog.Logger) engineOption {
	return func(e Engine) Engine {
		e.logger = logger
		return e
	}
}

// NewEngine creates an engine for the given number of players with a fresh
// game ready for the first player's initial deal.
func NewEngine(players int, opts ...engineOption) (*Engine, error) {
	if players < MinPlayers {
		return nil, fmt.Errorf("need at least %d players, got %d", MinPlayers, players)
	}
	e := Engine{
		players: players,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		e = opt(e)
	}
	if e.source == nil {
		e.source = deck.NewRandom()
	}
	e.resetGame()
	return &e, nil
}

// DealInitialCards gives the current player the two cards of the initial deal.
func (e *Engine) DealInitialCards() error {
	return e.Apply(Action{Type: ActionDeal, PlayerID: e.state.CurrentPlayer})
}

// DealExtraCard gives the current player one more card.
func (e *Engine) DealExtraCard() error {
	return e.Apply(Action{Type: ActionHit, PlayerID: e.state.CurrentPlayer})
}

// EndTurn passes the turn to the next player, or ends the game after the last one.
func (e *Engine) EndTurn() error {
	return e.Apply(Action{Type: ActionEndTurn, PlayerID: e.state.CurrentPlayer})
}

// ResetGame discards the current game and starts a new one.
func (e *Engine) ResetGame() {
	// reset is legal in every phase
	_ = e.Apply(Action{Type: ActionReset, PlayerID: e.state.CurrentPlayer})
}

// ComputeResult evaluates the current scores and naturals. It does not change
// the state; EndTurn stores its value when the game ends.
func (e *Engine) ComputeResult() Result {
	return DetermineResult(e.state, e.rules)
}

func (e *Engine) dealInitialCards() {
	s := &e.state
	first, second := e.draw(), e.draw()
	p1, p2 := InitialPairScore(first, second)
	s.Scores[s.CurrentPlayer] += p1 + p2
	if s.Scores[s.CurrentPlayer] == Target {
		s.Naturals[s.CurrentPlayer] = true
	}
	s.Phase = PhaseDrawing
	s.LastDrawn = [2]Card{first, second}
	e.logger.Debug("initial deal",
		"player", s.CurrentPlayer+1,
		"cards", []string{first.Label(), second.Label()},
		"score", s.Scores[s.CurrentPlayer],
		"natural", s.Naturals[s.CurrentPlayer],
	)
}

func (e *Engine) dealExtraCard() {
	s := &e.state
	c := e.draw()
	s.Scores[s.CurrentPlayer] += ScoreOf(c, s.Scores[s.CurrentPlayer])
	s.LastDrawn = [2]Card{c, NoCard}
	e.logger.Debug("extra card",
		"player", s.CurrentPlayer+1,
		"card", c.Label(),
		"score", s.Scores[s.CurrentPlayer],
	)
}

func (e *Engine) endTurn() {
	s := &e.state
	if s.CurrentPlayer < len(s.Scores)-1 {
		s.CurrentPlayer++
		s.Phase = PhaseAwaitingDeal
		s.Status = turnStatus(s.CurrentPlayer)
		return
	}
	result := DetermineResult(*s, e.rules)
	s.Result = &result
	s.Phase = PhaseGameOver
	s.Status = result.String()
	e.logger.Debug("game over", "result", s.Status, "scores", s.Scores)
}

func (e *Engine) resetGame() {
	e.state = newGameState(e.players)
}

func (e *Engine) draw() Card {
	return Card(e.source.Draw())
}

// State returns a copy of the game state.
func (e *Engine) State() GameState {
	return e.state.clone()
}

// Scores returns the points of every player, in player order.
func (e *Engine) Scores() []int {
	return append([]int(nil), e.state.Scores...)
}

// Status is the text shown to the players: whose turn it is, or the result.
func (e *Engine) Status() string {
	return e.state.Status
}

// LastDrawnCards returns the cards of the last deal. An extra card leaves the
// second slot empty.
func (e *Engine) LastDrawnCards() [2]Card {
	return e.state.LastDrawn
}

func (e *Engine) CurrentPlayer() int {
	return e.state.CurrentPlayer
}

func (e *Engine) PlayerCount() int {
	return e.players
}

func (e *Engine) Phase() Phase {
	return e.state.Phase
}

func (e *Engine) Rules() Rules {
	return e.rules
}

// IsInitialDealAllowed reports whether DealInitialCards would be accepted.
func (e *Engine) IsInitialDealAllowed() bool {
	return e.Validate(Action{Type: ActionDeal, PlayerID: e.state.CurrentPlayer}) == nil
}

// IsExtraCardAllowed reports whether DealExtraCard would be accepted.
func (e *Engine) IsExtraCardAllowed() bool {
	return e.Validate(Action{Type: ActionHit, PlayerID: e.state.CurrentPlayer}) == nil
}

// Result returns the stored outcome once the game is over.
func (e *Engine) Result() (Result, bool) {
	if e.state.Result == nil {
		return Result{}, false
	}
	return *e.state.Result, true
}
