// Package blackjack implements the rules of PseudoBlackjack, a hot-seat card
// comparison game in which every player takes exactly one turn.
//
// # Core Types
//
// Engine: owns the GameState of one game and exposes the operations a
// presentation layer calls (DealInitialCards, DealExtraCard, EndTurn,
// ResetGame) together with a read-only view of the state.
//
// GameState: scores, the player whose turn it is, the turn phase, the players
// holding a natural and the last cards drawn.
//
// Card: a rank in [1,13] drawn with replacement. Card 0 means "no card".
//
// # Game Flow
//
// Each turn starts in PhaseAwaitingDeal. The initial deal gives two cards and
// moves the turn to PhaseDrawing, where the player may take extra cards while
// under 22 points. Ending the last player's turn computes the result and moves
// the game to PhaseGameOver; only ResetGame leaves that phase.
//
// # Scoring
//
// Ranks 2-9 score rank+1, ranks 10-13 score 10, the ace scores 11 while the
// player has at most 10 points and 1 otherwise. Two aces in the initial deal
// score 11+1. Exactly 21 after the initial deal is a natural, and a single
// natural wins the game outright.
package blackjack
