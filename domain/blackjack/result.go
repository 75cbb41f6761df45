package blackjack

import "fmt"

// DrawText is the status shown when nobody wins.
const DrawText = "It's a draw!"

// Result is the outcome of a finished game.
type Result struct {
	Draw      bool `json:"draw"`
	Winner    int  `json:"winner"` // player index, -1 on a draw
	ByNatural bool `json:"by_natural"`
}

func drawResult() Result {
	return Result{Draw: true, Winner: -1}
}

func (r Result) String() string {
	if r.Draw {
		return DrawText
	}
	return fmt.Sprintf("Player %d wins!", r.Winner+1)
}

// DetermineResult decides the outcome of a game from its final state.
//
// A single natural wins outright and two or more naturals are a draw.
// Without naturals the scores are scanned in player order keeping the best
// score not above Target. Meeting the best score marks a draw; whether a
// later higher score clears that mark is decided by rules. A game in which
// nobody scores a qualifying point is a draw.
func DetermineResult(s GameState, rules Rules) Result {
	naturals := s.NaturalPlayers()
	switch {
	case len(naturals) == 1:
		return Result{Winner: naturals[0], ByNatural: true}
	case len(naturals) > 1:
		return drawResult()
	}

	best, winner, tie := 0, -1, false
	for i, points := range s.Scores {
		switch {
		case points > best && !Busted(points):
			best, winner = points, i
			if rules.RevokeTieOnHigherScore {
				tie = false
			}
		case points == best && best > 0:
			tie = true
		}
	}
	if tie || best == 0 {
		return drawResult()
	}
	return Result{Winner: winner}
}
