package blackjack

const (
	// Target is the best possible score. Anything above it is a bust.
	Target = 21
	// softAceLimit is the highest running score at which an ace still counts 11.
	softAceLimit = 10
)

// ScoreOf returns the points c is worth when drawn by a player who already
// holds running points.
func ScoreOf(c Card, running int) int {
	switch {
	case c == Ace:
		if running <= softAceLimit {
			return 11
		}
		return 1
	case c > Ace && c < Ten:
		return int(c) + 1
	case c >= Ten && c <= King:
		return 10
	default:
		return 0
	}
}

// InitialPairScore scores the two cards of an initial deal. The first card is
// scored on an empty hand; a second ace counts 1 after a first ace.
func InitialPairScore(first, second Card) (int, int) {
	p1 := ScoreOf(first, 0)
	if second == Ace && first == Ace {
		return p1, 1
	}
	return p1, ScoreOf(second, 0)
}

// Busted reports whether a score can no longer win on points.
func Busted(score int) bool {
	return score > Target
}
