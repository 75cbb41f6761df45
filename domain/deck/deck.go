// Package deck provides the card sources used by the game engine.
//
// The game never depletes a shoe: every draw is an independent rank in
// [MinRank, MaxRank], so a source only needs to produce ranks.
package deck

import (
	"crypto/cipher"
	"fmt"
	"math/big"

	"go.dedis.ch/kyber/v4/suites"
	"go.dedis.ch/kyber/v4/util/random"
)

const (
	MinRank = 1
	MaxRank = 13
)

var suite suites.Suite = suites.MustFind("Ed25519")

// Random draws ranks uniformly with replacement from the suite random stream.
type Random struct {
	stream cipher.Stream
	ranks  *big.Int
}

// NewRandom creates a source backed by the Ed25519 suite random stream.
func NewRandom() *Random {
	return newRandomFrom(suite.RandomStream())
}

// random.Int picks in [1, mod), so the modulus is one past MaxRank.
func newRandomFrom(stream cipher.Stream) *Random {
	return &Random{
		stream: stream,
		ranks:  big.NewInt(MaxRank + 1),
	}
}

// Draw returns a rank in [MinRank, MaxRank].
func (r *Random) Draw() uint8 {
	return uint8(random.Int(r.ranks, r.stream).Int64())
}

// Scripted replays a fixed sequence of ranks, starting over when it runs out.
type Scripted struct {
	ranks []uint8
	next  int
}

// NewScripted validates the ranks and returns a source that replays them.
func NewScripted(ranks ...uint8) (*Scripted, error) {
	if len(ranks) == 0 {
		return nil, fmt.Errorf("scripted source needs at least one rank")
	}
	for i, r := range ranks {
		if r < MinRank || r > MaxRank {
			return nil, fmt.Errorf("invalid rank %d at position %d", r, i)
		}
	}
	cp := make([]uint8, len(ranks))
	copy(cp, ranks)
	return &Scripted{ranks: cp}, nil
}

// MustScripted is like NewScripted but panics on invalid ranks.
func MustScripted(ranks ...uint8) *Scripted {
	s, err := NewScripted(ranks...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Scripted) Draw() uint8 {
	r := s.ranks[s.next]
	s.next = (s.next + 1) % len(s.ranks)
	return r
}
