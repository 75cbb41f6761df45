package blackjack

import (
	"fmt"

	"github.com/paulhankin/poker"
	"github.com/pterm/pterm"
)

// Card is a rank in [Ace, King]. NoCard marks an empty slot.
type Card uint8

const (
	NoCard Card = 0
	Ace    Card = 1
	Ten    Card = 10
	Jack   Card = 11
	Queen  Card = 12
	King   Card = 13
)

// FaceDown is the display character for an empty slot.
const FaceDown = "▓"

// Valid reports whether c is a drawable rank.
func (c Card) Valid() bool {
	return c >= Ace && c <= King
}

// pip is the rank printed on the card. Ranks 2-9 show the pip of their
// point value, so the deck has no 2 and two 10s.
func (c Card) pip() uint8 {
	if c > Ace && c < Ten {
		return uint8(c) + 1
	}
	return uint8(c)
}

// Face returns the spade carrying the same printed rank as c.
func (c Card) Face() (poker.Card, error) {
	if !c.Valid() {
		var none poker.Card
		return none, fmt.Errorf("no face for card %d", c)
	}
	return poker.MakeCard(poker.Spade, poker.Rank(c.pip()))
}

// Label returns the printed rank and suit, or FaceDown for an empty slot.
func (c Card) Label() string {
	face, err := c.Face()
	if err != nil {
		return FaceDown
	}
	rank := face.Rank().String()
	if rank == "T" {
		rank = "10"
	}
	return rank + "♠"
}

// String is Label with the suit coloured for the terminal.
func (c Card) String() string {
	label := c.Label()
	if !c.Valid() {
		return label
	}
	return label[:len(label)-len("♠")] + pterm.Black("♠")
}
