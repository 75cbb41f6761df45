package blackjack

import (
	"bytes"
	"errors"
	"testing"

	"github.com/luca-patrignani/pseudo-blackjack/domain/deck"
)

// scripted returns a source dealing the given cards in order.
func scripted(cards ...Card) *deck.Scripted {
	ranks := make([]uint8, len(cards))
	for i, c := range cards {
		ranks[i] = uint8(c)
	}
	return deck.MustScripted(ranks...)
}

func newTestEngine(t *testing.T, players int, cards ...Card) *Engine {
	t.Helper()
	e, err := NewEngine(players, WithSource(scripted(cards...)))
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func mustSnapshot(t *testing.T, e *Engine) []byte {
	t.Helper()
	b, err := e.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestNewEngineRequiresTwoPlayers(t *testing.T) {
	if _, err := NewEngine(1); err == nil {
		t.Fatal("expected error for a single player")
	}
}

func TestNewEngineStartsFirstTurn(t *testing.T) {
	e, err := NewEngine(4)
	if err != nil {
		t.Fatal(err)
	}
	if e.CurrentPlayer() != 0 || e.Phase() != PhaseAwaitingDeal {
		t.Fatalf("unexpected start: player %d phase %s", e.CurrentPlayer(), e.Phase())
	}
	if e.Status() != "Player 1 turn" {
		t.Fatalf("unexpected status %q", e.Status())
	}
	if !e.IsInitialDealAllowed() || e.IsExtraCardAllowed() {
		t.Fatal("only the initial deal should be allowed")
	}
	if e.LastDrawnCards() != [2]Card{NoCard, NoCard} {
		t.Fatalf("expected empty card slots, got %v", e.LastDrawnCards())
	}
	if len(e.Scores()) != 4 || e.PlayerCount() != 4 {
		t.Fatalf("expected 4 players, got %d", len(e.Scores()))
	}
}

func TestDealInitialCards(t *testing.T) {
	e := newTestEngine(t, 2, 4, Jack)
	if err := e.DealInitialCards(); err != nil {
		t.Fatal(err)
	}
	if got := e.Scores()[0]; got != 15 {
		t.Fatalf("expected 15, got %d", got)
	}
	if e.LastDrawnCards() != [2]Card{4, Jack} {
		t.Fatalf("unexpected cards %v", e.LastDrawnCards())
	}
	if e.IsInitialDealAllowed() || !e.IsExtraCardAllowed() {
		t.Fatal("only extra cards should be allowed after the initial deal")
	}
	if !e.State().HasDealtFirstTwo() {
		t.Fatal("expected initial deal to be recorded")
	}
}

func TestDealInitialCardsTwiceIsRejected(t *testing.T) {
	e := newTestEngine(t, 2, 4, Jack, 7, 8)
	if err := e.DealInitialCards(); err != nil {
		t.Fatal(err)
	}
	before := mustSnapshot(t, e)
	err := e.DealInitialCards()
	if !errors.Is(err, ErrAlreadyDealt) || !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrAlreadyDealt, got %v", err)
	}
	if !bytes.Equal(before, mustSnapshot(t, e)) {
		t.Fatal("state changed after a rejected deal")
	}
}

func TestTwoAcesScoreTwelve(t *testing.T) {
	e := newTestEngine(t, 2, Ace, Ace)
	if err := e.DealInitialCards(); err != nil {
		t.Fatal(err)
	}
	if got := e.Scores()[0]; got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
}

func TestNaturalAfterInitialDeal(t *testing.T) {
	e := newTestEngine(t, 2, Ace, King)
	if err := e.DealInitialCards(); err != nil {
		t.Fatal(err)
	}
	if got := e.State().NaturalPlayers(); len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected player 1 natural, got %v", got)
	}
}

func TestTwentyOneWithExtraCardIsNotNatural(t *testing.T) {
	e := newTestEngine(t, 2, 5, 6, 7)
	if err := e.DealInitialCards(); err != nil {
		t.Fatal(err)
	}
	if err := e.DealExtraCard(); err != nil {
		t.Fatal(err)
	}
	if got := e.Scores()[0]; got != 21 {
		t.Fatalf("expected 21, got %d", got)
	}
	if got := e.State().NaturalPlayers(); len(got) != 0 {
		t.Fatalf("expected no naturals, got %v", got)
	}
}

func TestDealExtraCardClearsSecondSlot(t *testing.T) {
	e := newTestEngine(t, 2, 2, 3, Queen)
	if err := e.DealInitialCards(); err != nil {
		t.Fatal(err)
	}
	if err := e.DealExtraCard(); err != nil {
		t.Fatal(err)
	}
	if e.LastDrawnCards() != [2]Card{Queen, NoCard} {
		t.Fatalf("unexpected cards %v", e.LastDrawnCards())
	}
	if got := e.Scores()[0]; got != 17 {
		t.Fatalf("expected 17, got %d", got)
	}
}

func TestExtraAceIsSoftOnlyUpToTen(t *testing.T) {
	// 3+4 then ace counts 11, then another ace counts 1
	e := newTestEngine(t, 2, 2, 3, Ace, Ace)
	if err := e.DealInitialCards(); err != nil {
		t.Fatal(err)
	}
	if err := e.DealExtraCard(); err != nil {
		t.Fatal(err)
	}
	if got := e.Scores()[0]; got != 18 {
		t.Fatalf("expected 18, got %d", got)
	}
	if err := e.DealExtraCard(); err != nil {
		t.Fatal(err)
	}
	if got := e.Scores()[0]; got != 19 {
		t.Fatalf("expected 19, got %d", got)
	}
}

func TestDealExtraCardBeforeInitialDealIsRejected(t *testing.T) {
	e := newTestEngine(t, 2, 9)
	before := mustSnapshot(t, e)
	if err := e.DealExtraCard(); !errors.Is(err, ErrNotDealt) {
		t.Fatalf("expected ErrNotDealt, got %v", err)
	}
	if !bytes.Equal(before, mustSnapshot(t, e)) {
		t.Fatal("state changed after a rejected hit")
	}
}

func TestDealExtraCardAfterBustIsRejected(t *testing.T) {
	e := newTestEngine(t, 2, King, Queen, Jack)
	if err := e.DealInitialCards(); err != nil {
		t.Fatal(err)
	}
	if err := e.DealExtraCard(); err != nil {
		t.Fatal(err)
	}
	if got := e.Scores()[0]; got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
	if e.IsExtraCardAllowed() {
		t.Fatal("extra card should not be allowed after a bust")
	}
	before := mustSnapshot(t, e)
	if err := e.DealExtraCard(); !errors.Is(err, ErrBusted) {
		t.Fatalf("expected ErrBusted, got %v", err)
	}
	if !bytes.Equal(before, mustSnapshot(t, e)) {
		t.Fatal("state changed after a rejected hit")
	}
}

func TestEndTurnAdvancesPlayer(t *testing.T) {
	e := newTestEngine(t, 3, 4, 5)
	if err := e.DealInitialCards(); err != nil {
		t.Fatal(err)
	}
	if err := e.EndTurn(); err != nil {
		t.Fatal(err)
	}
	if e.CurrentPlayer() != 1 || e.Status() != "Player 2 turn" {
		t.Fatalf("unexpected turn: player %d status %q", e.CurrentPlayer(), e.Status())
	}
	if !e.IsInitialDealAllowed() {
		t.Fatal("next player should be able to take the initial deal")
	}
}

func TestEndTurnWithoutDealing(t *testing.T) {
	e := newTestEngine(t, 2, 9, 9)
	if err := e.EndTurn(); err != nil {
		t.Fatal(err)
	}
	if e.CurrentPlayer() != 1 || e.Scores()[0] != 0 {
		t.Fatalf("unexpected state after skipping: %+v", e.State())
	}
}

func TestGameEndToEnd(t *testing.T) {
	// P1: ace + king = natural 21, P2: 8 (9 points) + 10 = 19
	e := newTestEngine(t, 2, Ace, King, 8, Ten)
	steps := []func() error{e.DealInitialCards, e.EndTurn, e.DealInitialCards, e.EndTurn}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if got := e.Scores(); got[0] != 21 || got[1] != 19 {
		t.Fatalf("unexpected scores %v", got)
	}
	if e.Phase() != PhaseGameOver {
		t.Fatalf("expected game over, got %s", e.Phase())
	}
	if e.Status() != "Player 1 wins!" {
		t.Fatalf("unexpected status %q", e.Status())
	}
	r, ok := e.Result()
	if !ok || r.Winner != 0 || !r.ByNatural {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestNaturalBeatsThreeCardTwentyOne(t *testing.T) {
	e := newTestEngine(t, 2, 5, 6, 7, Ace, Queen)
	steps := []func() error{e.DealInitialCards, e.DealExtraCard, e.EndTurn, e.DealInitialCards, e.EndTurn}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if e.Status() != "Player 2 wins!" {
		t.Fatalf("unexpected status %q", e.Status())
	}
}

func TestGameOverRejectsActions(t *testing.T) {
	e := newTestEngine(t, 2, 3, 4)
	for i := 0; i < 2; i++ {
		if err := e.EndTurn(); err != nil {
			t.Fatal(err)
		}
	}
	if e.Status() != DrawText {
		t.Fatalf("expected a draw when nobody played, got %q", e.Status())
	}
	before := mustSnapshot(t, e)
	for name, op := range map[string]func() error{
		"deal": e.DealInitialCards,
		"hit":  e.DealExtraCard,
		"end":  e.EndTurn,
	} {
		if err := op(); !errors.Is(err, ErrGameOver) {
			t.Errorf("%s: expected ErrGameOver, got %v", name, err)
		}
	}
	if !bytes.Equal(before, mustSnapshot(t, e)) {
		t.Fatal("state changed after the game was over")
	}
	if e.IsInitialDealAllowed() || e.IsExtraCardAllowed() {
		t.Fatal("no deal should be allowed after the game is over")
	}
}

func TestResetGame(t *testing.T) {
	e := newTestEngine(t, 2, Ace, King, 9, 9)
	_ = e.DealInitialCards()
	_ = e.EndTurn()
	_ = e.DealInitialCards()
	_ = e.EndTurn()
	if e.Phase() != PhaseGameOver {
		t.Fatalf("expected game over, got %s", e.Phase())
	}
	e.ResetGame()
	for i, score := range e.Scores() {
		if score != 0 {
			t.Fatalf("player %d score %d after reset", i+1, score)
		}
	}
	if e.CurrentPlayer() != 0 || !e.IsInitialDealAllowed() {
		t.Fatal("expected first player ready for the initial deal")
	}
	if len(e.State().NaturalPlayers()) != 0 {
		t.Fatal("expected naturals cleared")
	}
	if _, ok := e.Result(); ok {
		t.Fatal("expected no result after reset")
	}
	if e.Status() != "Player 1 turn" {
		t.Fatalf("unexpected status %q", e.Status())
	}
}

func TestComputeResultDoesNotChangeState(t *testing.T) {
	e := newTestEngine(t, 2, 9, 9)
	_ = e.DealInitialCards()
	before := mustSnapshot(t, e)
	if r := e.ComputeResult(); r.Winner != 0 {
		t.Fatalf("expected player 1 leading, got %+v", r)
	}
	if !bytes.Equal(before, mustSnapshot(t, e)) {
		t.Fatal("ComputeResult changed the state")
	}
}

func playTieThenHigher(t *testing.T, rules Rules) *Engine {
	t.Helper()
	// 20, 20, then 13 plus an extra card for 21 without a natural
	e, err := NewEngine(3,
		WithSource(scripted(King, Queen, Jack, Ten, 5, 6, 7)),
		WithRules(rules),
	)
	if err != nil {
		t.Fatal(err)
	}
	steps := []func() error{
		e.DealInitialCards, e.EndTurn,
		e.DealInitialCards, e.EndTurn,
		e.DealInitialCards, e.DealExtraCard, e.EndTurn,
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if got := e.Scores(); got[0] != 20 || got[1] != 20 || got[2] != 21 {
		t.Fatalf("unexpected scores %v", got)
	}
	return e
}

func TestTieIsStickyByDefault(t *testing.T) {
	e := playTieThenHigher(t, Rules{})
	if e.Status() != DrawText {
		t.Fatalf("expected a draw, got %q", e.Status())
	}
}

func TestTieRevokedByHigherScore(t *testing.T) {
	e := playTieThenHigher(t, Rules{RevokeTieOnHigherScore: true})
	if e.Status() != "Player 3 wins!" {
		t.Fatalf("expected player 3 to win, got %q", e.Status())
	}
	if e.Rules() != (Rules{RevokeTieOnHigherScore: true}) {
		t.Fatalf("unexpected rules %+v", e.Rules())
	}
}
