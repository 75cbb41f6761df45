package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/luca-patrignani/pseudo-blackjack/domain/blackjack"
)

type Ledger struct {
	entries []Entry
	now     func() time.Time
}

// New creates a ledger holding only its genesis entry.
func New() *Ledger {
	l := &Ledger{now: time.Now}
	genesis := Entry{
		Index:     0,
		Timestamp: l.now().Unix(),
		PrevHash:  "0",
		Action:    genesisAction,
		Player:    -1,
	}
	genesis.Hash = calculateHash(genesis)
	l.entries = append(l.entries, genesis)
	return l
}

// Append records an applied action together with the state it produced and
// that state's engine snapshot.
func (l *Ledger) Append(a blackjack.Action, state blackjack.GameState, snapshot []byte) error {
	latest := l.entries[len(l.entries)-1]
	entry := Entry{
		Index:     latest.Index + 1,
		Timestamp: l.now().Unix(),
		PrevHash:  latest.Hash,
		Action:    a.Type,
		Player:    a.PlayerID,
		Cards:     state.LastDrawn,
		Scores:    append([]int(nil), state.Scores...),
		Status:    state.Status,
		Snapshot:  append(json.RawMessage(nil), snapshot...),
	}
	entry.Hash = calculateHash(entry)

	if err := validateEntry(entry, latest); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}
	l.entries = append(l.entries, entry)
	return nil
}

// LatestSnapshot returns the engine snapshot of the last recorded action, or
// false when nothing has been recorded yet.
func (l *Ledger) LatestSnapshot() ([]byte, bool) {
	if len(l.entries) < 2 {
		return nil, false
	}
	return append([]byte(nil), l.entries[len(l.entries)-1].Snapshot...), true
}

// Truncate drops every entry after index and returns the snapshot recorded
// by the entry at index.
func (l *Ledger) Truncate(index int) ([]byte, error) {
	if index < 1 || index >= len(l.entries) {
		return nil, fmt.Errorf("no entry %d", index)
	}
	l.entries = l.entries[:index+1]
	return append([]byte(nil), l.entries[index].Snapshot...), nil
}

// Entries returns the recorded actions, genesis excluded.
func (l *Ledger) Entries() []Entry {
	if len(l.entries) < 2 {
		return nil
	}
	out := make([]Entry, len(l.entries)-1)
	copy(out, l.entries[1:])
	for i := range out {
		out[i].Scores = append([]int(nil), out[i].Scores...)
		out[i].Snapshot = append(json.RawMessage(nil), out[i].Snapshot...)
	}
	return out
}

// Len is the number of recorded actions, genesis excluded.
func (l *Ledger) Len() int {
	return len(l.entries) - 1
}

// Verify checks the genesis entry and every link of the chain.
func (l *Ledger) Verify() error {
	if len(l.entries) == 0 {
		return fmt.Errorf("empty ledger")
	}
	if l.entries[0].PrevHash != "0" || l.entries[0].Hash != calculateHash(l.entries[0]) {
		return fmt.Errorf("invalid genesis entry")
	}
	for i := 1; i < len(l.entries); i++ {
		if err := validateEntry(l.entries[i], l.entries[i-1]); err != nil {
			return fmt.Errorf("entry %d invalid: %w", i, err)
		}
	}
	return nil
}

func validateEntry(current, previous Entry) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}
	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}
	if expected := calculateHash(current); current.Hash != expected {
		return fmt.Errorf("invalid hash: expected %s, got %s", expected, current.Hash)
	}
	return nil
}

// calculateHash hashes every field of the entry except Hash itself.
func calculateHash(e Entry) string {
	cards, _ := json.Marshal(e.Cards)
	scores, _ := json.Marshal(e.Scores)

	data := fmt.Sprintf("%d%d%s%s%d%s%s%s%s",
		e.Index,
		e.Timestamp,
		e.PrevHash,
		e.Action,
		e.Player,
		cards,
		scores,
		e.Status,
		e.Snapshot,
	)
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
