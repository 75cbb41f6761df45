package ledger

import (
	"encoding/json"

	"github.com/luca-patrignani/pseudo-blackjack/domain/blackjack"
)

// Entry is one applied action.
type Entry struct {
	Index     int                  `json:"index"`
	Timestamp int64                `json:"timestamp"`
	PrevHash  string               `json:"prev_hash"`
	Hash      string               `json:"hash"`
	Action    blackjack.ActionType `json:"action"`
	Player    int                  `json:"player"`
	Cards     [2]blackjack.Card    `json:"cards"`
	Scores    []int                `json:"scores"`
	Status    string               `json:"status"`
	// Snapshot is the engine state right after the action.
	Snapshot  json.RawMessage      `json:"snapshot,omitempty"`
}

const genesisAction blackjack.ActionType = "genesis"
