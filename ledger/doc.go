// Package ledger records the actions applied during a game as an in-memory,
// append-only list of entries linked by SHA-256 hashes.
//
// Each entry stores the action, the player who performed it, the cards shown
// and the scores after the action. Verify walks the chain and reports the
// first entry whose index, link or hash does not match, so a history handed
// to the presentation layer can be checked before it is rendered.
//
// The ledger lives only as long as the game: starting a new game starts a
// new ledger.
package ledger
