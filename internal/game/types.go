// internal/game/types.go
//
// Core type definitions for the hangman game engine.
// Defines:
//   - Phase: coarse round state (playing/won/lost).
//   - Round: state for a single in-progress or finished round.
//   - Snapshot: the read-only view handed to clients.
//   - InvalidInputError / ErrRoundOver: the engine's rejection surface.

package game

import (
	"errors"
	"fmt"
	"sync"
)

// Phase values reported by (*Round).Phase and Snapshot.Phase.
const (
	PhasePlaying = "playing"
	PhaseWon     = "won"
	PhaseLost    = "lost"
)

// ErrRoundOver is returned by Guess once the round is won or lost.
// The client disables input on its side, but the engine guards the
// invariant itself: a finished round never accepts another letter.
var ErrRoundOver = errors.New("game: round is over")

// InvalidInputError reports a guess argument that is not a single
// lowercase letter a–z. Normal play never produces one; it marks misuse
// of the engine's contract.
type InvalidInputError struct {
	Input string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("game: invalid guess %q: want a single letter a-z", e.Input)
}

// Round holds the state of a single hangman round: the secret word and
// the insertion-ordered set of guessed letters. Everything else the
// client sees is derived from these two fields on demand.
//
// The mutex serializes command application so that near-simultaneous
// guesses can never both land after the round is already over.
type Round struct {
	ID string // unique round identifier (random hex string)

	mu      sync.Mutex
	word    string // the secret word (always lowercase a-z, non-empty)
	guesses []byte // guessed letters, insertion-ordered, unique
}

// Snapshot is the read-only state handed to the view layer. It carries
// every derived fact the client needs to render a round; the client
// never reaches into engine internals.
type Snapshot struct {
	ID               string   `json:"id"`
	Phase            string   `json:"phase"`
	RevealMap        []string `json:"revealMap"`        // uppercase letter per revealed position, "" for hidden
	MissedPositions  []int    `json:"missedPositions"`  // positions exposed only by the loss reveal
	TierLossMap      []bool   `json:"tierLossMap"`      // per ladder ordinal, true once consumed
	FarewellEligible bool     `json:"farewellEligible"`
	FarewellTier     string   `json:"farewellTier,omitempty"`
	Farewell         string   `json:"farewell,omitempty"`
	WrongCount       int      `json:"wrongCount"`
	MaxWrongAllowed  int      `json:"maxWrongAllowed"`
	WordLength       int      `json:"wordLength"`
	Guesses          []string `json:"guesses"` // insertion order
}
