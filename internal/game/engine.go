// internal/game/engine.go
//
// Core game engine for a single hangman round.
// Responsibilities:
//   - Create rounds with a fresh secret word and an empty guess set.
//   - Validate and apply letter guesses.
//   - Derive win/loss, the reveal map, and the penalty-tier consumption
//     from the (word, guesses) pair — nothing derived is ever stored.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Secret words come from the words package unless pinned by the caller.
//   - The penalty ladder comes from the tiers package; N tiers allow
//     N-1 wrong guesses (the last rung is the safe zero-wrong state).
//   - randomID() is a compact hex identifier for correlating server state.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/mveldt/endgame/internal/tiers"
	"github.com/mveldt/endgame/internal/words"
)

// New constructs a new round.
// If withWord is empty, a random secret word is chosen from the words package.
func New(withWord string) *Round {
	w := strings.ToLower(strings.TrimSpace(withWord))
	if w == "" {
		w = words.RandomWord()
	}
	return &Round{
		ID:      randomID(),
		word:    w,
		guesses: []byte{},
	}
}

// Reset replaces the round's state wholesale: a fresh secret word and an
// empty guess set, applied atomically. Legal from any phase — abandoning
// an in-progress round is permitted.
func (r *Round) Reset(withWord string) {
	w := strings.ToLower(strings.TrimSpace(withWord))
	if w == "" {
		w = words.RandomWord()
	}
	r.mu.Lock()
	r.word = w
	r.guesses = r.guesses[:0]
	r.mu.Unlock()
}

// Guess validates and applies a letter guess.
//
// Rules:
//   - letter must be a single character a–z → *InvalidInputError otherwise.
//   - A finished round rejects all guesses with ErrRoundOver.
//   - Re-guessing a letter already tried is a no-op, not an error.
//
// A single guess can flip the phase from playing to won or to lost,
// never both: a letter that completes the word is in the word, so it
// cannot also be the wrong guess that exhausts the ladder.
func (r *Round) Guess(letter string) error {
	if len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
		return &InvalidInputError{Input: letter}
	}
	c := letter[0]

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isOver() {
		return ErrRoundOver
	}
	for _, g := range r.guesses {
		if g == c {
			return nil
		}
	}
	r.guesses = append(r.guesses, c)
	return nil
}

// ----------------------------- derived facts --------------------------------
//
// Exported accessors take the round lock; the unexported helpers below
// assume it is already held.

// WrongCount reports how many guessed letters are absent from the word.
func (r *Round) WrongCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wrongCount()
}

// MaxWrongAllowed is the number of wrong guesses the ladder absorbs
// before the round is lost.
func MaxWrongAllowed() int { return tiers.Count() - 1 }

// IsWon reports whether every distinct letter of the word has been guessed.
func (r *Round) IsWon() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isWon()
}

// IsLost reports whether the wrong-guess ladder is exhausted.
func (r *Round) IsLost() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isLost()
}

// IsOver reports whether the round is won or lost.
func (r *Round) IsOver() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isOver()
}

// Phase reports a coarse string representation of the round state.
func (r *Round) Phase() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase()
}

// LastGuess returns the most recently guessed letter, or "" if none.
func (r *Round) LastGuess() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.guesses) == 0 {
		return ""
	}
	return string(r.guesses[len(r.guesses)-1])
}

// LastGuessWasWrong reports whether the most recent guess missed.
func (r *Round) LastGuessWasWrong() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastGuessWasWrong()
}

// RevealMap returns, per word position, the uppercase letter when that
// position is revealed (letter guessed, or round lost) and "" otherwise.
func (r *Round) RevealMap() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.revealMap()
}

// MissedPositions returns the positions exposed only by the loss reveal,
// i.e. letters the player never guessed. Empty unless the round is lost.
func (r *Round) MissedPositions() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.missedPositions()
}

// TierLossMap reports, per ladder ordinal, whether that tier has been
// consumed. The k-th wrong guess consumes the k-th tier in ladder order,
// regardless of which letter caused it.
func (r *Round) TierLossMap() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tierLossMap()
}

// FarewellEligible reports whether a farewell message applies: the round
// is still in play and the most recent guess was wrong.
func (r *Round) FarewellEligible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.isOver() && r.lastGuessWasWrong()
}

// ActiveFarewellTier returns the tier consumed by the most recent wrong
// guess. ok is false whenever FarewellEligible is false; the lookup is
// bounds-checked rather than trusting index arithmetic.
func (r *Round) ActiveFarewellTier() (tiers.Tier, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeFarewellTier()
}

// Snapshot assembles the full read-only view of the round in one
// consistent pass under the lock.
func (r *Round) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{
		ID:              r.ID,
		Phase:           r.phase(),
		RevealMap:       r.revealMap(),
		MissedPositions: r.missedPositions(),
		TierLossMap:     r.tierLossMap(),
		WrongCount:      r.wrongCount(),
		MaxWrongAllowed: MaxWrongAllowed(),
		WordLength:      len(r.word),
		Guesses:         make([]string, 0, len(r.guesses)),
	}
	for _, g := range r.guesses {
		s.Guesses = append(s.Guesses, string(g))
	}
	if !r.isOver() && r.lastGuessWasWrong() {
		if t, ok := r.activeFarewellTier(); ok {
			s.FarewellEligible = true
			s.FarewellTier = t.Name
			// Message table is validated at startup; a lookup miss here
			// is unreachable and the snapshot simply omits the text.
			if msg, err := tiers.FarewellMessage(t.Name); err == nil {
				s.Farewell = msg
			}
		}
	}
	return s
}

// Word exposes the secret. Used by the finished-round reveal and tests;
// handlers must not leak it while the round is in play.
func (r *Round) Word() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.word
}

// --------------------------- lock-held helpers ------------------------------

func (r *Round) wrongCount() int {
	n := 0
	for _, g := range r.guesses {
		if !strings.ContainsRune(r.word, rune(g)) {
			n++
		}
	}
	return n
}

func (r *Round) isWon() bool {
	for _, c := range r.word {
		if !r.guessed(byte(c)) {
			return false
		}
	}
	return true
}

func (r *Round) isLost() bool {
	return r.wrongCount() >= MaxWrongAllowed()
}

func (r *Round) isOver() bool { return r.isWon() || r.isLost() }

func (r *Round) phase() string {
	switch {
	case r.isWon():
		return PhaseWon
	case r.isLost():
		return PhaseLost
	default:
		return PhasePlaying
	}
}

func (r *Round) guessed(c byte) bool {
	for _, g := range r.guesses {
		if g == c {
			return true
		}
	}
	return false
}

func (r *Round) lastGuessWasWrong() bool {
	if len(r.guesses) == 0 {
		return false
	}
	last := r.guesses[len(r.guesses)-1]
	return !strings.ContainsRune(r.word, rune(last))
}

func (r *Round) revealMap() []string {
	lost := r.isLost()
	out := make([]string, len(r.word))
	for i := 0; i < len(r.word); i++ {
		c := r.word[i]
		if lost || r.guessed(c) {
			out[i] = strings.ToUpper(string(c))
		}
	}
	return out
}

func (r *Round) missedPositions() []int {
	if !r.isLost() {
		return []int{}
	}
	out := []int{}
	for i := 0; i < len(r.word); i++ {
		if !r.guessed(r.word[i]) {
			out = append(out, i)
		}
	}
	return out
}

func (r *Round) tierLossMap() []bool {
	wrong := r.wrongCount()
	out := make([]bool, tiers.Count())
	for i := range out {
		out[i] = i < wrong
	}
	return out
}

func (r *Round) activeFarewellTier() (tiers.Tier, bool) {
	wrong := r.wrongCount()
	ladder := tiers.Ladder()
	if wrong < 1 || wrong > len(ladder) {
		return tiers.Tier{}, false
	}
	return ladder[wrong-1], true
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
