// internal/words/words.go
//
// Candidate word list for the hangman backend.
//
// Responsibilities:
//   - Load the secret-word candidate list from an environment-provided
//     file or fall back to the embedded default list.
//   - Supply RandomWord for round creation and Stats for diagnostics.
//
// Initialization behavior (Init):
//   1. If WORDS_FILE is set, load candidates from that file.
//   2. Otherwise use the embedded default list from `default_words.txt`.
//
// Constraints:
//   • Words must be non-empty and all lowercase a–z; other lines are dropped.
//   • Initialization runs once (sync.Once).
//   • An empty resulting list is a ConfigurationError — the server must
//     not start without candidates.

package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"math/big"
	"os"
	"strings"
	"sync"
)

//go:embed default_words.txt
var embeddedWords string

// ConfigurationError reports an unusable candidate list at startup.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "words: configuration error: " + e.Reason
}

var (
	initOnce   sync.Once
	candidates []string
	initialErr error
)

// Init loads the candidate list exactly once.
// Returns a ConfigurationError if the list ends up empty.
func Init() error {
	initOnce.Do(func() {
		var list []string
		if path := os.Getenv("WORDS_FILE"); path != "" {
			var err error
			list, err = readWordFile(path)
			if err != nil {
				initialErr = err
				return
			}
		} else {
			list = normalizeLines(embeddedWords)
		}
		candidates = list
		if len(candidates) == 0 {
			initialErr = &ConfigurationError{Reason: "candidate word list is empty"}
		}
	})
	return initialErr
}

// readWordFile loads one word per line from a file,
// lowercases, trims, and keeps only non-empty alphabetic words.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w != "" && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalizeLines processes the embedded multiline string
// into a slice of valid lowercase words.
func normalizeLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		w := strings.TrimSpace(strings.ToLower(line))
		if w != "" && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// RandomWord returns a cryptographically random candidate.
// Falls back to "endgame" if the list was never loaded.
func RandomWord() string {
	if len(candidates) == 0 {
		return "endgame"
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(candidates))))
	return candidates[nBig.Int64()]
}

// Candidates returns the loaded list. Callers must treat it as read-only;
// the daily challenge indexes into it deterministically.
func Candidates() []string { return candidates }

// Stats returns the number of loaded candidates.
func Stats() int { return len(candidates) }
