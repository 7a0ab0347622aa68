// internal/tiers/tiers.go
//
// Penalty ladder for the hangman backend.
// Each wrong guess "uses up" one tier, in ladder order. A tier carries
// display styling for the client plus a farewell message shown right
// after the wrong guess that consumed it.
//
// The ladder and the message table are build-time constants. Validate()
// cross-checks them at startup so a missing message is caught before the
// server accepts traffic, never mid-round.

package tiers

import "fmt"

// Tier is one rung of the penalty ladder.
type Tier struct {
	Name            string `json:"name"`
	Color           string `json:"color"`           // foreground
	BackgroundColor string `json:"backgroundColor"` // background
	Ordinal         int    `json:"ordinal"`         // 0-based position in the ladder
}

// ConfigurationError reports an inconsistent ladder or message table.
// It is a startup-time error; reaching it during play means Validate
// was skipped.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "tiers: configuration error: " + e.Reason
}

// ladder is the fixed penalty ladder. The last tier is the "safe" rung:
// the game allows len(ladder)-1 wrong guesses before it is lost.
var ladder = []Tier{
	{Name: "HTML", Color: "#F9F4DA", BackgroundColor: "#E2680F", Ordinal: 0},
	{Name: "CSS", Color: "#F9F4DA", BackgroundColor: "#328AF1", Ordinal: 1},
	{Name: "JavaScript", Color: "#1E1E1E", BackgroundColor: "#F4EB13", Ordinal: 2},
	{Name: "React", Color: "#1E1E1E", BackgroundColor: "#2ED3E9", Ordinal: 3},
	{Name: "TypeScript", Color: "#F9F4DA", BackgroundColor: "#298EC4", Ordinal: 4},
	{Name: "Node.js", Color: "#F9F4DA", BackgroundColor: "#599137", Ordinal: 5},
	{Name: "Python", Color: "#1E1E1E", BackgroundColor: "#FFD742", Ordinal: 6},
	{Name: "Assembly", Color: "#F9F4DA", BackgroundColor: "#2D519F", Ordinal: 7},
}

// farewells maps tier name to its farewell line. One fixed line per
// tier so the same wrong guess always produces the same message.
var farewells = map[string]string{
	"HTML":       "Farewell, HTML",
	"CSS":        "Adios, CSS",
	"JavaScript": "R.I.P., JavaScript",
	"React":      "We'll miss you, React",
	"TypeScript": "Oh no, not TypeScript!",
	"Node.js":    "Node.js bites the dust",
	"Python":     "Gone but not forgotten, Python",
	"Assembly":   "The end of Assembly as we know it",
}

// Ladder returns the penalty ladder in order. Callers must treat the
// returned slice as read-only.
func Ladder() []Tier { return ladder }

// Count returns the ladder length N.
func Count() int { return len(ladder) }

// FarewellMessage returns the farewell line for a tier name.
// Every name in Ladder() has a message once Validate has passed.
func FarewellMessage(name string) (string, error) {
	msg, ok := farewells[name]
	if !ok {
		return "", &ConfigurationError{Reason: fmt.Sprintf("no farewell message for tier %q", name)}
	}
	return msg, nil
}

// Validate checks ladder/message consistency. Called once from main
// before serving; any error here is fatal.
func Validate() error {
	if len(ladder) < 2 {
		return &ConfigurationError{Reason: "ladder must have at least 2 tiers"}
	}
	for i, t := range ladder {
		if t.Name == "" {
			return &ConfigurationError{Reason: fmt.Sprintf("tier %d has empty name", i)}
		}
		if t.Ordinal != i {
			return &ConfigurationError{Reason: fmt.Sprintf("tier %q ordinal %d, expected %d", t.Name, t.Ordinal, i)}
		}
		if _, err := FarewellMessage(t.Name); err != nil {
			return err
		}
	}
	return nil
}
