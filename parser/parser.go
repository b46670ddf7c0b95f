// Package parser converts typed command strings into Intent structs for
// the terminal hosts. Intentionally dumb: no grammar, just aliases and
// positional numbers.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/titanhunt/engine/hex"
)

// Intent is a parsed command line.
type Intent struct {
	Verb      string
	Unit      int
	HasUnit   bool
	UnitName  string // unit given by name instead of id
	Target    hex.Coord
	HasTarget bool
	Facing    string  // raw facing word or index, empty when absent
	X, Y      float64 // pixel position for the "hex" verb
}

var verbAliases = map[string]string{
	// Selection
	"sel":    "select",
	"s":      "select",
	"pick":   "select",
	"unsel":  "deselect",
	"clear":  "deselect",
	"cancel": "deselect",

	// Movement queries
	"range": "reach",
	"r":     "reach",
	"route": "path",
	"p":     "path",

	// Orders
	"mv":   "move",
	"m":    "move",
	"go":   "move",
	"ep":   "endphase",
	"next": "endphase",
	"et":   "endturn",
	"pass": "endturn",
	"done": "endturn",

	// Game flow
	"begin":  "start",
	"deploy": "start",
	"check":  "victory",
	"win":    "victory",
	"goals":  "objectives",
	"obj":    "objectives",

	// Information
	"list":    "units",
	"u":       "units",
	"ls":      "units",
	"inspect": "info",
	"i":       "info",
	"log":     "events",
	"tile":    "terrain",

	// Geometry
	"topixel": "pixel",
	"tohex":   "hex",
}

var fillers = map[string]bool{
	"to": true, "at": true, "unit": true, "the": true, "a": true, "an": true, "on": true,
}

// Verbs that take pixel floats instead of a hex coordinate.
var floatVerbs = map[string]bool{"hex": true}

// Verbs whose first argument may name a unit.
var unitVerbs = map[string]bool{
	"select": true, "reach": true, "path": true, "move": true, "info": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) (Intent, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Intent{}, nil
	}

	words := strings.Fields(strings.ToLower(normalize(input)))
	if len(words) == 0 {
		return Intent{}, nil
	}

	// Handle multi-word verb phrases before alias lookup.
	words = expandMultiWordVerbs(words)

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}
	intent := Intent{Verb: words[0]}
	rest := stripFillers(words[1:])

	// "facing <dir>" may appear anywhere after the verb.
	rest, intent.Facing = extractFacing(rest)

	if floatVerbs[intent.Verb] {
		return parseFloats(intent, rest)
	}
	return parseInts(intent, rest)
}

// normalize turns "(3,-2)" and "3,-2" into "3 -2".
func normalize(s string) string {
	return strings.NewReplacer("(", " ", ")", " ", ",", " ").Replace(s)
}

// expandMultiWordVerbs handles "end phase", "end turn", "select none" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "end":
		if words[1] == "phase" {
			return append([]string{"endphase"}, words[2:]...)
		}
		if words[1] == "turn" {
			return append([]string{"endturn"}, words[2:]...)
		}
	case "select":
		if words[1] == "none" {
			return append([]string{"deselect"}, words[2:]...)
		}
	case "check":
		if words[1] == "victory" {
			return append([]string{"victory"}, words[2:]...)
		}
		if words[1] == "objectives" {
			return append([]string{"objectives"}, words[2:]...)
		}
	case "start":
		if words[1] == "game" {
			return append([]string{"start"}, words[2:]...)
		}
	}

	return words
}

// stripFillers removes connective words ("to", "at", "unit") from the list.
func stripFillers(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !fillers[w] {
			result = append(result, w)
		}
	}
	return result
}

func extractFacing(words []string) ([]string, string) {
	for i, w := range words {
		if (w == "facing" || w == "face" || w == "f") && i+1 < len(words) {
			facing := words[i+1]
			out := append(append([]string{}, words[:i]...), words[i+2:]...)
			return out, facing
		}
	}
	return words, ""
}

// parseInts reads up to three integers: [unit] [q r]. The unit may be a
// name instead of a number.
func parseInts(intent Intent, words []string) (Intent, error) {
	if len(words) > 0 && unitVerbs[intent.Verb] {
		if _, err := strconv.Atoi(words[0]); err != nil {
			intent.UnitName = words[0]
			words = words[1:]
		}
	}

	nums := make([]int, 0, len(words))
	for _, w := range words {
		n, err := strconv.Atoi(w)
		if err != nil {
			return Intent{}, fmt.Errorf("%s: %q is not a number", intent.Verb, w)
		}
		nums = append(nums, n)
	}

	if intent.UnitName != "" {
		switch len(nums) {
		case 0:
		case 2:
			intent.Target, intent.HasTarget = hex.New(nums[0], nums[1]), true
		default:
			return Intent{}, fmt.Errorf("%s: want a q r coordinate after %q", intent.Verb, intent.UnitName)
		}
		return intent, nil
	}

	switch len(nums) {
	case 0:
	case 1:
		intent.Unit, intent.HasUnit = nums[0], true
	case 2:
		intent.Target, intent.HasTarget = hex.New(nums[0], nums[1]), true
	case 3:
		intent.Unit, intent.HasUnit = nums[0], true
		intent.Target, intent.HasTarget = hex.New(nums[1], nums[2]), true
	default:
		return Intent{}, fmt.Errorf("%s: too many numbers", intent.Verb)
	}
	return intent, nil
}

func parseFloats(intent Intent, words []string) (Intent, error) {
	if len(words) != 2 {
		return Intent{}, fmt.Errorf("%s: want two numbers, got %d", intent.Verb, len(words))
	}
	x, err := strconv.ParseFloat(words[0], 64)
	if err != nil {
		return Intent{}, fmt.Errorf("%s: %q is not a number", intent.Verb, words[0])
	}
	y, err := strconv.ParseFloat(words[1], 64)
	if err != nil {
		return Intent{}, fmt.Errorf("%s: %q is not a number", intent.Verb, words[1])
	}
	intent.X, intent.Y = x, y
	return intent, nil
}
