// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/retrodungeon/types"
)

var directionExpansions = map[string]string{
	"n": "north",
	"s": "south",
	"e": "east",
	"w": "west",
	"u": "up",
	"d": "down",
}

// Full direction names that are standalone shortcuts for "go <dir>".
var directionNames = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
	"up": true, "down": true,
}

var verbAliases = map[string]string{
	// Look
	"l":       "look",
	"examine": "stats",
	"x":       "stats",
	"inspect": "stats",

	// Movement
	"walk":   "go",
	"move":   "go",
	"run":    "go",
	"head":   "go",
	"travel": "go",

	// Take
	"get":   "take",
	"grab":  "take",
	"carry": "take",

	// Drop
	"discard": "drop",

	// Equipment
	"wield": "equip",
	"wear":  "equip",
	"don":   "equip",

	// Use
	"read":  "use",
	"apply": "use",
	"raise": "use",

	// Staff
	"assemble": "combine",
	"merge":    "combine",

	// Miscellaneous
	"inv":  "inventory",
	"i":    "inventory",
	"m":    "map",
	"h":    "help",
	"?":    "help",
	"q":    "quit",
	"exit": "quit",
}

var prepositions = map[string]bool{
	"on": true, "at": true, "to": true,
	"with": true, "in": true, "as": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// slotWords may trail an equip command to pick a slot for hybrid items.
var slotWords = map[string]bool{
	"weapon": true,
	"armor":  true,
	"armour": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))

	// Direction shortcut: bare "n", "south", etc. → go <direction>
	if len(words) == 1 {
		if dir, ok := directionExpansions[words[0]]; ok {
			return types.Intent{Verb: "go", Object: dir}
		}
		if directionNames[words[0]] {
			return types.Intent{Verb: "go", Object: words[0]}
		}
	}

	// Handle multi-word verb phrases before general parsing.
	words = expandMultiWordVerbs(words)

	// Apply verb aliases.
	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripArticles(words[1:])

	switch verb {
	case "go":
		if len(rest) > 0 {
			if dir, ok := directionExpansions[rest[0]]; ok {
				rest[0] = dir
			}
		}
	case "equip":
		// "equip spiked weapon" reads the same as "equip spiked as weapon".
		if n := len(rest); n > 1 && slotWords[rest[n-1]] && !prepositions[rest[n-2]] {
			return types.Intent{
				Verb:   verb,
				Object: strings.Join(rest[:n-1], " "),
				Target: normalizeSlot(rest[n-1]),
			}
		}
	}

	// Use the first preposition as a delimiter between object and target.
	object, target := splitOnPreposition(rest)
	if verb == "equip" {
		target = normalizeSlot(target)
	}

	return types.Intent{
		Verb:   verb,
		Object: object,
		Target: target,
	}
}

func normalizeSlot(word string) string {
	if word == "armour" {
		return "armor"
	}
	return word
}

// expandMultiWordVerbs handles "look at", "pick up", "put down" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "look":
		if words[1] == "at" {
			return append([]string{"stats"}, words[2:]...)
		}
		if words[1] == "around" {
			return []string{"look"}
		}
	case "pick":
		if words[1] == "up" {
			return append([]string{"take"}, words[2:]...)
		}
	case "put":
		if words[1] == "down" {
			return append([]string{"drop"}, words[2:]...)
		}
		if words[1] == "on" {
			return append([]string{"equip"}, words[2:]...)
		}
	case "go", "walk", "move":
		if words[1] == "to" && len(words) > 2 {
			return append([]string{words[0]}, words[2:]...)
		}
	}

	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPreposition splits words on the first preposition.
// Words before the preposition become the object, words after become the target.
// If no preposition is found, all words become the object.
func splitOnPreposition(words []string) (object, target string) {
	for i, w := range words {
		if prepositions[w] {
			object = strings.Join(words[:i], " ")
			target = strings.Join(words[i+1:], " ")
			return object, target
		}
	}
	return strings.Join(words, " "), ""
}
