package output

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggestMaxDistance bounds how far a typo can be from a known name before
// no suggestion is offered.
const suggestMaxDistance = 3

// Suggest returns the closest candidate to input by edit distance, or ""
// when nothing is plausibly close. Used for unknown --format and --charset
// names.
func Suggest(input string, candidates []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	best := ""
	bestDist := suggestMaxDistance + 1
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(input, strings.ToLower(c))
		if dist < bestDist {
			best = c
			bestDist = dist
		}
	}
	return best
}
