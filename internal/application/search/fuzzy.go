package search

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"nodedex/internal/domain"
)

// fuzzyFloor is the minimum similarity kept in FUZZY mode. Below it a
// candidate is considered unrelated rather than misspelled.
const fuzzyFloor = 0.5

// Similarity is normalized edit-distance similarity in [0, 1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}

// BestSimilarity rates a node by its closest handle: full display name, bare
// node type, or any single display-name word.
func BestSimilarity(query string, n domain.NodeSummary) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	name := strings.ToLower(n.DisplayName)
	best := Similarity(q, name)
	if s := Similarity(q, strings.ToLower(domain.BareNodeName(n.NodeType))); s > best {
		best = s
	}
	for _, w := range splitWords(name) {
		if s := Similarity(q, w); s > best {
			best = s
		}
	}
	return best
}
