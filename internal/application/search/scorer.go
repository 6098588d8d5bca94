package search

import (
	"strings"
	"unicode"

	"nodedex/internal/domain"
)

// Scoring is a fixed ladder on a 0-1000 scale. The first matching tier wins;
// multi-word bonuses stack on top, clamped at 1000.
//
//	1000  display name equals the query
//	 950  bare node type equals the query
//	 850+ pinned boost for high-traffic nodes
//	 800  display name starts with the query
//	 700  query appears as a whole word in the display name
//	 600  display name contains the query
//	 500  node type contains the query
//	 400  description contains the query
const (
	scoreExactName    = 1000
	scoreExactType    = 950
	scorePrefix       = 800
	scoreWordMatch    = 700
	scoreNameContains = 600
	scoreTypeContains = 500
	scoreDescContains = 400
	bonusAllWordsName = 200
	bonusAllWordsDesc = 100
	maxScore          = 1000
)

// pinnedBoost ties a high-traffic node to the query phrasings users reach it
// with, so it outranks alphabetically earlier generic matches.
type pinnedBoost struct {
	nodeType string
	phrases  []string
	score    int
}

var pinnedBoosts = []pinnedBoost{
	{domain.HTTPRequestNode, []string{"http", "https", "http request", "api", "api call", "rest", "curl"}, 920},
	{domain.WebhookNode, []string{"webhook", "webhooks", "callback"}, 910},
	{"nodes-base.code", []string{"code", "javascript", "script", "function"}, 900},
	{"nodes-base.set", []string{"set", "transform", "edit fields"}, 880},
	{"nodes-base.if", []string{"if", "condition", "branch"}, 870},
	{"nodes-ai.agent", []string{"agent", "ai agent"}, 860},
	{"nodes-base.scheduleTrigger", []string{"schedule", "cron", "timer"}, 850},
}

// Score rates one candidate against a query. Deterministic: same inputs,
// same score.
func Score(n domain.NodeSummary, query string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}
	name := strings.ToLower(n.DisplayName)
	bare := strings.ToLower(domain.BareNodeName(n.NodeType))
	nodeType := strings.ToLower(n.NodeType)
	desc := strings.ToLower(n.Description)

	var score int
	switch {
	case name == q:
		score = scoreExactName
	case bare == q:
		score = scoreExactType
	default:
		if s, ok := pinnedScore(n.NodeType, q); ok {
			score = s
		} else if strings.HasPrefix(name, q) {
			score = scorePrefix
		} else if containsWord(name, q) {
			score = scoreWordMatch
		} else if strings.Contains(name, q) {
			score = scoreNameContains
		} else if strings.Contains(nodeType, q) {
			score = scoreTypeContains
		} else if strings.Contains(desc, q) {
			score = scoreDescContains
		}
	}

	terms := strings.Fields(q)
	if len(terms) > 1 {
		if allTermsIn(name, terms) {
			score += bonusAllWordsName
		} else if allTermsIn(desc, terms) {
			score += bonusAllWordsDesc
		}
	}
	if score > maxScore {
		score = maxScore
	}
	return score
}

func pinnedScore(nodeType, q string) (int, bool) {
	for _, b := range pinnedBoosts {
		if b.nodeType != nodeType {
			continue
		}
		for _, phrase := range b.phrases {
			if q == phrase || containsPhrase(q, phrase) {
				return b.score, true
			}
		}
	}
	return 0, false
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func containsWord(text, w string) bool {
	for _, t := range splitWords(text) {
		if t == w {
			return true
		}
	}
	return false
}

// containsPhrase reports whether phrase appears in q on word boundaries.
func containsPhrase(q, phrase string) bool {
	normalized := " " + strings.Join(splitWords(q), " ") + " "
	return strings.Contains(normalized, " "+phrase+" ")
}

func allTermsIn(text string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}
