package search

import "strings"

// Mode selects how multiple query terms combine.
type Mode string

const (
	ModeOR    Mode = "OR"
	ModeAND   Mode = "AND"
	ModeFuzzy Mode = "FUZZY"
)

// ParseMode is forgiving about case and unknown values; the default is OR.
func ParseMode(s string) Mode {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AND":
		return ModeAND
	case "FUZZY":
		return ModeFuzzy
	default:
		return ModeOR
	}
}

// Source restricts results by node origin.
type Source string

const (
	SourceAll       Source = "all"
	SourceCore      Source = "core"
	SourceCommunity Source = "community"
	SourceVerified  Source = "verified"
)

func ParseSource(s string) Source {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "core":
		return SourceCore
	case "community":
		return SourceCommunity
	case "verified":
		return SourceVerified
	default:
		return SourceAll
	}
}

// BuildMatch converts user text to full-text MATCH syntax. A fully quoted
// query passes through as a phrase. Otherwise the alphanumeric terms become
// prefix queries joined by the mode operator, so "send slack" matches
// "sends" and "Slack" alike. Returns "" when nothing searchable remains.
func BuildMatch(query string, mode Mode) string {
	q := strings.TrimSpace(query)
	if len(q) >= 2 && strings.HasPrefix(q, `"`) && strings.HasSuffix(q, `"`) {
		return q
	}
	terms := splitWords(strings.ToLower(q))
	if len(terms) == 0 {
		return ""
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t + "*"
	}
	op := " OR "
	if mode == ModeAND {
		op = " AND "
	}
	return strings.Join(parts, op)
}
