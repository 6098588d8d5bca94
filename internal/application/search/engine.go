package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"nodedex/internal/domain"
	"nodedex/internal/ports"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Options tunes one search call. The zero value means OR mode, all sources,
// default limit, no example enrichment.
type Options struct {
	Mode            Mode
	Source          Source
	Limit           int
	IncludeExamples bool
	ExamplesLimit   int
}

// Response is the ranked answer for one query. Mode names the matching that
// actually ran, which differs from the requested mode when the engine fell
// back to substring search.
type Response struct {
	Query      string                   `json:"query"`
	Results    []domain.SearchCandidate `json:"results"`
	TotalCount int                      `json:"totalCount"`
	Mode       string                   `json:"mode,omitempty"`
}

// Engine ranks nodes for a query. Retrieval strategies run in a fixed order
// and the first that succeeds supplies the candidates; the deterministic
// scorer then decides the final order, with the index-native rank surviving
// only as a tie-break.
type Engine struct {
	index     ports.SearchIndex
	templates ports.TemplateSource
	log       zerolog.Logger
}

// NewEngine wires the engine to its index. templates may be nil; example
// enrichment is then skipped.
func NewEngine(index ports.SearchIndex, templates ports.TemplateSource, log zerolog.Logger) *Engine {
	return &Engine{index: index, templates: templates, log: log}
}

// Search runs the query through the strategy chain. An empty or whitespace
// query returns an empty result without touching the index. The only error
// path is the last strategy failing; a strategy error mid-chain just moves
// on to the next.
func (e *Engine) Search(query string, opts Options) (Response, error) {
	mode := opts.Mode
	if mode == "" {
		mode = ModeOR
	}
	resp := Response{Query: query, Results: []domain.SearchCandidate{}, Mode: string(mode)}

	q := strings.TrimSpace(query)
	if q == "" {
		return resp, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	// over-fetch when a source filter will discard rows afterwards
	fetch := limit
	if opts.Source != "" && opts.Source != SourceAll {
		fetch = limit * 3
	}

	var ranked []domain.SearchCandidate
	if mode == ModeFuzzy {
		rows, err := e.index.AllNodes()
		if err != nil {
			return Response{}, fmt.Errorf("fuzzy search %q: %w", q, err)
		}
		ranked = rankFuzzy(rows, q)
	} else {
		var err error
		ranked, resp.Mode, err = e.indexed(q, mode, fetch)
		if err != nil {
			return Response{}, err
		}
	}

	ranked = filterBySource(ranked, opts.Source)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	e.enrich(ranked, opts)
	resp.Results = ranked
	resp.TotalCount = len(ranked)
	return resp, nil
}

type strategy struct {
	name string
	run  func() ([]domain.NodeSummary, error)
}

func (e *Engine) indexed(q string, mode Mode, fetch int) ([]domain.SearchCandidate, string, error) {
	var chain []strategy
	if match := BuildMatch(q, mode); match != "" && e.index.FTSAvailable() {
		chain = append(chain, strategy{"fts", func() ([]domain.NodeSummary, error) {
			return e.index.SearchFTS(match, fetch)
		}})
	}
	chain = append(chain, strategy{"like", func() ([]domain.NodeSummary, error) {
		return e.index.SearchLike(q, fetch)
	}})

	var lastErr error
	for _, s := range chain {
		rows, err := s.run()
		if err != nil {
			lastErr = err
			e.log.Warn().Err(err).Str("strategy", s.name).Str("query", q).Msg("search strategy failed")
			continue
		}
		if s.name == "fts" && missingCanonicalHTTPNode(q, rows) {
			e.log.Debug().Str("query", q).Msg("token search missed the HTTP request node; retrying with substring match")
			continue
		}
		label := string(mode)
		if s.name == "like" {
			label = "LIKE"
		}
		return rankScored(rows, q), label, nil
	}
	return nil, "", fmt.Errorf("search %q: %w", q, lastErr)
}

// missingCanonicalHTTPNode detects token-based retrieval missing the one
// node every "http" query is after, typically because the index tokenizes
// "httpRequest" as a single term.
func missingCanonicalHTTPNode(q string, rows []domain.NodeSummary) bool {
	if !strings.Contains(strings.ToLower(q), "http") {
		return false
	}
	for _, r := range rows {
		if r.NodeType == domain.HTTPRequestNode {
			return false
		}
	}
	return true
}

func rankScored(rows []domain.NodeSummary, q string) []domain.SearchCandidate {
	out := make([]domain.SearchCandidate, 0, len(rows))
	for _, r := range rows {
		out = append(out, candidate(r, Score(r, q)))
	}
	sortCandidates(out)
	return out
}

func rankFuzzy(rows []domain.NodeSummary, q string) []domain.SearchCandidate {
	var out []domain.SearchCandidate
	for _, r := range rows {
		sim := BestSimilarity(q, r)
		if sim < fuzzyFloor {
			continue
		}
		out = append(out, candidate(r, int(sim*1000)))
	}
	sortCandidates(out)
	return out
}

// sortCandidates orders by score, then display name; the stable sort keeps
// index-native order for full ties.
func sortCandidates(out []domain.SearchCandidate) {
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RelevanceScore != out[j].RelevanceScore {
			return out[i].RelevanceScore > out[j].RelevanceScore
		}
		return out[i].DisplayName < out[j].DisplayName
	})
}

func candidate(n domain.NodeSummary, score int) domain.SearchCandidate {
	return domain.SearchCandidate{
		NodeSummary:      n,
		RelevanceScore:   score,
		Relevance:        domain.RelevanceLabel(score),
		WorkflowNodeType: domain.WorkflowNodeType(n.NodeType),
	}
}

func filterBySource(in []domain.SearchCandidate, src Source) []domain.SearchCandidate {
	if src == "" || src == SourceAll {
		return in
	}
	out := in[:0:0]
	for _, c := range in {
		switch src {
		case SourceCore:
			if c.IsCore() {
				out = append(out, c)
			}
		case SourceCommunity:
			if !c.IsCore() {
				out = append(out, c)
			}
		case SourceVerified:
			if c.Community != nil && c.Community.Verified {
				out = append(out, c)
			}
		}
	}
	return out
}

// enrich attaches template-derived example configurations. Lookup failures
// degrade to results without examples.
func (e *Engine) enrich(results []domain.SearchCandidate, opts Options) {
	if !opts.IncludeExamples || e.templates == nil {
		return
	}
	n := opts.ExamplesLimit
	if n <= 0 {
		n = 2
	}
	for i := range results {
		ex, err := e.templates.ExamplesForNode(results[i].WorkflowNodeType, n)
		if err != nil {
			e.log.Warn().Err(err).Str("node", results[i].NodeType).Msg("example lookup failed")
			continue
		}
		results[i].Examples = ex
	}
}
