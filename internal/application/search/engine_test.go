package search

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"nodedex/internal/domain"
)

type stubIndex struct {
	ftsAvailable bool
	ftsRows      []domain.NodeSummary
	ftsErr       error
	likeRows     []domain.NodeSummary
	likeErr      error
	all          []domain.NodeSummary

	ftsCalls  int
	likeCalls int
	lastMatch string
}

func (s *stubIndex) FTSAvailable() bool { return s.ftsAvailable }

func (s *stubIndex) SearchFTS(match string, limit int) ([]domain.NodeSummary, error) {
	s.ftsCalls++
	s.lastMatch = match
	return s.ftsRows, s.ftsErr
}

func (s *stubIndex) SearchLike(pattern string, limit int) ([]domain.NodeSummary, error) {
	s.likeCalls++
	return s.likeRows, s.likeErr
}

func (s *stubIndex) AllNodes() ([]domain.NodeSummary, error) { return s.all, nil }

type stubTemplates struct {
	examples []domain.ConfigExample
	err      error
}

func (s *stubTemplates) GetTemplate(id int64) (*domain.Template, error) { return nil, nil }

func (s *stubTemplates) TemplatesForNode(workflowNodeType string, limit int) ([]domain.Template, error) {
	return nil, nil
}

func (s *stubTemplates) ExamplesForNode(workflowNodeType string, limit int) ([]domain.ConfigExample, error) {
	return s.examples, s.err
}

func (s *stubTemplates) CountTemplates() (int, error) { return 0, nil }

var (
	httpRow    = summary(domain.HTTPRequestNode, "HTTP Request", "Makes HTTP requests and calls APIs")
	webhookRow = summary(domain.WebhookNode, "Webhook", "Starts a workflow on incoming HTTP callbacks")
	slackRow   = summary("nodes-base.slack", "Slack", "Send messages to Slack channels")
	codeRow    = summary("nodes-base.code", "Code", "Run custom scripts")
)

func communityRow(nodeType, displayName string, verified bool) domain.NodeSummary {
	return domain.NodeSummary{
		NodeType:    nodeType,
		PackageName: nodeType[:len(nodeType)-len(domain.BareNodeName(nodeType))-1],
		DisplayName: displayName,
		Community:   &domain.CommunityInfo{AuthorUsername: "vendor", Verified: verified},
	}
}

func newTestEngine(idx *stubIndex) *Engine {
	return NewEngine(idx, nil, zerolog.Nop())
}

func TestSearchEmptyQuery(t *testing.T) {
	idx := &stubIndex{ftsAvailable: true}
	eng := newTestEngine(idx)

	for _, q := range []string{"", "   "} {
		resp, err := eng.Search(q, Options{})
		if err != nil {
			t.Fatalf("Search(%q) error: %v", q, err)
		}
		if resp.Results == nil || len(resp.Results) != 0 {
			t.Errorf("Search(%q) should return an empty result set, got %v", q, resp.Results)
		}
		if resp.TotalCount != 0 {
			t.Errorf("Search(%q) totalCount = %d", q, resp.TotalCount)
		}
	}
	if idx.ftsCalls != 0 || idx.likeCalls != 0 {
		t.Errorf("empty queries must not touch the index (fts=%d like=%d)", idx.ftsCalls, idx.likeCalls)
	}
}

func TestSearchRanksByScore(t *testing.T) {
	idx := &stubIndex{likeRows: []domain.NodeSummary{httpRow, slackRow}}
	eng := newTestEngine(idx)

	resp, err := eng.Search("slack", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Mode != "LIKE" {
		t.Errorf("mode = %q, want LIKE when the full-text index is unavailable", resp.Mode)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	top := resp.Results[0]
	if top.NodeType != "nodes-base.slack" {
		t.Errorf("top result = %s, want nodes-base.slack", top.NodeType)
	}
	if top.RelevanceScore != 1000 || top.Relevance != "high" {
		t.Errorf("top score = %d (%s), want 1000 (high)", top.RelevanceScore, top.Relevance)
	}
	if top.WorkflowNodeType != "loom-nodes-base.slack" {
		t.Errorf("workflow node type = %q", top.WorkflowNodeType)
	}
}

func TestSearchHTTPGuard(t *testing.T) {
	idx := &stubIndex{
		ftsAvailable: true,
		ftsRows:      []domain.NodeSummary{webhookRow},
		likeRows:     []domain.NodeSummary{httpRow, webhookRow},
	}
	eng := newTestEngine(idx)

	resp, err := eng.Search("http", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if idx.ftsCalls != 1 || idx.likeCalls != 1 {
		t.Errorf("expected fts then like, got fts=%d like=%d", idx.ftsCalls, idx.likeCalls)
	}
	if resp.Mode != "LIKE" {
		t.Errorf("mode = %q, want LIKE after the guard discards token results", resp.Mode)
	}
	if len(resp.Results) == 0 || resp.Results[0].NodeType != domain.HTTPRequestNode {
		t.Fatalf("HTTP Request should lead the results, got %+v", resp.Results)
	}
}

func TestSearchGuardHoldsWhenCanonicalPresent(t *testing.T) {
	idx := &stubIndex{
		ftsAvailable: true,
		ftsRows:      []domain.NodeSummary{httpRow, webhookRow},
	}
	eng := newTestEngine(idx)

	resp, err := eng.Search("http request", Options{Mode: ModeAND})
	if err != nil {
		t.Fatal(err)
	}
	if idx.likeCalls != 0 {
		t.Error("guard must not trip when the canonical node is present")
	}
	if resp.Mode != "AND" {
		t.Errorf("mode = %q, want AND", resp.Mode)
	}
	if idx.lastMatch != "http* AND request*" {
		t.Errorf("match query = %q", idx.lastMatch)
	}
}

func TestSearchFallsBackOnIndexError(t *testing.T) {
	idx := &stubIndex{
		ftsAvailable: true,
		ftsErr:       errors.New("malformed MATCH expression"),
		likeRows:     []domain.NodeSummary{slackRow},
	}
	eng := newTestEngine(idx)

	resp, err := eng.Search("slack", Options{})
	if err != nil {
		t.Fatalf("fallback should absorb the fts error, got %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].NodeType != "nodes-base.slack" {
		t.Errorf("unexpected results: %+v", resp.Results)
	}

	// content must match a plain substring-only engine, mode annotation aside
	plain := newTestEngine(&stubIndex{likeRows: []domain.NodeSummary{slackRow}})
	want, err := plain.Search("slack", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(want.Results) != len(resp.Results) || want.Results[0].NodeType != resp.Results[0].NodeType {
		t.Error("fallback results differ from substring-only results")
	}
}

func TestSearchErrsWhenAllStrategiesFail(t *testing.T) {
	idx := &stubIndex{
		ftsAvailable: true,
		ftsErr:       errors.New("fts down"),
		likeErr:      errors.New("store closed"),
	}
	_, err := newTestEngine(idx).Search("slack", Options{})
	if err == nil {
		t.Fatal("expected an error when every strategy fails")
	}
	if !errors.Is(err, idx.likeErr) {
		t.Errorf("error should wrap the last strategy failure, got %v", err)
	}
}

func TestSearchFuzzy(t *testing.T) {
	idx := &stubIndex{all: []domain.NodeSummary{httpRow, slackRow, codeRow}}
	eng := newTestEngine(idx)

	resp, err := eng.Search("slak", Options{Mode: ModeFuzzy})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Mode != "FUZZY" {
		t.Errorf("mode = %q, want FUZZY", resp.Mode)
	}
	if len(resp.Results) == 0 || resp.Results[0].NodeType != "nodes-base.slack" {
		t.Fatalf("misspelled query should surface Slack first, got %+v", resp.Results)
	}
	if resp.Results[0].RelevanceScore < 700 {
		t.Errorf("one edit away should rate high, got %d", resp.Results[0].RelevanceScore)
	}

	resp, err = eng.Search("zzzzz", Options{Mode: ModeFuzzy})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("gibberish below the similarity floor should match nothing, got %+v", resp.Results)
	}
}

func TestSearchSourceFilters(t *testing.T) {
	verified := communityRow("loom-nodes-scrapeninja.scrapeNinja", "ScrapeNinja", true)
	unverified := communityRow("loom-nodes-browserless.browserless", "Browserless", false)
	idx := &stubIndex{likeRows: []domain.NodeSummary{slackRow, verified, unverified}}
	eng := newTestEngine(idx)

	tests := []struct {
		name   string
		source Source
		want   []string
	}{
		{"core only", SourceCore, []string{"nodes-base.slack"}},
		{"community only", SourceCommunity, []string{"loom-nodes-scrapeninja.scrapeNinja", "loom-nodes-browserless.browserless"}},
		{"verified only", SourceVerified, []string{"loom-nodes-scrapeninja.scrapeNinja"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := eng.Search("s", Options{Source: tt.source})
			if err != nil {
				t.Fatal(err)
			}
			got := make([]string, 0, len(resp.Results))
			for _, r := range resp.Results {
				got = append(got, r.NodeType)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("results = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("results = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestSearchLimit(t *testing.T) {
	idx := &stubIndex{likeRows: []domain.NodeSummary{httpRow, webhookRow, slackRow}}
	resp, err := newTestEngine(idx).Search("a", Options{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 2 || resp.TotalCount != 2 {
		t.Errorf("limit 2 gave %d results (totalCount %d)", len(resp.Results), resp.TotalCount)
	}
}

func TestSearchExampleEnrichment(t *testing.T) {
	idx := &stubIndex{likeRows: []domain.NodeSummary{slackRow}}
	tmpl := &stubTemplates{examples: []domain.ConfigExample{{
		TemplateID:   7,
		TemplateName: "Notify on deploy",
		NodeName:     "Send message",
	}}}
	eng := NewEngine(idx, tmpl, zerolog.Nop())

	resp, err := eng.Search("slack", Options{IncludeExamples: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results[0].Examples) != 1 {
		t.Fatalf("expected one example, got %+v", resp.Results[0].Examples)
	}

	// lookup failures degrade to bare results
	tmpl.err = errors.New("templates unavailable")
	resp, err = eng.Search("slack", Options{IncludeExamples: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Examples != nil {
		t.Errorf("enrichment failure should leave results bare, got %+v", resp.Results)
	}
}
