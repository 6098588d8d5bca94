package properties

import (
	"strings"
	"testing"

	"nodedex/internal/domain"
)

func sampleProps() []domain.NodeProperty {
	return []domain.NodeProperty{
		{Name: "method", DisplayName: "Method", Type: domain.TypeOptions, Required: true,
			Options: []domain.Choice{
				{Name: "GET", Value: domain.StringValue("GET")},
				{Name: "POST", Value: domain.StringValue("POST")},
			}},
		{Name: "url", DisplayName: "URL", Type: domain.TypeString, Required: true,
			Description: "The URL to make the request to"},
		{Name: "authentication", DisplayName: "Authentication", Type: domain.TypeOptions},
		{Name: "sendBody", DisplayName: "Send Body", Type: domain.TypeBoolean},
		{Name: "curlNotice", DisplayName: "Import", Type: domain.TypeNotice},
		{Name: "internalFlag", DisplayName: "Internal Flag", Type: domain.TypeString, Internal: true},
		{Name: "options", DisplayName: "Options", Type: domain.TypeCollection,
			Properties: []domain.NodeProperty{
				{Name: "timeout", DisplayName: "Timeout", Type: domain.TypeNumber,
					Description: "Time in ms to wait for the server"},
				{Name: "redirect", DisplayName: "Follow Redirects", Type: domain.TypeBoolean},
			}},
		{Name: "headerParameters", DisplayName: "Headers", Type: domain.TypeFixedCollection,
			Sections: []domain.PropertySection{{
				Name: "parameters", DisplayName: "Parameter", MultipleValues: true,
				Values: []domain.NodeProperty{
					{Name: "name", DisplayName: "Name", Type: domain.TypeString},
					{Name: "value", DisplayName: "Value", Type: domain.TypeString},
				},
			}}},
	}
}

func TestEssentialsCurated(t *testing.T) {
	required, common := Essentials(domain.HTTPRequestNode, sampleProps())

	reqNames := names(required)
	if len(reqNames) != 2 || reqNames[0] != "method" || reqNames[1] != "url" {
		t.Errorf("required = %v, want [method url]", reqNames)
	}

	commonNames := names(common)
	want := []string{"authentication", "sendBody", "headerParameters"}
	if len(commonNames) != len(want) {
		t.Fatalf("common = %v, want %v", commonNames, want)
	}
	for i := range want {
		if commonNames[i] != want[i] {
			t.Errorf("common = %v, want %v (curated order)", commonNames, want)
			break
		}
	}

	for _, name := range append(reqNames, commonNames...) {
		if name == "curlNotice" || name == "internalFlag" {
			t.Errorf("display-only or internal property %s leaked into essentials", name)
		}
	}
}

func TestEssentialsOptionsAndDefaults(t *testing.T) {
	required, _ := Essentials(domain.HTTPRequestNode, sampleProps())
	var method *EssentialProperty
	for i := range required {
		if required[i].Name == "method" {
			method = &required[i]
		}
	}
	if method == nil {
		t.Fatal("method missing from required essentials")
	}
	if len(method.Options) != 2 || method.Options[0] != "GET" {
		t.Errorf("method options = %v", method.Options)
	}
}

func TestEssentialsHeuristicFallback(t *testing.T) {
	_, common := Essentials("nodes-base.unknownNode", sampleProps())
	got := names(common)
	want := []string{"authentication", "sendBody", "options", "headerParameters"}
	if len(got) != len(want) {
		t.Fatalf("common = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("common = %v, want %v (schema order)", got, want)
			break
		}
	}
}

func TestEssentialsTruncatesDescriptions(t *testing.T) {
	long := strings.Repeat("x", 500)
	props := []domain.NodeProperty{
		{Name: "a", DisplayName: "A", Type: domain.TypeString, Required: true, Description: long},
	}
	required, _ := Essentials("nodes-base.whatever", props)
	if len(required) != 1 {
		t.Fatal("expected one required property")
	}
	if len(required[0].Description) > 200 {
		t.Errorf("description not truncated: %d chars", len(required[0].Description))
	}
	if !strings.HasSuffix(required[0].Description, "...") {
		t.Error("truncated description should end with an ellipsis")
	}
}

func TestSearchProperties(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		maxResults int
		wantPaths  []string
	}{
		{
			name:      "top level by name fragment",
			query:     "auth",
			wantPaths: []string{"authentication"},
		},
		{
			name:      "nested collection child",
			query:     "timeout",
			wantPaths: []string{"options.timeout"},
		},
		{
			name:      "section values with dotted path",
			query:     "value",
			wantPaths: []string{"headerParameters.parameters.value"},
		},
		{
			name:      "description match",
			query:     "wait for the server",
			wantPaths: []string{"options.timeout"},
		},
		{
			name:       "max results cap",
			query:      "e",
			maxResults: 3,
			wantPaths:  nil, // only the count matters here
		},
		{
			name:      "no match",
			query:     "nonexistent",
			wantPaths: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchProperties(sampleProps(), tt.query, tt.maxResults)
			if tt.maxResults > 0 {
				if len(got) != tt.maxResults {
					t.Errorf("expected the cap of %d results, got %d", tt.maxResults, len(got))
				}
				return
			}
			if len(got) != len(tt.wantPaths) {
				t.Fatalf("paths = %v, want %v", paths(got), tt.wantPaths)
			}
			for i, want := range tt.wantPaths {
				if got[i].Path != want {
					t.Errorf("paths = %v, want %v", paths(got), tt.wantPaths)
					break
				}
			}
		})
	}
}

func TestSearchPropertiesEmptyQuery(t *testing.T) {
	if got := SearchProperties(sampleProps(), "   ", 0); got != nil {
		t.Errorf("blank query should match nothing, got %v", got)
	}
}

func names(props []EssentialProperty) []string {
	out := make([]string, 0, len(props))
	for _, p := range props {
		out = append(out, p.Name)
	}
	return out
}

func paths(ms []Match) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Path)
	}
	return out
}
