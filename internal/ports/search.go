package ports

import "nodedex/internal/domain"

// SearchIndex is the storage-side surface of the search engine. The engine
// decides strategy order and scoring; the index only answers raw queries.
type SearchIndex interface {
	// FTSAvailable reports whether the full-text index can serve MATCH
	// queries. When false the engine goes straight to SearchLike.
	FTSAvailable() bool

	// SearchFTS runs a MATCH query against the full-text index and returns
	// summaries in index rank order. The query string is already in index
	// syntax.
	SearchFTS(match string, limit int) ([]domain.NodeSummary, error)

	// SearchLike runs a case-insensitive substring search over node type,
	// display name and description. The pattern is the bare query text.
	SearchLike(pattern string, limit int) ([]domain.NodeSummary, error)

	// AllNodes returns every node summary, for strategies that rank
	// client-side.
	AllNodes() ([]domain.NodeSummary, error)
}
