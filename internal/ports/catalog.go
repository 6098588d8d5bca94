package ports

import "nodedex/internal/domain"

// NodeFilter narrows ListNodes. Zero value means no filtering.
type NodeFilter struct {
	Package  string // exact package name
	Category string
	Limit    int // 0 means no limit
}

// NodeRepository provides access to stored node definitions. Lookups are by
// exact internal node type; alias resolution happens in the application
// layer.
type NodeRepository interface {
	// GetNode returns the definition for an internal node type, or
	// application.ErrNodeNotFound when no such node exists.
	GetNode(nodeType string) (*domain.NodeDefinition, error)

	// ListNodes returns summaries matching the filter, ordered by display
	// name.
	ListNodes(filter NodeFilter) ([]domain.NodeSummary, error)

	// CountNodes returns the number of stored definitions.
	CountNodes() (int, error)
}

// StatsProvider summarizes the knowledge base for diagnostics surfaces.
type StatsProvider interface {
	Stats() (domain.Stats, error)
}
