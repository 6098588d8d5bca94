package ports

import "nodedex/internal/domain"

// TemplateSource serves workflow templates and the node configurations
// extracted from them.
type TemplateSource interface {
	// GetTemplate returns one template by id, or
	// application.ErrTemplateNotFound.
	GetTemplate(id int64) (*domain.Template, error)

	// TemplatesForNode returns templates using the given wire-format node
	// type, most viewed first.
	TemplatesForNode(workflowNodeType string, limit int) ([]domain.Template, error)

	// ExamplesForNode returns real configurations of the given wire-format
	// node type, extracted from the most viewed templates first.
	ExamplesForNode(workflowNodeType string, limit int) ([]domain.ConfigExample, error)

	// CountTemplates returns the number of stored templates.
	CountTemplates() (int, error)
}
