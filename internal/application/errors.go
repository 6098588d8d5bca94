package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNodeNotFound     = errors.New("node not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidQuery     = errors.New("invalid query")
	ErrStoreClosed      = errors.New("store closed")
)

// NodeNotFoundError carries the requested type plus near-miss suggestions so
// callers can surface "did you mean" hints.
type NodeNotFoundError struct {
	NodeType    string
	Suggestions []string
}

func (e *NodeNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("node %s not found", e.NodeType)
	}
	return fmt.Sprintf("node %s not found (did you mean %s?)", e.NodeType, e.Suggestions[0])
}

func (e *NodeNotFoundError) Is(target error) bool {
	return target == ErrNodeNotFound
}
