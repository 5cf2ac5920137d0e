package ministry

import (
	"errors"
	"strings"

	"lideranca/internal/domain/docvalue"
)

// Domain errors
var (
	ErrEmptyName = errors.New("ministry name cannot be empty")
)

// Ministry holds state for a church department. LeaderID is optional
// and may reference a deleted Leader.
type Ministry struct {
	ID          string
	Name        string
	Description string
	LeaderID    string // optional
}

// Validate checks if the Ministry has valid data.
// PRE: Ministry struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (m *Ministry) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// HasLeader returns true if a responsible leader is assigned.
func (m *Ministry) HasLeader() bool {
	return m.LeaderID != ""
}

// FromFields decodes a schemaless document into a Ministry.
func FromFields(id string, fields map[string]any) Ministry {
	return Ministry{
		ID:          id,
		Name:        docvalue.Str(fields, "name"),
		Description: docvalue.Str(fields, "description"),
		LeaderID:    docvalue.Str(fields, "leaderId"),
	}
}

// Fields encodes the Ministry as document fields for the remote store.
func (m Ministry) Fields() map[string]any {
	return map[string]any{
		"name":        m.Name,
		"description": m.Description,
		"leaderId":    m.LeaderID,
	}
}
