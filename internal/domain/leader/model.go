package leader

import (
	"errors"
	"strings"

	"lideranca/internal/domain/docvalue"
)

// Domain errors
var (
	ErrEmptyName = errors.New("leader name cannot be empty")
	ErrEmptyRole = errors.New("leader role cannot be empty")
)

// Leader holds state for a church officer. Unlike a Member's role,
// Role here is free text (Pastor, Diácono, Presbítero, ...).
// MinistryID may reference a deleted Ministry; consumers degrade to a
// "not linked" display.
type Leader struct {
	ID         string
	Name       string
	Phone      string
	Birthday   string // ISO date (yyyy-mm-dd)
	MinistryID string
	Role       string
	JoinedAt   string
}

// Validate checks if the Leader has valid data.
// PRE: Leader struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (l *Leader) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(l.Role) == "" {
		return ErrEmptyRole
	}
	return nil
}

// FromFields decodes a schemaless document into a Leader.
func FromFields(id string, fields map[string]any) Leader {
	return Leader{
		ID:         id,
		Name:       docvalue.Str(fields, "name"),
		Phone:      docvalue.Str(fields, "phone"),
		Birthday:   docvalue.Str(fields, "birthday"),
		MinistryID: docvalue.Str(fields, "ministryId"),
		Role:       docvalue.Str(fields, "role"),
		JoinedAt:   docvalue.Str(fields, "joinedAt"),
	}
}

// Fields encodes the Leader as document fields for the remote store.
func (l Leader) Fields() map[string]any {
	return map[string]any{
		"name":       l.Name,
		"phone":      l.Phone,
		"birthday":   l.Birthday,
		"ministryId": l.MinistryID,
		"role":       l.Role,
		"joinedAt":   l.JoinedAt,
	}
}
