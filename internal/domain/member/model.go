package member

import (
	"errors"
	"strings"

	"lideranca/internal/domain/docvalue"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Role constants. Stored values are the Portuguese labels the
// congregation uses; they are data, not translation keys.
const (
	RoleLeader   = "Líder"
	RoleCoLeader = "Co-Líder"
	RoleMember   = "Membro"
	RoleVisitor  = "Visitante"
)

// ValidRoles contains all valid member role values.
var ValidRoles = []string{RoleLeader, RoleCoLeader, RoleMember, RoleVisitor}

// Domain errors
var (
	ErrEmptyName   = errors.New("member name cannot be empty")
	ErrInvalidRole = errors.New("role must be one of: Líder, Co-Líder, Membro, Visitante")
)

// Member holds state for a cell member. CellID references a Cell
// document that may have been deleted independently; consumers must
// degrade to a "not linked" display, never fail.
type Member struct {
	ID       string
	Name     string
	Phone    string
	Birthday string // ISO date (yyyy-mm-dd)
	CellID   string
	Role     string
	JoinedAt string
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name must not be empty, Role must be a valid role
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if len(m.Name) > MaxNameLength {
		return errors.New("member name cannot exceed 100 characters")
	}
	if !isValidRole(m.Role) {
		return ErrInvalidRole
	}
	return nil
}

// FromFields decodes a schemaless document into a Member.
// Missing or mistyped fields default to empty strings; the remote
// store does not enforce shapes, so the boundary must not fail.
func FromFields(id string, fields map[string]any) Member {
	return Member{
		ID:       id,
		Name:     docvalue.Str(fields, "name"),
		Phone:    docvalue.Str(fields, "phone"),
		Birthday: docvalue.Str(fields, "birthday"),
		CellID:   docvalue.Str(fields, "cellId"),
		Role:     docvalue.StrOr(fields, "role", RoleMember),
		JoinedAt: docvalue.Str(fields, "joinedAt"),
	}
}

// Fields encodes the Member as document fields for the remote store.
// The ID is not included; it is the document key.
func (m Member) Fields() map[string]any {
	return map[string]any{
		"name":     m.Name,
		"phone":    m.Phone,
		"birthday": m.Birthday,
		"cellId":   m.CellID,
		"role":     m.Role,
		"joinedAt": m.JoinedAt,
	}
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if role == r {
			return true
		}
	}
	return false
}
