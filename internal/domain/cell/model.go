package cell

import (
	"errors"
	"strings"

	"lideranca/internal/domain/docvalue"
)

// Meeting type constants.
const (
	MeetingInPerson = "Presencial"
	MeetingOnline   = "Online"
)

// Domain errors
var (
	ErrEmptyName   = errors.New("cell name cannot be empty")
	ErrEmptyLeader = errors.New("cell leader cannot be empty")
)

// Cell holds state for a small-group meeting unit.
type Cell struct {
	ID          string
	Name        string
	Leader      string
	CoLeader    string // optional
	Address     string // street address or meeting link
	MeetingDay  string
	MeetingTime string
	MeetingType string
}

// Validate checks if the Cell has valid data.
// PRE: Cell struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (c *Cell) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.Leader) == "" {
		return ErrEmptyLeader
	}
	if c.MeetingType != MeetingInPerson && c.MeetingType != MeetingOnline {
		return errors.New("meeting type must be 'Presencial' or 'Online'")
	}
	return nil
}

// IsOnline returns true if the cell meets online.
func (c *Cell) IsOnline() bool {
	return c.MeetingType == MeetingOnline
}

// FromFields decodes a schemaless document into a Cell.
func FromFields(id string, fields map[string]any) Cell {
	return Cell{
		ID:          id,
		Name:        docvalue.Str(fields, "name"),
		Leader:      docvalue.Str(fields, "leader"),
		CoLeader:    docvalue.Str(fields, "coLeader"),
		Address:     docvalue.Str(fields, "address"),
		MeetingDay:  docvalue.Str(fields, "meetingDay"),
		MeetingTime: docvalue.Str(fields, "meetingTime"),
		MeetingType: docvalue.StrOr(fields, "meetingType", MeetingInPerson),
	}
}

// Fields encodes the Cell as document fields for the remote store.
func (c Cell) Fields() map[string]any {
	return map[string]any{
		"name":        c.Name,
		"leader":      c.Leader,
		"coLeader":    c.CoLeader,
		"address":     c.Address,
		"meetingDay":  c.MeetingDay,
		"meetingTime": c.MeetingTime,
		"meetingType": c.MeetingType,
	}
}
