package announcement

import (
	"errors"
	"strings"

	"lideranca/internal/domain/docvalue"
)

// Category constants.
const (
	CategoryEvent       = "Evento"
	CategoryNotice      = "Aviso"
	CategoryCelebration = "Celebração"
)

// ValidCategories contains all valid announcement categories.
var ValidCategories = []string{CategoryEvent, CategoryNotice, CategoryCelebration}

// Domain errors
var (
	ErrEmptyTitle   = errors.New("announcement title cannot be empty")
	ErrEmptyContent = errors.New("announcement content cannot be empty")
)

// Announcement holds state for a board notice.
//
// Date is a localized display string (dd/mm/yyyy), not an ISO date;
// existing documents were written that way and stay that way.
// Calendar filtering must parse, never compare strings.
type Announcement struct {
	ID       string
	Title    string
	Content  string
	Date     string
	Category string
}

// Validate checks if the Announcement has valid data.
// PRE: Announcement struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (a *Announcement) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(a.Content) == "" {
		return ErrEmptyContent
	}
	if !isValidCategory(a.Category) {
		return errors.New("category must be 'Evento', 'Aviso' or 'Celebração'")
	}
	return nil
}

// FromFields decodes a schemaless document into an Announcement.
func FromFields(id string, fields map[string]any) Announcement {
	return Announcement{
		ID:       id,
		Title:    docvalue.Str(fields, "title"),
		Content:  docvalue.Str(fields, "content"),
		Date:     docvalue.Str(fields, "date"),
		Category: docvalue.StrOr(fields, "category", CategoryNotice),
	}
}

// Fields encodes the Announcement as document fields for the remote store.
func (a Announcement) Fields() map[string]any {
	return map[string]any{
		"title":    a.Title,
		"content":  a.Content,
		"date":     a.Date,
		"category": a.Category,
	}
}

func isValidCategory(c string) bool {
	for _, v := range ValidCategories {
		if c == v {
			return true
		}
	}
	return false
}
