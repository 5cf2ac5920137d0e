package pastorword

import (
	"errors"
	"strings"

	"lideranca/internal/domain/docvalue"
)

// Domain errors
var (
	ErrEmptyTheme   = errors.New("pastoral word theme cannot be empty")
	ErrEmptyContent = errors.New("pastoral word content cannot be empty")
)

// Word holds state for a pastoral message.
type Word struct {
	ID      string
	Theme   string
	Content string
	Date    string // display string (dd/mm/yyyy) set at creation
}

// Validate checks if the Word has valid data.
// PRE: Word struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (w *Word) Validate() error {
	if strings.TrimSpace(w.Theme) == "" {
		return ErrEmptyTheme
	}
	if strings.TrimSpace(w.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}

// FromFields decodes a schemaless document into a Word.
func FromFields(id string, fields map[string]any) Word {
	return Word{
		ID:      id,
		Theme:   docvalue.Str(fields, "theme"),
		Content: docvalue.Str(fields, "content"),
		Date:    docvalue.Str(fields, "date"),
	}
}

// Fields encodes the Word as document fields for the remote store.
func (w Word) Fields() map[string]any {
	return map[string]any{
		"theme":   w.Theme,
		"content": w.Content,
		"date":    w.Date,
	}
}
