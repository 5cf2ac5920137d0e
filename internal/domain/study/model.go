package study

import (
	"errors"
	"strings"

	"lideranca/internal/domain/docvalue"
)

// Domain errors
var (
	ErrEmptyTitle     = errors.New("study title cannot be empty")
	ErrEmptyReference = errors.New("study bible reference cannot be empty")
)

// Study holds state for a bible study with an optional PDF script.
//
// PDFLocator points into the in-process attachment cache and is only
// valid for the lifetime of the current server session. The locator
// string is carried on the document (so an update without a new file
// can preserve it verbatim), but after a restart it resolves to
// nothing and the study degrades to "no attachment available".
type Study struct {
	ID              string
	Title           string
	Reference       string // e.g. "João 3:16"
	SuggestedPraise string
	Date            string // ISO date (yyyy-mm-dd)
	PDFLocator      string
	PDFName         string
	Summary         string // legacy short-notes field, optional
}

// Validate checks if the Study has valid data.
// PRE: Study struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (s *Study) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(s.Reference) == "" {
		return ErrEmptyReference
	}
	return nil
}

// HasPDF returns true if a PDF was ever attached to this study.
// The file itself may no longer be resolvable (session-only storage).
func (s *Study) HasPDF() bool {
	return s.PDFName != ""
}

// FromFields decodes a schemaless document into a Study.
func FromFields(id string, fields map[string]any) Study {
	return Study{
		ID:              id,
		Title:           docvalue.Str(fields, "title"),
		Reference:       docvalue.Str(fields, "reference"),
		SuggestedPraise: docvalue.Str(fields, "suggestedPraise"),
		Date:            docvalue.Str(fields, "date"),
		PDFLocator:      docvalue.Str(fields, "pdfUrl"),
		PDFName:         docvalue.Str(fields, "pdfName"),
		Summary:         docvalue.Str(fields, "summary"),
	}
}

// Fields encodes the Study as document fields for the remote store.
func (s Study) Fields() map[string]any {
	return map[string]any{
		"title":           s.Title,
		"reference":       s.Reference,
		"suggestedPraise": s.SuggestedPraise,
		"date":            s.Date,
		"pdfUrl":          s.PDFLocator,
		"pdfName":         s.PDFName,
		"summary":         s.Summary,
	}
}
