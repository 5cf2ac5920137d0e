package study_test

import (
	"testing"

	"lideranca/internal/domain/study"
)

// TestStudy_Validate tests validation of Study.
func TestStudy_Validate(t *testing.T) {
	tests := []struct {
		name    string
		s       study.Study
		wantErr bool
	}{
		{
			name:    "valid study",
			s:       study.Study{ID: "1", Title: "Fé", Reference: "Hebreus 11"},
			wantErr: false,
		},
		{
			name:    "empty title",
			s:       study.Study{ID: "2", Reference: "Hebreus 11"},
			wantErr: true,
		},
		{
			name:    "empty reference",
			s:       study.Study{ID: "3", Title: "Fé"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStudy_PDFRoundTrip(t *testing.T) {
	s := study.FromFields("s1", map[string]any{
		"title": "Fé", "reference": "Hebreus 11",
		"pdfUrl": "/estudos/pdf/abc", "pdfName": "fe.pdf",
	})
	if !s.HasPDF() {
		t.Error("HasPDF() = false with a named attachment")
	}
	fields := s.Fields()
	// The locator travels on the document untouched, so updates that
	// reuse these fields preserve the attachment reference.
	if fields["pdfUrl"] != "/estudos/pdf/abc" || fields["pdfName"] != "fe.pdf" {
		t.Errorf("fields = %v", fields)
	}
}

func TestStudy_NoPDF(t *testing.T) {
	s := study.FromFields("s2", map[string]any{"title": "Graça", "reference": "Efésios 2"})
	if s.HasPDF() {
		t.Error("HasPDF() = true without an attachment")
	}
}
