package docvalue_test

import (
	"testing"

	"lideranca/internal/domain/docvalue"
)

func TestStr(t *testing.T) {
	fields := map[string]any{
		"name":  "Ana",
		"count": 3,
		"empty": "",
	}
	if got := docvalue.Str(fields, "name"); got != "Ana" {
		t.Errorf("Str(name) = %q", got)
	}
	if got := docvalue.Str(fields, "count"); got != "" {
		t.Errorf("Str on non-string = %q, want empty", got)
	}
	if got := docvalue.Str(fields, "missing"); got != "" {
		t.Errorf("Str on missing key = %q, want empty", got)
	}
	if got := docvalue.Str(nil, "name"); got != "" {
		t.Errorf("Str on nil map = %q, want empty", got)
	}
}

func TestStrOr(t *testing.T) {
	fields := map[string]any{"role": "Líder", "blank": ""}
	if got := docvalue.StrOr(fields, "role", "Membro"); got != "Líder" {
		t.Errorf("StrOr(role) = %q", got)
	}
	if got := docvalue.StrOr(fields, "blank", "Membro"); got != "Membro" {
		t.Errorf("StrOr on blank = %q, want fallback", got)
	}
	if got := docvalue.StrOr(fields, "missing", "Membro"); got != "Membro" {
		t.Errorf("StrOr on missing = %q, want fallback", got)
	}
}
