// Package docvalue extracts typed values from schemaless document fields.
// Remote documents are key-value records with no enforced shape; entity
// decoders use these helpers to parse-or-default at the mirror boundary.
package docvalue

// Str returns fields[key] as a string, or "" when the key is absent or
// holds a non-string value.
func Str(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// StrOr returns fields[key] as a string, or fallback when absent.
func StrOr(fields map[string]any, key, fallback string) string {
	if v, ok := fields[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
