// Package validation holds small helpers for request parsing and nullable fields.
package validation

func StringPtr(s string) *string {
	return &s
}

// GetStringOrEmpty returns the string value or an empty string if nil
func GetStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
