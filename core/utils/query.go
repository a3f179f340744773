package utils

import "strings"

// ToBool reports whether a query or flag value means true.
// "1", "true", "yes" and "on" are accepted in any case; everything else is false.
func ToBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
