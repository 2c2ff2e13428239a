package helpers

import (
	"context"
	"strings"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// OptionalString maps a blank value to nil.
func OptionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// NameKey is the form dictionary names are compared in: trimmed and lower case.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE pattern matching values that contain search, compared
// against a LOWER() column.
func ContainsPattern(search string) string {
	return "%" + likeEscaper.Replace(NameKey(search)) + "%"
}
