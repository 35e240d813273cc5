package cache

import (
	"fmt"
	"strings"
)

// Key returns the cache key of a user's ranked list of the given size.
func Key(userID string, limit int) string {
	return fmt.Sprintf("rec:user:%s:k:%d", userID, limit)
}

// userPattern matches every cached list of userID. Glob metacharacters in the
// id are escaped so a guest id cannot widen the match.
func userPattern(userID string) string {
	var b strings.Builder
	for _, r := range userID {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return "rec:user:" + b.String() + ":k:*"
}

func userPrefix(userID string) string {
	return "rec:user:" + userID + ":k:"
}
