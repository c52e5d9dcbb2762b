package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/todo/internal/todoapi"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// truncateMiddle shortens a string by removing characters from the middle,
// keeping both ends. Used for URLs and paths where the tail matters.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	const ellipsis = "…"
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + ellipsis + string(runes[len(runes)-suffix:])
}

// singleLine collapses newlines and tabs so item text never breaks a row.
func singleLine(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// formatCreatedAt renders an item's creation time in loc. Timestamps that do
// not parse are shown as sent.
func formatCreatedAt(item todoapi.TodoItem, loc *time.Location) string {
	t := item.ParsedCreatedAt()
	if t.IsZero() {
		return strings.TrimSpace(item.CreatedAt)
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(createdAtLayout)
}

// plural formats a count with a noun, e.g. "1 todo" or "3 todos".
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
