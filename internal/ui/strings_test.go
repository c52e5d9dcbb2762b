package ui

import (
	"testing"
	"time"

	"github.com/five82/todo/internal/todoapi"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"abcdefghij", 6, "abc..."},
		{"abcdef", 2, "ab"},
		{"anything", 0, "anything"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	got := truncateMiddle("http://todo.example.com/api", 11)
	if got != "http:…m/api" {
		t.Fatalf("truncateMiddle = %q, want %q", got, "http:…m/api")
	}
}

func TestSingleLine(t *testing.T) {
	if got := singleLine("a\nb\t c  "); got != "a b c" {
		t.Fatalf("singleLine = %q, want %q", got, "a b c")
	}
}

func TestFormatCreatedAt(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"rfc3339", "2024-01-01T00:00:00Z", "Jan 1, 2024, 12:00 AM"},
		{"millis", "2024-03-05T14:07:09.123Z", "Mar 5, 2024, 02:07 PM"},
		{"empty", "", ""},
		{"garbage", "yesterday", "yesterday"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := formatCreatedAt(todoapi.TodoItem{CreatedAt: tc.in}, time.UTC)
			if got != tc.want {
				t.Fatalf("formatCreatedAt(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatCreatedAtUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	got := formatCreatedAt(todoapi.TodoItem{CreatedAt: "2024-01-01T03:00:00Z"}, loc)
	if got != "Dec 31, 2023, 10:00 PM" {
		t.Fatalf("formatCreatedAt = %q, want Dec 31, 2023, 10:00 PM", got)
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "todo"); got != "1 todo" {
		t.Fatalf("plural(1) = %q", got)
	}
	if got := plural(0, "todo"); got != "0 todos" {
		t.Fatalf("plural(0) = %q", got)
	}
}

func TestVisibleRange(t *testing.T) {
	cases := []struct {
		name                  string
		cursor, total, height int
		start, end            int
	}{
		{"fits", 2, 5, 10, 0, 5},
		{"top", 0, 20, 5, 0, 5},
		{"middle", 10, 20, 5, 8, 13},
		{"bottom", 19, 20, 5, 15, 20},
		{"no room", 3, 20, 0, 0, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := visibleRange(tc.cursor, tc.total, tc.height)
			if start != tc.start || end != tc.end {
				t.Fatalf("visibleRange(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tc.cursor, tc.total, tc.height, start, end, tc.start, tc.end)
			}
		})
	}
}
