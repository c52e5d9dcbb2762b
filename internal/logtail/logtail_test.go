package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return lines
}

func TestTail(t *testing.T) {
	all := numberedLines(10)
	input := strings.Join(all, "\n") + "\n"

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "all when zero", n: 0, want: all},
		{name: "all when negative", n: -3, want: all},
		{name: "last five", n: 5, want: all[5:]},
		{name: "exactly all", n: 10, want: all},
		{name: "more than available", n: 25, want: all},
		{name: "last one", n: 1, want: all[9:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(strings.NewReader(input), tt.n)
			if err != nil {
				t.Fatalf("Tail() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tail() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTail_Empty(t *testing.T) {
	got, err := Tail(strings.NewReader(""), 5)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Tail() = %v, want empty", got)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.log")
	if err := os.WriteFile(path, []byte("a\nb\nc\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path, 2)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if want := []string{"b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ReadFile() = %v, want %v", got, want)
	}
}

func TestReadFile_MissingIsEmpty(t *testing.T) {
	got, err := ReadFile(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("ReadFile() = %v, %v, want nil, nil", got, err)
	}
	got, err = ReadFile("", 10)
	if err != nil || got != nil {
		t.Fatalf("ReadFile(\"\") = %v, %v, want nil, nil", got, err)
	}
}

func TestLevelOf(t *testing.T) {
	tests := []struct {
		line string
		want Level
	}{
		{"2026/10/18 12:00:00 ERRO todo: api error op=\"create todo\" status=500", LevelError},
		{"2026/10/18 12:00:00 WARN todo: list response is not an array", LevelWarn},
		{"2026/10/18 12:00:00 INFO todo: starting", LevelInfo},
		{"2026/10/18 12:00:00 DEBU todo: request op=\"list todos\"", LevelDebug},
		{"time=2026-10-18T12:00:00Z level=error prefix=todo msg=\"request failed\"", LevelError},
		{`{"time":"2026-10-18T12:00:00Z","level":"warn","msg":"x"}`, LevelWarn},
		{"plain text with no marker", LevelNone},
		{"INFORMATION is not a level", LevelNone},
	}

	for _, tt := range tests {
		if got := LevelOf(tt.line); got != tt.want {
			t.Errorf("LevelOf(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelError.String() != "error" || LevelNone.String() != "" {
		t.Fatalf("unexpected level strings: %q %q", LevelError.String(), LevelNone.String())
	}
}
