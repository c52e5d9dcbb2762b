package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const maxLineBytes = 1024 * 1024

// Tail returns at most n lines from the end of r in file order. A
// non-positive n returns every line.
func Tail(r io.Reader, n int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if n <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, n)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % n
		if count < n {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count < n {
		copy(lines, ring[:count])
		return lines, nil
	}
	for i := range lines {
		lines[i] = ring[(next+i)%n]
	}
	return lines, nil
}

// ReadFile tails the file at path. A missing file yields no lines.
func ReadFile(path string, n int) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Tail(file, n)
}

// Level is the severity marker found on a log line.
type Level int

const (
	LevelNone Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return ""
	}
}

var levelMarkers = []struct {
	level   Level
	markers []string
}{
	{LevelError, []string{" ERRO ", " FATA ", "level=error", "level=fatal", `"level":"error"`, `"level":"fatal"`}},
	{LevelWarn, []string{" WARN ", "level=warn", `"level":"warn"`}},
	{LevelInfo, []string{" INFO ", "level=info", `"level":"info"`}},
	{LevelDebug, []string{" DEBU ", "level=debug", `"level":"debug"`}},
}

// LevelOf reports the level a charmbracelet/log line was written at.
func LevelOf(line string) Level {
	padded := " " + line + " "
	for _, entry := range levelMarkers {
		for _, marker := range entry.markers {
			if strings.Contains(padded, marker) {
				return entry.level
			}
		}
	}
	return LevelNone
}
