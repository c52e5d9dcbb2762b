// Package logtail reads the tail of the client log file for the diagnostics
// overlay.
//
// # Reading
//
// Tail keeps a ring of the last n lines while scanning once, so memory stays
// bounded by n regardless of file size. ReadFile wraps Tail for a path and
// treats a missing file as empty: the log is only created once something has
// been written.
//
//	lines, err := logtail.ReadFile(cfg.LogFile, 200)
//
// # Levels
//
// LevelOf recognizes the level markers produced by charmbracelet/log in its
// text, logfmt and JSON formatters so the overlay can color lines without
// parsing them fully. Unrecognized lines report LevelNone.
package logtail
