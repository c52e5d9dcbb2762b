// Package app is the composition root for the todo client.
//
// # Startup
//
// Run performs these steps in order:
//
//  1. Load ~/.config/todo/config.toml (or the -config path), then apply
//     TODO_API_URL and the command line overrides
//  2. Open the log file and build a charmbracelet/log logger
//  3. Install an OpenTelemetry tracer provider when trace_file is set
//  4. Build the todoapi client with the configured timeout
//  5. Load UI preferences and run the Bubble Tea program
//
// Setup failures are returned wrapped ("load config: ...", "init todo
// client: ..."); main prints them and exits non-zero. Once the UI is up,
// remote failures are shown as notifications and never end the program.
//
// # Shutdown
//
// Quitting or cancelling the context stops the program, cancels in-flight
// requests, flushes pending spans and closes the log file.
package app
