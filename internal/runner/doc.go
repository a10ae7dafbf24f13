// Package runner executes shell command lines as child processes.
//
// A [ShellRunner] spawns exactly one process per [Runner.Run] call through
// the configured shell, optionally pipes input text to its standard input,
// captures the requested output streams, and waits for it to exit. A
// non-zero exit status is reported in [Result] rather than as an error,
// because callers distinguish "not found" from genuine failures by the
// message text. Errors are returned only when the process could not be
// started or awaited.
//
// The runner enforces no deadline and performs no retries. The context is
// consulted once before the process is spawned; a running process is never
// interrupted.
package runner
