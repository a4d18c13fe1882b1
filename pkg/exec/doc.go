// Package exec runs external commands with logging, timeouts and captured
// diagnostics. Failures are reported as [*CmdError], which carries the
// command's standard error output.
package exec
