// Package log builds [slog.Handler] values backed by charmbracelet/log.
package log
