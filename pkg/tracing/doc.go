// Package tracing provides lightweight spans for timing pipeline stages.
package tracing
