// Package http is a small HTTP client for JSON endpoints.
package http
