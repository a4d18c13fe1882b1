// Package abierrors provides error definitions shared by the ABI conversion
// pipeline.
//
// Errors are sentinel values meant to be wrapped with additional context and
// matched with [errors.Is].
package abierrors
