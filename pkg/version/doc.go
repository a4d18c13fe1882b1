// Package version provides version information for the application.
//
// Values are populated at link time with -ldflags, falling back to the module
// build information embedded by the Go toolchain.
package version
