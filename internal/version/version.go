// Package version contains information on the current version of the
// program. It is split from the main packages for easy use by both the CLI
// and the HTTP service.
package version

// Current is the string representing the current version of smtparse.
const Current = "0.1.0"
