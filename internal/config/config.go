// Package config holds the small set of constants and optional
// project-file settings shared across the Wandle toolchain, in the style
// of funxy's internal/config/constants.go.
package config

// Version is the current Wandle toolchain version.
var Version = "0.1.0"

// SourceFileExt is the canonical Wandle source file extension.
const SourceFileExt = ".wan"

// HasSourceExt reports whether path ends with the recognized Wandle
// source extension.
func HasSourceExt(path string) bool {
	return len(path) >= len(SourceFileExt) && path[len(path)-len(SourceFileExt):] == SourceFileExt
}
