// Package factodb holds build metadata for the factodb binary.
package factodb

var (
	// Version of the application, set during the build.
	Version = "v0.1.0"
	// Build timestamp, set during the build.
	Build = "n/a"
)
