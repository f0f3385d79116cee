// Package version exposes build information injected at link time.
package version

// Build information. Populated through -ldflags "-X ..." during release builds.
//
//nolint:gochecknoglobals // Values are overwritten by the linker.
var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Short returns only the version number.
func Short() string {
	return Version
}

// Full returns the version together with the commit and the build time.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
