// Package version exposes the build version of the sift binary.
package version

// version is set at build time via -ldflags "-X github.com/rshade/sift/pkg/version.version=...".
var version = "dev" //nolint:gochecknoglobals // ldflags target

// GetVersion returns the build version, or "dev" for local builds.
func GetVersion() string {
	if version == "" {
		return "dev"
	}
	return version
}
