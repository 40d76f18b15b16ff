package mcpadapter

import "fmt"

var (
	// version is set via ldflags during build by GoReleaser
	// For development builds, this will show "dev"
	version = "dev"

	// commit is set via ldflags during build by GoReleaser
	// For development builds, this will show "unknown"
	commit = "unknown"

	// buildTime is set via ldflags during build by GoReleaser
	// For development builds, this will show "unknown"
	buildTime = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the git commit hash or 'unknown' if run from source
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp or 'unknown' if run from source
func BuildTime() string {
	return buildTime
}

// UserAgent returns the User-Agent string to use when fetching remote API
// descriptions
func UserAgent() string {
	return fmt.Sprintf("mcp-adapt/%s", version)
}
