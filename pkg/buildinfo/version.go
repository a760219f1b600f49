// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/ioxu/boxer/pkg/buildinfo.Version=v0.1.0 \
//	    -X github.com/ioxu/boxer/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/ioxu/boxer/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/boxer
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the UTC build time.
	Date = "unknown"
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, built %s)\n", Version, Commit, Date)
}

// KeyVals returns the build information as structured logging fields.
func KeyVals() []any {
	return []any{"version", Version, "commit", Commit}
}
