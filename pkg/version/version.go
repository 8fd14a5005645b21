// Package version carries build metadata stamped in at link time.
package version

import "fmt"

// Set via -ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the full version line shown by the version command.
func String() string {
	return fmt.Sprintf("wellfang %s (commit %s, built %s)", Version, Commit, Date)
}
