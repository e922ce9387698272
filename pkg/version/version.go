// Package version holds the build version, set at link time with
// -ldflags "-X github.com/opencost/matchkit/pkg/version.Version=..."
package version

import "fmt"

var (
	Version   = "dev"
	GitCommit = "HEAD"
)

// FriendlyVersion returns the version and commit for display.
func FriendlyVersion() string {
	return fmt.Sprintf("%s (%s)", Version, GitCommit)
}
