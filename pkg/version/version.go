// Package version holds build metadata set through -ldflags.
package version

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the build metadata for "consulteja version".
func String() string {
	return "consulteja " + Version + " (" + Commit + ") built " + Date
}
