// Package version provides version information for the pyth-history application.
package version

// Version is the current version of the pyth-history application.
const Version = "0.1.0"

// AgentString returns the full agent string with versioning.
// Format: pyth-history/v{version}
func AgentString() string {
	return "pyth-history/v" + Version
}
