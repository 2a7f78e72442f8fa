package system

import (
	"os"
	"strings"
)

const (
	// VersionFile is the kernel version info source checked for the
	// WSL marker.
	VersionFile = "/proc/version"
	// WSLMarker is the substring present in the kernel version string
	// of every WSL guest.
	WSLMarker = "microsoft"
)

// IsWSL reports whether the process runs inside a WSL guest.
func IsWSL() bool {
	return isWSLFile(VersionFile)
}

// isWSLFile checks a specific version-info file for the marker.
func isWSLFile(path string) bool {
	// #nosec G304 - path is /proc/version or a test fixture
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), WSLMarker)
}
