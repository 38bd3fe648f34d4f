// Package util contains helpers used across the application that don't
// belong to any other package
package util

import "os"

// IsRunningInDocker reports whether the process runs inside a container.
func IsRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	return false
}
