package platform

import "runtime"

// Platform identifiers as reported by OS.
const (
	Android = "android"
	IOS     = "ios"
)

// OS returns the identifier of the running platform.
func OS() string {
	return runtime.GOOS
}
