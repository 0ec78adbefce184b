package platform

import (
	"fmt"
	"runtime"
)

// Subdir returns the platform tag for the running binary, e.g. "osx-64".
// Channel URLs end with this tag to select the package subdirectory.
func Subdir() string {
	return SubdirFor(runtime.GOOS, runtime.GOARCH)
}

// SubdirFor maps a GOOS/GOARCH pair onto a platform tag.
func SubdirFor(goos, goarch string) string {
	name := goos
	switch goos {
	case "darwin":
		name = "osx"
	case "windows":
		name = "win"
	}

	arch := goarch
	switch goarch {
	case "amd64":
		arch = "64"
	case "386":
		arch = "32"
	case "arm64":
		if goos == "linux" {
			arch = "aarch64"
		}
	case "arm":
		arch = "armv7l"
	}
	return fmt.Sprintf("%s-%s", name, arch)
}
