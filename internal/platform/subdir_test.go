package platform

import (
	"runtime"
	"strings"
	"testing"
)

func TestSubdirFor(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
	}{
		{"darwin", "amd64", "osx-64"},
		{"darwin", "arm64", "osx-arm64"},
		{"linux", "amd64", "linux-64"},
		{"linux", "386", "linux-32"},
		{"linux", "arm64", "linux-aarch64"},
		{"linux", "arm", "linux-armv7l"},
		{"linux", "ppc64le", "linux-ppc64le"},
		{"windows", "amd64", "win-64"},
		{"windows", "386", "win-32"},
		{"windows", "arm64", "win-arm64"},
	}
	for _, tt := range tests {
		if got := SubdirFor(tt.goos, tt.goarch); got != tt.want {
			t.Errorf("SubdirFor(%q, %q) = %q, want %q", tt.goos, tt.goarch, got, tt.want)
		}
	}
}

func TestSubdir(t *testing.T) {
	got := Subdir()
	if got != SubdirFor(runtime.GOOS, runtime.GOARCH) {
		t.Errorf("Subdir() = %q does not match the running platform", got)
	}
	if !strings.Contains(got, "-") {
		t.Errorf("Subdir() = %q, expected <os>-<arch>", got)
	}
}
