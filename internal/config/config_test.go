package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"condarc/internal/platform"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(envRcPath, "")
	t.Setenv(envSubdir, "")

	opts := Load()
	assert.Equal(t, DefaultRcPath(), opts.RcPath)
	assert.Equal(t, platform.Subdir(), opts.Platform)
	assert.Equal(t, RcFileName, filepath.Base(opts.RcPath))
}

func TestLoad_Environment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.condarc")
	t.Setenv(envRcPath, path)
	t.Setenv(envSubdir, "osx-64")

	opts := Load()
	assert.Equal(t, path, opts.RcPath)
	assert.Equal(t, "osx-64", opts.Platform)
}
