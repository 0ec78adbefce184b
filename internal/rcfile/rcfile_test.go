package rcfile

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_Missing(t *testing.T) {
	text, err := Read(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestRead_Compressed(t *testing.T) {
	text, err := Read(filepath.Join("testdata", "condarc.xz"))
	require.NoError(t, err)
	assert.Equal(t, "channels:\n  - test\n  - defaults\n\nalways_yes: yes\n", text)
}

func TestWrite_CreatesAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", ".condarc")

	require.NoError(t, Write(path, "channels:\n  - a\n"))
	text, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "channels:\n  - a\n", text)

	require.NoError(t, Write(path, "channels:\n  - b\n"))
	text, err = Read(path)
	require.NoError(t, err)
	assert.Equal(t, "channels:\n  - b\n", text)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWrite_KeepsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permissions")
	}
	path := filepath.Join(t.TempDir(), ".condarc")
	require.NoError(t, os.WriteFile(path, []byte("always_yes: no\n"), 0600))

	require.NoError(t, Write(path, "always_yes: yes\n"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWrite_ThroughSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "real.condarc")
	link := filepath.Join(dir, ".condarc")
	require.NoError(t, os.WriteFile(target, []byte("always_yes: no\n"), 0644))
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, Write(link, "always_yes: yes\n"))

	fi, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, fi.Mode()&os.ModeSymlink, "link must survive the write")
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "always_yes: yes\n", string(data))
}

func TestWrite_CompressedIsReadOnly(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "condarc.xz"), "x: y\n")
	assert.True(t, errors.Is(err, ErrReadOnly))
}
