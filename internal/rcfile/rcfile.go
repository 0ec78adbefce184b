package rcfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xi2/xz" // For reading .xz compressed settings files

	"condarc/internal/logger"
)

// ErrReadOnly is returned when writing a compressed settings file.
var ErrReadOnly = errors.New("compressed settings files are read-only")

// IsCompressed reports whether path names an xz-compressed settings file.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, ".xz")
}

// Read loads the whole settings file at path. A missing file reads as an
// empty document so that the first --add creates it.
func Read(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("[DEBUG] %s does not exist, starting from an empty file\n", path)
			return "", nil
		}
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if IsCompressed(path) {
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return "", fmt.Errorf("failed to open xz stream %s: %w", path, err)
		}
		r = xzr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	logger.Debug("[DEBUG] Read %d bytes from %s\n", len(data), path)
	return string(data), nil
}

// Write replaces the contents of path atomically: the text goes to a temporary
// file in the same directory which is then renamed over the target. The
// target's permissions are kept; symlinks are written through.
func Write(path, text string) error {
	if IsCompressed(path) {
		return ErrReadOnly
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	perm := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	logger.Debug("[DEBUG] Wrote %d bytes to %s\n", len(text), path)
	return nil
}
