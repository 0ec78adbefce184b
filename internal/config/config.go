package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"condarc/internal/platform"
)

const (
	// RcFileName is the settings file looked up in the home directory.
	RcFileName = ".condarc"

	envRcPath = "CONDARC"
	envSubdir = "CONDA_SUBDIR"
)

// Options are the tool's own settings, resolved from the environment.
// Command-line flags take precedence over them.
type Options struct {
	// RcPath is the settings file edited when --file is not given.
	RcPath string

	// Platform is the tag appended to channel URLs.
	Platform string
}

// DefaultRcPath returns ~/.condarc, or .condarc when no home directory is known.
func DefaultRcPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return RcFileName
	}
	return filepath.Join(home, RcFileName)
}

// Load resolves Options from CONDARC and CONDA_SUBDIR, falling back to the
// home-directory settings file and the running platform.
func Load() Options {
	v := viper.New()
	v.SetDefault("rc_path", DefaultRcPath())
	v.SetDefault("subdir", platform.Subdir())
	_ = v.BindEnv("rc_path", envRcPath)
	_ = v.BindEnv("subdir", envSubdir)

	return Options{
		RcPath:   v.GetString("rc_path"),
		Platform: v.GetString("subdir"),
	}
}
