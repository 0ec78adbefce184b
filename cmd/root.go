package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"condarc/internal/logger"
)

// debug flag indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// rcFile is the settings file to read or edit, set with --file.
// When empty the CONDARC environment variable or ~/.condarc is used.
var rcFile string

// rootCmd is the base command for the CLI tool `condarc`.
var rootCmd = &cobra.Command{
	Use:   "condarc",
	Short: "Edit .condarc settings files and resolve channel URLs",
	Long: `condarc edits the package manager's .condarc settings file without
disturbing comments or formatting, and expands channel names into the
platform-specific URLs packages are fetched from.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	// PersistentPreRun runs before any subcommand and sets up logging.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&rcFile, "file", "", "Settings file to use (default $CONDARC or ~/.condarc)")
}

// Execute runs the command line. Errors are printed on stderr and end the
// process with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Error: %v\n", err)
		os.Exit(1)
	}
}
