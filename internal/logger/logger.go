package logger

import (
	"io"
	"os"

	"github.com/fatih/color"     // Colored console output
	"github.com/mattn/go-isatty" // Terminal detection for stderr
)

// Every level writes to stderr: stdout is reserved for command results so that
// `condarc config --get` output can be piped back into the shell.

var (
	warnColor  = color.New(color.FgHiMagenta)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.FgCyan)
)

// output is the destination of every log level. It defaults to a colorable stderr.
var output io.Writer = color.Error

// Warn logs warnings and skipped-item notices in bright magenta.
// Messages are printed verbatim, callers own the trailing newline.
func Warn(format string, a ...any) { warnColor.Fprintf(output, format, a...) }

// Error logs errors in red.
func Error(format string, a ...any) { errorColor.Fprintf(output, format, a...) }

// Debug logs debug messages in cyan if enabled, otherwise is a no-op.
// It is assigned during Init based on the --debug flag.
var Debug = func(format string, a ...any) {}

// Init enables or disables debug logging and turns colors off when stderr
// is not a terminal, so notices written to pipes and files stay byte-exact.
func Init(enableDebug bool) {
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		disableColors()
	}

	if enableDebug {
		Debug = func(format string, a ...any) { debugColor.Fprintf(output, format, a...) }
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// SetOutput redirects every level to w with colors disabled. Used by tests and
// by commands that capture diagnostics.
func SetOutput(w io.Writer) {
	output = w
	disableColors()
}

func disableColors() {
	for _, c := range []*color.Color{warnColor, errorColor, debugColor} {
		c.DisableColor()
	}
}
