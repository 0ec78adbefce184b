package main

import (
	"condarc/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// condarc maintains the hand-written .condarc settings file of the package manager:
//   - `condarc config` queries and edits settings (--get, --add, --append, --set, --remove, --remove-key)
//     by splicing only the lines that change, so user comments and indentation survive
//   - every splice is checked by parsing the result again; edits that cannot be made
//     safely are refused unless -f/--force-yaml-parser asks for a full rewrite
//   - `condarc channels` expands channel names, aliases and URLs into the
//     platform-specific URLs packages are downloaded from
//
// Output contract:
//   - results go to standard output, warnings and errors to standard error
//   - fatal errors exit with a non-zero status and leave the settings file untouched
func main() {
	cmd.Execute()
}
