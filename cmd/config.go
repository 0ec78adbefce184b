package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"condarc/internal/config"
	"condarc/internal/editor"
	"condarc/internal/logger"
	"condarc/internal/rc"
	"condarc/internal/service"
)

// actionFlags holds the keys given to the repeatable action flags. Values are
// positional arguments paired with the keys in order, so
// `--add channels a --add channels b` adds a then b.
type actionFlags struct {
	add       []string
	append    []string
	set       []string
	remove    []string
	removeKey []string
}

var (
	actions    actionFlags
	getFlag    bool
	forceYAML  bool
	jsonOutput bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Query or modify settings in .condarc",
	Long: `Query or modify settings in a .condarc file.

Edits change only the lines they need to and keep comments and formatting.
When a change cannot be made that way the file is left alone unless
-f/--force-yaml-parser is given, which rewrites the whole file.

Keys:
` + keyHelp(),
	Example: `  condarc config --add channels conda-forge
  condarc config --append channels defaults
  condarc config --set always_yes yes
  condarc config --get channels changeps1`,
	RunE: runConfig,
}

func init() {
	f := configCmd.Flags()
	f.BoolVar(&getFlag, "get", false, "Print the given keys (all keys in the file when none are given)")
	f.StringArrayVar(&actions.add, "add", nil, "Add a value to the front of a list key: --add KEY VALUE")
	f.StringArrayVar(&actions.append, "append", nil, "Add a value to the end of a list key: --append KEY VALUE")
	f.StringArrayVar(&actions.set, "set", nil, "Set a boolean or string key: --set KEY VALUE")
	f.StringArrayVar(&actions.remove, "remove", nil, "Remove a value from a list key: --remove KEY VALUE")
	f.StringArrayVar(&actions.removeKey, "remove-key", nil, "Remove a key and all its values: --remove-key KEY")
	f.BoolVarP(&forceYAML, "force-yaml-parser", "f", false, "Rewrite the whole file when a minimal edit is not possible (drops comments and formatting)")
	f.BoolVar(&jsonOutput, "json", false, "Report results as JSON on stdout")

	configCmd.MarkFlagsMutuallyExclusive("get", "add", "append", "set", "remove", "remove-key")
	configCmd.MarkFlagsOneRequired("get", "add", "append", "set", "remove", "remove-key")

	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := rcFile
	if path == "" {
		path = config.Load().RcPath
	}
	logger.Debug("[DEBUG] Using settings file %s\n", path)

	svc := service.New()
	out := cmd.OutOrStdout()

	if getFlag {
		res, err := svc.Get(path, args)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(out, map[string]any{"get": res.Values, "warnings": orEmpty(res.Warnings)})
		}
		for _, w := range res.Warnings {
			logger.Warn("%s\n", w)
		}
		for _, line := range res.Lines {
			fmt.Fprintln(out, line)
		}
		return nil
	}

	reqs, err := actions.requests(args)
	if err != nil {
		return err
	}
	res, err := svc.Mutate(path, reqs, service.MutateOptions{Force: forceYAML})
	if err != nil {
		return err
	}
	if res.FullRewrite {
		logger.Debug("[DEBUG] Rewrote %s from its parsed value\n", path)
	}
	if jsonOutput {
		return printJSON(out, map[string]any{"success": true, "warnings": orEmpty(res.Notices)})
	}
	for _, n := range res.Notices {
		logger.Warn("%s\n", n)
	}
	return nil
}

// requests pairs the action flag keys with the positional values.
func (a actionFlags) requests(values []string) ([]editor.Request, error) {
	var reqs []editor.Request
	pair := func(flag string, keys []string, op editor.Op, appendMode bool) error {
		if len(values) != len(keys) {
			return fmt.Errorf("%s expects KEY VALUE pairs, got %d key(s) and %d value(s)", flag, len(keys), len(values))
		}
		for i, key := range keys {
			reqs = append(reqs, editor.Request{Op: op, Key: key, Value: values[i], Append: appendMode})
		}
		return nil
	}

	var err error
	switch {
	case len(a.add) > 0:
		err = pair("--add", a.add, editor.OpAdd, false)
	case len(a.append) > 0:
		err = pair("--append", a.append, editor.OpAdd, true)
	case len(a.set) > 0:
		err = pair("--set", a.set, editor.OpSet, false)
	case len(a.remove) > 0:
		err = pair("--remove", a.remove, editor.OpRemove, false)
	case len(a.removeKey) > 0:
		if len(values) > 0 {
			return nil, fmt.Errorf("--remove-key takes only a key, got extra arguments %v", values)
		}
		for _, key := range a.removeKey {
			reqs = append(reqs, editor.Request{Op: editor.OpRemoveKey, Key: key})
		}
	default:
		return nil, fmt.Errorf("nothing to do: give one of --get, --add, --append, --set, --remove or --remove-key")
	}
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// keyHelp lists every recognized key with its kind and description.
func keyHelp() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, key := range rc.Keys() {
		s, _ := rc.Lookup(key)
		fmt.Fprintf(w, "  %s\t%s\t%s\n", key, s.Kind, s.Description)
	}
	w.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
