// Package service is the entry point the command line calls once per
// invocation: it loads a settings file, answers --get queries and drives the
// editor for mutations, writing the file back atomically.
package service

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"condarc/internal/channel"
	"condarc/internal/editor"
	"condarc/internal/logger"
	"condarc/internal/rc"
	"condarc/internal/rcfile"
)

// UnsafeEditError is returned when a mutation cannot be applied without
// disturbing the file's structure and no full rewrite was requested.
type UnsafeEditError struct {
	Path   string
	Reason string
}

// Error implements the error interface.
func (e *UnsafeEditError) Error() string {
	return fmt.Sprintf("could not safely edit %s (reason: %s). "+
		"Re-run with -f/--force-yaml-parser to rewrite it with the full parser; "+
		"this removes any comments and custom structure from the existing file",
		e.Path, e.Reason)
}

// GetResult holds the answer to a --get query.
type GetResult struct {
	// Lines are the --set/--add lines that reproduce the queried settings.
	Lines []string

	// Warnings name keys that are not part of the schema.
	Warnings []string

	// Values maps each emitted key to its bool, string or []string value.
	Values map[string]any
}

// MutateOptions control how a batch of edits is committed.
type MutateOptions struct {
	// Force rewrites the whole file from its parsed value when a minimal
	// edit is unsafe, discarding comments and formatting.
	Force bool
}

// MutateResult describes what a batch of edits did.
type MutateResult struct {
	Written     bool
	FullRewrite bool
	// Notices are the skipped-item messages, in request order.
	Notices []string
}

// ConfigService reads and edits settings files. It holds no settings itself:
// every call loads the file afresh.
type ConfigService struct {
	read  func(path string) (string, error)
	write func(path, text string) error
}

// New returns a ConfigService backed by the filesystem.
func New() *ConfigService {
	return &ConfigService{read: rcfile.Read, write: rcfile.Write}
}

// Load reads and parses the settings file at path.
func (s *ConfigService) Load(path string) (*rc.Document, error) {
	text, err := s.read(path)
	if err != nil {
		return nil, err
	}
	return rc.Parse(text)
}

// Get answers a --get query. With no keys every key in the file is reported
// in sorted order. Keys missing from the file produce no line; keys missing
// from the schema produce a warning instead.
func (s *ConfigService) Get(path string, keys []string) (*GetResult, error) {
	doc, err := s.Load(path)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		keys = doc.Keys()
		sort.Strings(keys)
	}

	res := &GetResult{Values: make(map[string]any)}
	for _, key := range keys {
		if _, ok := rc.Lookup(key); !ok {
			res.Warnings = append(res.Warnings, (&rc.UnknownKeyError{Key: key}).Error())
			continue
		}
		v, ok := doc.Lookup(key)
		if !ok {
			continue
		}

		switch v.Kind {
		case rc.KindBool:
			res.Lines = append(res.Lines, fmt.Sprintf("--set %s %s", key, titleBool(v.Bool)))
			res.Values[key] = v.Bool
		case rc.KindString:
			res.Lines = append(res.Lines, fmt.Sprintf("--set %s %s", key, v.Str))
			res.Values[key] = v.Str
		case rc.KindList:
			// --add prepends, so replaying these lines in order rebuilds the list.
			for i := len(v.List) - 1; i >= 0; i-- {
				res.Lines = append(res.Lines, fmt.Sprintf("--add %s %s", key, quoteItem(v.List[i])))
			}
			res.Values[key] = v.List
		}
	}
	return res, nil
}

// Mutate applies a batch of edits to the file at path and writes it once.
// Requests are checked against the schema before the file is read. An unsafe
// edit aborts the whole batch with *UnsafeEditError unless opts.Force is set.
func (s *ConfigService) Mutate(path string, reqs []editor.Request, opts MutateOptions) (*MutateResult, error) {
	for _, req := range reqs {
		if err := editor.Check(req); err != nil {
			return nil, err
		}
	}
	if rcfile.IsCompressed(path) {
		return nil, fmt.Errorf("%s: %w", path, rcfile.ErrReadOnly)
	}

	original, err := s.read(path)
	if err != nil {
		return nil, err
	}
	d0, err := rc.Parse(original)
	if err != nil {
		return nil, err
	}
	reqs = withImplicitDefaults(d0, reqs)

	res := &MutateResult{}
	text := original
	var full *rc.Document

	for _, req := range reqs {
		if full != nil {
			_, notice, err := editor.Mutate(full, req)
			if err != nil {
				return nil, err
			}
			if notice != "" {
				res.Notices = append(res.Notices, notice)
			}
			continue
		}

		r, err := editor.Apply(text, req)
		if err != nil {
			return nil, err
		}
		switch r.Outcome {
		case editor.NoOp:
			if r.Notice != "" {
				res.Notices = append(res.Notices, r.Notice)
			}
		case editor.Patched:
			text = r.Text
		case editor.Unsafe:
			if !opts.Force {
				return nil, &UnsafeEditError{Path: path, Reason: r.Reason}
			}
			logger.Debug("[DEBUG] %s %s: %s, falling back to a full rewrite\n", req.Flag(), req.Key, r.Reason)
			full = r.Document
		}
	}

	if full != nil {
		text, err = full.SerializeFull()
		if err != nil {
			return nil, err
		}
		res.FullRewrite = true
	} else if text == original {
		return res, nil
	}

	if err := s.write(path, text); err != nil {
		return nil, err
	}
	res.Written = true
	return res, nil
}

// withImplicitDefaults keeps the implicit "defaults" channel when a batch
// creates the channels key: it is appended after the explicit values unless
// the batch adds "defaults" itself.
func withImplicitDefaults(d0 *rc.Document, reqs []editor.Request) []editor.Request {
	if d0.Has("channels") {
		return reqs
	}
	adds := false
	for _, r := range reqs {
		if r.Op != editor.OpAdd || r.Key != "channels" {
			continue
		}
		if r.Value == channel.Defaults {
			return reqs
		}
		adds = true
	}
	if !adds {
		return reqs
	}
	return append(slices.Clone(reqs), editor.Request{Op: editor.OpAdd, Key: "channels", Value: channel.Defaults, Append: true})
}

func titleBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// quoteItem quotes a list item so the emitted line can be pasted into a shell.
func quoteItem(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + strings.ReplaceAll(s, `\`, `\\`) + `"`
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}
