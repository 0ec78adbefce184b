// Package editor applies mutations to settings file text while keeping every
// line the mutation does not touch byte-for-byte identical.
//
// Each edit is a line splice that is verified before it is accepted: the
// patched text is parsed again and must serialize exactly like the document
// obtained by applying the same mutation in memory. Anything the splicer
// cannot reproduce (flow-style lists, multi-line scalars, indentation that
// changes meaning) is reported as Unsafe instead of being written.
package editor

import (
	"fmt"
	"slices"
	"strconv"

	"condarc/internal/logger"
	"condarc/internal/rc"
)

// Op is the kind of mutation.
type Op int

const (
	OpAdd Op = iota
	OpRemove
	OpRemoveKey
	OpSet
)

// Request is one mutation of one key.
type Request struct {
	Op    Op
	Key   string
	Value string
	// Append adds the value at the end of the list instead of the front.
	// Only meaningful for OpAdd.
	Append bool
}

// Flag returns the command-line flag that produces the request.
func (r Request) Flag() string {
	switch r.Op {
	case OpAdd:
		if r.Append {
			return "--append"
		}
		return "--add"
	case OpRemove:
		return "--remove"
	case OpRemoveKey:
		return "--remove-key"
	case OpSet:
		return "--set"
	}
	return fmt.Sprintf("op(%d)", int(r.Op))
}

// Outcome classifies the result of Apply.
type Outcome int

const (
	NoOp Outcome = iota
	Patched
	Unsafe
)

// ReasonMismatch is the Unsafe reason when the verified parse disagrees.
const ReasonMismatch = "structure mismatch"

// Result is the outcome of applying one request to file text.
type Result struct {
	Outcome Outcome

	// Text is the patched file text when Outcome is Patched.
	Text string

	// Reason explains an Unsafe outcome.
	Reason string

	// Notice is the user-facing message for a NoOp, empty when nothing needs saying.
	Notice string

	// Document is the in-memory result of the mutation, whatever the outcome.
	// Full rewrites serialize it.
	Document *rc.Document
}

// Check validates a request against the schema without touching any file.
func Check(req Request) error {
	s, ok := rc.Lookup(req.Key)
	if !ok {
		return &rc.UnknownKeyError{Key: req.Key}
	}
	switch req.Op {
	case OpAdd, OpRemove:
		if s.Kind != rc.KindList {
			return &rc.TypeMismatchError{Key: req.Key, Kind: s.Kind, Op: req.Flag()}
		}
	case OpSet:
		if s.Kind == rc.KindList {
			return &rc.TypeMismatchError{Key: req.Key, Kind: s.Kind, Op: req.Flag()}
		}
		if s.Kind == rc.KindBool {
			if _, err := rc.ParseBool(req.Value); err != nil {
				return fmt.Errorf("%s: %w", req.Key, err)
			}
		}
	case OpRemoveKey:
	default:
		return fmt.Errorf("unsupported operation %s", req.Flag())
	}
	return nil
}

// Mutate applies req to doc in memory. It reports whether doc changed and,
// for requests that change nothing, the notice to show the user.
func Mutate(doc *rc.Document, req Request) (changed bool, notice string, err error) {
	if err := Check(req); err != nil {
		return false, "", err
	}
	s, _ := rc.Lookup(req.Key)

	switch req.Op {
	case OpAdd:
		cur, ok := doc.Lookup(req.Key)
		if !ok {
			cur = rc.ListValue()
		}
		if cur.Contains(req.Value) {
			return false, fmt.Sprintf("Skipping %s: %s, item already exists", req.Key, req.Value), nil
		}
		if req.Append {
			cur.List = append(cur.List, req.Value)
		} else {
			cur.List = slices.Insert(cur.List, 0, req.Value)
		}
		doc.Set(req.Key, cur)

	case OpRemove:
		cur, _ := doc.Lookup(req.Key)
		i := slices.Index(cur.List, req.Value)
		if i < 0 {
			return false, fmt.Sprintf("Skipping %s: %s, item not present", req.Key, req.Value), nil
		}
		cur.List = slices.Delete(cur.List, i, i+1)
		doc.Set(req.Key, cur)

	case OpRemoveKey:
		if !doc.Delete(req.Key) {
			return false, fmt.Sprintf("Skipping %s: key not present", req.Key), nil
		}

	case OpSet:
		v := scalarValue(s, req.Value)
		if cur, ok := doc.Lookup(req.Key); ok && cur.Equal(v) {
			return false, "", nil
		}
		doc.Set(req.Key, v)
	}
	return true, "", nil
}

// Apply mutates original text according to req. Parse failures, unknown keys
// and type mismatches are returned as errors; everything else is a Result.
func Apply(original string, req Request) (Result, error) {
	if err := Check(req); err != nil {
		return Result{}, err
	}
	d0, err := rc.Parse(original)
	if err != nil {
		return Result{}, err
	}

	d1 := d0.Clone()
	changed, notice, err := Mutate(d1, req)
	if err != nil {
		return Result{}, err
	}
	if !changed {
		return Result{Outcome: NoOp, Notice: notice, Document: d1}, nil
	}

	patched, reason := splice(original, req)
	if reason == "" {
		reason = verify(patched, d1)
	}
	if reason != "" {
		logger.Debug("[DEBUG] %s %s %q refused: %s\n", req.Flag(), req.Key, req.Value, reason)
		return Result{Outcome: Unsafe, Reason: reason, Document: d1}, nil
	}
	return Result{Outcome: Patched, Text: patched, Document: d1}, nil
}

// verify re-parses patched text and compares it with the expected document.
// It returns an empty string when they serialize identically.
func verify(patched string, want *rc.Document) string {
	d2, err := rc.Parse(patched)
	if err != nil {
		logger.Debug("[DEBUG] patched text no longer parses: %v\n", err)
		return ReasonMismatch
	}
	wantText, err := want.SerializeFull()
	if err != nil {
		return err.Error()
	}
	gotText, err := d2.SerializeFull()
	if err != nil {
		return err.Error()
	}
	if gotText != wantText {
		logger.Debug("[DEBUG] patched text serializes as:\n%s\nexpected:\n%s\n", gotText, wantText)
		return ReasonMismatch
	}
	return ""
}

// splice produces the minimal textual patch for req. A non-empty reason means
// the splicer refused before producing text.
func splice(original string, req Request) (string, string) {
	l := newLayout(original)
	b, found := l.find(req.Key)

	switch req.Op {
	case OpAdd:
		item := l.itemIndent(b, found) + "- " + formatScalar(req.Value)
		if !found {
			l.insert(l.head(), l.keyIndent+req.Key+":", item)
			return l.text(), ""
		}
		if isEmptyInline(b.inline) {
			line := l.lines[b.key]
			prefix := keyPrefix(line)
			l.lines[b.key] = prefix + trailingComment(line[len(prefix):]) + l.eol
		} else if b.inline != "" {
			return "", fmt.Sprintf("%s has an inline value that cannot be extended line by line", req.Key)
		}
		switch {
		case req.Append:
			l.insert(b.end+1, item)
		case len(b.items) > 0:
			l.insert(b.items[0], item)
		default:
			l.insert(b.key+1, item)
		}

	case OpRemove:
		if !found {
			return "", fmt.Sprintf("could not locate %s in the file text", req.Key)
		}
		for _, idx := range b.items {
			if v, ok := itemValue(l.lines[idx]); ok && v == req.Value {
				l.remove(idx, l.itemEnd(b, idx))
				return l.text(), ""
			}
		}
		return "", fmt.Sprintf("could not locate item %q under %s", req.Value, req.Key)

	case OpRemoveKey:
		if !found {
			return "", fmt.Sprintf("could not locate %s in the file text", req.Key)
		}
		l.remove(b.key, b.end+1)

	case OpSet:
		s, _ := rc.Lookup(req.Key)
		val := formatValue(scalarValue(s, req.Value))
		if !found {
			l.insert(l.head(), l.keyIndent+req.Key+": "+val)
			return l.text(), ""
		}
		line := l.lines[b.key]
		prefix := keyPrefix(line)
		l.lines[b.key] = prefix + " " + val + trailingComment(line[len(prefix):]) + l.eol
	}
	return l.text(), ""
}

func scalarValue(s rc.Setting, raw string) rc.Value {
	if s.Kind == rc.KindBool {
		b, _ := rc.ParseBool(raw)
		return rc.BoolValue(b)
	}
	return rc.StringValue(raw)
}

func formatValue(v rc.Value) string {
	if v.Kind == rc.KindBool {
		return strconv.FormatBool(v.Bool)
	}
	return formatScalar(v.Str)
}
