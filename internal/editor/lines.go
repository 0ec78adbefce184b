package editor

import (
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// layout is the line view of a settings file used by the splicer.
type layout struct {
	lines []string
	// eol is appended to inserted lines; "\r" for CRLF files.
	eol string
	// keyIndent is the indentation shared by top-level keys.
	keyIndent string
}

// block is the text region of one top-level key.
type block struct {
	key int
	// inline is the value written after the colon, comment stripped.
	inline string
	// items are the "- value" lines at the block's item indentation.
	items []int
	// end is the last content line of the block; equal to key for an empty block.
	end int
}

func newLayout(text string) *layout {
	l := &layout{lines: strings.Split(text, "\n")}
	if strings.Contains(text, "\r\n") {
		l.eol = "\r"
	}
	for _, line := range l.lines {
		if indent, _, _, ok := parseKeyLine(line); ok {
			l.keyIndent = indent
			break
		}
	}
	return l
}

func (l *layout) text() string {
	return strings.Join(l.lines, "\n")
}

// find locates the block of a top-level key.
func (l *layout) find(key string) (block, bool) {
	for i, line := range l.lines {
		indent, k, rest, ok := parseKeyLine(line)
		if !ok || indent != l.keyIndent || k != key {
			continue
		}

		b := block{key: i, inline: stripComment(rest), end: i}
		itemIndent := ""
		for j := i + 1; j < len(l.lines); j++ {
			t := strings.TrimSpace(l.lines[j])
			if t == "" || strings.HasPrefix(t, "#") {
				continue
			}
			ind := indentOf(l.lines[j])
			item := isItem(t)
			if len(ind) < len(l.keyIndent) || (len(ind) == len(l.keyIndent) && !item) {
				break
			}
			if item && (len(b.items) == 0 || ind == itemIndent) {
				if len(b.items) == 0 {
					itemIndent = ind
				}
				b.items = append(b.items, j)
			}
			b.end = j
		}
		return b, true
	}
	return block{}, false
}

// head returns the first line after any leading directives and "---" marker,
// where new top-level keys are inserted.
func (l *layout) head() int {
	at := 0
	for i, line := range l.lines {
		t := strings.TrimSpace(line)
		switch {
		case t == "" || strings.HasPrefix(t, "#"):
		case strings.HasPrefix(t, "%"), t == "---", strings.HasPrefix(t, "--- #"):
			at = i + 1
		default:
			return at
		}
	}
	return at
}

// itemIndent picks the indentation for a new list item: the block's own first
// item, else the first list item anywhere in the file, else two spaces past
// the key indentation.
func (l *layout) itemIndent(b block, found bool) string {
	if found && len(b.items) > 0 {
		return indentOf(l.lines[b.items[0]])
	}
	for _, line := range l.lines {
		if isItem(strings.TrimSpace(line)) {
			return indentOf(line)
		}
	}
	return l.keyIndent + "  "
}

// insert places new lines before index at.
func (l *layout) insert(at int, lines ...string) {
	for i := range lines {
		lines[i] += l.eol
	}
	l.lines = slices.Insert(l.lines, at, lines...)
}

// remove deletes lines[from:to].
func (l *layout) remove(from, to int) {
	l.lines = slices.Delete(l.lines, from, to)
}

// itemEnd returns the exclusive end of the item starting at idx: its
// continuation lines up to the next item or the end of the block.
func (l *layout) itemEnd(b block, idx int) int {
	stop := idx
	for j := idx + 1; j <= b.end; j++ {
		if slices.Contains(b.items, j) {
			break
		}
		t := strings.TrimSpace(l.lines[j])
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		stop = j
	}
	return stop + 1
}

// parseKeyLine splits "  key : value # note" into its indentation, key and
// the text after the colon.
func parseKeyLine(line string) (indent, key, rest string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" || trimmed[0] == '#' || trimmed[0] == '-' {
		return "", "", "", false
	}
	colon := strings.Index(trimmed, ":")
	if colon <= 0 {
		return "", "", "", false
	}
	after := trimmed[colon+1:]
	if after != "" && after[0] != ' ' && after[0] != '\t' && after[0] != '\r' {
		return "", "", "", false
	}
	indent = line[:len(line)-len(trimmed)]
	return indent, strings.TrimSpace(trimmed[:colon]), after, true
}

// keyPrefix returns the key line up to and including the colon.
func keyPrefix(line string) string {
	return line[:strings.Index(line, ":")+1]
}

// trailingComment returns " # note" from the text after a colon, or "".
func trailingComment(rest string) string {
	t := strings.Trim(rest, " \t\r")
	if i := commentAt(t); i >= 0 {
		return " " + t[i:]
	}
	return ""
}

func stripComment(rest string) string {
	t := strings.TrimSpace(rest)
	if i := commentAt(t); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// commentAt returns the index of the '#' that opens a comment in t, or -1.
// A '#' inside a quoted scalar or glued to the preceding text is not a comment.
// Quotes only open a scalar at its start, so "it's" stays plain.
func commentAt(t string) int {
	var quote byte
	start := true
	for i := 0; i < len(t); i++ {
		c := t[i]
		switch {
		case quote == '\'':
			if c == '\'' {
				if i+1 < len(t) && t[i+1] == '\'' {
					i++
				} else {
					quote = 0
				}
			}
		case quote == '"':
			if c == '\\' {
				i++
			} else if c == '"' {
				quote = 0
			}
		case c == ' ' || c == '\t':
		case c == '#':
			if i == 0 || t[i-1] == ' ' || t[i-1] == '\t' {
				return i
			}
			start = false
		case (c == '\'' || c == '"') && start:
			quote = c
			start = false
		default:
			start = strings.IndexByte("[{,", c) >= 0
		}
	}
	return -1
}

// isEmptyInline reports whether an inline value holds no items, so the key
// line can be turned into the head of a block list.
func isEmptyInline(v string) bool {
	switch v {
	case "[]", "~", "null", "Null", "NULL":
		return true
	}
	return false
}

func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func isItem(trimmed string) bool {
	return trimmed == "-" || strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "-\t")
}

// itemValue decodes the scalar of a "- value" line.
func itemValue(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if !isItem(t) {
		return "", false
	}
	var v string
	if err := yaml.Unmarshal([]byte(strings.TrimSpace(t[1:])), &v); err != nil {
		return "", false
	}
	return v, true
}

// formatScalar renders s as a YAML scalar, quoting it when the plain form
// would read back as something else.
func formatScalar(s string) string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return s
	}
	return strings.TrimSuffix(string(out), "\n")
}
