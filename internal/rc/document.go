package rc

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is an ordered mapping from key to typed value, independent of how
// the file text was formatted. Unknown keys are retained so that a full
// rewrite does not drop them.
type Document struct {
	keys   []string
	values map[string]Value
}

// New returns an empty document.
func New() *Document {
	return &Document{values: make(map[string]Value)}
}

// Parse decodes settings text. The accepted subset is a top-level mapping whose
// values are scalars or sequences of scalars; values of recognized keys must
// match their schema kind. Parse either returns a complete document or a
// *ParseError, never a partial result.
func Parse(text string) (*Document, error) {
	doc := New()

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, &ParseError{Msg: err.Error()}
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}

	top := root.Content[0]
	if top.Kind == yaml.ScalarNode && top.Tag == "!!null" {
		return doc, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, &ParseError{Line: top.Line, Msg: "top level must be a mapping of keys to values"}
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		k, v := top.Content[i], top.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, &ParseError{Line: k.Line, Msg: "keys must be plain scalars"}
		}
		val, err := decodeValue(k.Value, v)
		if errors.Is(err, errNull) {
			continue
		}
		if err != nil {
			return nil, err
		}
		doc.Set(k.Value, val)
	}
	return doc, nil
}

// errNull marks an empty boolean key, which is treated as absent.
var errNull = errors.New("null value")

// keptTag returns the tag of a scalar that must survive a rewrite, or "" for
// plain strings.
func keptTag(node *yaml.Node) string {
	if node.Tag == "!!str" || node.Tag == "" {
		return ""
	}
	return node.Tag
}

func decodeValue(key string, node *yaml.Node) (Value, error) {
	setting, known := Lookup(key)

	switch node.Kind {
	case yaml.ScalarNode:
		if !known {
			v := StringValue(node.Value)
			v.Tag = keptTag(node)
			return v, nil
		}
		switch setting.Kind {
		case KindBool:
			if node.Tag == "!!null" {
				return Value{}, errNull
			}
			b, err := ParseBool(node.Value)
			if err != nil {
				return Value{}, &ParseError{Line: node.Line, Msg: fmt.Sprintf("%s: %v", key, err)}
			}
			return BoolValue(b), nil
		case KindString:
			return StringValue(node.Value), nil
		case KindList:
			if node.Tag == "!!null" {
				return ListValue(), nil
			}
			return Value{}, &ParseError{Line: node.Line, Msg: fmt.Sprintf("%s must be a list", key)}
		}

	case yaml.SequenceNode:
		if known && setting.Kind != KindList {
			return Value{}, &ParseError{Line: node.Line, Msg: fmt.Sprintf("%s must be a %s, not a list", key, setting.Kind)}
		}
		items := make([]string, 0, len(node.Content))
		var tags []string
		for i, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return Value{}, &ParseError{Line: item.Line, Msg: fmt.Sprintf("items of %s must be scalars", key)}
			}
			items = append(items, item.Value)
			if tag := keptTag(item); !known && tag != "" {
				if tags == nil {
					tags = make([]string, len(node.Content))
				}
				tags[i] = tag
			}
		}
		v := ListValue(items...)
		v.ItemTags = tags
		return v, nil
	}

	return Value{}, &ParseError{Line: node.Line, Msg: fmt.Sprintf("%s: nested mappings and aliases are not supported", key)}
}

// Lookup returns the value stored for key and whether the key is present.
func (d *Document) Lookup(key string) (Value, bool) {
	v, ok := d.values[key]
	if !ok {
		return Value{}, false
	}
	return v.Clone(), true
}

// Get returns the value for key, falling back to the schema default when the
// key is absent. Unknown absent keys yield an empty string value.
func (d *Document) Get(key string) Value {
	if v, ok := d.Lookup(key); ok {
		return v
	}
	if s, ok := Lookup(key); ok {
		return s.Default.Clone()
	}
	return StringValue("")
}

// Has reports whether key is present in the document.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Keys returns the present keys in document order.
func (d *Document) Keys() []string {
	return append([]string{}, d.keys...)
}

// Set stores v under key, appending key to the document order when new.
func (d *Document) Set(key string, v Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v.Clone()
}

// Delete removes key and reports whether it was present.
func (d *Document) Delete(key string) bool {
	if _, ok := d.values[key]; !ok {
		return false
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return true
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	c := New()
	for _, k := range d.keys {
		c.Set(k, d.values[k])
	}
	return c
}

// Validate returns the keys present in the document but absent from the
// schema, in document order.
func (d *Document) Validate() []string {
	var unknown []string
	for _, k := range d.keys {
		if _, ok := Lookup(k); !ok {
			unknown = append(unknown, k)
		}
	}
	return unknown
}

// orderedKeys lists schema keys in declared order, then unknown keys in document order.
func (d *Document) orderedKeys() []string {
	keys := make([]string, 0, len(d.keys))
	for _, s := range settings {
		if d.Has(s.Key) {
			keys = append(keys, s.Key)
		}
	}
	return append(keys, d.Validate()...)
}

// SerializeFull renders the canonical text of the document: no comments,
// two-space indentation, schema keys first. It is the reference that verifies
// minimal edits and the text written by an explicit full rewrite.
func (d *Document) SerializeFull() (string, error) {
	if len(d.keys) == 0 {
		return "", nil
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range d.orderedKeys() {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			encodeValue(d.values[key]),
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{mapping}}); err != nil {
		return "", fmt.Errorf("encoding settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding settings: %w", err)
	}
	return buf.String(), nil
}

func encodeValue(v Value) *yaml.Node {
	switch v.Kind {
	case KindBool:
		val := "false"
		if v.Bool {
			val = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: val}
	case KindList:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, item := range v.List {
			tag := ""
			if i < len(v.ItemTags) {
				tag = v.ItemTags[i]
			}
			seq.Content = append(seq.Content, scalarNode(item, tag))
		}
		return seq
	default:
		return scalarNode(v.Str, v.Tag)
	}
}

func scalarNode(value, tag string) *yaml.Node {
	if tag == "" {
		tag = "!!str"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
