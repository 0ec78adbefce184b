package rc

import "slices"

// Value is a setting value: exactly one of Bool, Str or List is meaningful,
// selected by Kind.
type Value struct {
	Kind Kind
	Bool bool
	Str  string
	List []string

	// Tag is the YAML tag of a scalar under an unknown key when it is not a
	// plain string, such as "!!bool" or "!!int". ItemTags holds the same for
	// list items and is nil when every item is a string.
	Tag      string
	ItemTags []string
}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// ListValue returns a list Value holding a copy of items.
func ListValue(items ...string) Value {
	return Value{Kind: KindList, List: append([]string{}, items...)}
}

// Clone returns a deep copy.
func (v Value) Clone() Value {
	if v.Kind == KindList {
		c := ListValue(v.List...)
		c.Tag = v.Tag
		if v.ItemTags != nil {
			c.ItemTags = append([]string{}, v.ItemTags...)
		}
		return c
	}
	return v
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind || v.Tag != o.Tag || !slices.Equal(v.ItemTags, o.ItemTags) {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.Bool == o.Bool
	case KindString:
		return v.Str == o.Str
	case KindList:
		return slices.Equal(v.List, o.List)
	}
	return false
}

// Contains reports whether a list value holds item.
func (v Value) Contains(item string) bool {
	return v.Kind == KindList && slices.Contains(v.List, item)
}
