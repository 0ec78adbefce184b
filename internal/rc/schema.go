// Package rc holds the settings schema and the parsed, typed view of a
// settings (.condarc) file.
//
// A Document is built fresh from file text for every command and is never
// shared through package-level state. It knows nothing about the comments or
// indentation of the text it came from; the editor package owns that.
package rc

import (
	"fmt"
	"strings"
)

// Kind is the value shape of a setting.
type Kind int

const (
	KindBool Kind = iota
	KindString
	KindList
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DefaultChannelAlias is prepended to bare channel names.
const DefaultChannelAlias = "https://conda.binstar.org/"

// Setting declares one recognized configuration key.
type Setting struct {
	// Key is the top-level key as written in the file.
	Key string

	// Kind never changes at runtime.
	Kind Kind

	// Default is returned by Document.Get when the key is absent.
	Default Value

	// Description is listed by `condarc config --help`.
	Description string
}

// settings is the schema in declared order. SerializeFull writes keys in this order.
var settings = []Setting{
	{Key: "channels", Kind: KindList, Default: ListValue(), Description: "channels searched for packages"},
	{Key: "channel_alias", Kind: KindString, Default: StringValue(DefaultChannelAlias), Description: "URL prefix for bare channel names"},
	{Key: "create_default_packages", Kind: KindList, Default: ListValue(), Description: "packages added to every new environment"},
	{Key: "track_features", Kind: KindList, Default: ListValue(), Description: "features installed by default"},
	{Key: "always_yes", Kind: KindBool, Default: BoolValue(false), Description: "answer yes to every confirmation"},
	{Key: "changeps1", Kind: KindBool, Default: BoolValue(true), Description: "prefix the prompt with the active environment"},
	{Key: "allow_softlinks", Kind: KindBool, Default: BoolValue(true), Description: "link packages with soft links when possible"},
	{Key: "binstar_upload", Kind: KindBool, Default: BoolValue(false), Description: "upload built packages automatically"},
	{Key: "show_channel_urls", Kind: KindBool, Default: BoolValue(false), Description: "show channel URLs in listings"},
	{Key: "use_pip", Kind: KindBool, Default: BoolValue(true), Description: "include pip-installed packages in listings"},
}

var settingIndex = func() map[string]int {
	idx := make(map[string]int, len(settings))
	for i, s := range settings {
		idx[s.Key] = i
	}
	return idx
}()

// Lookup returns the schema entry for key.
func Lookup(key string) (Setting, bool) {
	i, ok := settingIndex[key]
	if !ok {
		return Setting{}, false
	}
	return settings[i], true
}

// Keys returns every recognized key in declared order.
func Keys() []string {
	keys := make([]string, len(settings))
	for i, s := range settings {
		keys[i] = s.Key
	}
	return keys
}

// ParseBool accepts yes/no/true/false/on/off in any case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "on":
		return true, nil
	case "no", "false", "off":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean (use yes/no or true/false)", s)
}
