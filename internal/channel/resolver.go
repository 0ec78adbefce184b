// Package channel expands channel references into platform-scoped URLs.
//
// All functions are pure: the result depends only on the reference, the
// platform tag and the channel_alias of the given settings document.
package channel

import (
	"strings"

	"condarc/internal/rc"
)

// Built-in locations the defaults channel expands to, in this order.
const (
	FreeURL = "http://repo.continuum.io/pkgs/free/"
	ProURL  = "http://repo.continuum.io/pkgs/pro/"
)

// Reserved channel names.
const (
	Defaults = "defaults"
	System   = "system"
)

var schemes = []string{"http://", "https://", "file://"}

// IsURL reports whether ref carries one of the supported URL schemes.
func IsURL(ref string) bool {
	for _, s := range schemes {
		if strings.HasPrefix(ref, s) {
			return true
		}
	}
	return false
}

// Normalize expands one reference:
//
//   - "defaults" and its legacy alias "system" become the free and pro URLs;
//   - URLs get "<platform>/" appended unless they already end with it;
//   - bare names are joined to channel_alias.
func Normalize(ref, platform string, settings *rc.Document) []string {
	switch {
	case ref == Defaults || ref == System:
		return []string{FreeURL + platform + "/", ProURL + platform + "/"}
	case IsURL(ref):
		return []string{withPlatform(ref, platform)}
	default:
		return []string{withPlatform(alias(settings)+ref, platform)}
	}
}

// ResolveAll flattens Normalize over refs in input order. Duplicates are kept.
func ResolveAll(refs []string, platform string, settings *rc.Document) []string {
	var urls []string
	for _, ref := range refs {
		urls = append(urls, Normalize(ref, platform, settings)...)
	}
	return urls
}

// Dedupe drops repeated URLs, keeping the first occurrence.
func Dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

func alias(settings *rc.Document) string {
	a := rc.DefaultChannelAlias
	if settings != nil {
		if v := settings.Get("channel_alias"); v.Kind == rc.KindString && v.Str != "" {
			a = v.Str
		}
	}
	if !strings.HasSuffix(a, "/") {
		a += "/"
	}
	return a
}

func withPlatform(url, platform string) string {
	base := strings.TrimSuffix(url, "/")
	if strings.HasSuffix(base, "/"+platform) {
		return base + "/"
	}
	return base + "/" + platform + "/"
}
