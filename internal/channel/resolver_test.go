package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"condarc/internal/rc"
)

func customAlias(t *testing.T) *rc.Document {
	t.Helper()
	doc, err := rc.Parse("channel_alias: https://your.repo/\n")
	require.NoError(t, err)
	return doc
}

func TestNormalize_Defaults(t *testing.T) {
	want := []string{FreeURL + "osx-64/", ProURL + "osx-64/"}
	assert.Equal(t, want, Normalize("defaults", "osx-64", rc.New()))
	assert.Equal(t, want, Normalize("system", "osx-64", rc.New()))
	assert.Equal(t, "http://repo.continuum.io/pkgs/free/osx-64/", want[0])
}

func TestNormalize_BareName(t *testing.T) {
	assert.Equal(t, []string{"https://your.repo/username/osx-64/"}, Normalize("username", "osx-64", customAlias(t)))
	assert.Equal(t, []string{"https://conda.binstar.org/username/linux-64/"}, Normalize("username", "linux-64", rc.New()))
	assert.Equal(t, []string{"https://conda.binstar.org/username/linux-64/"}, Normalize("username", "linux-64", nil))
}

func TestNormalize_AliasWithoutTrailingSlash(t *testing.T) {
	doc, err := rc.Parse("channel_alias: https://mirror.local/conda\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://mirror.local/conda/me/win-32/"}, Normalize("me", "win-32", doc))
}

func TestNormalize_URLs(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"https://conda.binstar.org/username", "https://conda.binstar.org/username/osx-64/"},
		{"https://conda.binstar.org/username/", "https://conda.binstar.org/username/osx-64/"},
		{"file:///Users/username/repo", "file:///Users/username/repo/osx-64/"},
		{"file:///", "file:///osx-64/"},
		{"https://host/repo//", "https://host/repo//osx-64/"},
		{"http://some.custom/channel/osx-64", "http://some.custom/channel/osx-64/"},
		{"http://some.custom/channel/osx-64/", "http://some.custom/channel/osx-64/"},
	}
	for _, tt := range tests {
		assert.Equal(t, []string{tt.want}, Normalize(tt.ref, "osx-64", customAlias(t)), tt.ref)
	}
}

func TestResolveAll(t *testing.T) {
	got := ResolveAll([]string{
		"defaults", "system", "https://conda.binstar.org/username",
		"file:///Users/username/repo", "username",
	}, "osx-64", customAlias(t))

	assert.Equal(t, []string{
		"http://repo.continuum.io/pkgs/free/osx-64/",
		"http://repo.continuum.io/pkgs/pro/osx-64/",
		"http://repo.continuum.io/pkgs/free/osx-64/",
		"http://repo.continuum.io/pkgs/pro/osx-64/",
		"https://conda.binstar.org/username/osx-64/",
		"file:///Users/username/repo/osx-64/",
		"https://your.repo/username/osx-64/",
	}, got)

	for _, u := range got {
		assert.Regexp(t, `/osx-64/$`, u)
	}
}

func TestResolveAll_Deterministic(t *testing.T) {
	refs := []string{"username", "defaults"}
	assert.Equal(t, ResolveAll(refs, "linux-64", rc.New()), ResolveAll(refs, "linux-64", rc.New()))
	assert.Empty(t, ResolveAll(nil, "linux-64", rc.New()))
}

func TestDedupe(t *testing.T) {
	urls := ResolveAll([]string{"defaults", "system", "a"}, "linux-64", rc.New())
	assert.Equal(t, []string{
		FreeURL + "linux-64/",
		ProURL + "linux-64/",
		"https://conda.binstar.org/a/linux-64/",
	}, Dedupe(urls))
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("file:///tmp/repo"))
	assert.True(t, IsURL("https://x"))
	assert.False(t, IsURL("ftp://x"))
	assert.False(t, IsURL("username"))
}
