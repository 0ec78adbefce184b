package rc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	s, ok := Lookup("channels")
	assert.True(t, ok)
	assert.Equal(t, KindList, s.Kind)

	s, ok = Lookup("channel_alias")
	assert.True(t, ok)
	assert.Equal(t, KindString, s.Kind)
	assert.Equal(t, StringValue("https://conda.binstar.org/"), s.Default)

	_, ok = Lookup("invalid_key")
	assert.False(t, ok)
}

func TestKeysAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, k := range Keys() {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
	assert.Equal(t, "channels", Keys()[0])
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"yes", true, false},
		{"YES", true, false},
		{"True", true, false},
		{"on", true, false},
		{"no", false, false},
		{"False", false, false},
		{" off ", false, false},
		{"1", false, true},
		{"maybe", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		got, err := ParseBool(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestValueEqual(t *testing.T) {
	assert.True(t, ListValue("a", "b").Equal(ListValue("a", "b")))
	assert.False(t, ListValue("a", "b").Equal(ListValue("b", "a")))
	assert.False(t, BoolValue(true).Equal(StringValue("true")))
	assert.True(t, ListValue("a", "a").Contains("a"))
	assert.False(t, StringValue("a").Contains("a"))
}
