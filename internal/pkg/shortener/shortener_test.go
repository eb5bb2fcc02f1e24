package shortener

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureSlug(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		slug, err := GenerateSecureSlug(8)
		require.NoError(t, err)
		require.Len(t, slug, 8)
		for _, r := range slug {
			assert.True(t, strings.ContainsRune(alphabet, r), "slug %q contains character outside alphabet", slug)
		}
		require.False(t, seen[slug], "duplicate slug %q across 100 generations", slug)
		seen[slug] = true
	}
}

func TestGenerateSecureSlugInvalidLength(t *testing.T) {
	_, err := GenerateSecureSlug(0)
	assert.Error(t, err)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Anna's Stoneware!", want: "annas-stoneware"},
		{in: "  Glazed   Bowl  ", want: "glazed-bowl"},
		{in: "Raku_fired.pots", want: "raku-fired-pots"},
		{in: "Ceramics 101", want: "ceramics-101"},
		{in: "---", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestUniqueSlugAppendsSuffix(t *testing.T) {
	slug, err := UniqueSlug("glazed-bowl")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(slug, "glazed-bowl-"), "unique slug %q should keep the base prefix", slug)
	assert.Len(t, slug, len("glazed-bowl-")+6)
}
