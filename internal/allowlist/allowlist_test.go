package allowlist_test

import (
	"testing"

	"urlboard/internal/allowlist"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: []string{""}},
		{name: "single", raw: "promo_url", want: []string{"promo_url"}},
		{name: "multiple", raw: "promo_url,support_url", want: []string{"promo_url", "support_url"}},
		{name: "no_trimming", raw: "promo_url, support_url", want: []string{"promo_url", " support_url"}},
		{name: "trailing_comma", raw: "promo_url,", want: []string{"promo_url", ""}},
		{name: "no_dedup", raw: "a,a", want: []string{"a", "a"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, allowlist.Parse(tc.raw).Entries())
		})
	}
}

func TestAllows(t *testing.T) {
	list := allowlist.Parse("promo_url,support_url")

	require.True(t, list.Allows("promo_url"))
	require.True(t, list.Allows("PROMO_URL"))
	require.True(t, list.Allows("Support_Url"))
	require.False(t, list.Allows("other_url"))
	require.False(t, list.Allows(""))
}

// Matching is case-insensitive on the candidate only: entries are compared as
// configured, so uppercase entries never match.
func TestAllows_AsymmetricCaseFolding(t *testing.T) {
	require.False(t, allowlist.Parse("Foo").Allows("foo"))
	require.False(t, allowlist.Parse("Foo").Allows("Foo"))
	require.True(t, allowlist.Parse("foo").Allows("FOO"))
	require.True(t, allowlist.Parse("foo").Allows("foo"))
}

func TestAllows_EmptyKeyWithTrailingComma(t *testing.T) {
	require.True(t, allowlist.Parse("promo_url,").Allows(""))
	require.False(t, allowlist.Parse("promo_url").Allows(""))
}

func TestAllows_UntrimmedEntry(t *testing.T) {
	list := allowlist.Parse("promo_url, support_url")
	require.False(t, list.Allows("support_url"))
	require.True(t, list.Allows(" support_url"))
}
