package urlutil

import (
	"testing"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL_Idempotent(t *testing.T) {
	opts := NormalizeOptions{StripIndexFiles: true}

	inputs := []string{
		"https://Example.com/Docs/index.html#frag",
		"https://example.com/docs/",
		"https://example.com/",
		"not a url %%%",
	}

	for _, in := range inputs {
		once := NormalizeURL(in, opts)
		twice := NormalizeURL(once, opts)
		assert.Equal(t, once, twice, "normalize must be idempotent for %q", in)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts NormalizeOptions
		want string
	}{
		{
			name: "lowercases host and drops hash",
			in:   "https://Example.COM/path#section",
			want: "https://example.com/path",
		},
		{
			name: "strips trailing slash except root",
			in:   "https://example.com/docs/",
			want: "https://example.com/docs",
		},
		{
			name: "keeps root slash",
			in:   "https://example.com",
			want: "https://example.com/",
		},
		{
			name: "strips directory index file",
			in:   "https://example.com/docs/index.html",
			opts: NormalizeOptions{StripIndexFiles: true},
			want: "https://example.com/docs",
		},
		{
			name: "invalid url returned unchanged",
			in:   "://not-a-url",
			want: "://not-a-url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.in, tt.opts))
		})
	}
}

func TestValidateURL(t *testing.T) {
	_, err := ValidateURL("https://example.com/docs")
	require.NoError(t, err)

	_, err = ValidateURL("ftp://example.com")
	require.ErrorIs(t, err, core.ErrInvalidURL)

	_, err = ValidateURL("://broken")
	require.ErrorIs(t, err, core.ErrInvalidURL)
}

func TestIsSubpath(t *testing.T) {
	tests := []struct {
		base, target string
		want         bool
	}{
		{"/docs", "/docs", true},
		{"/docs", "/docs/sub", true},
		{"/docs", "/docsite", false},
		{"/", "/anything", true},
		{"/doc", "/docs", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSubpath(tt.base, tt.target), "base=%s target=%s", tt.base, tt.target)
	}
}

func TestHasSameDomain(t *testing.T) {
	assert.True(t, HasSameDomain("https://docs.example.co.uk", "https://api.example.co.uk"))
	assert.False(t, HasSameDomain("https://example.com", "https://example.org"))
}

func TestHasScope(t *testing.T) {
	base := "https://example.com/docs/"

	assert.False(t, HasScope(core.ScopeSubpages, base, "https://example.com/api/x"))
	assert.True(t, HasScope(core.ScopeSubpages, base, "https://example.com/docs/sub"))
	assert.False(t, HasScope(core.ScopeSubpages, base, "https://sub.example.com/docs/x"))
	assert.True(t, HasScope(core.ScopeHostname, base, "https://example.com/anything"))
	assert.True(t, HasScope(core.ScopeDomain, base, "https://sub.example.com/docs/x"))
}
