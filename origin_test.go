package sitepdf_test

import (
	"testing"

	"github.com/fwojciec/sitepdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapURLToOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		target string
		want   string
	}{
		{
			name:   "moves path onto local origin",
			url:    "https://docs.example.com/guide/intro",
			target: "http://localhost:3000",
			want:   "http://localhost:3000/guide/intro",
		},
		{
			name:   "keeps query and fragment",
			url:    "https://a.com/?q=1#f",
			target: "https://b.com",
			want:   "https://b.com/?q=1#f",
		},
		{
			name:   "ignores target path",
			url:    "https://a.com/docs/page?x=y",
			target: "http://b.com:8080/ignored",
			want:   "http://b.com:8080/docs/page?x=y",
		},
		{
			name:   "drops source port",
			url:    "http://a.com:9000/x",
			target: "https://b.com",
			want:   "https://b.com/x",
		},
		{
			name:   "keeps encoded path",
			url:    "https://a.com/a%2Fb/c%20d",
			target: "https://b.com",
			want:   "https://b.com/a%2Fb/c%20d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := sitepdf.MapURLToOrigin(tt.url, tt.target)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects relative input", func(t *testing.T) {
		t.Parallel()

		_, err := sitepdf.MapURLToOrigin("/docs/page", "https://b.com")

		require.Error(t, err)
		assert.Equal(t, sitepdf.EINVALID, sitepdf.ErrorCode(err))
	})
}

func TestOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com:8443/docs/intro?x=1", "https://example.com:8443"},
		{"https://docs.example.com:443/img/logo.png", "https://docs.example.com"},
		{"http://localhost:80/guide/", "http://localhost"},
		{"http://localhost:443/", "http://localhost:443"},
		{"HTTPS://Docs.Example.COM/", "https://docs.example.com"},
		{"http://[::1]:80/x", "http://[::1]"},
		{"http://[::1]:3000/x", "http://[::1]:3000"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			got, err := sitepdf.Origin(tt.url)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSameOrigin(t *testing.T) {
	t.Parallel()

	assert.True(t, sitepdf.SameOrigin("https://example.com/a", "https://EXAMPLE.com/b"))
	assert.False(t, sitepdf.SameOrigin("https://example.com/a", "http://example.com/a"))
	assert.False(t, sitepdf.SameOrigin("https://example.com/a", "https://example.com:8443/a"))
	assert.False(t, sitepdf.SameOrigin("", "https://example.com"))
	assert.True(t, sitepdf.SameOrigin("https://example.com:443/a", "https://example.com/b"))
	assert.True(t, sitepdf.SameOrigin("http://localhost:80/", "http://localhost/guide/"))
}

func TestIsPrintTarget(t *testing.T) {
	t.Parallel()

	assert.True(t, sitepdf.IsPrintTarget("https://example.com/manual.pdf"))
	assert.True(t, sitepdf.IsPrintTarget("https://example.com/manual.PDF?download=1"))
	assert.False(t, sitepdf.IsPrintTarget("https://example.com/docs/pdf"))
	assert.False(t, sitepdf.IsPrintTarget("https://example.com/docs/next"))
}
