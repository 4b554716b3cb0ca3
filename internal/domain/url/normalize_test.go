package url

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"https unchanged", "https://example.com", "https://example.com"},
		{"about unchanged", "about:blank", "about:blank"},
		{"bare domain", "example.com", "https://example.com"},
		{"domain with path", "example.com/path", "https://example.com/path"},
		{"free text unchanged", "hello world", "hello world"},
		{"localhost", "localhost:5173", "http://localhost:5173"},
		{"localhost with path", "localhost/api", "http://localhost/api"},
		{"localhost.com is a domain", "localhost.com", "https://localhost.com"},
		{"surrounding spaces trimmed", "  example.org ", "https://example.org"},
		{"missing local path unchanged", "/nonexistent/file.html", "/nonexistent/file.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o600))

	assert.Equal(t, "file://"+path, Normalize(path))
}

func TestIsWeb(t *testing.T) {
	assert.True(t, IsWeb("https://a.example/page2"))
	assert.True(t, IsWeb("http://localhost:8080"))
	assert.False(t, IsWeb("about:blank"))
	assert.False(t, IsWeb("javascript:void(0)"))
	assert.False(t, IsWeb("data:text/html,hi"))
	assert.False(t, IsWeb(""))
}

func TestSameDocument(t *testing.T) {
	assert.True(t, SameDocument("https://a.example/doc", "https://a.example/doc#intro"))
	assert.True(t, SameDocument("https://a.example/doc#top", "https://a.example/doc#intro"))
	assert.False(t, SameDocument("https://a.example/doc", "https://a.example/doc"))
	assert.False(t, SameDocument("https://a.example/doc", "https://a.example/page2#x"))
	assert.False(t, SameDocument("", "https://a.example/#x"))
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "a.example", ExtractDomain("https://www.a.example/page"))
	assert.Equal(t, "", ExtractDomain("not a url"))
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, "A", Glyph("https://www.a.example/page"))
	assert.Equal(t, "•", Glyph("about:blank"))
	assert.Equal(t, "•", Glyph(""))
}
