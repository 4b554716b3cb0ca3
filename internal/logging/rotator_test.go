package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriter_RotatesAndPrunes(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFileWriter(dir, "twinview.log", 1, 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	// Shrink the threshold so a couple of writes trigger rotation.
	w.maxSize = 16

	for i := 0; i < 4; i++ {
		_, err := w.Write([]byte("0123456789abcdef"))
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var backups int
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "twinview.log.") {
			backups++
		}
	}
	assert.Equal(t, 1, backups)
	assert.FileExists(t, filepath.Join(dir, "twinview.log"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", ParseLevel("DEBUG").String())
	assert.Equal(t, "warn", ParseLevel("warning").String())
	assert.Equal(t, "info", ParseLevel("nonsense").String())
}

func TestTruncateURL(t *testing.T) {
	assert.Equal(t, "https://a.example", TruncateURL("https://a.example", 60))
	assert.Equal(t, "https:...", TruncateURL("https://a.example/page2", 9))
}
