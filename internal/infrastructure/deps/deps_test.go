package deps

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber map[string]string

func (f fakeProber) ModVersion(_ context.Context, pkg string) (string, error) {
	v, ok := f[pkg]
	if !ok {
		return "", ErrPkgConfigPackageMissing
	}
	return v, nil
}

func TestAtLeast(t *testing.T) {
	assert.True(t, AtLeast("4.14.2", "4.10"))
	assert.True(t, AtLeast("2.42", "2.42.0"))
	assert.False(t, AtLeast("2.40.5", "2.42"))
	assert.False(t, AtLeast("3.24", "4.10"))
}

func TestCheck(t *testing.T) {
	results := Check(context.Background(), fakeProber{"gtk4": "4.16.3"}, RuntimeRequirements)
	require.Len(t, results, 2)

	assert.True(t, results[0].OK)
	assert.Equal(t, "4.16.3", results[0].Version)

	assert.False(t, results[1].OK)
	assert.True(t, errors.Is(results[1].Err, ErrPkgConfigPackageMissing))
}

func TestCommandEnvWithPrefix(t *testing.T) {
	t.Setenv("PKG_CONFIG_PATH", "/usr/lib/pkgconfig")
	var got string
	for _, kv := range CommandEnvWithPrefix("/opt/webkit") {
		if v, ok := strings.CutPrefix(kv, "PKG_CONFIG_PATH="); ok {
			got = v
		}
	}
	assert.True(t, strings.HasPrefix(got, "/opt/webkit/lib/pkgconfig:"))
	assert.True(t, strings.HasSuffix(got, ":/usr/lib/pkgconfig"))
}
