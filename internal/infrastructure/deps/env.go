package deps

import (
	"os"
	"path/filepath"
	"strings"
)

// CommandEnvWithPrefix returns an environment suitable for exec.Cmd.Env.
// It prepends prefix-derived pkg-config paths to the current environment.
func CommandEnvWithPrefix(prefix string) []string {
	if strings.TrimSpace(prefix) == "" {
		return os.Environ()
	}
	prefix = filepath.Clean(prefix)
	dirs := []string{
		filepath.Join(prefix, "lib", "pkgconfig"),
		filepath.Join(prefix, "lib64", "pkgconfig"),
		filepath.Join(prefix, "share", "pkgconfig"),
	}

	env := os.Environ()
	out := make([]string, 0, len(env)+1)
	found := false
	for _, kv := range env {
		k, v, _ := strings.Cut(kv, "=")
		if k == "PKG_CONFIG_PATH" {
			kv = k + "=" + prependPathList(v, dirs...)
			found = true
		}
		out = append(out, kv)
	}
	if !found {
		out = append(out, "PKG_CONFIG_PATH="+prependPathList("", dirs...))
	}
	return out
}

func prependPathList(existing string, values ...string) string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(values)+4)

	add := func(p string) {
		p = strings.TrimSpace(p)
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, v := range values {
		add(v)
	}
	if existing != "" {
		for _, v := range strings.Split(existing, ":") {
			add(v)
		}
	}
	return strings.Join(out, ":")
}
