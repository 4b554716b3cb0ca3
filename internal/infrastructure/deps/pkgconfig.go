// Package deps probes the native libraries the GTK surface host links against.
package deps

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var (
	ErrPkgConfigMissing        = errors.New("pkg-config not found")
	ErrPkgConfigPackageMissing = errors.New("package not found")
)

// Requirement is a native library and its minimum version.
type Requirement struct {
	Package string
	Min     string
}

// RuntimeRequirements are what the gtk build needs.
var RuntimeRequirements = []Requirement{
	{Package: "gtk4", Min: "4.10"},
	{Package: "webkitgtk-6.0", Min: "2.42"},
}

// VersionProber returns the installed version of a pkg-config package.
type VersionProber interface {
	ModVersion(ctx context.Context, pkg string) (string, error)
}

// PkgConfigProbe uses pkg-config to query module versions.
type PkgConfigProbe struct {
	// Prefix adds a manual install prefix to the pkg-config search path.
	Prefix string
}

// ModVersion implements VersionProber.
func (p *PkgConfigProbe) ModVersion(ctx context.Context, pkg string) (string, error) {
	pc, err := exec.LookPath("pkg-config")
	if err != nil {
		return "", ErrPkgConfigMissing
	}

	cmd := exec.CommandContext(ctx, pc, "--modversion", pkg)
	cmd.Env = CommandEnvWithPrefix(p.Prefix)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s: %w: %s", pkg, ErrPkgConfigPackageMissing, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

// Result is the outcome of checking one requirement.
type Result struct {
	Requirement
	Version string
	OK      bool
	Err     error
}

// Check probes every requirement.
func Check(ctx context.Context, prober VersionProber, reqs []Requirement) []Result {
	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		r := Result{Requirement: req}
		r.Version, r.Err = prober.ModVersion(ctx, req.Package)
		if r.Err == nil {
			r.OK = AtLeast(r.Version, req.Min)
		}
		results = append(results, r)
	}
	return results
}

// AtLeast compares dotted numeric versions. Missing parts count as zero.
func AtLeast(version, minVersion string) bool {
	have := strings.Split(version, ".")
	want := strings.Split(minVersion, ".")
	for i := 0; i < max(len(have), len(want)); i++ {
		h, w := part(have, i), part(want, i)
		if h != w {
			return h > w
		}
	}
	return true
}

func part(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, _ := strconv.Atoi(parts[i])
	return n
}
