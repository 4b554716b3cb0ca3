// Package build carries version metadata injected via ldflags.
package build

import "fmt"

// Info holds build-time information.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// String renders the one-line version banner.
func (i Info) String() string {
	version := i.Version
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("twinview %s (commit %s, built %s, %s)", version, orUnknown(i.Commit), orUnknown(i.BuildDate), orUnknown(i.GoVersion))
}

// RepoURL returns the project repository URL.
func RepoURL() string {
	return "https://github.com/bnema/twinview"
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
