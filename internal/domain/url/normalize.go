// Package url provides address handling for surface navigation.
package url

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Normalize turns user input into a loadable address.
// Bare hosts get https://, localhost gets http://, existing local paths
// become file:// URLs. Anything else is returned unchanged.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if hasScheme(input) {
		return input
	}

	if isLocalhost(input) {
		return "http://" + input
	}

	if path, ok := localPath(input); ok {
		return "file://" + path
	}

	if LooksLikeURL(input) {
		return "https://" + input
	}
	return input
}

// LooksLikeURL reports whether input reads as an address rather than free text.
func LooksLikeURL(input string) bool {
	if input == "" {
		return false
	}
	if hasScheme(input) || isLocalhost(input) {
		return true
	}
	return strings.Contains(input, ".") && !strings.Contains(input, " ")
}

// IsWeb reports whether raw is an absolute http or https address.
func IsWeb(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// SameDocument reports whether a and b differ only by fragment.
func SameDocument(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	ua, errA := url.Parse(a)
	ub, errB := url.Parse(b)
	if errA != nil || errB != nil {
		return false
	}
	if ub.Fragment == "" && !strings.HasSuffix(b, "#") {
		return false
	}
	ua.Fragment, ub.Fragment = "", ""
	ua.RawFragment, ub.RawFragment = "", ""
	return ua.String() == ub.String()
}

// ExtractDomain returns the host of rawURL without a leading "www.".
func ExtractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

// Glyph stands in for a site favicon: the upper-cased first letter of the
// domain, or a bullet when there is none.
func Glyph(rawURL string) string {
	for _, r := range ExtractDomain(rawURL) {
		return strings.ToUpper(string(r))
	}
	return "•"
}

func hasScheme(input string) bool {
	for _, prefix := range []string{"http://", "https://", "file://", "about:", "data:", "javascript:"} {
		if strings.HasPrefix(strings.ToLower(input), prefix) {
			return true
		}
	}
	return false
}

func isLocalhost(input string) bool {
	host := input
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	return host == "localhost"
}

func localPath(input string) (string, bool) {
	if !strings.HasPrefix(input, "/") && !strings.HasPrefix(input, "./") && !strings.HasPrefix(input, "~/") {
		return "", false
	}
	path := input
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		path = filepath.Join(home, path[2:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	if _, err := os.Stat(abs); err != nil {
		return "", false
	}
	return abs, true
}
