package helpers

import (
	"net/url"
	"strings"
)

// ResolveURL resolves a possibly relative href against the page it was found on.
// Scheme-relative links ("//host/path") get an https scheme.
func ResolveURL(pageURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return href
	}

	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() {
		return href
	}
	return base.ResolveReference(ref).String()
}

// ContainsFold reports whether s contains substr, ignoring ASCII/Unicode case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
