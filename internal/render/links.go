package render

import (
	"net/url"
	"strings"
)

// FilterRankingURL decides whether a target row's outbound URL is worth
// showing as a ranking destination. Same-site search-results pages are not
// meaningful destinations, so they are dropped before the URL is ever
// rendered. Returns the cleaned URL, or "" when the link should be hidden.
func FilterRankingURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if isSearchPath(u.Path) {
		return ""
	}
	return u.String()
}

func isSearchPath(path string) bool {
	for _, seg := range strings.Split(strings.ToLower(path), "/") {
		if seg == "search" {
			return true
		}
	}
	return false
}
