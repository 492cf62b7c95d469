// Package links extracts URLs from scanned content and applies the
// local suspicion heuristics that do not need the remote classifier.
package links

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/baitblock/baitblock/internal/core"
)

var (
	urlPattern  = regexp.MustCompile(`(?i)https?://[^\s<>"]+`)
	hrefPattern = regexp.MustCompile(`(?i)href=["']([^"']+)["']`)
	ipHost      = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)
)

var suspiciousTLDs = []string{".tk", ".ml", ".ga", ".cf", ".xyz"}

var shortenerHosts = []string{"bit.ly", "tinyurl", "goo.gl", "t.co"}

// typosquat variants of commonly impersonated brands.
var typosquatVariants = map[string][]string{
	"google":    {"goog1e", "g00gle", "googie"},
	"microsoft": {"microsft", "microsooft", "micr0soft"},
	"amazon":    {"amaz0n", "amazom", "arnazon"},
}

// Extract finds all URLs in the rendered text and raw HTML of a
// message and flags each one.
func Extract(html, text string) []core.Link {
	seen := make(map[string]bool)
	var found []string

	for _, u := range urlPattern.FindAllString(text, -1) {
		u = strings.TrimRight(u, ".,;!?")
		if !seen[u] {
			seen[u] = true
			found = append(found, u)
		}
	}

	for _, m := range hrefPattern.FindAllStringSubmatch(html, -1) {
		if u := m[1]; !seen[u] {
			seen[u] = true
			found = append(found, u)
		}
	}

	links := make([]core.Link, 0, len(found))
	for _, u := range found {
		links = append(links, core.Link{URL: u, Suspicious: IsSuspicious(u)})
	}
	return links
}

// IsSuspicious applies the local URL heuristics. An unparseable URL is
// treated as suspicious rather than an error: fail closed.
func IsSuspicious(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return true
	}
	host := strings.ToLower(parsed.Hostname())

	if !strings.EqualFold(parsed.Scheme, "https") {
		return true
	}

	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(host, tld) {
			return true
		}
	}

	if ipHost.MatchString(host) {
		return true
	}

	for _, shortener := range shortenerHosts {
		if strings.Contains(host, shortener) {
			return true
		}
	}

	for _, variants := range typosquatVariants {
		for _, variant := range variants {
			if strings.Contains(host, variant) {
				return true
			}
		}
	}

	return false
}

// Reasons converts flagged links into reason phrases consumable by the
// department multiplier and result panels.
func Reasons(links []core.Link) []string {
	var reasons []string
	for _, link := range links {
		if link.Suspicious {
			reasons = append(reasons, "Suspicious link detected: "+link.URL)
		}
	}
	return reasons
}
