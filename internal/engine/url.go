// ABOUTME: URL extraction from free-form message text
// ABOUTME: The first well-formed URL wins; bare www. hosts get a scheme for fetching only

package engine

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoURLFound is returned when message text contains no recognizable URL.
var ErrNoURLFound = errors.New("no URL found in message")

var urlPattern = regexp.MustCompile(`https?://[^\s<>"]+|www\.[^\s<>"]+`)

// ExtractURL returns the first well-formed URL in text, or ErrNoURLFound.
// The URL is kept exactly as the user wrote it; it is the cache key.
func ExtractURL(text string) (string, error) {
	match := urlPattern.FindString(text)
	if match == "" {
		return "", ErrNoURLFound
	}
	return match, nil
}

// fetchableURL returns a URL usable for an HTTP request. Bare www. URLs
// get an https scheme; the cache key stays unprefixed.
func fetchableURL(url string) string {
	if strings.HasPrefix(url, "www.") {
		return "https://" + url
	}
	return url
}
