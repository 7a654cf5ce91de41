// ABOUTME: HTML metadata extraction for fetched pages
// ABOUTME: Pulls title, meta description, and subresource URLs out of the parse tree

package fetch

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// metadata is what the fetcher needs from a page's HTML.
type metadata struct {
	title        string
	description  string
	resourceURLs []string
}

// extractMetadata parses the HTML and walks the tree once. A parse failure
// yields empty metadata; x/net/html tolerates most malformed input anyway.
func extractMetadata(body, pageURL string) metadata {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return metadata{}
	}

	base, _ := url.Parse(pageURL)

	var meta metadata
	seen := make(map[string]bool)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if meta.title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					meta.title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				if meta.description == "" && attr(n, "name") == "description" {
					meta.description = strings.TrimSpace(attr(n, "content"))
				}
			case "img", "script":
				addResource(&meta, base, attr(n, "src"), seen)
			case "link":
				if attr(n, "rel") == "stylesheet" {
					addResource(&meta, base, attr(n, "href"), seen)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return meta
}

// addResource resolves ref against the page URL and records it once.
func addResource(meta *metadata, base *url.URL, ref string, seen map[string]bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "data:") {
		return
	}

	abs := ref
	if base != nil {
		if u, err := base.Parse(ref); err == nil {
			abs = u.String()
		}
	}
	if !strings.HasPrefix(abs, "http://") && !strings.HasPrefix(abs, "https://") {
		return
	}

	if !seen[abs] {
		seen[abs] = true
		meta.resourceURLs = append(meta.resourceURLs, abs)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
