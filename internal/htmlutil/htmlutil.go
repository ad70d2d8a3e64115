package htmlutil

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText returns the text of a node and all of its descendants, the
// contents of script and style elements are left out.
func GetText(node *html.Node) string {
	var sb strings.Builder
	writeText(node, &sb)
	return sb.String()
}

func writeText(node *html.Node, sb *strings.Builder) {
	if node == nil {
		return
	}
	switch {
	case node.Type == html.TextNode:
		sb.WriteString(node.Data)
		return
	case node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style"):
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeText(child, sb)
	}
}

// Text is the cleaned up text of the first node of the selection, "" if it is empty.
func Text(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return CleanText(GetText(sel.Nodes[0]))
}

// OwnText returns the text nodes directly under the selection, skipping
// the text of nested elements.
func OwnText(sel *goquery.Selection) []string {
	var texts []string
	for _, n := range sel.Nodes {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				texts = append(texts, child.Data)
			}
		}
	}
	return texts
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CleanText strips non-printable characters and collapses whitespace.
func CleanText(s string) string {
	cleaned := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			cleaned.WriteRune(c)
		}
	}
	text := strings.TrimSpace(cleaned.String())
	return innerWhitespace.ReplaceAllString(text, " ")
}

// Resolve makes href absolute against the page it was found on.
func Resolve(base *url.URL, href string) (*url.URL, error) {
	link, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, err
	}
	return base.ResolveReference(link), nil
}

// StripParams removes the given query parameters from a url, unparseable
// urls are returned unchanged.
func StripParams(rawUrl string, params ...string) string {
	parsed, err := url.Parse(rawUrl)
	if err != nil {
		return rawUrl
	}
	query := parsed.Query()
	changed := false
	for key := range query {
		if slices.Contains(params, key) {
			query.Del(key)
			changed = true
		}
	}
	if !changed {
		return rawUrl
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
