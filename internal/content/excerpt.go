package content

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Excerpt extracts the leading plain text of a rendered HTML fragment,
// capped at maxWords words. Truncation is marked with an ellipsis.
func Excerpt(fragment []byte, maxWords int) string {
	if maxWords <= 0 {
		return ""
	}

	doc, err := html.Parse(bytes.NewReader(fragment))
	if err != nil {
		return ""
	}

	var words []string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.TextNode {
			for _, w := range strings.Fields(n.Data) {
				words = append(words, w)
				if len(words) >= maxWords {
					return false
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	complete := walk(doc)

	text := strings.Join(words, " ")
	if !complete {
		text += "…"
	}
	return text
}
