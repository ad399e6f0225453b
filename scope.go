package pulse

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// IsNested reports whether node belongs to a component nested inside
// container. It walks up from node and returns true as soon as an ancestor
// strictly between node and container carries the marker attribute.
func IsNested(node, container *html.Node, marker string) bool {
	if node == container {
		return false
	}
	for p := node.Parent; p != nil && p != container; p = p.Parent {
		if hasAttr(p, marker) {
			return true
		}
	}
	return false
}

// insideTemplate reports whether node sits in the content of a template
// element below container.
func insideTemplate(node, container *html.Node) bool {
	for p := node.Parent; p != nil && p != container; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Template {
			return true
		}
	}
	return false
}

func compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}
	return sel, nil
}

// queryAll matches descendants of root only, like querySelectorAll.
func queryAll(root *html.Node, sel cascadia.Selector) []*html.Node {
	matches := sel.MatchAll(root)
	if len(matches) > 0 && matches[0] == root {
		return matches[1:]
	}
	return matches
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	_, ok := getAttr(n, key)
	return ok
}

func removeAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}

// describe renders the start tag of n for diagnostics.
func describe(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(n.Data)
	for _, a := range n.Attr {
		sb.WriteString(" ")
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(a.Val))
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	return sb.String()
}
