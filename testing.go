package pulse

import (
	"bytes"

	"golang.org/x/net/html"
)

// TestDocument parses markup with the default configuration.
//
//	doc, err := pulse.TestDocument(`<div pulse="counter"><button onclick="increment"></button></div>`)
func TestDocument(markup string) (*Document, error) {
	return ParseString(markup, Config{})
}

// TestMount parses markup and mounts selector in one step.
//
//	doc, m, err := pulse.TestMount(markup, "counter", newCounter, nil)
//	pulse.Click(doc, m.Instance().Ref("button").Node())
func TestMount(markup, selector string, def Definition, opts map[string]string) (*Document, *Mounted, error) {
	doc, err := TestDocument(markup)
	if err != nil {
		return nil, nil, err
	}
	m, err := Mount(doc, selector, def, opts)
	if err != nil {
		return nil, nil, err
	}
	return doc, m, nil
}

// Click dispatches a click at n.
func Click(doc *Document, n *html.Node) *Event {
	return doc.Dispatch(n, "click", nil)
}

// Fire dispatches an event of the given type at n.
func Fire(doc *Document, n *html.Node, eventType string, detail any) *Event {
	return doc.Dispatch(n, eventType, detail)
}

// OuterHTML renders n, or "" if rendering fails.
func OuterHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	return getAttr(n, key)
}
