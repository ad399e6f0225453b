// Package components holds the behaviors mounted by the example page.
package components

import (
	"fmt"

	"github.com/pthm/pulse"
	"golang.org/x/net/html"
)

// Mount wires every example component into doc.
func Mount(doc *pulse.Document, store TodoStore) error {
	reg := pulse.NewRegistry()
	reg.Add("counter", NewCounter, nil)
	reg.Add("todos", NewTodoList(store), map[string]string{"title": "Todos"})

	mounted, err := reg.MountAll(doc)
	if err != nil {
		return fmt.Errorf("mount: %w", err)
	}
	for _, c := range mounted["todos"].Instances() {
		if err := c.Behavior().(*TodoList).Refresh(); err != nil {
			return fmt.Errorf("render todos: %w", err)
		}
	}
	return nil
}

func setText(n *html.Node, text string) {
	if n == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func setAttr(n *html.Node, key, val string) {
	if n == nil {
		return
	}
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// closest returns the nearest ancestor-or-self carrying attribute key.
func closest(n *html.Node, key string) *html.Node {
	for ; n != nil; n = n.Parent {
		if _, ok := pulse.Attr(n, key); ok {
			return n
		}
	}
	return nil
}
