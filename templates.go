package pulse

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	templateSelector = cascadia.MustCompile("template")
	controlStripper  = strings.NewReplacer("\t", "", "\n", "")
)

// Templates returns the template table: name to raw markup.
func (c *Component) Templates() map[string]string {
	return c.collectTemplates(c.state)
}

// collectTemplates registers the scoped template elements and detaches
// them from the tree. Entries from earlier scans are kept since their
// nodes are gone.
func (c *Component) collectTemplates(state State) map[string]string {
	if c.templates != nil && state != Updating {
		return c.templates
	}

	if c.templates == nil {
		c.templates = make(map[string]string)
	}
	for _, n := range c.doc.scoped(c.element, templateSelector) {
		name, _ := getAttr(n, "name")
		c.templates[name] = controlStripper.Replace(innerHTML(n))
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
	return c.templates
}

// TemplateString substitutes model into the named template and returns
// the markup. The second result is false when no such template exists.
//
// Substitution is literal: values are not escaped, and a value that itself
// contains a {{key}} token may be replaced again by a later key.
func (c *Component) TemplateString(name string, model map[string]any) (string, bool) {
	raw, ok := c.Templates()[name]
	if !ok {
		return "", false
	}
	return substitute(raw, model), true
}

// TemplateNode substitutes model into the named template and parses the
// result. The markup must resolve to exactly one top-level node. The
// returned node is detached.
//
// Bindings and refs in the template survive registration, so a row built
// from a template is wired once it is attached and Update runs:
//
//	<ul ref="items"></ul>
//	<template name="item"><li><button onclick="toggle">{{title}}</button></li></template>
//
//	row, err := c.TemplateNode("item", map[string]any{
//	    "title": html.EscapeString(todo.Title),
//	})
//	if err != nil {
//	    return err
//	}
//	c.Ref("items").Node().AppendChild(row)
//	return c.Update()
//
// Values are substituted unescaped. An unknown name returns an error
// wrapping ErrTemplateNotFound; markup with zero or several roots returns
// a *TemplateShapeError.
func (c *Component) TemplateNode(name string, model map[string]any) (*html.Node, error) {
	markup, ok := c.TemplateString(name, model)
	if !ok {
		return nil, fmt.Errorf("%w: %s: %q", ErrTemplateNotFound, c.selector, name)
	}

	nodes, err := parseFragment(markup)
	if err != nil {
		return nil, fmt.Errorf("pulse: %s: template %q: %w", c.selector, name, err)
	}
	if len(nodes) != 1 {
		return nil, &TemplateShapeError{Selector: c.selector, Template: name, Roots: len(nodes)}
	}
	return nodes[0], nil
}

// Template is the combined form: a string when asString is set, otherwise
// a parsed node. An unknown name yields (nil, nil).
func (c *Component) Template(name string, model map[string]any, asString bool) (any, error) {
	if _, ok := c.Templates()[name]; !ok {
		return nil, nil
	}
	if asString {
		s, _ := c.TemplateString(name, model)
		return s, nil
	}
	n, err := c.TemplateNode(name, model)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func substitute(markup string, model map[string]any) string {
	keys := make([]string, 0, len(model))
	for k := range model {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		re := regexp.MustCompile(`\{\{\s*` + regexp.QuoteMeta(k) + `\s*\}\}`)
		value := fmt.Sprint(model[k])
		markup = re.ReplaceAllLiteralString(markup, value)
	}
	return markup
}

func innerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if err := html.Render(&buf, ch); err != nil {
			break
		}
	}
	return buf.String()
}

// parseFragment parses markup in a body context. Whitespace-only text at
// the top level is dropped.
func parseFragment(markup string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, err
	}
	nodes := parsed[:0]
	for _, n := range parsed {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
