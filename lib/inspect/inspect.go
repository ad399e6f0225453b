// Package inspect reports the component structure of a pulse document
// without mounting it: containers, their resolved options, refs, templates,
// declarative bindings and nested components.
package inspect

import (
	"fmt"
	"sort"

	"golang.org/x/net/html"

	"github.com/pthm/pulse"
)

// Report describes one container and the components nested in it.
type Report struct {
	Selector  string
	Tag       string
	Options   []Option
	Refs      map[string]int // key to element count
	Templates []string
	Bindings  []Binding
	Children  []*Report
}

// Option is one resolved option in key order.
type Option struct {
	Key   string
	Value string
}

// Binding is a binding attribute found in a container's scope.
type Binding struct {
	Attr    string
	Handler string
	Tag     string
}

// Build returns a report for every top-level container in doc.
func Build(doc *pulse.Document) ([]*Report, error) {
	var reports []*Report
	for _, n := range doc.Containers() {
		if pulse.IsNested(n, doc.Root(), doc.Marker()) {
			continue
		}
		r, err := build(doc, n)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func build(doc *pulse.Document, container *html.Node) (*Report, error) {
	selector, _ := pulse.Attr(container, doc.Marker())
	r := &Report{
		Selector: selector,
		Tag:      container.Data,
		Refs:     map[string]int{},
	}

	opts := doc.OptionsOf(container)
	for _, k := range opts.Keys() {
		r.Options = append(r.Options, Option{Key: k, Value: opts.Value(k)})
	}

	refs, err := doc.Scoped(container, "[ref], [root]")
	if err != nil {
		return nil, err
	}
	for _, n := range refs {
		key, _ := pulse.Attr(n, "ref")
		if key == "" {
			key, _ = pulse.Attr(n, "root")
		}
		r.Refs[key]++
	}

	templates, err := doc.Scoped(container, "template")
	if err != nil {
		return nil, err
	}
	for _, n := range templates {
		name, _ := pulse.Attr(n, "name")
		r.Templates = append(r.Templates, name)
	}
	sort.Strings(r.Templates)

	for _, attr := range doc.Bindings() {
		nodes, err := doc.Scoped(container, "["+attr+"]")
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			handler, _ := pulse.Attr(n, attr)
			r.Bindings = append(r.Bindings, Binding{Attr: attr, Handler: handler, Tag: n.Data})
		}
	}

	children, err := doc.Scoped(container, "["+doc.Marker()+"]")
	if err != nil {
		return nil, err
	}
	for _, n := range children {
		child, err := build(doc, n)
		if err != nil {
			return nil, err
		}
		r.Children = append(r.Children, child)
	}
	return r, nil
}

// RefKeys returns the ref keys in sorted order.
func (r *Report) RefKeys() []string {
	keys := make([]string, 0, len(r.Refs))
	for k := range r.Refs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of containers in r, including r itself.
func (r *Report) Count() int {
	n := 1
	for _, c := range r.Children {
		n += c.Count()
	}
	return n
}

func (r *Report) String() string {
	return fmt.Sprintf("%s <%s>", r.Selector, r.Tag)
}
