package pulse

import (
	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// Component is the live instance bound to one container element. It
// carries the base capabilities; user behavior lives in Behavior().
//
// A Definition receives the *Component before any scan has run and returns
// the behavior. Behaviors keep the component in a named field and reach
// the markup through it:
//
//	type TodoList struct {
//	    c     *pulse.Component
//	    store TodoStore
//	}
//
//	func (l *TodoList) Add(ev *pulse.Event, el *html.Node) {
//	    row, err := l.c.TemplateNode("item", map[string]any{"title": "new"})
//	    if err != nil {
//	        return
//	    }
//	    l.c.Ref("items").Node().AppendChild(row)
//	    l.c.Update()
//	}
//
// Refs, templates and options are cached between updates. Code that
// changes the markup calls Update to rescan; the scan only sees elements
// the container owns, so nested containers and template content are left
// alone.
//
// A Component is not safe for concurrent use. Event dispatch is
// synchronous, so handlers run on the caller's goroutine.
type Component struct {
	id       string
	doc      *Document
	element  *html.Node
	selector string
	parent   *Component
	behavior any

	options   *Options
	state     State
	refs      Refs
	templates map[string]string
	cached    map[string]*Ref
}

// newComponent is the instance factory: one call per matched element, no
// shared mutable state between instances.
func newComponent(doc *Document, element *html.Node, selector string, opts *Options, parent *Component) *Component {
	return &Component{
		id:       uuid.NewString(),
		doc:      doc,
		element:  element,
		selector: selector,
		parent:   parent,
		options:  opts.clone(),
		cached:   make(map[string]*Ref),
	}
}

// ID returns a unique identifier for this instance.
func (c *Component) ID() string {
	return c.id
}

// Selector returns the marker value this instance was mounted with.
func (c *Component) Selector() string {
	return c.selector
}

// Document returns the document the instance lives in.
func (c *Component) Document() *Document {
	return c.doc
}

// Container returns the marker element.
func (c *Component) Container() *html.Node {
	return c.element
}

// Parent returns the instance that mounted this one, or nil.
func (c *Component) Parent() *Component {
	return c.parent
}

// Behavior returns the value built by the Definition.
func (c *Component) Behavior() any {
	return c.behavior
}

// Options returns the instance's option map: construction-time options
// merged with the container's attributes.
func (c *Component) Options() *Options {
	return c.options
}

// New creates a detached element owned by the instance's document.
func (c *Component) New(tag string) *html.Node {
	return c.doc.CreateElement(tag)
}

// El returns the container's descendants matching selector. Results are
// cached per selector; pass refresh to query again. The query is not
// restricted to the component's own scope.
func (c *Component) El(selector string, refresh bool) (*Ref, error) {
	if ref, ok := c.cached[selector]; ok && !refresh {
		return ref, nil
	}
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	nodes := queryAll(c.element, sel)
	if len(nodes) == 0 {
		delete(c.cached, selector)
		return nil, nil
	}
	ref := &Ref{nodes: nodes}
	c.cached[selector] = ref
	return ref, nil
}

// Destroy detaches the container from the document and drops every
// listener wired inside it. The instance cannot be updated afterwards.
func (c *Component) Destroy() {
	if c.state == Destroyed {
		return
	}
	if p := c.element.Parent; p != nil {
		p.RemoveChild(c.element)
	}
	c.doc.removeListeners(c.element)
	c.cached = make(map[string]*Ref)
	c.state = Destroyed
}
