package pulse

import (
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var refSelector = cascadia.MustCompile("[ref], [root]")

// Ref holds the element, or ordered group of elements, stored under one
// key. A key seen a second time promotes the single element to a group.
type Ref struct {
	nodes []*html.Node
}

// Node returns the first element.
func (r *Ref) Node() *html.Node {
	if r == nil || len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// Nodes returns all elements in document order.
func (r *Ref) Nodes() []*html.Node {
	if r == nil {
		return nil
	}
	return append([]*html.Node(nil), r.nodes...)
}

// Len returns the number of elements.
func (r *Ref) Len() int {
	if r == nil {
		return 0
	}
	return len(r.nodes)
}

// IsGroup reports whether the key was promoted to a group.
func (r *Ref) IsGroup() bool {
	return r.Len() > 1
}

// Refs maps ref/root keys to their elements.
type Refs map[string]*Ref

// Root returns a copy of the ref table. Adding or removing keys in the
// result does not affect the component; call Update to rescan.
func (c *Component) Root() Refs {
	refs := c.collectRefs(c.state)
	out := make(Refs, len(refs))
	for k, v := range refs {
		out[k] = v
	}
	return out
}

// Ref returns the entry for key, or nil.
func (c *Component) Ref(key string) *Ref {
	return c.collectRefs(c.state)[key]
}

// collectRefs rebuilds the table while updating, or when none exists yet.
// Elements are never removed from the tree.
func (c *Component) collectRefs(state State) Refs {
	if c.refs != nil && state != Updating {
		return c.refs
	}

	refs := make(Refs)
	for _, n := range c.doc.scoped(c.element, refSelector) {
		key, _ := getAttr(n, "ref")
		if key == "" {
			key, _ = getAttr(n, "root")
		}
		if ref, ok := refs[key]; ok {
			ref.nodes = append(ref.nodes, n)
			continue
		}
		refs[key] = &Ref{nodes: []*html.Node{n}}
	}
	c.refs = refs
	return c.refs
}
