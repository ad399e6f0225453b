package pulse

import (
	"reflect"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// reserved lists the base capabilities a behavior may not redefine.
var reserved = []string{"update", "container", "root", "el", "new", "template", "mount", "options"}

// Reserved returns the reserved member names, lower-cased.
func Reserved() []string {
	return append([]string(nil), reserved...)
}

func isReserved(name string) bool {
	lower := strings.ToLower(name)
	for _, r := range reserved {
		if lower == r {
			return true
		}
	}
	return false
}

// Mounted is the result of a mount: one instance per matched container,
// in document order. A nil *Mounted means nothing matched.
type Mounted struct {
	instances []*Component
}

// Len returns the number of instances.
func (m *Mounted) Len() int {
	if m == nil {
		return 0
	}
	return len(m.instances)
}

// Instance returns the instance when exactly one container matched.
func (m *Mounted) Instance() *Component {
	if m.Len() != 1 {
		return nil
	}
	return m.instances[0]
}

// Instances returns all instances in document order.
func (m *Mounted) Instances() []*Component {
	if m == nil {
		return nil
	}
	return append([]*Component(nil), m.instances...)
}

// IsList reports whether more than one container matched.
func (m *Mounted) IsList() bool {
	return m.Len() > 1
}

// Mount finds every element in doc whose marker attribute equals selector
// and builds one live instance per element. Each instance is updated once
// before it is returned, so its options, bindings, refs and templates are
// ready to use.
//
// The selector is compared with the attribute value as a plain string, not
// parsed as CSS. Containers inside <template> content are never matched.
//
// Example:
//
//	doc, err := pulse.ParseString(`
//	    <div pulse="counter" step="2">
//	        <b ref="count">0</b>
//	        <button onclick="increment">+</button>
//	    </div>`, pulse.Config{})
//
//	m, err := pulse.Mount(doc, "counter", func(c *pulse.Component) any {
//	    return &Counter{c: c}
//	}, map[string]string{"step": "1"})
//
//	counter := m.Instance().Behavior().(*Counter)
//
// opts are construction options; attributes on the container override
// them. def may be nil to get the base capabilities alone.
//
// When nothing matches, Mount logs a diagnostic and returns nil, nil. A
// behavior that redefines a reserved capability aborts the whole mount
// with a *ReservedNameError before any instance is wired.
func Mount(doc *Document, selector string, def Definition, opts map[string]string) (*Mounted, error) {
	return doc.mount(doc.root, selector, def, NewOptions(opts), nil)
}

// Mount mounts selector among the descendants of c's container. The new
// instances get c as their parent.
func (c *Component) Mount(selector string, def Definition, opts map[string]string) (*Mounted, error) {
	if c.state == Destroyed {
		return nil, ErrDestroyed
	}
	return c.doc.mount(c.element, selector, def, NewOptions(opts), c)
}

func (d *Document) mount(scope *html.Node, selector string, def Definition, opts *Options, parent *Component) (*Mounted, error) {
	elements := d.discover(scope, selector)
	if len(elements) == 0 {
		d.logger.Warn("no elements found for selector", zap.String("selector", selector))
		return nil, nil
	}

	built := make([]*Component, 0, len(elements))
	for _, el := range elements {
		c := newComponent(d, el, selector, opts, parent)
		if def != nil {
			c.behavior = def(c)
		}
		if err := checkReserved(selector, c.behavior); err != nil {
			return nil, err
		}
		built = append(built, c)
	}

	mounted := &Mounted{instances: make([]*Component, 0, len(built))}
	for _, c := range built {
		if err := c.Update(); err != nil {
			return nil, err
		}
		mounted.instances = append(mounted.instances, c)
		d.logger.Debug("component mounted",
			zap.String("selector", selector),
			zap.String("id", c.id),
			zap.Bool("nested", parent != nil))
	}
	return mounted, nil
}

// checkReserved validates the behavior's member names: struct fields in
// declaration order, then exported methods, then handler table keys.
func checkReserved(selector string, behavior any) error {
	if behavior == nil {
		return nil
	}

	t := reflect.TypeOf(behavior)
	st := t
	for st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() == reflect.Struct {
		for i := 0; i < st.NumField(); i++ {
			if name := st.Field(i).Name; isReserved(name) {
				return &ReservedNameError{Selector: selector, Name: name}
			}
		}
	}

	for i := 0; i < t.NumMethod(); i++ {
		if name := t.Method(i).Name; isReserved(name) {
			return &ReservedNameError{Selector: selector, Name: name}
		}
	}

	if p, ok := behavior.(HandlerProvider); ok {
		keys := make([]string, 0)
		for k := range p.PulseHandlers() {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if isReserved(k) {
				return &ReservedNameError{Selector: selector, Name: k}
			}
		}
	}
	return nil
}
