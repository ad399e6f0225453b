package pulse

import "golang.org/x/net/html"

// Definition builds the behavior for one component instance. It is called
// once per matched container, after the base capabilities are in place,
// and returns the value whose methods serve as event handlers (usually a
// pointer to a user struct). Returning nil is allowed.
//
//	type Counter struct {
//	    c     *pulse.Component
//	    count int
//	}
//
//	func (x *Counter) Increment(ev *pulse.Event, el *html.Node) { x.count++ }
//
//	pulse.Mount(doc, "counter", func(c *pulse.Component) any {
//	    return &Counter{c: c}
//	}, nil)
//
// Behaviors keep the component in a named field. Members named after a base
// capability (update, container, root, el, new, template, mount, options)
// are rejected at mount time.
type Definition func(c *Component) any

// Handler is the resolved form of a binding target.
type Handler func(ev *Event, el *html.Node)

// HandlerProvider is implemented by behaviors that list their handlers
// explicitly. pulse generate emits this method so binding resolution does
// not need reflection.
type HandlerProvider interface {
	PulseHandlers() map[string]Handler
}
