// Package pulse attaches behavior to existing HTML markup.
//
// Markup is parsed into a Document. Containers are elements carrying the
// marker attribute (pulse by default); mounting a selector builds one live
// Component per container whose marker value matches. There is no virtual
// DOM and no diffing: behaviors mutate the tree directly and call Update to
// pick up what they changed.
//
// # Core Concepts
//
// A Definition is a factory called once per matched container. It receives
// the instance's *Component and returns the behavior, usually a pointer to
// a user struct that keeps the component in a named field:
//
//	type Counter struct {
//	    c     *pulse.Component
//	    count int
//	}
//
//	func (b *Counter) Increment(ev *pulse.Event, el *html.Node) {
//	    b.count++
//	    b.c.Ref("count").Node().FirstChild.Data = strconv.Itoa(b.count)
//	}
//
//	m, err := pulse.Mount(doc, "counter", func(c *pulse.Component) any {
//	    return &Counter{c: c}
//	}, nil)
//
// Behaviors may not redefine a base capability. Fields, exported methods
// and handler keys named update, container, root, el, new, template, mount
// or options (in any case) fail the mount with a *ReservedNameError before
// any instance is wired.
//
// # Update
//
// Update rescans the container in a fixed order:
//
//  1. Options: construction options merged with the container's attributes
//     and decoded <marker>-props
//  2. Bindings: onclick="name" and friends become listeners; the attribute
//     is removed
//  3. Refs: elements with ref or root attributes, keyed by value
//  4. Templates: <template name="..."> elements are recorded and detached
//
// Each scan is scoped: elements inside a nested container belong to that
// container and are skipped.
//
// # Events
//
// The Document owns a listener table. Dispatch delivers an event to the
// target and then to its ancestors; mouseenter, mouseleave and scroll do
// not bubble. Tests and servers drive behaviors the same way:
//
//	pulse.Click(doc, button)
//	doc.Dispatch(input, "change", "new value")
//
// # Templates
//
// Template markup is filled with {{key}} tokens from a model. Substitution
// is literal and unescaped; escape untrusted values before passing them in.
//
//	row, err := c.TemplateNode("row", map[string]any{"title": html.EscapeString(title)})
//
// # Signed Options
//
// Options can travel with the markup in a <marker>-props attribute encoded
// by Config.MarkerAttrs. Signed mode keeps the values readable but tamper
// evident; sealed mode encrypts them. A document decodes them only when it
// has an Encoder with the same key.
//
// # Code Generation
//
// Binding targets are resolved through reflection unless the behavior
// implements HandlerProvider. The pulse command generates that method:
//
//	pulse generate ./...
//
// # Logging
//
// Diagnostics (unmatched selectors, missing handlers, undecodable props) go
// to a zap logger: Config.Logger, or the package logger set with SetLogger.
package pulse
