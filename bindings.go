package pulse

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// wireBindings attaches the handler named by each binding attribute in
// scope and strips the attribute, so a second pass finds nothing to wire.
func (c *Component) wireBindings(state State) {
	if state != Updating {
		return
	}

	for _, attr := range c.doc.bindings {
		sel, err := compile("[" + attr + "]")
		if err != nil {
			c.doc.logger.Warn("binding attribute is not a valid selector",
				zap.String("binding", attr),
				zap.Error(err))
			continue
		}
		eventType := strings.TrimPrefix(attr, "on")

		for _, el := range c.doc.scoped(c.element, sel) {
			name, _ := getAttr(el, attr)
			if h := c.resolveHandler(name); h != nil {
				c.doc.AddEventListener(el, eventType, bindListener(h, el))
			} else {
				c.doc.logger.Warn("handler not defined",
					zap.String("selector", c.selector),
					zap.String("handler", name),
					zap.String("binding", attr),
					zap.String("element", describe(el)))
			}
			removeAttr(el, attr)
		}
	}
}

func bindListener(h Handler, el *html.Node) Listener {
	return func(ev *Event) {
		h(ev, el)
	}
}

// resolveHandler looks name up on the behavior: the PulseHandlers table
// first, then an exported method named name or Name.
func (c *Component) resolveHandler(name string) Handler {
	if c.behavior == nil || name == "" {
		return nil
	}

	if p, ok := c.behavior.(HandlerProvider); ok {
		if h := p.PulseHandlers()[name]; h != nil {
			return h
		}
	}

	v := reflect.ValueOf(c.behavior)
	for _, candidate := range []string{name, upperFirst(name)} {
		m := v.MethodByName(candidate)
		if !m.IsValid() {
			continue
		}
		if h := asHandler(m.Interface()); h != nil {
			return h
		}
	}
	return nil
}

// asHandler adapts the method shapes a behavior may use for handlers.
func asHandler(fn any) Handler {
	switch f := fn.(type) {
	case func(*Event, *html.Node):
		return f
	case Handler:
		return f
	case func(*Event):
		return func(ev *Event, _ *html.Node) { f(ev) }
	case func():
		return func(*Event, *html.Node) { f() }
	default:
		return nil
	}
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
