package pulse

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
)

// Templ returns a templ component that renders the container's current
// markup. Use it to embed a live component in a templ layout.
func (c *Component) Templ() templ.Component {
	return nodeComponent(c.element)
}

// Templ returns a templ component that renders the whole document.
func (d *Document) Templ() templ.Component {
	return nodeComponent(d.root)
}

func nodeComponent(n *html.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return html.Render(w, n)
	})
}

// MarkerAttrs returns the attributes that make an element mountable as
// selector. Non-empty opts are packed into the <marker>-props attribute
// with cfg.Encoder, sealed when sealed is set.
//
//	<div { pulse.Config{Encoder: enc}.MarkerAttrs("counter", opts, false)... }>
func (cfg Config) MarkerAttrs(selector string, opts map[string]string, sealed bool) (templ.Attributes, error) {
	marker := cfg.marker()
	attrs := templ.Attributes{marker: selector}
	if len(opts) == 0 || cfg.Encoder == nil {
		return attrs, nil
	}
	encoded, err := cfg.Encoder.EncodeOptions(opts, sealed)
	if err != nil {
		return nil, err
	}
	attrs[marker+"-props"] = encoded
	return attrs, nil
}

// Render writes a templ component to the HTTP response.
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    pulse.Render(w, r, doc.Templ())
//	}
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}
