package pulse

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultMarker is the attribute that identifies component containers.
const DefaultMarker = "pulse"

// DefaultBindings lists the declarative event attributes wired by Update,
// in the order they are scanned.
var DefaultBindings = []string{
	"onclick",
	"onchange",
	"oninput",
	"onmouseenter",
	"onmouseleave",
	"onscroll",
}

// Config configures a Document. Zero values fall back to the defaults.
type Config struct {
	// Marker is the attribute naming mountable containers. Its mere presence
	// on an element also marks a nested-component boundary.
	Marker string

	// Bindings is the ordered table of recognized binding attributes.
	Bindings []string

	// Logger receives diagnostics. Defaults to the package logger.
	Logger *zap.Logger

	// Encoder decodes signed option maps from the <marker>-props attribute.
	// When nil the attribute is ignored.
	Encoder *Encoder
}

func (cfg Config) marker() string {
	if cfg.Marker == "" {
		return DefaultMarker
	}
	return cfg.Marker
}

func (cfg Config) bindings() []string {
	if len(cfg.Bindings) == 0 {
		return append([]string(nil), DefaultBindings...)
	}
	return append([]string(nil), cfg.Bindings...)
}

// Document is the host for a live HTML tree. It owns the listener table
// that binding attributes are wired into and delivers events synchronously.
//
// A Document is meant to be driven from a single goroutine. The tree itself
// is not locked; only the listener table is guarded.
type Document struct {
	root     *html.Node
	marker   string
	bindings []string
	logger   *zap.Logger
	encoder  *Encoder

	mu        sync.Mutex
	listeners map[*html.Node]map[string][]Listener
}

// NewDocument wraps an existing tree.
func NewDocument(root *html.Node, cfg Config) *Document {
	logger := cfg.Logger
	if logger == nil {
		logger = Logger()
	}
	return &Document{
		root:      root,
		marker:    cfg.marker(),
		bindings:  cfg.bindings(),
		logger:    logger,
		encoder:   cfg.Encoder,
		listeners: make(map[*html.Node]map[string][]Listener),
	}
}

// Parse reads a full HTML document.
func Parse(r io.Reader, cfg Config) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("pulse: parse document: %w", err)
	}
	return NewDocument(root, cfg), nil
}

// ParseString is Parse over a string.
func ParseString(markup string, cfg Config) (*Document, error) {
	return Parse(strings.NewReader(markup), cfg)
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Marker returns the marker attribute name.
func (d *Document) Marker() string {
	return d.marker
}

// PropsAttribute returns the attribute carrying encoded options.
func (d *Document) PropsAttribute() string {
	return d.marker + "-props"
}

// Bindings returns a copy of the binding table.
func (d *Document) Bindings() []string {
	return append([]string(nil), d.bindings...)
}

// Logger returns the logger diagnostics are written to.
func (d *Document) Logger() *zap.Logger {
	return d.logger
}

// Query returns every element under the document matching selector.
func (d *Document) Query(selector string) ([]*html.Node, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return queryAll(d.root, sel), nil
}

// Containers returns every element carrying the marker attribute, in
// document order. Template content is not searched.
func (d *Document) Containers() []*html.Node {
	var out []*html.Node
	walk(d.root, func(n *html.Node) {
		if n.Type == html.ElementNode && hasAttr(n, d.marker) && !insideTemplate(n, d.root) {
			out = append(out, n)
		}
	})
	return out
}

// Scoped returns the descendants of container matching selector that are
// owned by container, leaving out anything captured by a nested component
// and anything in the content of a <template>.
func (d *Document) Scoped(container *html.Node, selector string) ([]*html.Node, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return d.scoped(container, sel), nil
}

func (d *Document) scoped(container *html.Node, sel cascadia.Selector) []*html.Node {
	var out []*html.Node
	for _, n := range queryAll(container, sel) {
		if IsNested(n, container, d.marker) || insideTemplate(n, container) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// discover finds the containers under scope whose marker value equals
// selector exactly. Template content is not searched.
func (d *Document) discover(scope *html.Node, selector string) []*html.Node {
	var out []*html.Node
	walk(scope, func(n *html.Node) {
		if n == scope || n.Type != html.ElementNode {
			return
		}
		if v, ok := getAttr(n, d.marker); ok && v == selector && !insideTemplate(n, scope) {
			out = append(out, n)
		}
	})
	return out
}

// CreateElement returns a new detached element.
func (d *Document) CreateElement(tag string) *html.Node {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// HTML returns the document as an HTML string.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
