package pulse

import (
	"sort"
	"strings"
	"unicode"

	"github.com/a-h/templ"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Options is a component's configuration map. Keys are unique and keep the
// order in which they were first set.
type Options struct {
	keys   []string
	values map[string]string
}

// NewOptions builds an option map from m. Keys are inserted in sorted order
// so the result does not depend on map iteration.
func NewOptions(m map[string]string) *Options {
	o := &Options{values: make(map[string]string, len(m))}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		o.Set(k, m[k])
	}
	return o
}

// Get returns the value for key.
func (o *Options) Get(key string) (string, bool) {
	if o == nil {
		return "", false
	}
	v, ok := o.values[key]
	return v, ok
}

// Value returns the value for key, or "" when unset.
func (o *Options) Value(key string) string {
	v, _ := o.Get(key)
	return v
}

// Set stores value under key. An existing key keeps its position.
func (o *Options) Set(key, value string) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Keys returns the keys in insertion order.
func (o *Options) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of options.
func (o *Options) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Map returns a copy of the options as a plain map.
func (o *Options) Map() map[string]string {
	m := make(map[string]string, o.Len())
	if o == nil {
		return m
	}
	for k, v := range o.values {
		m[k] = v
	}
	return m
}

// Attributes returns the options as templ attributes.
func (o *Options) Attributes() templ.Attributes {
	attrs := templ.Attributes{}
	if o == nil {
		return attrs
	}
	for k, v := range o.values {
		attrs[k] = v
	}
	return attrs
}

func (o *Options) clone() *Options {
	c := &Options{values: make(map[string]string, o.Len())}
	if o == nil {
		return c
	}
	for _, k := range o.keys {
		c.Set(k, o.values[k])
	}
	return c
}

// optionBlacklist returns the container attributes that never become options.
func (d *Document) optionBlacklist() map[string]bool {
	return map[string]bool{
		"class":            true,
		"id":               true,
		"ref":              true,
		"root":             true,
		d.marker:           true,
		d.PropsAttribute(): true,
	}
}

// OptionsOf derives the option map carried by container's attributes,
// without any construction-time options.
func (d *Document) OptionsOf(container *html.Node) *Options {
	o := NewOptions(nil)
	d.resolveOptions(container, o)
	return o
}

// resolveOptions merges container's attributes into dst. Signed props are
// applied first so plain attributes win on collision.
func (d *Document) resolveOptions(container *html.Node, dst *Options) {
	if encoded, ok := getAttr(container, d.PropsAttribute()); ok && encoded != "" {
		d.applyProps(container, encoded, dst)
	}

	blacklist := d.optionBlacklist()
	for _, a := range container.Attr {
		if a.Namespace != "" || blacklist[a.Key] {
			continue
		}
		dst.Set(stripSpace(a.Key), a.Val)
	}
}

func (d *Document) applyProps(container *html.Node, encoded string, dst *Options) {
	if d.encoder == nil {
		d.logger.Warn("props attribute present but no encoder configured",
			zap.String("attribute", d.PropsAttribute()),
			zap.String("element", describe(container)))
		return
	}
	props, err := d.encoder.DecodeOptions(encoded)
	if err != nil {
		d.logger.Warn("props attribute could not be decoded",
			zap.String("attribute", d.PropsAttribute()),
			zap.String("element", describe(container)),
			zap.Error(err))
		return
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		dst.Set(stripSpace(k), props[k])
	}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
