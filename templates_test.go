package pulse

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const cardMarkup = `
	<div pulse="cards" id="cards">
		<template name="card"><div>{{title}}</div></template>
		<template name="spaced"><p class="{{ kind }}">{{ title }} / {{title}}</p></template>
		<template name="pair"><p>a</p><p>b</p></template>
		<template name="multi">
			<li>{{n}}</li>
		</template>
		<div pulse="inner"><template name="inner-only"><b></b></template></div>
	</div>`

func mountCards(t *testing.T) (*Document, *Component) {
	t.Helper()
	doc, m, err := TestMount(cardMarkup, "cards", nil, nil)
	if err != nil {
		t.Fatalf("TestMount failed: %v", err)
	}
	return doc, m.Instance()
}

func TestTemplateString(t *testing.T) {
	_, c := mountCards(t)

	got, ok := c.TemplateString("card", map[string]any{"title": "Hi"})
	if !ok {
		t.Fatal("card template not registered")
	}
	if got != "<div>Hi</div>" {
		t.Errorf("TemplateString = %q, want <div>Hi</div>", got)
	}

	got, _ = c.TemplateString("spaced", map[string]any{"title": "T", "kind": 7})
	if want := `<p class="7">T / T</p>`; got != want {
		t.Errorf("TemplateString = %q, want %q", got, want)
	}

	got, _ = c.TemplateString("multi", map[string]any{"n": 1})
	if want := "<li>1</li>"; got != want {
		t.Errorf("newlines and tabs should be stripped: %q", got)
	}

	if _, ok := c.TemplateString("missing", nil); ok {
		t.Error("unknown template should report absent")
	}
}

func TestTemplateNode(t *testing.T) {
	_, c := mountCards(t)

	n, err := c.TemplateNode("card", map[string]any{"title": "Hi"})
	if err != nil {
		t.Fatalf("TemplateNode failed: %v", err)
	}
	if n.Type != html.ElementNode || n.Data != "div" || n.Parent != nil {
		t.Errorf("expected a detached div, got %q", n.Data)
	}
	if got := OuterHTML(n); got != "<div>Hi</div>" {
		t.Errorf("node renders as %q", got)
	}
}

func TestTemplateNodeShape(t *testing.T) {
	_, c := mountCards(t)

	_, err := c.TemplateNode("pair", nil)
	var shape *TemplateShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("expected *TemplateShapeError, got %v", err)
	}
	if shape.Roots != 2 || shape.Template != "pair" || shape.Selector != "cards" {
		t.Errorf("unexpected error fields: %+v", shape)
	}
	if !IsTemplateShape(err) {
		t.Error("IsTemplateShape should match")
	}

	if _, err := c.TemplateNode("missing", nil); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestTemplateCombined(t *testing.T) {
	_, c := mountCards(t)
	model := map[string]any{"title": "Hi"}

	s, err := c.Template("card", model, true)
	if err != nil || s != "<div>Hi</div>" {
		t.Errorf("string mode = %v, %v", s, err)
	}

	n, err := c.Template("card", model, false)
	if err != nil {
		t.Fatalf("node mode failed: %v", err)
	}
	if _, ok := n.(*html.Node); !ok {
		t.Errorf("node mode returned %T", n)
	}

	if v, err := c.Template("missing", model, false); v != nil || err != nil {
		t.Errorf("unknown template = %v, %v; want nil, nil", v, err)
	}
	if _, err := c.Template("pair", nil, false); !IsTemplateShape(err) {
		t.Errorf("expected shape error, got %v", err)
	}
}

func TestTemplatesDetachedAndScoped(t *testing.T) {
	doc, c := mountCards(t)

	nodes, err := doc.Scoped(byID(t, doc, "cards"), "template")
	if err != nil {
		t.Fatalf("Scoped failed: %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("%d own templates left in the tree", len(nodes))
	}

	if _, ok := c.Templates()["inner-only"]; ok {
		t.Error("outer registered a nested component's template")
	}
	all, _ := doc.Query("template")
	if len(all) != 1 {
		t.Errorf("nested template should stay in the tree, found %d templates", len(all))
	}

	table := c.Templates()
	if err := c.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(c.Templates()) != len(table) || c.Templates()["card"] != table["card"] {
		t.Error("templates lost on rescan")
	}
}

type toggler struct {
	c       *Component
	toggled int
}

func (x *toggler) Toggle() {
	x.toggled++
}

func TestTemplateContentNotScanned(t *testing.T) {
	doc, m, err := TestMount(`
		<section pulse="list">
			<ul ref="items"></ul>
			<template name="item"><li><button ref="btn" onclick="toggle">x</button></li></template>
		</section>`, "list", func(c *Component) any { return &toggler{c: c} }, nil)
	if err != nil {
		t.Fatalf("TestMount failed: %v", err)
	}
	c := m.Instance()
	b := c.Behavior().(*toggler)

	raw := c.Templates()["item"]
	if !strings.Contains(raw, `onclick="toggle"`) || !strings.Contains(raw, `ref="btn"`) {
		t.Errorf("template markup lost its attributes: %q", raw)
	}
	if c.Ref("btn") != nil {
		t.Error("ref inside template content was collected")
	}
	if _, ok := c.Root()["btn"]; ok {
		t.Error("ref table lists a template element")
	}

	row, err := c.TemplateNode("item", nil)
	if err != nil {
		t.Fatalf("TemplateNode failed: %v", err)
	}
	c.Ref("items").Node().AppendChild(row)
	if err := c.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	btn := c.Ref("btn").Node()
	if btn == nil || btn.Parent != row {
		t.Fatal("appended row's ref not collected")
	}
	Click(doc, btn)
	if b.toggled != 1 {
		t.Errorf("toggle fired %d times, want 1", b.toggled)
	}
	if _, ok := Attr(btn, "onclick"); ok {
		t.Error("binding attribute should be consumed after wiring")
	}
}

func TestSubstituteLiteral(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		model  map[string]any
		want   string
	}{
		{"repeated", "{{a}}{{a}}", map[string]any{"a": "x"}, "xx"},
		{"unknown key kept", "{{a}}{{b}}", map[string]any{"a": "x"}, "x{{b}}"},
		{"regexp chars in key", "{{a.b}}{{aXb}}", map[string]any{"a.b": "1"}, "1{{aXb}}"},
		{"dollar in value", "{{a}}", map[string]any{"a": "$1"}, "$1"},
		{"not escaped", "{{a}}", map[string]any{"a": "<b>"}, "<b>"},
		// a value carrying another key's token is substituted again (keys run sorted)
		{"token injection", "{{a}}", map[string]any{"a": "{{b}}", "b": "boom"}, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := substitute(tt.markup, tt.model); got != tt.want {
				t.Errorf("substitute = %q, want %q", got, tt.want)
			}
		})
	}
}
