package pulse

import (
	"testing"

	"golang.org/x/net/html"
)

func TestBindingsWireAndStrip(t *testing.T) {
	doc, m, err := TestMount(`
		<div pulse="counter">
			<button id="inc" onclick="increment">+</button>
			<button id="reset" onclick="Reset">0</button>
			<input id="ping" oninput="ping">
		</div>`, "counter", newCounter, nil)
	if err != nil {
		t.Fatalf("TestMount failed: %v", err)
	}
	x := m.Instance().Behavior().(*counter)
	inc := byID(t, doc, "inc")

	for _, id := range []string{"inc", "reset"} {
		if _, ok := Attr(byID(t, doc, id), "onclick"); ok {
			t.Errorf("#%s still carries onclick", id)
		}
	}
	if _, ok := Attr(byID(t, doc, "ping"), "oninput"); ok {
		t.Error("#ping still carries oninput")
	}

	Click(doc, inc)
	Click(doc, inc)
	if x.count != 2 || x.lastEl != inc {
		t.Errorf("count = %d, want 2 with the button as element", x.count)
	}

	Click(doc, byID(t, doc, "reset"))
	if x.count != 0 {
		t.Errorf("reset handler did not run, count = %d", x.count)
	}

	Fire(doc, byID(t, doc, "ping"), "input", nil)
	if x.pings != 1 {
		t.Errorf("pings = %d, want 1", x.pings)
	}
}

func TestBindingsMissingHandler(t *testing.T) {
	doc, logs := observed(t, `<div pulse="counter"><a id="a" onmouseenter="hover">x</a></div>`, Config{})

	if _, err := Mount(doc, "counter", newCounter, nil); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}

	a := byID(t, doc, "a")
	if _, ok := Attr(a, "onmouseenter"); ok {
		t.Error("attribute should be stripped even when the handler is missing")
	}
	if doc.ListenerCount(a, "mouseenter") != 0 {
		t.Error("no listener should be attached for a missing handler")
	}

	warns := logs.FilterMessage("handler not defined").All()
	if len(warns) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(warns))
	}
	fields := warns[0].ContextMap()
	if fields["handler"] != "hover" || fields["binding"] != "onmouseenter" || fields["selector"] != "counter" {
		t.Errorf("diagnostic fields = %v", fields)
	}
	if fields["element"] == "" {
		t.Error("diagnostic should describe the element")
	}
}

func TestBindingsIdempotent(t *testing.T) {
	doc, m, err := TestMount(`<div pulse="counter"><button id="b" onclick="increment"></button></div>`,
		"counter", newCounter, nil)
	if err != nil {
		t.Fatalf("TestMount failed: %v", err)
	}
	c := m.Instance()
	b := byID(t, doc, "b")

	for i := 0; i < 3; i++ {
		if err := c.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	if n := doc.ListenerCount(b, "click"); n != 1 {
		t.Errorf("ListenerCount = %d after repeated updates, want 1", n)
	}
	Click(doc, b)
	if got := c.Behavior().(*counter).count; got != 1 {
		t.Errorf("count = %d, handler should run once per click", got)
	}
}

func TestBindingsScoped(t *testing.T) {
	doc, m, err := TestMount(`
		<div pulse="outer">
			<button id="own" onclick="increment"></button>
			<div pulse="inner"><button id="theirs" onclick="increment"></button></div>
		</div>`, "outer", newCounter, nil)
	if err != nil {
		t.Fatalf("TestMount failed: %v", err)
	}
	outer := m.Instance()
	theirs := byID(t, doc, "theirs")

	if _, ok := Attr(theirs, "onclick"); !ok {
		t.Fatal("outer stripped a binding owned by the nested component")
	}

	inner, err := outer.Mount("inner", newCounter, nil)
	if err != nil {
		t.Fatalf("nested Mount failed: %v", err)
	}
	Click(doc, theirs)

	if got := inner.Instance().Behavior().(*counter).count; got != 1 {
		t.Errorf("inner count = %d, want 1", got)
	}
	// the click bubbles through the outer container but outer has no listener there
	if got := outer.Behavior().(*counter).count; got != 0 {
		t.Errorf("outer count = %d, want 0", got)
	}
}

func TestBindingsHandlerTable(t *testing.T) {
	var calls []string
	def := func(*Component) any {
		return handlerTable{
			"save": func(ev *Event, el *html.Node) {
				calls = append(calls, ev.Type+":"+el.Data)
			},
		}
	}

	doc, _, err := TestMount(`<form pulse="form"><select id="s" onchange="save"></select></form>`, "form", def, nil)
	if err != nil {
		t.Fatalf("TestMount failed: %v", err)
	}
	Fire(doc, byID(t, doc, "s"), "change", nil)

	if len(calls) != 1 || calls[0] != "change:select" {
		t.Errorf("calls = %v", calls)
	}
}

func TestBindingsCustomTable(t *testing.T) {
	cfg := Config{Bindings: []string{"onsubmit"}}
	doc, err := ParseString(`<div pulse="counter"><form id="f" onsubmit="increment" onclick="increment"></form></div>`, cfg)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	m, err := Mount(doc, "counter", newCounter, nil)
	if err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	f := byID(t, doc, "f")

	if _, ok := Attr(f, "onclick"); !ok {
		t.Error("onclick is not in the table and should be left alone")
	}
	Fire(doc, f, "submit", nil)
	if got := m.Instance().Behavior().(*counter).count; got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestDefaultBindingTable(t *testing.T) {
	doc, err := TestDocument(`<div></div>`)
	if err != nil {
		t.Fatalf("TestDocument failed: %v", err)
	}
	want := []string{"onclick", "onchange", "oninput", "onmouseenter", "onmouseleave", "onscroll"}
	got := doc.Bindings()
	if len(got) != len(want) {
		t.Fatalf("Bindings() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("binding %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAsHandler(t *testing.T) {
	tests := []struct {
		name string
		fn   any
		ok   bool
	}{
		{"event and element", func(*Event, *html.Node) {}, true},
		{"named handler", Handler(func(*Event, *html.Node) {}), true},
		{"event only", func(*Event) {}, true},
		{"no args", func() {}, true},
		{"wrong shape", func(string) {}, false},
		{"not a func", 42, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := asHandler(tt.fn) != nil; got != tt.ok {
				t.Errorf("asHandler ok = %v, want %v", got, tt.ok)
			}
		})
	}
}
