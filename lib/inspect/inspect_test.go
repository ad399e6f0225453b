package inspect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pthm/pulse"
)

const page = `<main>
<div pulse="list" title="Todos" class="x">
  <ul ref="items"><li ref="item">a</li><li ref="item">b</li></ul>
  <button onclick="add">+</button>
  <template name="row"><li ref="cell">{{text}}<button onclick="remove">x</button></li></template>
  <section pulse="counter" start="3">
    <b ref="count">3</b>
    <button onclick="increment">+</button>
  </section>
</div>
<aside pulse="clock"></aside>
<template name="widget"><div pulse="widget"></div></template>
</main>`

func TestBuild(t *testing.T) {
	doc, err := pulse.TestDocument(page)
	if err != nil {
		t.Fatalf("TestDocument failed: %v", err)
	}

	reports, err := Build(doc)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d top-level reports, want 2", len(reports))
	}

	list := reports[0]
	want := &Report{
		Selector:  "list",
		Tag:       "div",
		Options:   []Option{{Key: "title", Value: "Todos"}},
		Refs:      map[string]int{"items": 1, "item": 2},
		Templates: []string{"row"},
		Bindings:  []Binding{{Attr: "onclick", Handler: "add", Tag: "button"}},
		Children: []*Report{{
			Selector: "counter",
			Tag:      "section",
			Options:  []Option{{Key: "start", Value: "3"}},
			Refs:     map[string]int{"count": 1},
			Bindings: []Binding{{Attr: "onclick", Handler: "increment", Tag: "button"}},
		}},
	}
	if diff := cmp.Diff(want, list); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	if list.Count() != 2 {
		t.Errorf("Count() = %d, want 2", list.Count())
	}
	if reports[1].Selector != "clock" || len(reports[1].Children) != 0 {
		t.Errorf("second report = %v", reports[1])
	}
}

func TestBuildSkipsTemplateContent(t *testing.T) {
	doc, err := pulse.TestDocument(page)
	if err != nil {
		t.Fatalf("TestDocument failed: %v", err)
	}
	reports, err := Build(doc)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, r := range reports {
		if r.Selector == "widget" {
			t.Error("container inside template content should not be reported")
		}
	}
	list := reports[0]
	if _, ok := list.Refs["cell"]; ok {
		t.Error("ref inside template content should not be reported")
	}
	for _, b := range list.Bindings {
		if b.Handler == "remove" {
			t.Error("binding inside template content should not be reported")
		}
	}
}

func TestBuildLeavesTreeIntact(t *testing.T) {
	doc, err := pulse.TestDocument(page)
	if err != nil {
		t.Fatalf("TestDocument failed: %v", err)
	}
	before, _ := doc.HTML()
	if _, err := Build(doc); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	after, _ := doc.HTML()
	if before != after {
		t.Error("Build modified the document")
	}
}

func TestWriterPlain(t *testing.T) {
	doc, err := pulse.TestDocument(page)
	if err != nil {
		t.Fatalf("TestDocument failed: %v", err)
	}
	reports, err := Build(doc)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var buf bytes.Buffer
	if err := NewWriter(&buf).Write(reports); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"list <div>\n",
		`  option title="Todos"`,
		"  ref item (2)",
		"  template row",
		"  binding onclick -> add on <button>",
		"  counter <section>\n",
		"    ref count (1)",
		"clock <aside>\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("non-terminal output should not be styled")
	}
}
