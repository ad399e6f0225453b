package pulse

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestComponentTempl(t *testing.T) {
	doc, m, err := TestMount(`<div pulse="counter"><button onclick="increment">+</button></div>`,
		"counter", newCounter, nil)
	if err != nil {
		t.Fatalf("TestMount failed: %v", err)
	}

	var buf bytes.Buffer
	if err := m.Instance().Templ().Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got, want := buf.String(), `<div pulse="counter"><button>+</button></div>`; got != want {
		t.Errorf("component renders as %q, want %q", got, want)
	}

	buf.Reset()
	if err := doc.Templ().Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<html>") {
		t.Errorf("document render = %q", buf.String())
	}
}

func TestMarkerAttrs(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		opts      map[string]string
		wantProps bool
		marker    string
	}{
		{"no options", Config{}, nil, false, "pulse"},
		{"no encoder", Config{Marker: "x-cmp"}, map[string]string{"a": "1"}, false, "x-cmp"},
		{"encoded", Config{Encoder: mustEncoder(t)}, map[string]string{"a": "1"}, true, "pulse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs, err := tt.cfg.MarkerAttrs("box", tt.opts, false)
			if err != nil {
				t.Fatalf("MarkerAttrs failed: %v", err)
			}
			if attrs[tt.marker] != "box" {
				t.Errorf("marker attribute = %v", attrs[tt.marker])
			}
			if _, ok := attrs[tt.marker+"-props"]; ok != tt.wantProps {
				t.Errorf("props attribute present = %v, want %v", ok, tt.wantProps)
			}
		})
	}
}

func TestRenderHTTP(t *testing.T) {
	doc, err := TestDocument(`<p>hello</p>`)
	if err != nil {
		t.Fatalf("TestDocument failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := Render(rec, req, doc.Templ()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<p>hello</p>") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func mustEncoder(t *testing.T) *Encoder {
	t.Helper()
	enc, err := NewEncoder([]byte("render-test"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}
	return enc
}
