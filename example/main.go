package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/pthm/pulse"
	"github.com/pthm/pulse/example/components"
)

const layout = `<!DOCTYPE html>
<html>
<head><title>pulse example</title></head>
<body>
<div%s>
  <b ref="count">0</b>
  <button id="inc" onclick="increment">+</button>
  <button id="reset" onclick="reset">reset</button>
</div>
<section%s>
  <h2 ref="title"></h2>
  <ul ref="items"></ul>
  <input ref="draft" value="">
  <button id="add" onclick="add">Add</button>
  <template name="item">
    <li data-id="{{id}}"><span>{{title}}</span> <button id="toggle-{{id}}" onclick="toggle">done</button></li>
  </template>
</section>
</body>
</html>`

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	pulse.SetLogger(logger)

	// In production, load the key from a secret store.
	enc, err := pulse.NewEncoder([]byte("example-key-must-be-32-bytes!!"))
	if err != nil {
		log.Fatal(err)
	}
	cfg := pulse.Config{Encoder: enc, Logger: logger}

	markup, err := buildPage(cfg)
	if err != nil {
		log.Fatal(err)
	}
	doc, err := pulse.ParseString(markup, cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := components.Mount(doc, NewStore()); err != nil {
		log.Fatal(err)
	}

	srv := &server{doc: doc, logger: logger}
	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleIndex)
	mux.HandleFunc("POST /dispatch", srv.handleDispatch)

	addr := ":8080"
	if v := os.Getenv("ADDR"); v != "" {
		addr = v
	}
	logger.Info("starting server", zap.String("url", "http://localhost"+addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

// buildPage renders the layout with sealed options on the counter.
func buildPage(cfg pulse.Config) (string, error) {
	counter, err := cfg.MarkerAttrs("counter", map[string]string{"step": "2"}, true)
	if err != nil {
		return "", err
	}
	todos, err := cfg.MarkerAttrs("todos", nil, false)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(layout, attrString(counter), attrString(todos)), nil
}

func attrString(attrs templ.Attributes) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, ` %s="%s"`, k, html.EscapeString(fmt.Sprint(attrs[k])))
	}
	return sb.String()
}

// server exposes the live document. Dispatch runs handlers that mutate
// the tree, so every access holds mu.
type server struct {
	mu     sync.Mutex
	doc    *pulse.Document
	logger *zap.Logger
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := pulse.Render(w, r, s.doc.Templ()); err != nil {
		s.logger.Error("render failed", zap.Error(err))
	}
}

// handleDispatch fires an event at the element with the given id.
//
//	POST /dispatch?id=inc&type=click
//	POST /dispatch?id=add&type=click&value=Walk+the+dog
func (s *server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	eventType := r.URL.Query().Get("type")
	if eventType == "" {
		eventType = "click"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nodes, err := s.doc.Query("#" + id)
	if err != nil || len(nodes) == 0 {
		http.NotFound(w, r)
		return
	}
	if v := r.URL.Query().Get("value"); v != "" {
		if err := s.setDraft(v); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	ev := s.doc.Dispatch(nodes[0], eventType, nil)
	s.logger.Debug("event dispatched", zap.String("id", id), zap.String("type", ev.Type))

	if err := pulse.Render(w, r, s.doc.Templ()); err != nil {
		s.logger.Error("render failed", zap.Error(err))
	}
}

func (s *server) setDraft(v string) error {
	nodes, err := s.doc.Query(`input[ref="draft"]`)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		for i, a := range n.Attr {
			if a.Key == "value" {
				n.Attr[i].Val = v
			}
		}
	}
	return nil
}
