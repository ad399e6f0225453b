package pulse

import (
	"fmt"
	"sync"
)

// Registry collects definitions so a page can be mounted in one call.
//
//	reg := pulse.NewRegistry()
//	reg.Add("counter", NewCounter, nil)
//	reg.Add("todos", NewTodoList(store), map[string]string{"title": "Todos"})
//	mounted, err := reg.MountAll(doc)
type Registry struct {
	mu      sync.RWMutex
	entries []registration
	index   map[string]int

	// OnError is called when mounting a selector fails. Returning nil skips
	// the selector; returning an error aborts MountAll. Defaults to abort.
	OnError func(selector string, err error) error
}

type registration struct {
	selector string
	def      Definition
	opts     map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Add registers def for selector. Selectors mount in registration order.
// Panics if selector is empty or already registered.
func (reg *Registry) Add(selector string, def Definition, opts map[string]string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if selector == "" {
		panic("pulse: empty selector")
	}
	if _, exists := reg.index[selector]; exists {
		panic(fmt.Sprintf("pulse: selector collision for %q", selector))
	}
	copied := make(map[string]string, len(opts))
	for k, v := range opts {
		copied[k] = v
	}
	reg.index[selector] = len(reg.entries)
	reg.entries = append(reg.entries, registration{selector: selector, def: def, opts: copied})
}

// Definition returns the definition registered for selector.
func (reg *Registry) Definition(selector string) (Definition, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	i, ok := reg.index[selector]
	if !ok {
		return nil, false
	}
	return reg.entries[i].def, true
}

// Selectors returns the registered selectors in registration order.
func (reg *Registry) Selectors() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]string, len(reg.entries))
	for i, e := range reg.entries {
		out[i] = e.selector
	}
	return out
}

// MountAll mounts every registered selector in doc. Selectors without a
// matching container are left out of the result.
func (reg *Registry) MountAll(doc *Document) (map[string]*Mounted, error) {
	reg.mu.RLock()
	entries := append([]registration(nil), reg.entries...)
	onError := reg.OnError
	reg.mu.RUnlock()

	out := make(map[string]*Mounted, len(entries))
	for _, e := range entries {
		m, err := Mount(doc, e.selector, e.def, e.opts)
		if err != nil {
			if onError == nil {
				return nil, err
			}
			if err := onError(e.selector, err); err != nil {
				return nil, err
			}
			continue
		}
		if m != nil {
			out[e.selector] = m
		}
	}
	return out, nil
}
