package pulse

import (
	"golang.org/x/net/html"
)

// Event is delivered to listeners by Document.Dispatch.
type Event struct {
	// Type is the native event name without the "on" prefix, e.g. "click".
	Type string

	// Target is the element the event was dispatched at.
	Target *html.Node

	// CurrentTarget is the element whose listener is running.
	CurrentTarget *html.Node

	// Detail carries caller-supplied data.
	Detail any

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
// Listeners on the current element still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool {
	return e.stopped
}

// Listener receives dispatched events.
type Listener func(ev *Event)

// nonBubbling lists events that only fire on their target.
var nonBubbling = map[string]bool{
	"mouseenter": true,
	"mouseleave": true,
	"scroll":     true,
}

// AddEventListener registers fn for events of the given type on n.
func (d *Document) AddEventListener(n *html.Node, eventType string, fn Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	byType, ok := d.listeners[n]
	if !ok {
		byType = make(map[string][]Listener)
		d.listeners[n] = byType
	}
	byType[eventType] = append(byType[eventType], fn)
}

// ListenerCount returns how many listeners for eventType are attached to n.
func (d *Document) ListenerCount(n *html.Node, eventType string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[n][eventType])
}

// Dispatch delivers an event of eventType to target and, for bubbling
// events, to each of its ancestors in turn. Listeners run synchronously in
// registration order; the listener list is snapshotted per element so
// listeners may register or remove others.
func (d *Document) Dispatch(target *html.Node, eventType string, detail any) *Event {
	ev := &Event{Type: eventType, Target: target, Detail: detail}

	for n := target; n != nil; n = n.Parent {
		ev.CurrentTarget = n
		for _, fn := range d.snapshot(n, eventType) {
			fn(ev)
		}
		if ev.stopped || nonBubbling[eventType] {
			break
		}
	}
	ev.CurrentTarget = nil
	return ev
}

func (d *Document) snapshot(n *html.Node, eventType string) []Listener {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Listener(nil), d.listeners[n][eventType]...)
}

// removeListeners drops every listener attached within the subtree at root.
func (d *Document) removeListeners(root *html.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	walk(root, func(n *html.Node) {
		delete(d.listeners, n)
	})
}
