package components

import (
	"time"

	"github.com/pthm/pulse"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Todo is a single task.
type Todo struct {
	ID        string
	Title     string
	Done      bool
	CreatedAt time.Time
}

// TodoStore is the data a TodoList reads and writes.
type TodoStore interface {
	Add(title string) *Todo
	Toggle(id string) (done bool, ok bool)
	List() []*Todo
}

// TodoList renders items from its "item" template and wires the
// buttons inside each new row.
type TodoList struct {
	c     *pulse.Component
	store TodoStore
}

// NewTodoList returns a pulse.Definition bound to store.
func NewTodoList(store TodoStore) pulse.Definition {
	return func(c *pulse.Component) any {
		return &TodoList{c: c, store: store}
	}
}

// Refresh renders every todo in the store into the items ref.
func (b *TodoList) Refresh() error {
	setText(b.c.Ref("title").Node(), b.c.Options().Value("title"))
	for _, t := range b.store.List() {
		if err := b.appendItem(t); err != nil {
			return err
		}
	}
	return b.c.Update()
}

// Add appends a todo named after the draft input's value.
func (b *TodoList) Add(ev *pulse.Event, el *html.Node) {
	draft := b.c.Ref("draft").Node()
	title, _ := pulse.Attr(draft, "value")
	if title == "" {
		return
	}
	if err := b.appendItem(b.store.Add(title)); err != nil {
		pulse.Logger().Warn("todo not rendered", zap.Error(err))
		return
	}
	setAttr(draft, "value", "")
	if err := b.c.Update(); err != nil {
		pulse.Logger().Warn("todo list update failed", zap.Error(err))
	}
}

// Toggle flips the todo whose row contains el.
func (b *TodoList) Toggle(ev *pulse.Event, el *html.Node) {
	row := closest(el, "data-id")
	if row == nil {
		return
	}
	id, _ := pulse.Attr(row, "data-id")
	done, ok := b.store.Toggle(id)
	if !ok {
		return
	}
	if done {
		setAttr(row, "class", "done")
	} else {
		setAttr(row, "class", "")
	}
}

func (b *TodoList) appendItem(t *Todo) error {
	row, err := b.c.TemplateNode("item", map[string]any{
		"id":    html.EscapeString(t.ID),
		"title": html.EscapeString(t.Title),
	})
	if err != nil {
		return err
	}
	if t.Done {
		setAttr(row, "class", "done")
	}
	b.c.Ref("items").Node().AppendChild(row)
	return nil
}
