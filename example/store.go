package main

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pthm/pulse/example/components"
)

// Store is an in-memory todo store that implements components.TodoStore.
type Store struct {
	mu     sync.RWMutex
	todos  map[string]*components.Todo
	nextID int
}

// NewStore creates a new store with sample data.
func NewStore() *Store {
	s := &Store{
		todos:  make(map[string]*components.Todo),
		nextID: 1,
	}

	s.Add("Buy groceries")
	s.Add("Review PR #123")
	s.Add("Call dentist")

	return s
}

// Add creates a new todo and returns it.
func (s *Store) Add(title string) *components.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("todo-%d", s.nextID)
	s.nextID++

	t := &components.Todo{
		ID:        id,
		Title:     title,
		CreatedAt: time.Now(),
	}
	s.todos[id] = t
	return t
}

// Toggle flips a todo's done flag. It returns false if id is unknown.
func (s *Store) Toggle(id string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok {
		return false, false
	}
	t.Done = !t.Done
	return t.Done, true
}

// List returns all todos, oldest first.
func (s *Store) List() []*components.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*components.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
