package taskview

import (
	"sync"

	"github.com/google/uuid"

	"taskboard/internal/service"
)

// State is the state of the list container.
type State int

const (
	Empty State = iota
	Populated
)

func (s State) String() string {
	if s == Populated {
		return "populated"
	}
	return "empty"
}

// Board is the rendered task list. It is safe for concurrent use.
type Board struct {
	mu     sync.RWMutex
	items  []Item
	newKey func() string
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{newKey: func() string { return uuid.New().String() }}
}

// Replace discards the current elements and renders tasks in their place.
// The last call wins.
func (b *Board) Replace(tasks []service.Task) {
	items := make([]Item, len(tasks))
	for i, t := range tasks {
		items[i] = Item{Key: b.newKey(), Task: t}
	}

	b.mu.Lock()
	b.items = items
	b.mu.Unlock()
}

// MarkFading flags the element with key for removal.
// Returns false if no such element is attached.
func (b *Board) MarkFading(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(key)
	if i < 0 {
		return false
	}
	b.items[i].Fading = true
	return true
}

// Detach removes the element with key. Returns false if it was already gone,
// for example because a reload replaced the list in the meantime.
func (b *Board) Detach(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(key)
	if i < 0 {
		return false
	}
	b.items = append(b.items[:i:i], b.items[i+1:]...)
	return true
}

// State reports Empty when no task element is attached.
func (b *Board) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.items) == 0 {
		return Empty
	}
	return Populated
}

// Items returns a copy of the attached elements in order.
func (b *Board) Items() []Item {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}

// Tasks returns the tasks of the attached elements in order.
func (b *Board) Tasks() []service.Task {
	items := b.Items()
	out := make([]service.Task, len(items))
	for i, it := range items {
		out[i] = it.Task
	}
	return out
}

// Tree renders the current elements.
func (b *Board) Tree() Node {
	return Render(b.Items())
}

func (b *Board) indexOf(key string) int {
	for i, it := range b.items {
		if it.Key == key {
			return i
		}
	}
	return -1
}
