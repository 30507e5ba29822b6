// Package board is the surface a presentation layer drives: task
// mutations on one side, projection settings on the other, and the derived
// list to render.
package board

import (
	"golang.org/x/text/language"

	"github.com/kingrea/taskboard/internal/task"
	"github.com/kingrea/taskboard/internal/view"
)

// Board pairs a task store with the projection settings currently chosen
// by the user.
type Board struct {
	store     *task.Store
	projector view.Projector
	params    view.Params
}

// Option customizes Board construction.
type Option func(*Board)

// WithProjector sets the projector used by Visible.
func WithProjector(p view.Projector) Option {
	return func(b *Board) {
		b.projector = p
	}
}

// WithParams seeds the initial search, filter and order.
func WithParams(params view.Params) Option {
	return func(b *Board) {
		b.params = params
	}
}

// New creates a board over store. A nil store gets a fresh one.
func New(store *task.Store, opts ...Option) *Board {
	if store == nil {
		store = task.NewStore()
	}
	b := &Board{
		store:     store,
		projector: view.New(language.Und),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.params.Order == "" {
		b.params.Order = view.Ascending
	}
	return b
}

// Store exposes the underlying store, mainly for subscriptions.
func (b *Board) Store() *task.Store {
	return b.store
}

// Create adds a task and returns its ID.
func (b *Board) Create(title string, priority task.Priority) task.ID {
	return b.store.Create(title, priority)
}

// Delete removes a task; unknown IDs are ignored.
func (b *Board) Delete(id task.ID) {
	b.store.Delete(id)
}

// Rename replaces a task title.
func (b *Board) Rename(id task.ID, title string) {
	b.store.UpdateTitle(id, title)
}

// Reprioritize replaces a task priority.
func (b *Board) Reprioritize(id task.ID, priority task.Priority) {
	b.store.UpdatePriority(id, priority)
}

// CyclePriority advances the task's priority low → medium → high → low
// and returns the new level.
func (b *Board) CyclePriority(id task.ID) (task.Priority, bool) {
	t, ok := b.store.Get(id)
	if !ok {
		return "", false
	}
	next := t.Priority.Next()
	b.store.UpdatePriority(id, next)
	return next, true
}

// Params returns the current projection settings.
func (b *Board) Params() view.Params {
	return b.params
}

// SetSearch replaces the search keyword.
func (b *Board) SetSearch(keyword string) {
	b.params.Search = keyword
}

// SetFilter replaces the priority filter.
func (b *Board) SetFilter(f view.Filter) {
	b.params.Filter = f
}

// SetOrder replaces the sort direction.
func (b *Board) SetOrder(o view.Order) {
	b.params.Order = o
}

// CycleFilter advances the filter and returns it.
func (b *Board) CycleFilter() view.Filter {
	b.params.Filter = b.params.Filter.Next()
	return b.params.Filter
}

// ToggleOrder flips the sort direction and returns it.
func (b *Board) ToggleOrder() view.Order {
	b.params.Order = b.params.Order.Toggle()
	return b.params.Order
}

// Snapshot returns every task in insertion order.
func (b *Board) Snapshot() []task.Task {
	return b.store.Snapshot()
}

// Visible returns the filtered, sorted list to render.
func (b *Board) Visible() []task.Task {
	return b.projector.Derive(b.store.Snapshot(), b.params)
}
