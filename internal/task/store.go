package task

// EventKind names the mutation that produced an Event.
type EventKind string

const (
	EventCreated       EventKind = "created"
	EventRenamed       EventKind = "renamed"
	EventReprioritized EventKind = "reprioritized"
	EventDeleted       EventKind = "deleted"
)

// Event describes an applied mutation. Task holds the record after the
// change, or the removed record for EventDeleted.
type Event struct {
	Kind EventKind
	Task Task
	// Previous is the record before an update. Zero for create and delete.
	Previous Task
}

// Store owns the task collection. Tasks keep insertion order; updates are
// applied in place and deletes preserve the order of what remains.
//
// Store is meant to be driven from a single goroutine.
type Store struct {
	tasks     []Task
	ids       *Allocator
	listeners map[int]func(Event)
	nextSub   int
}

// StoreOption customizes Store construction.
type StoreOption func(*Store)

// WithAllocator injects the ID allocator, typically so tests can reset it.
func WithAllocator(a *Allocator) StoreOption {
	return func(s *Store) {
		if a != nil {
			s.ids = a
		}
	}
}

// NewStore returns an empty store with its own allocator unless one is
// supplied.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		ids:       NewAllocator(),
		listeners: map[int]func(Event){},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create appends a task and returns its ID. An empty priority becomes low.
func (s *Store) Create(title string, priority Priority) ID {
	t := Task{
		ID:       s.ids.Next(),
		Title:    title,
		Priority: normalizePriority(priority),
	}
	s.tasks = append(s.tasks, t)
	s.emit(Event{Kind: EventCreated, Task: t})
	return t.ID
}

// Delete removes the task with the given ID. Unknown IDs are ignored.
func (s *Store) Delete(id ID) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	removed := s.tasks[idx]
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.emit(Event{Kind: EventDeleted, Task: removed})
}

// UpdateTitle replaces the title of the matching task, if any.
func (s *Store) UpdateTitle(id ID, title string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	prev := s.tasks[idx]
	s.tasks[idx].Title = title
	s.emit(Event{Kind: EventRenamed, Task: s.tasks[idx], Previous: prev})
}

// UpdatePriority replaces the priority of the matching task, if any.
func (s *Store) UpdatePriority(id ID, priority Priority) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	prev := s.tasks[idx]
	s.tasks[idx].Priority = normalizePriority(priority)
	s.emit(Event{Kind: EventReprioritized, Task: s.tasks[idx], Previous: prev})
}

// Snapshot returns a copy of the collection in insertion order.
func (s *Store) Snapshot() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with the given ID.
func (s *Store) Get(id ID) (Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Task{}, false
	}
	return s.tasks[idx], true
}

// Len reports how many tasks the store holds.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Subscribe registers fn to be called after every applied mutation. The
// returned func removes the subscription.
func (s *Store) Subscribe(fn func(Event)) func() {
	if fn == nil {
		return func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() {
		delete(s.listeners, id)
	}
}

func (s *Store) indexOf(id ID) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) emit(evt Event) {
	// listeners fire in subscription order
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.listeners[i]; ok {
			fn(evt)
		}
	}
}
