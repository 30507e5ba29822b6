package task

// Allocator hands out task IDs. It starts at 1 and increments by one on
// every Next call. It is not safe for concurrent use.
type Allocator struct {
	next ID
}

// NewAllocator returns an allocator whose first ID is 1.
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

// Next returns the current counter value and advances it.
func (a *Allocator) Next() ID {
	if a.next < 1 {
		a.next = 1
	}
	id := a.next
	a.next++
	return id
}

// Peek returns the ID the next call to Next will hand out.
func (a *Allocator) Peek() ID {
	if a.next < 1 {
		return 1
	}
	return a.next
}

// Reset rewinds the counter to 1.
func (a *Allocator) Reset() {
	a.next = 1
}
