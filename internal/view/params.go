package view

import (
	"fmt"
	"strings"

	"github.com/kingrea/taskboard/internal/task"
)

// Filter restricts the projection to a single priority. FilterNone keeps
// every task.
type Filter string

const (
	FilterNone   Filter = ""
	FilterLow    Filter = Filter(task.PriorityLow)
	FilterMedium Filter = Filter(task.PriorityMedium)
	FilterHigh   Filter = Filter(task.PriorityHigh)
)

// Order is the title sort direction.
type Order string

const (
	Ascending  Order = "ascending"
	Descending Order = "descending"
)

// Params are the presentation-owned inputs to Derive. The zero value means
// no search, no filter, ascending order.
type Params struct {
	Search string
	Filter Filter
	Order  Order
}

// ParseFilter accepts "", "none", "all" or a priority name.
func ParseFilter(value string) (Filter, error) {
	switch v := strings.ToLower(strings.TrimSpace(value)); v {
	case "", "none", "all":
		return FilterNone, nil
	default:
		p, err := task.ParsePriority(v)
		if err != nil {
			return FilterNone, fmt.Errorf("view: filter: %w", err)
		}
		return Filter(p), nil
	}
}

// ParseOrder accepts asc/ascending and desc/descending.
func ParseOrder(value string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("view: unknown sort order %q (want asc or desc)", value)
}

// Next cycles none → low → medium → high → none.
func (f Filter) Next() Filter {
	switch f {
	case FilterNone:
		return FilterLow
	case FilterLow:
		return FilterMedium
	case FilterMedium:
		return FilterHigh
	default:
		return FilterNone
	}
}

func (f Filter) String() string {
	if f == FilterNone {
		return "all"
	}
	return string(f)
}

// Toggle flips the direction.
func (o Order) Toggle() Order {
	if o == Descending {
		return Ascending
	}
	return Descending
}

func (o Order) String() string {
	if o == Descending {
		return string(Descending)
	}
	return string(Ascending)
}
