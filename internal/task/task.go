// Package task holds the task record, its priority levels and the in-memory
// store that owns every task for the lifetime of a session.
package task

import (
	"fmt"
	"strings"
)

// ID identifies a task. IDs are positive and never reused within a store.
type ID int

// Priority ranks a task. The zero value is treated as PriorityLow.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every level in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Task is a single to-do item.
type Task struct {
	ID       ID
	Title    string
	Priority Priority
}

// ParsePriority resolves a priority name case-insensitively.
func ParsePriority(value string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(value))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("task: unknown priority %q (want low, medium or high)", value)
}

// Valid reports whether p is one of the known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Next returns the following level, wrapping high back to low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

func (p Priority) String() string {
	if p == "" {
		return string(PriorityLow)
	}
	return string(p)
}

func normalizePriority(p Priority) Priority {
	if p == "" {
		return PriorityLow
	}
	return p
}
