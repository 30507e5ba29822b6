// Package view derives the visible task list from a store snapshot and the
// current search, filter and sort settings.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kingrea/taskboard/internal/task"
)

// Projector derives views using the collation rules of one locale.
type Projector struct {
	locale language.Tag
}

// New returns a Projector that sorts titles by the rules of tag.
func New(tag language.Tag) Projector {
	return Projector{locale: tag}
}

// Locale reports the collation locale.
func (p Projector) Locale() language.Tag {
	return p.locale
}

// Derive applies search, then priority filter, then sort, using root
// collation. The input slice is never modified.
func Derive(tasks []task.Task, params Params) []task.Task {
	return New(language.Und).Derive(tasks, params)
}

// Derive is the locale-specific form of the package-level Derive.
func (p Projector) Derive(tasks []task.Task, params Params) []task.Task {
	// collators and casers carry scratch buffers, so build fresh ones per call
	lower := cases.Lower(language.Und)
	needle := lower.String(params.Search)

	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if needle != "" && !strings.Contains(lower.String(t.Title), needle) {
			continue
		}
		if params.Filter != FilterNone && string(t.Priority) != string(params.Filter) {
			continue
		}
		out = append(out, t)
	}

	col := collate.New(p.locale)
	desc := params.Order == Descending
	sort.SliceStable(out, func(i, j int) bool {
		c := col.CompareString(out[i].Title, out[j].Title)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// Matches reports whether a single task would survive the search and
// filter stages of Derive.
func Matches(t task.Task, params Params) bool {
	return len(Derive([]task.Task{t}, Params{Search: params.Search, Filter: params.Filter})) == 1
}
