package view

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kingrea/taskboard/internal/task"
)

func sampleTasks() []task.Task {
	return []task.Task{
		{ID: 1, Title: "Buy milk", Priority: task.PriorityLow},
		{ID: 2, Title: "Fix bug", Priority: task.PriorityHigh},
	}
}

func ids(tasks []task.Task) []task.ID {
	out := make([]task.ID, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func titles(tasks []task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestDeriveScenarios(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   []task.ID
	}{
		{name: "search is case-insensitive", params: Params{Search: "fix"}, want: []task.ID{2}},
		{name: "filter high", params: Params{Filter: FilterHigh}, want: []task.ID{2}},
		{name: "filter low", params: Params{Filter: FilterLow}, want: []task.ID{1}},
		{name: "filter medium matches nothing", params: Params{Filter: FilterMedium}, want: []task.ID{}},
		{name: "ascending", params: Params{Order: Ascending}, want: []task.ID{1, 2}},
		{name: "descending", params: Params{Order: Descending}, want: []task.ID{2, 1}},
		{name: "search and filter combine", params: Params{Search: "BUG", Filter: FilterLow}, want: []task.ID{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Derive(sampleTasks(), tc.params))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Derive ids = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDeriveDescendingTitles(t *testing.T) {
	got := titles(Derive(sampleTasks(), Params{Order: Descending}))
	want := []string{"Fix bug", "Buy milk"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("titles = %v, want %v", got, want)
	}
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	input := []task.Task{
		{ID: 1, Title: "zeta", Priority: task.PriorityLow},
		{ID: 2, Title: "alpha", Priority: task.PriorityHigh},
		{ID: 3, Title: "mu", Priority: task.PriorityMedium},
	}
	before := append([]task.Task(nil), input...)
	params := Params{Order: Ascending}

	first := Derive(input, params)
	second := Derive(input, params)

	if !reflect.DeepEqual(input, before) {
		t.Fatalf("input mutated: %+v", input)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("derive not deterministic: %+v vs %+v", first, second)
	}
}

func TestDeriveEmptyInput(t *testing.T) {
	got := Derive(nil, Params{Search: "x", Filter: FilterHigh, Order: Descending})
	if got == nil || len(got) != 0 {
		t.Fatalf("Derive(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestDeriveSearchPartitionsByKeyword(t *testing.T) {
	input := []task.Task{
		{ID: 1, Title: "Write REPORT", Priority: task.PriorityLow},
		{ID: 2, Title: "report bug", Priority: task.PriorityLow},
		{ID: 3, Title: "Lunch", Priority: task.PriorityLow},
		{ID: 4, Title: "", Priority: task.PriorityLow},
	}
	keyword := "RePort"
	got := Derive(input, Params{Search: keyword})
	kept := map[task.ID]bool{}
	for _, tk := range got {
		kept[tk.ID] = true
		if !strings.Contains(strings.ToLower(tk.Title), strings.ToLower(keyword)) {
			t.Fatalf("task %q should not match %q", tk.Title, keyword)
		}
	}
	for _, tk := range input {
		if kept[tk.ID] {
			continue
		}
		if strings.Contains(strings.ToLower(tk.Title), strings.ToLower(keyword)) {
			t.Fatalf("task %q was dropped but matches %q", tk.Title, keyword)
		}
	}
	if len(got) != 2 {
		t.Fatalf("kept %d tasks, want 2", len(got))
	}
}

func TestDeriveSearchFoldsUnicode(t *testing.T) {
	input := []task.Task{{ID: 1, Title: "ÉTÉ PLANS", Priority: task.PriorityLow}}
	if got := Derive(input, Params{Search: "été"}); len(got) != 1 {
		t.Fatalf("expected accented title to match lowercase keyword")
	}
}

func TestDeriveSortIsMonotonic(t *testing.T) {
	input := []task.Task{
		{ID: 1, Title: "banana"},
		{ID: 2, Title: "Apple"},
		{ID: 3, Title: "cherry"},
		{ID: 4, Title: "apple"},
		{ID: 5, Title: "Éclair"},
		{ID: 6, Title: ""},
	}
	col := collate.New(language.Und)
	for _, order := range []Order{Ascending, Descending} {
		got := Derive(input, Params{Order: order})
		if len(got) != len(input) {
			t.Fatalf("%s: len = %d, want %d", order, len(got), len(input))
		}
		for i := 1; i < len(got); i++ {
			c := col.CompareString(got[i-1].Title, got[i].Title)
			if order == Ascending && c > 0 {
				t.Fatalf("ascending violated at %d: %v", i, titles(got))
			}
			if order == Descending && c < 0 {
				t.Fatalf("descending violated at %d: %v", i, titles(got))
			}
		}
	}
}

func TestDeriveCollatesAccentsWithLetters(t *testing.T) {
	input := []task.Task{
		{ID: 1, Title: "zebra"},
		{ID: 2, Title: "Éclair"},
		{ID: 3, Title: "dog"},
	}
	got := titles(Derive(input, Params{}))
	want := []string{"dog", "Éclair", "zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("titles = %v, want %v", got, want)
	}
}

func TestProjectorKeepsLocale(t *testing.T) {
	p := New(language.Swedish)
	if p.Locale() != language.Swedish {
		t.Fatalf("locale = %v, want sv", p.Locale())
	}
	input := []task.Task{{ID: 1, Title: "ö"}, {ID: 2, Title: "z"}}
	got := titles(p.Derive(input, Params{}))
	want := []string{"z", "ö"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("swedish order = %v, want %v", got, want)
	}
}

func TestMatches(t *testing.T) {
	tk := task.Task{ID: 7, Title: "Fix bug", Priority: task.PriorityHigh}
	if !Matches(tk, Params{Search: "BUG"}) {
		t.Fatalf("expected match on keyword")
	}
	if Matches(tk, Params{Filter: FilterLow}) {
		t.Fatalf("expected filter to exclude task")
	}
}

func TestParseFilterAndOrder(t *testing.T) {
	if f, err := ParseFilter("all"); err != nil || f != FilterNone {
		t.Fatalf("ParseFilter(all) = %q, %v", f, err)
	}
	if f, err := ParseFilter("High"); err != nil || f != FilterHigh {
		t.Fatalf("ParseFilter(High) = %q, %v", f, err)
	}
	if _, err := ParseFilter("urgent"); err == nil {
		t.Fatalf("expected error for unknown filter")
	}
	if o, err := ParseOrder("desc"); err != nil || o != Descending {
		t.Fatalf("ParseOrder(desc) = %q, %v", o, err)
	}
	if _, err := ParseOrder("sideways"); err == nil {
		t.Fatalf("expected error for unknown order")
	}
	if FilterHigh.Next() != FilterNone || FilterNone.Next() != FilterLow {
		t.Fatalf("filter cycle broken")
	}
	if Ascending.Toggle() != Descending || Order("").Toggle() != Descending {
		t.Fatalf("order toggle broken")
	}
}
