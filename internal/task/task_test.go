package task

import "testing"

func TestParsePriority(t *testing.T) {
	cases := map[string]Priority{
		"low":      PriorityLow,
		" Medium ": PriorityMedium,
		"HIGH":     PriorityHigh,
	}
	for input, want := range cases {
		got, err := ParsePriority(input)
		if err != nil {
			t.Fatalf("ParsePriority(%q) error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParsePriority(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Fatalf("expected error for unknown priority")
	}
}

func TestPriorityNextWraps(t *testing.T) {
	p := PriorityLow
	var seen []Priority
	for i := 0; i < 4; i++ {
		p = p.Next()
		seen = append(seen, p)
	}
	want := []Priority{PriorityMedium, PriorityHigh, PriorityLow, PriorityMedium}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", seen, want)
		}
	}
}

func TestAllocatorNext(t *testing.T) {
	a := NewAllocator()
	for want := ID(1); want <= 5; want++ {
		if got := a.Next(); got != want {
			t.Fatalf("Next() = %d, want %d", got, want)
		}
	}
	var zero Allocator
	if got := zero.Next(); got != 1 {
		t.Fatalf("zero allocator Next() = %d, want 1", got)
	}
}
