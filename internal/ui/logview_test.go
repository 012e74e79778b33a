package ui

import (
	"fmt"
	"testing"
)

func TestLogView_WriteAndTail(t *testing.T) {
	v := NewLogView(10)

	fmt.Fprintf(v, "first line\n")
	fmt.Fprintf(v, "second line\nthird line\n")

	got := v.Tail(2)
	if len(got) != 2 || got[0] != "second line" || got[1] != "third line" {
		t.Errorf("Tail(2) = %v, want last two lines", got)
	}

	if got := v.Tail(100); len(got) != 3 {
		t.Errorf("Tail(100) returned %d lines, want 3", len(got))
	}
}

func TestLogView_RingLimit(t *testing.T) {
	v := NewLogView(3)

	for i := 0; i < 10; i++ {
		fmt.Fprintf(v, "line %d\n", i)
	}

	got := v.Tail(10)
	if len(got) != 3 {
		t.Fatalf("kept %d lines, want 3", len(got))
	}
	if got[0] != "line 7" || got[2] != "line 9" {
		t.Errorf("Tail = %v, want the newest three lines", got)
	}
}
