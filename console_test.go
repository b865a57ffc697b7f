package gamesrv

import (
	"fmt"
	"testing"
)

func TestPublishDropsOldest(t *testing.T) {
	p := &Process{lines: make(chan string, 3)}

	for i := 1; i <= 5; i++ {
		p.publish(fmt.Sprintf("line %d", i))
	}

	got := p.ReadOutput()
	want := []string{"line 3", "line 4", "line 5"}

	if len(got) != len(want) {
		t.Fatalf("ReadOutput returned %d lines, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadOutputEmptyWhenIdle(t *testing.T) {
	p := &Process{lines: make(chan string, 3)}

	p.publish("only line")

	if got := p.ReadOutput(); len(got) != 1 {
		t.Fatalf("first drain returned %d lines, want 1", len(got))
	}
	if got := p.ReadOutput(); len(got) != 0 {
		t.Errorf("second drain returned %d lines, want 0", len(got))
	}
}
