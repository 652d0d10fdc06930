package search

import (
	"sync"
	"testing"
)

func TestTrackerDropsStaleTickets(t *testing.T) {
	var tr Tracker
	first := tr.Begin("paracetamol")
	if !tr.IsActive(first) {
		t.Fatalf("first ticket should be active")
	}
	second := tr.Begin("amlodipine")
	if tr.IsActive(first) {
		t.Fatalf("first ticket should be stale after a new query")
	}

	var applied []string
	if tr.Apply(first, func() { applied = append(applied, first.Query) }) {
		t.Fatalf("stale ticket must not apply")
	}
	if !tr.Apply(second, func() { applied = append(applied, second.Query) }) {
		t.Fatalf("active ticket should apply")
	}
	if len(applied) != 1 || applied[0] != "amlodipine" {
		t.Fatalf("unexpected applied results %v", applied)
	}
}

func TestTrackerZeroTicketIsNeverActive(t *testing.T) {
	var tr Tracker
	if tr.IsActive(Ticket{}) {
		t.Fatalf("zero ticket should not be active")
	}
}

func TestTrackerConcurrentBegin(t *testing.T) {
	var tr Tracker
	var wg sync.WaitGroup
	tickets := make([]Ticket, 50)
	for i := range tickets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tickets[i] = tr.Begin("q")
		}(i)
	}
	wg.Wait()

	active := 0
	for _, tk := range tickets {
		if tr.IsActive(tk) {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("expected exactly one active ticket, got %d", active)
	}
}
