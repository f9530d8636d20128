package search

import (
	"context"
	"testing"
	"time"
)

func TestFixedIterations(t *testing.T) {
	if FixedIterations(0).ShouldTerminate(0) != true {
		t.Fatalf("zero budget should terminate immediately")
	}
	term := FixedIterations(5)
	if term.ShouldTerminate(4) {
		t.Fatalf("should not terminate before the budget")
	}
	if !term.ShouldTerminate(5) {
		t.Fatalf("should terminate once the budget is reached")
	}
}

func TestStalled(t *testing.T) {
	term := &Stalled{Window: 2}
	if term.ShouldTerminate(0) {
		t.Fatalf("fresh policy should not terminate")
	}
	term.ObserveIteration(0, false)
	if term.ShouldTerminate(1) {
		t.Fatalf("one stalled iteration should not terminate with window 2")
	}
	term.ObserveIteration(1, false)
	if !term.ShouldTerminate(2) {
		t.Fatalf("two stalled iterations should terminate")
	}
	term.ObserveIteration(2, true)
	if term.ShouldTerminate(3) {
		t.Fatalf("an improvement should reset the streak")
	}
}

func TestStalledDisabled(t *testing.T) {
	term := &Stalled{}
	for i := 0; i < 10; i++ {
		term.ObserveIteration(i, false)
	}
	if term.ShouldTerminate(10) {
		t.Fatalf("zero window should never terminate")
	}
}

func TestDeadline(t *testing.T) {
	if Deadline(time.Now().Add(time.Hour)).ShouldTerminate(0) {
		t.Fatalf("future deadline should not terminate")
	}
	if !Deadline(time.Now().Add(-time.Second)).ShouldTerminate(0) {
		t.Fatalf("past deadline should terminate")
	}
}

func TestContextDone(t *testing.T) {
	if (ContextDone{Ctx: context.Background()}).ShouldTerminate(0) {
		t.Fatalf("live context should not terminate")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if !(ContextDone{Ctx: ctx}).ShouldTerminate(0) {
		t.Fatalf("cancelled context should terminate")
	}
}

func TestAnyCombinesPolicies(t *testing.T) {
	stalled := &Stalled{Window: 1}
	term := Any{FixedIterations(100), stalled}
	if term.ShouldTerminate(0) {
		t.Fatalf("no member should have fired yet")
	}
	term.ObserveIteration(0, false)
	if !term.ShouldTerminate(1) {
		t.Fatalf("the stalled member should fire through Any")
	}
	if !(Any{FixedIterations(2)}).ShouldTerminate(2) {
		t.Fatalf("the budget member should fire through Any")
	}
}
