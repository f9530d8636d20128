package search

import (
	"testing"

	"github.com/ptbdnr/vrp/infra/logger"
)

func TestRelocateApplyAt(t *testing.T) {
	ev, store := lineFixture(t, 6)
	op := NewRelocate(ev, logger.NopLogger{}, 1)
	seed := routeOf(t, store, "seed", 0, 1, 2, 3, 4, 5)

	forward := op.ApplyAt(seed, 1, 3)
	assertIDs(t, forward, 0, 2, 3, 1, 4, 5)

	backward := op.ApplyAt(seed, 4, 1)
	assertIDs(t, backward, 0, 4, 1, 2, 3, 5)

	assertIDs(t, seed, 0, 1, 2, 3, 4, 5)
}

func TestRelocateRoundTrip(t *testing.T) {
	ev, store := lineFixture(t, 6)
	op := NewRelocate(ev, logger.NopLogger{}, 1)
	seed := routeOf(t, store, "seed", 0, 3, 1, 4, 2, 5)

	moved := op.ApplyAt(seed, 1, 3)
	restored := op.ApplyAt(moved, 3, 1)
	assertIDs(t, restored, 0, 3, 1, 4, 2, 5)
}

func TestRelocateRejectsBadPositions(t *testing.T) {
	ev, store := lineFixture(t, 6)
	op := NewRelocate(ev, logger.NopLogger{}, 1)
	seed := routeOf(t, store, "seed", 0, 1, 2, 3, 4, 5)

	for _, tc := range [][2]int{{0, 2}, {2, 0}, {5, 2}, {2, 5}, {3, 3}} {
		out := op.ApplyAt(seed, tc[0], tc[1])
		assertIDs(t, out, 0, 1, 2, 3, 4, 5)
	}
}

func TestRelocateTooShort(t *testing.T) {
	ev, store := lineFixture(t, 3)
	op := NewRelocate(ev, logger.NopLogger{}, 1)
	seed := routeOf(t, store, "seed", 0, 1, 2)

	out := op.Apply(seed)
	assertIDs(t, out, 0, 1, 2)
}

func TestRelocateRandomKeepsStructure(t *testing.T) {
	ev, store := lineFixture(t, 8)
	op := NewRelocate(ev, logger.NopLogger{}, 42)
	seed := routeOf(t, store, "seed", 0, 1, 2, 3, 4, 5, 6, 7)

	for i := 0; i < 50; i++ {
		out := op.Apply(seed)
		assertSameVisit(t, out, seed)
		same := true
		for j, n := range out.Sequence {
			if n.ID != seed.Sequence[j].ID {
				same = false
				break
			}
		}
		if same {
			t.Fatalf("random relocate returned the input order")
		}
	}
}

func TestRelocateBestImprovement(t *testing.T) {
	ev, store := lineFixture(t, 6)
	op := NewRelocate(ev, logger.NopLogger{}, 1)
	// node 1 sits out of place; one relocation restores the line order
	seed := routeOf(t, store, "seed", 0, 2, 3, 1, 4, 5)

	out := op.ApplyBestImprovement(seed, false)
	assertIDs(t, out, 0, 1, 2, 3, 4, 5)
}

func TestRelocateBestImprovementStuckReturnsCopy(t *testing.T) {
	ev, store := lineFixture(t, 6)
	op := NewRelocate(ev, logger.NopLogger{}, 1)
	seed := routeOf(t, store, "seed", 0, 1, 2, 3, 4, 5)

	out := op.ApplyBestImprovement(seed, false)
	assertIDs(t, out, 0, 1, 2, 3, 4, 5)
	out.Sequence[1], out.Sequence[2] = out.Sequence[2], out.Sequence[1]
	assertIDs(t, seed, 0, 1, 2, 3, 4, 5)
}

func TestRelocateFirstImprovementMatchesScanOrder(t *testing.T) {
	ev, store := lineFixture(t, 8)
	op := NewRelocate(ev, logger.NopLogger{}, 1)
	seed := routeOf(t, store, "seed", 0, 5, 2, 3, 4, 1, 6, 7)
	seedValue, err := ev.Objective(seed)
	if err != nil {
		t.Fatalf("Objective: %v", err)
	}

	var want []int
	length := seed.Len()
scan:
	for from := 1; from <= length-2; from++ {
		for to := 1; to <= length-2; to++ {
			if to == from {
				continue
			}
			cand := op.ApplyAt(seed, from, to)
			value, err := ev.Objective(cand)
			if err != nil {
				t.Fatalf("Objective: %v", err)
			}
			if value < seedValue {
				want = cand.IDs()
				break scan
			}
		}
	}
	if want == nil {
		t.Fatalf("expected an improving candidate for the scrambled seed")
	}

	out := op.ApplyFirstImprovement(seed, false)
	assertIDs(t, out, want...)
}
