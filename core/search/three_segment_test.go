package search

import (
	"testing"

	"github.com/ptbdnr/vrp/infra/logger"
)

func TestThreeSegmentReconnectKinds(t *testing.T) {
	ev, store := lineFixture(t, 8)
	op := NewThreeSegment(ev, logger.NopLogger{}, 1)
	seed := routeOf(t, store, "seed", 0, 1, 2, 3, 4, 5, 6, 7)

	cases := []struct {
		kind ReconnectKind
		want []int
	}{
		{ReconnectIdentity, []int{0, 1, 2, 3, 4, 5, 6, 7}},
		{ReconnectReverseC, []int{0, 1, 2, 3, 5, 4, 6, 7}},
		{ReconnectReverseB, []int{0, 1, 3, 2, 4, 5, 6, 7}},
		{ReconnectSwap, []int{0, 1, 4, 5, 2, 3, 6, 7}},
		{ReconnectReverseBoth, []int{0, 1, 3, 2, 5, 4, 6, 7}},
		{ReconnectSwapReverseB, []int{0, 1, 4, 5, 3, 2, 6, 7}},
		{ReconnectSwapReverseC, []int{0, 1, 5, 4, 2, 3, 6, 7}},
		{ReconnectSwapReverseBoth, []int{0, 1, 5, 4, 3, 2, 6, 7}},
	}
	seen := map[string]ReconnectKind{}
	for _, tc := range cases {
		out := op.ApplyAt(seed, 2, 4, 6, tc.kind)
		assertIDs(t, out, tc.want...)
		key := out.String()
		if prev, dup := seen[key]; dup {
			t.Fatalf("kinds %s and %s produced the same sequence %s", prev, tc.kind, key)
		}
		seen[key] = tc.kind
	}
	// input stays untouched throughout
	assertIDs(t, seed, 0, 1, 2, 3, 4, 5, 6, 7)
}

func TestThreeSegmentSortsPositions(t *testing.T) {
	ev, store := lineFixture(t, 8)
	op := NewThreeSegment(ev, logger.NopLogger{}, 1)
	seed := routeOf(t, store, "seed", 0, 1, 2, 3, 4, 5, 6, 7)

	sorted := op.ApplyAt(seed, 2, 4, 6, ReconnectSwap)
	shuffled := op.ApplyAt(seed, 6, 2, 4, ReconnectSwap)
	assertIDs(t, shuffled, sorted.IDs()...)
}

func TestThreeSegmentRejectsBadParameters(t *testing.T) {
	ev, store := lineFixture(t, 8)
	op := NewThreeSegment(ev, logger.NopLogger{}, 1)
	seed := routeOf(t, store, "seed", 0, 1, 2, 3, 4, 5, 6, 7)

	for _, tc := range []struct {
		v1, v2, v3 int
		kind       ReconnectKind
	}{
		{0, 2, 4, ReconnectSwap},
		{2, 4, 7, ReconnectSwap},
		{2, 2, 4, ReconnectSwap},
		{2, 4, 4, ReconnectSwap},
		{2, 4, 6, ReconnectKind(9)},
		{2, 4, 6, ReconnectKind(-1)},
	} {
		out := op.ApplyAt(seed, tc.v1, tc.v2, tc.v3, tc.kind)
		assertIDs(t, out, 0, 1, 2, 3, 4, 5, 6, 7)
	}
}

func TestThreeSegmentTooShort(t *testing.T) {
	ev, store := lineFixture(t, 5)
	op := NewThreeSegment(ev, logger.NopLogger{}, 1)
	seed := routeOf(t, store, "seed", 0, 1, 2, 3, 4)

	out := op.ApplyAt(seed, 1, 2, 3, ReconnectSwap)
	assertIDs(t, out, 0, 1, 2, 3, 4)
}

func TestThreeSegmentInPlace(t *testing.T) {
	ev, store := lineFixture(t, 8)
	op := NewThreeSegment(ev, logger.NopLogger{}, 1)
	seed := routeOf(t, store, "seed", 0, 1, 2, 3, 4, 5, 6, 7)

	out := op.ApplyAtInPlace(seed, 2, 4, 6, ReconnectSwap)
	assertIDs(t, out, 0, 1, 4, 5, 2, 3, 6, 7)
	assertIDs(t, seed, 0, 1, 4, 5, 2, 3, 6, 7)
}

func TestThreeSegmentRandomKeepsStructure(t *testing.T) {
	ev, store := lineFixture(t, 8)
	op := NewThreeSegment(ev, logger.NopLogger{}, 42)
	seed := routeOf(t, store, "seed", 0, 1, 2, 3, 4, 5, 6, 7)

	for i := 0; i < 50; i++ {
		out := op.Apply(seed)
		assertSameVisit(t, out, seed)
	}
	assertIDs(t, seed, 0, 1, 2, 3, 4, 5, 6, 7)
}

func TestThreeSegmentBestImprovement(t *testing.T) {
	ev, store := lineFixture(t, 8)
	op := NewThreeSegment(ev, logger.NopLogger{}, 1)
	// the swap kind at cuts [2:4:6] maps this back to the identity order
	seed := routeOf(t, store, "seed", 0, 1, 4, 5, 2, 3, 6, 7)

	out := op.ApplyBestImprovement(seed, false)
	assertIDs(t, out, 0, 1, 2, 3, 4, 5, 6, 7)
}

func TestThreeSegmentFirstImprovementMatchesScanOrder(t *testing.T) {
	ev, store := lineFixture(t, 8)
	op := NewThreeSegment(ev, logger.NopLogger{}, 1)
	seed := routeOf(t, store, "seed", 0, 1, 4, 5, 2, 3, 6, 7)
	seedValue, err := ev.Objective(seed)
	if err != nil {
		t.Fatalf("Objective: %v", err)
	}

	// replay the canonical scan through the public single-move API
	var want []int
	length := seed.Len()
scan:
	for v1 := 1; v1 <= length-5; v1++ {
		for v2 := v1 + 1; v2 <= length-3; v2++ {
			for v3 := v2 + 1; v3 <= length-2; v3++ {
				for kind := ReconnectReverseC; kind <= ReconnectSwapReverseBoth; kind++ {
					cand := op.ApplyAt(seed, v1, v2, v3, kind)
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
		}
	}
	if want == nil {
		t.Fatalf("expected an improving candidate for the scrambled seed")
	}

	out := op.ApplyFirstImprovement(seed, false)
	assertIDs(t, out, want...)
}

func TestThreeSegmentRandomImprovement(t *testing.T) {
	ev, store := lineFixture(t, 8)
	op := NewThreeSegment(ev, logger.NopLogger{}, 42)
	seed := routeOf(t, store, "seed", 0, 1, 4, 5, 2, 3, 6, 7)
	seedValue, err := ev.Objective(seed)
	if err != nil {
		t.Fatalf("Objective: %v", err)
	}

	out := op.ApplyRandomImprovement(seed, 2000, false)
	outValue, err := ev.Objective(out)
	if err != nil {
		t.Fatalf("Objective: %v", err)
	}
	if outValue >= seedValue {
		t.Fatalf("expected a random improvement within 2000 attempts, got %.4f >= %.4f", outValue, seedValue)
	}
	assertSameVisit(t, out, seed)
}

func TestThreeSegmentRandomImprovementExhausts(t *testing.T) {
	ev, store := lineFixture(t, 8)
	op := NewThreeSegment(ev, logger.NopLogger{}, 42)
	seed := routeOf(t, store, "seed", 0, 1, 2, 3, 4, 5, 6, 7)

	out := op.ApplyRandomImprovement(seed, 50, false)
	assertIDs(t, out, 0, 1, 2, 3, 4, 5, 6, 7)
}
