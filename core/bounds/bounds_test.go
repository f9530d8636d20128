package bounds

import (
	"math"
	"testing"

	"github.com/ptbdnr/vrp/core/model"
	"github.com/ptbdnr/vrp/core/network"
	"github.com/ptbdnr/vrp/infra/logger"
)

func TestBoundsOnLine(t *testing.T) {
	nodes := []model.Node{
		{ID: 0, X: 0},
		{ID: 1, X: 10},
		{ID: 2, X: 20},
		{ID: 3, X: 30},
	}
	store, err := network.NewStore(nodes)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	calc := NewCalculator(store, network.NewDistanceCache(), logger.NopLogger{})

	lower, upper := calc.Range()
	// min(d)=10, max(d)=30, n=4
	wantLower := 10.0 * 4 * 31
	wantUpper := 30.0 * 4 * 31
	if math.Abs(lower-wantLower) > 1e-9 {
		t.Fatalf("expected lower bound %.2f, got %.2f", wantLower, lower)
	}
	if math.Abs(upper-wantUpper) > 1e-9 {
		t.Fatalf("expected upper bound %.2f, got %.2f", wantUpper, upper)
	}
	if calc.Lower() != lower || calc.Upper() != upper {
		t.Fatalf("accessors disagree with Range")
	}
}

func TestBoundsOrdering(t *testing.T) {
	nodes := []model.Node{
		{ID: 0, X: 0, Y: 0},
		{ID: 1, X: 3, Y: 4},
		{ID: 2, X: -2, Y: 7},
		{ID: 3, X: 9, Y: 1},
		{ID: 4, X: 5, Y: 5},
	}
	store, err := network.NewStore(nodes)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	calc := NewCalculator(store, network.NewDistanceCache(), logger.NopLogger{})

	lower, upper := calc.Range()
	if lower <= 0 || upper <= 0 {
		t.Fatalf("bounds should be positive, got %.4f and %.4f", lower, upper)
	}
	if lower > upper {
		t.Fatalf("lower bound %.4f exceeds upper bound %.4f", lower, upper)
	}
}
