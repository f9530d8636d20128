package model

import "testing"

func TestRouteString(t *testing.T) {
	r := Route{Name: "naive", Sequence: []Node{{ID: 0}, {ID: 3}, {ID: 1}, {ID: 2}, {ID: 4}}}
	if got := r.String(); got != "0-3-1-2-4" {
		t.Fatalf("expected 0-3-1-2-4, got %s", got)
	}
	if empty := (Route{}).String(); empty != "" {
		t.Fatalf("expected empty string for empty route, got %q", empty)
	}
}

func TestRouteCopyIsIndependent(t *testing.T) {
	r := Route{Name: "seed", Sequence: []Node{{ID: 0}, {ID: 1}, {ID: 2}}}
	cp := r.Copy()
	cp.Sequence[1] = Node{ID: 9}
	if r.Sequence[1].ID != 1 {
		t.Fatalf("copy mutated the original sequence")
	}
	if cp.Name != r.Name {
		t.Fatalf("copy should keep the route name")
	}
}

func TestRouteIDs(t *testing.T) {
	r := Route{Sequence: []Node{{ID: 0}, {ID: 2}, {ID: 1}}}
	ids := r.IDs()
	want := []int{0, 2, 1}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("ids[%d] = %d, want %d", i, ids[i], id)
		}
	}
}
