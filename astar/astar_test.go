package astar

import (
	"testing"

	"github.com/kortschak/tsalign/cost"
)

// gridContext is a minimal A* context used only to exercise the engine: it
// searches a w×h grid for a shortest path from (0,0) to (w-1,h-1) moving
// right or down at unit cost, with a Manhattan-distance heuristic.
type gridContext struct {
	w, h int
}

type gridID struct{ x, y int }

func (g gridContext) CreateRoot() Node[gridID, string] {
	return Node[gridID, string]{ID: gridID{0, 0}, G: cost.Zero, H: g.heuristic(gridID{0, 0})}
}

func (g gridContext) heuristic(id gridID) cost.Cost {
	return cost.FromInt((g.w - 1 - id.x) + (g.h - 1 - id.y))
}

func (g gridContext) GenerateSuccessors(n Node[gridID, string], push func(Node[gridID, string])) {
	x, y := n.ID.x, n.ID.y
	if x+1 < g.w {
		id := gridID{x + 1, y}
		push(Node[gridID, string]{ID: id, G: n.G.Add(cost.FromInt(1)), H: g.heuristic(id), Pred: n.ID, HasPred: true, Edge: "right"})
	}
	if y+1 < g.h {
		id := gridID{x, y + 1}
		push(Node[gridID, string]{ID: id, G: n.G.Add(cost.FromInt(1)), H: g.heuristic(id), Pred: n.ID, HasPred: true, Edge: "down"})
	}
}

func (g gridContext) IsTarget(n Node[gridID, string]) bool {
	return n.ID.x == g.w-1 && n.ID.y == g.h-1
}

func TestEngineFindsShortestPath(t *testing.T) {
	ctx := gridContext{w: 4, h: 3}
	e := New[gridID, string](ctx)
	e.Initialise()
	result := e.Search()
	if result.Reason != FoundTarget {
		t.Fatalf("result.Reason = %v, want FoundTarget", result.Reason)
	}
	if result.Cost.Int() != 5 {
		t.Fatalf("cost = %v, want 5", result.Cost)
	}
	edges := e.Backtrack()
	if len(edges) != 5 {
		t.Fatalf("len(edges) = %d, want 5", len(edges))
	}
}

func TestEngineStateMisuse(t *testing.T) {
	ctx := gridContext{w: 2, h: 2}
	e := New[gridID, string](ctx)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling Search before Initialise")
		}
	}()
	e.Search()
}

func TestEngineSingleNodeGrid(t *testing.T) {
	ctx := gridContext{w: 1, h: 1}
	e := New[gridID, string](ctx)
	e.Initialise()
	result := e.Search()
	// Single cell grid: root is immediately the target.
	if result.Reason != FoundTarget {
		t.Fatalf("result.Reason = %v, want FoundTarget", result.Reason)
	}
}

func TestEngineCostLimit(t *testing.T) {
	ctx := gridContext{w: 10, h: 10}
	e := New[gridID, string](ctx)
	e.SetCostLimit(cost.FromInt(2))
	e.Initialise()
	result := e.Search()
	if result.Reason != ExceededCostLimit {
		t.Fatalf("result.Reason = %v, want ExceededCostLimit", result.Reason)
	}
}

func TestEngineResetIsIdempotent(t *testing.T) {
	ctx := gridContext{w: 5, h: 5}
	e := New[gridID, string](ctx)
	e.Initialise()
	r1 := e.Search()
	s1 := e.Statistics()

	e.Reset()
	e.Initialise()
	r2 := e.Search()
	s2 := e.Statistics()

	if r1.Cost != r2.Cost || s1.OpenedNodes != s2.OpenedNodes || s1.ClosedNodes != s2.ClosedNodes {
		t.Fatalf("reset+rerun diverged: %+v/%+v vs %+v/%+v", r1, s1, r2, s2)
	}
}

func TestBuffersReuse(t *testing.T) {
	ctx := gridContext{w: 3, h: 3}
	e := New[gridID, string](ctx)
	e.Initialise()
	e.Search()
	buffers := e.IntoBuffers()

	e2 := NewWithBuffers[gridID, string](ctx, buffers)
	e2.Initialise()
	result := e2.Search()
	if result.Reason != FoundTarget {
		t.Fatalf("result.Reason = %v, want FoundTarget", result.Reason)
	}
}
