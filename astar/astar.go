// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package astar implements the generic best-first search harness (spec
// §4.1, C5): an implicit-graph A* search with a state machine, a
// cost-ordered open heap with a caller-supplied tie-break, a closed map for
// duplicate suppression, backtracking, and reusable buffers, styled after
// the lazy graph.Graph idiom kortschak-loopy's cmd/press uses over
// gonum.org/v1/gonum/graph (graph.Nodes generated on demand via From),
// adapted here to a bespoke implicit node space rather than a materialised
// gonum graph so the engine can expose reset/backtrack/limit semantics a
// generic graph library does not provide.
package astar

import (
	"container/heap"
	"fmt"
	"time"

	"github.com/kortschak/tsalign/cost"
)

// Node is one node of the implicit search graph. Ident is the problem's
// node identifier type (must be a comparable Go value so it can key the
// closed map); Edge is the problem's edge-kind type, used only for
// backtracking.
type Node[Ident comparable, Edge any] struct {
	ID   Ident
	G    cost.Cost // cost from root
	H    cost.Cost // admissible lower bound to target
	Pred Ident
	// HasPred is false only for the root node.
	HasPred bool
	Edge    Edge
	// TieBreak orders nodes with equal G+H; smaller pops first. Context
	// implementations compute this from their own ordering strategy (spec
	// §4.7); the engine itself is agnostic to what it means.
	TieBreak int64
}

// Context is implemented by the problem whose state space the engine
// searches. GenerateSuccessors must push zero or more successors of node
// via push; it must not retain node beyond the call.
type Context[Ident comparable, Edge any] interface {
	CreateRoot() Node[Ident, Edge]
	GenerateSuccessors(node Node[Ident, Edge], push func(Node[Ident, Edge]))
	IsTarget(node Node[Ident, Edge]) bool
}

// State is the engine's lifecycle state (spec §4.1).
type State int

const (
	Empty State = iota
	Init
	Searching
	Terminated
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Init:
		return "Init"
	case Searching:
		return "Searching"
	case Terminated:
		return "Terminated"
	default:
		return "unknown"
	}
}

// Reason is the terminal outcome of a search.
type Reason int

const (
	FoundTarget Reason = iota
	NoTarget
	ExceededCostLimit
	ExceededMemoryLimit
)

func (r Reason) String() string {
	switch r {
	case FoundTarget:
		return "FoundTarget"
	case NoTarget:
		return "NoTarget"
	case ExceededCostLimit:
		return "ExceededCostLimit"
	case ExceededMemoryLimit:
		return "ExceededMemoryLimit"
	default:
		return "unknown"
	}
}

// Result is the outcome of Search/SearchUntil.
type Result[Ident comparable] struct {
	Reason     Reason
	Identifier Ident     // valid when Reason == FoundTarget
	Cost       cost.Cost // valid when Reason == FoundTarget
}

// Statistics accumulates the counters spec §6 requires of every search.
type Statistics struct {
	OpenedNodes            int
	SuboptimalOpenedNodes  int
	ClosedNodes            int
	Duration               time.Duration
	TerminalCost           cost.Cost
}

// perNodeByteEstimate is a coarse per-node memory estimate used by the
// memory limit check; it need not be exact, only monotone in the number of
// live nodes (spec §4.1 "coarse byte estimate").
const perNodeByteEstimate = 96

// Buffers holds the open heap and closed map so they can be reused across
// structurally similar searches (spec §4.1 into_buffers/new_with_buffers;
// §9 "large speedups" from caching), avoiding repeated allocation when many
// small searches run back to back, as C7/C9 do.
type Buffers[Ident comparable, Edge any] struct {
	open   openHeap[Ident, Edge]
	closed map[Ident]Node[Ident, Edge]
}

// NewBuffers returns an empty, ready-to-use Buffers value.
func NewBuffers[Ident comparable, Edge any]() Buffers[Ident, Edge] {
	return Buffers[Ident, Edge]{closed: make(map[Ident]Node[Ident, Edge])}
}

func (b *Buffers[Ident, Edge]) clear() {
	b.open = b.open[:0]
	for k := range b.closed {
		delete(b.closed, k)
	}
}

// Engine is the generic A* search harness.
type Engine[Ident comparable, Edge any] struct {
	state   State
	result  Result[Ident]
	ctx     Context[Ident, Edge]
	open    openHeap[Ident, Edge]
	closed  map[Ident]Node[Ident, Edge]
	stats   Statistics
	started time.Time

	costLimit   cost.Cost
	hasCostLim  bool
	memoryLimit int
	hasMemLim   bool
}

// New returns an Engine in state Empty.
func New[Ident comparable, Edge any](ctx Context[Ident, Edge]) *Engine[Ident, Edge] {
	return &Engine[Ident, Edge]{
		state:  Empty,
		ctx:    ctx,
		closed: make(map[Ident]Node[Ident, Edge]),
	}
}

// NewWithBuffers returns an Engine in state Empty, reusing the heap and map
// storage from buffers (cleared first).
func NewWithBuffers[Ident comparable, Edge any](ctx Context[Ident, Edge], buffers Buffers[Ident, Edge]) *Engine[Ident, Edge] {
	buffers.clear()
	return &Engine[Ident, Edge]{
		state:  Empty,
		ctx:    ctx,
		open:   buffers.open,
		closed: buffers.closed,
	}
}

// SetCostLimit installs a cost limit enforced at pop time (spec §4.1).
func (e *Engine[Ident, Edge]) SetCostLimit(limit cost.Cost) {
	e.costLimit, e.hasCostLim = limit, true
}

// SetMemoryLimit installs a coarse memory limit in bytes, estimated from the
// number of live open and closed nodes at perNodeByteEstimate bytes each.
func (e *Engine[Ident, Edge]) SetMemoryLimit(maxBytes int) {
	e.memoryLimit, e.hasMemLim = maxBytes, true
}

// State reports the engine's lifecycle state.
func (e *Engine[Ident, Edge]) State() State { return e.state }

// Statistics returns the counters accumulated so far.
func (e *Engine[Ident, Edge]) Statistics() Statistics { return e.stats }

// Context returns the problem context driving this engine.
func (e *Engine[Ident, Edge]) Context() Context[Ident, Edge] { return e.ctx }

// Reset returns the engine to state Empty, clearing all search state but
// keeping the context and any configured limits.
func (e *Engine[Ident, Edge]) Reset() {
	e.state = Empty
	e.open = e.open[:0]
	for k := range e.closed {
		delete(e.closed, k)
	}
	e.stats = Statistics{}
	e.result = Result[Ident]{}
}

// IntoBuffers extracts the heap/map storage for reuse by a later Engine,
// consuming e (spec §4.1 into_buffers).
func (e *Engine[Ident, Edge]) IntoBuffers() Buffers[Ident, Edge] {
	return Buffers[Ident, Edge]{open: e.open, closed: e.closed}
}

// ClosedNode returns the closed node for id, if any.
func (e *Engine[Ident, Edge]) ClosedNode(id Ident) (Node[Ident, Edge], bool) {
	n, ok := e.closed[id]
	return n, ok
}

// ClosedNodes returns the engine's closed-node map directly (not a copy).
// Precomputation passes that saturate a synthetic search (C7, C8) need to
// enumerate every node a search reached, not just look one identifier up at
// a time; callers must treat the result as read-only.
func (e *Engine[Ident, Edge]) ClosedNodes() map[Ident]Node[Ident, Edge] {
	return e.closed
}

// Initialise pushes the context's root node. Must be called in state Empty.
func (e *Engine[Ident, Edge]) Initialise() {
	e.InitialiseWith(e.ctx.CreateRoot())
}

// InitialiseWith pushes an explicit root node, for contexts whose root
// depends on external parameters not visible to CreateRoot (e.g. the
// minimum-length lookahead's inner search, which roots at a specific
// secondary position).
func (e *Engine[Ident, Edge]) InitialiseWith(root Node[Ident, Edge]) {
	if e.state != Empty {
		panic(fmt.Sprintf("astar: Initialise called in state %s, want Empty", e.state))
	}
	heap.Push(&e.open, root)
	e.state = Init
}

// Search runs the core loop until a target is found, the open list empties,
// or a configured limit is exceeded. Must be called in state Init.
func (e *Engine[Ident, Edge]) Search() Result[Ident] {
	return e.SearchUntil(e.ctx.IsTarget)
}

// SearchUntil is like Search but uses predicate in place of the context's
// IsTarget, allowing the caller to pause and resume a search with a
// different stopping condition (spec §5 "resume by calling search_until
// again with a new predicate"). After a FoundTarget result it may be called
// again to continue from the open and closed lists as they were left; any
// other terminal result ends the search for good.
func (e *Engine[Ident, Edge]) SearchUntil(predicate func(Node[Ident, Edge]) bool) Result[Ident] {
	resumable := e.state == Terminated && e.result.Reason == FoundTarget
	if e.state != Init && e.state != Searching && !resumable {
		panic(fmt.Sprintf("astar: Search called in state %s, want Init, Searching, or Terminated after a found target", e.state))
	}
	e.state = Searching
	e.started = time.Now()

	for {
		if e.open.Len() == 0 {
			e.stats.Duration += time.Since(e.started)
			e.result = Result[Ident]{Reason: NoTarget}
			e.state = Terminated
			return e.result
		}

		node := heap.Pop(&e.open).(Node[Ident, Edge])

		if e.hasCostLim {
			total := node.G.Add(node.H)
			if e.costLimit.Less(total) {
				e.stats.Duration += time.Since(e.started)
				e.result = Result[Ident]{Reason: ExceededCostLimit}
				e.state = Terminated
				return e.result
			}
		}
		if e.hasMemLim {
			if (e.open.Len()+len(e.closed))*perNodeByteEstimate > e.memoryLimit {
				e.stats.Duration += time.Since(e.started)
				e.result = Result[Ident]{Reason: ExceededMemoryLimit}
				e.state = Terminated
				return e.result
			}
		}

		if _, ok := e.closed[node.ID]; ok {
			e.stats.SuboptimalOpenedNodes++
			continue
		}

		before := e.open.Len()
		e.ctx.GenerateSuccessors(node, func(succ Node[Ident, Edge]) {
			heap.Push(&e.open, succ)
		})
		e.stats.OpenedNodes += e.open.Len() - before

		if predicate(node) {
			e.closed[node.ID] = node
			e.stats.ClosedNodes++
			e.stats.Duration += time.Since(e.started)
			e.stats.TerminalCost = node.G
			e.result = Result[Ident]{Reason: FoundTarget, Identifier: node.ID, Cost: node.G}
			e.state = Terminated
			return e.result
		}

		e.closed[node.ID] = node
		e.stats.ClosedNodes++
	}
}

// Backtrack returns the edge sequence from the found target back to the
// root, in that (reverse-of-alignment) order. Must be called in state
// Terminated{FoundTarget}.
func (e *Engine[Ident, Edge]) Backtrack() []Edge {
	var edges []Edge
	for _, n := range e.BacktrackNodes() {
		if n.HasPred {
			edges = append(edges, n.Edge)
		}
	}
	return edges
}

// BacktrackNodes returns the full closed-node path from the found target
// back to the root, in that (reverse-of-alignment) order, including the
// root itself. Callers that need more than an edge's kind — the
// identifier it arrived at, to recover template-switch boundary detail a
// bare Edge does not carry — walk this instead of Backtrack. Must be
// called in state Terminated{FoundTarget}.
func (e *Engine[Ident, Edge]) BacktrackNodes() []Node[Ident, Edge] {
	if e.state != Terminated || e.result.Reason != FoundTarget {
		panic("astar: BacktrackNodes called without a found target")
	}
	var nodes []Node[Ident, Edge]
	current := e.result.Identifier
	for {
		node, ok := e.closed[current]
		if !ok {
			panic("astar: backtrack hit an identifier not present in the closed list")
		}
		nodes = append(nodes, node)
		if !node.HasPred {
			return nodes
		}
		current = node.Pred
	}
}

// openHeap is a container/heap min-heap ordered by (G+H, TieBreak).
type openHeap[Ident comparable, Edge any] []Node[Ident, Edge]

func (h openHeap[Ident, Edge]) Len() int { return len(h) }

func (h openHeap[Ident, Edge]) Less(i, j int) bool {
	ti := h[i].G.Add(h[i].H)
	tj := h[j].G.Add(h[j].H)
	if c := ti.Compare(tj); c != 0 {
		return c < 0
	}
	return h[i].TieBreak < h[j].TieBreak
}

func (h openHeap[Ident, Edge]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *openHeap[Ident, Edge]) Push(x any) {
	*h = append(*h, x.(Node[Ident, Edge]))
}

func (h *openHeap[Ident, Edge]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
