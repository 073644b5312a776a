// Package search finds routes through a proximity graph with uninformed
// depth-first or breadth-first traversal.
package search

import (
	"fmt"
	"slices"
	"strings"

	"proximity-route-service/internal/domain"
)

// Adjacency is the read-only view of a graph the engine needs.
// *graph.ProximityGraph satisfies it.
type Adjacency interface {
	Neighbors(id string) ([]string, bool)
}

// ParentRule decides which discovering node becomes a node's parent when it
// is reached from several frontier entries before being visited.
type ParentRule int

const (
	// ParentFromFrontier commits the parent carried by the frontier entry that
	// is actually visited. For DFS this is the most recent discovery; for BFS
	// the earliest one, so BFS paths have minimum node count.
	ParentFromFrontier ParentRule = iota
	// ParentLastRecorded overwrites the parent on every discovery before the
	// first visit, regardless of which frontier entry is consumed first. BFS
	// paths are not guaranteed minimal under this rule.
	ParentLastRecorded
)

func (r ParentRule) String() string {
	switch r {
	case ParentFromFrontier:
		return "frontier"
	case ParentLastRecorded:
		return "last-recorded"
	default:
		return fmt.Sprintf("ParentRule(%d)", int(r))
	}
}

// ParseParentRule accepts "frontier" and "last-recorded" (also "last_recorded"
// and "lastrecorded"). An empty string selects ParentFromFrontier.
func ParseParentRule(s string) (ParentRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "frontier":
		return ParentFromFrontier, nil
	case "last-recorded", "last_recorded", "lastrecorded":
		return ParentLastRecorded, nil
	}
	return 0, fmt.Errorf("parse parent rule %q: %w", s, domain.ErrInvalidConfig)
}

type options struct {
	parentRule ParentRule
}

// Option customizes a single FindPath call.
type Option func(*options)

// WithParentRule selects how parents are recorded; the default is
// ParentFromFrontier.
func WithParentRule(r ParentRule) Option {
	return func(o *options) { o.parentRule = r }
}

// Result is the outcome of a search. Found is false when the frontier was
// exhausted without reaching the goal; that is a normal outcome, not an error.
type Result struct {
	Strategy Strategy
	Path     []string
	Found    bool
}

// Len is the number of nodes on the path (0 when not found).
func (r Result) Len() int {
	return len(r.Path)
}

// Err converts a not-found result into ErrNoPathFound for callers that need
// an error value.
func (r Result) Err() error {
	if r.Found {
		return nil
	}
	return domain.ErrNoPathFound
}

// Summary renders the result the way route pickers display it.
func (r Result) Summary() string {
	if !r.Found {
		return "No Path Found"
	}
	return fmt.Sprintf("%s Path: %s\nTotal steps: %d", r.Strategy, strings.Join(r.Path, " -> "), r.Len())
}

// FindPath searches g from start to goal with the given strategy.
//
// A goal that is not a node fails with ErrInvalidDestination before any
// traversal; a missing start fails with ErrUnknownLocation. Duplicate
// frontier entries are tolerated and skipped once their node is visited.
func FindPath(g Adjacency, start, goal string, strategy Strategy, opts ...Option) (Result, error) {
	if strategy != BreadthFirst && strategy != DepthFirst {
		return Result{}, fmt.Errorf("find path: %w", domain.ErrInvalidStrategy)
	}
	if _, ok := g.Neighbors(goal); !ok {
		return Result{}, fmt.Errorf("find path: goal %q: %w", goal, domain.ErrInvalidDestination)
	}
	if _, ok := g.Neighbors(start); !ok {
		return Result{}, fmt.Errorf("find path: start %q: %w", start, domain.ErrUnknownLocation)
	}

	o := options{parentRule: ParentFromFrontier}
	for _, opt := range opts {
		opt(&o)
	}

	res := Result{Strategy: strategy}

	visited := make(map[string]struct{})
	parent := make(map[string]string)
	f := newFrontier(strategy)
	f.push(entry{node: start, root: true})

	for !f.empty() {
		e := f.pop()
		if _, seen := visited[e.node]; seen {
			continue
		}
		visited[e.node] = struct{}{}
		if o.parentRule == ParentFromFrontier && !e.root {
			parent[e.node] = e.parent
		}

		if e.node == goal {
			path, ok := reconstruct(parent, start, goal)
			if ok {
				res.Path = path
				res.Found = true
			}
			return res, nil
		}

		neighbors, _ := g.Neighbors(e.node)
		for _, n := range neighbors {
			if _, seen := visited[n]; seen {
				continue
			}
			f.push(entry{node: n, parent: e.node})
			if o.parentRule == ParentLastRecorded {
				parent[n] = e.node
			}
		}
	}

	return res, nil
}

// reconstruct walks parent pointers from goal back to start. A node without
// a parent that is not start means the pointers are inconsistent.
func reconstruct(parent map[string]string, start, goal string) ([]string, bool) {
	path := []string{goal}
	for cur := goal; cur != start; {
		p, ok := parent[cur]
		if !ok || len(path) > len(parent)+1 {
			return nil, false
		}
		path = append(path, p)
		cur = p
	}
	slices.Reverse(path)
	return path, true
}
