package search

import (
	"fmt"
	"strings"

	"proximity-route-service/internal/domain"
)

// Strategy selects the frontier discipline of a traversal.
type Strategy int

const (
	// BreadthFirst expands nodes in FIFO order and finds a minimum node-count path.
	BreadthFirst Strategy = iota
	// DepthFirst expands nodes in LIFO order; the path it returns need not be minimal.
	DepthFirst
)

func (s Strategy) String() string {
	switch s {
	case BreadthFirst:
		return "BFS"
	case DepthFirst:
		return "DFS"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy accepts the short and long spellings of both strategies.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bfs", "breadth-first", "breadthfirst", "breadth_first":
		return BreadthFirst, nil
	case "dfs", "depth-first", "depthfirst", "depth_first":
		return DepthFirst, nil
	}
	return 0, fmt.Errorf("parse strategy %q: %w", s, domain.ErrInvalidStrategy)
}

// MarshalText encodes the strategy as "bfs" or "dfs".
func (s Strategy) MarshalText() ([]byte, error) {
	switch s {
	case BreadthFirst, DepthFirst:
		return []byte(strings.ToLower(s.String())), nil
	}
	return nil, fmt.Errorf("marshal strategy %d: %w", int(s), domain.ErrInvalidStrategy)
}

// UnmarshalText accepts any spelling ParseStrategy does.
func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
