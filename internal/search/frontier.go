package search

// entry is one frontier item: a node plus the node that discovered it.
type entry struct {
	node   string
	parent string
	root   bool
}

type frontier interface {
	push(e entry)
	pop() entry
	empty() bool
}

// stack is the LIFO frontier used by depth-first search.
type stack struct {
	items []entry
}

func (s *stack) push(e entry) { s.items = append(s.items, e) }

func (s *stack) pop() entry {
	last := len(s.items) - 1
	e := s.items[last]
	s.items = s.items[:last]
	return e
}

func (s *stack) empty() bool { return len(s.items) == 0 }

// queue is the FIFO frontier used by breadth-first search. The head index
// avoids reslicing on every dequeue; storage is compacted once it is mostly
// consumed.
type queue struct {
	items []entry
	head  int
}

func (q *queue) push(e entry) { q.items = append(q.items, e) }

func (q *queue) pop() entry {
	e := q.items[q.head]
	q.head++
	if q.head > 64 && q.head*2 > len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return e
}

func (q *queue) empty() bool { return q.head >= len(q.items) }

func newFrontier(s Strategy) frontier {
	if s == DepthFirst {
		return &stack{}
	}
	return &queue{}
}
