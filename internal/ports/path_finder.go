package ports

import (
	"context"

	"proximity-route-service/internal/search"
)

// Route query handled by a PathFinder. Empty From and Strategy fall back to
// the finder's configured defaults.
type PathQuery struct {
	From     string
	To       string
	Strategy string
}

// Contract used by the HTTP and CLI surfaces to run searches against the
// application's proximity graph.
type PathFinder interface {
	Find(ctx context.Context, q PathQuery) (search.Result, error)
	FindMany(ctx context.Context, from string, strategy string, destinations []string) ([]search.Result, error)
}
