package domain

import "errors"

var (
	// ErrUnknownLocation is returned when an identifier is absent from the registry or graph.
	ErrUnknownLocation = errors.New("unknown location")

	// ErrInvalidDestination is returned when a search goal is not a node of the graph.
	ErrInvalidDestination = errors.New("invalid destination")

	// ErrInvalidStrategy is returned for an unrecognized traversal strategy name.
	ErrInvalidStrategy = errors.New("invalid search strategy")

	// ErrInvalidConfig marks malformed configuration detected at construction time.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoPathFound lets surfaces that need an error value report an exhausted search.
	ErrNoPathFound = errors.New("no path found")
)
