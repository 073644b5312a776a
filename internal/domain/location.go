package domain

// A named point in the registry. IDs are opaque and unique within a registry.
type Location struct {
	ID          string
	Coordinates Coordinates
}
