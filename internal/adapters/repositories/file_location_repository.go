package repositories

import (
	"context"

	"proximity-route-service/internal/domain"
)

// Seed-file-backed implementation of the LocationRepository port.
// The file is re-read on every call; callers load the registry once at startup.
type FileLocationRepository struct{ Path string }

func NewFileLocationRepository(path string) *FileLocationRepository {
	return &FileLocationRepository{Path: path}
}

func (f *FileLocationRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadSeedFile(f.Path)
}
