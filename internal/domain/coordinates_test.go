package domain

import (
	"errors"
	"math"
	"testing"
)

func TestCoordinatesValidate(t *testing.T) {
	tests := []struct {
		name    string
		c       Coordinates
		wantErr bool
	}{
		{"origin", Coordinates{Lat: 0, Lon: 0}, false},
		{"dumaguete", Coordinates{Lat: 9.301199, Lon: 123.29617}, false},
		{"north pole", Coordinates{Lat: 90, Lon: 180}, false},
		{"lat too high", Coordinates{Lat: 90.5, Lon: 0}, true},
		{"lon too low", Coordinates{Lat: 0, Lon: -180.1}, true},
		{"nan", Coordinates{Lat: math.NaN(), Lon: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
