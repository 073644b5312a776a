package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"proximity-route-service/internal/domain"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		// The summary has already been printed for an unreachable destination.
		if !errors.Is(err, domain.ErrNoPathFound) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
