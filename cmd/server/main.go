package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"proximity-route-service/internal/api"
	"proximity-route-service/internal/app"
	"proximity-route-service/internal/config"
)

// main is the application composition root.
// It loads the registry, builds the proximity graph once and serves searches over HTTP.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(api.Deps{
		Graph:     a.Graph,
		Locations: a.Locations,
		Finder:    a.Finder,
		Origin:    a.Finder.Origin(),
		Metrics:   a.Metrics,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf(
		"Server listening addr=%s source=%s origin=%s strategy=%s threshold_km=%g",
		addr, cfg.Registry.Source, a.Finder.Origin(), a.Finder.Strategy(), a.Graph.Threshold(),
	)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	log.Fatal(srv.ListenAndServe())
}
