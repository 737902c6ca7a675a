package main

import (
	"log"
	"net/http"
	"time"

	"visittracker/pkg/adapters/handler"
	"visittracker/pkg/adapters/repository/sqlite"
	"visittracker/pkg/config"
	"visittracker/pkg/core/services"
)

func main() {
	cfg := config.Load()

	// Initialize Repository
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open visit store: %v", err)
	}

	// Initialize Service
	service := services.NewAnalyticsService(repo)

	handler.InitMetrics()

	// Initialize Router
	mux := handler.NewRouter(service)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("Server starting on port %s (db %s)", cfg.Port, cfg.DatabaseURL)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
