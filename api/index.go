package handler

import (
	"net/http"

	"visittracker/pkg/adapters/handler"
	"visittracker/pkg/adapters/repository/sqlite"
	"visittracker/pkg/config"
	"visittracker/pkg/core/services"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	// Note: on Vercel the /tmp database is ephemeral and cold starts can
	// run concurrently; schema creation is idempotent so racing it is fine.
	// Set a libsql/Turso DATABASE_URL for durable storage.
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		// Log but don't fatal, let internal error happen on request if crucial
		panic(err)
	}

	service := services.NewAnalyticsService(repo)
	handler.InitMetrics()
	mux = handler.NewRouter(service)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
