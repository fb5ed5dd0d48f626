// Package api exposes the interactions gateway over HTTP: commands in,
// rendered messages out, plus leaderboard queries.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pocketarcade/pocketarcade/internal/api/apierr"
	"github.com/pocketarcade/pocketarcade/internal/api/handler"
	"github.com/pocketarcade/pocketarcade/internal/engine"
	"github.com/pocketarcade/pocketarcade/internal/middleware"
	"github.com/pocketarcade/pocketarcade/internal/services/leaderboard"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Engine      *engine.Engine
	Leaderboard *leaderboard.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	arcadeHandler := handler.NewArcadeHandler(cfg.Engine)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.Leaderboard)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, panicHandler))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/commands", arcadeHandler.Commands).Methods(http.MethodGet)
	api.HandleFunc("/commands/{name}", arcadeHandler.Command).Methods(http.MethodPost)
	api.HandleFunc("/interactions", arcadeHandler.Interaction).Methods(http.MethodPost)
	api.HandleFunc("/leaderboard/{game}", leaderboardHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
