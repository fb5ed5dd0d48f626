package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pocketarcade/pocketarcade/internal/api/apierr"
	"github.com/pocketarcade/pocketarcade/internal/api/response"
	"github.com/pocketarcade/pocketarcade/internal/command"
	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/services/leaderboard"
)

// LeaderboardHandler handles standings queries
type LeaderboardHandler struct {
	service *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(service *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// Get handles GET /api/leaderboard/{game}. Puzzle queries accept size,
// difficulty, and sort query parameters; every query accepts page.
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	game := mux.Vars(r)["game"]
	query := r.URL.Query()

	page := 0
	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("page must be a non-negative integer"))
			return
		}
		page = parsed
	}

	filters, err := leaderboard.ParseFilters(optionTree(game, query.Get("size"), query.Get("sort"), query.Get("difficulty")))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if filters.Game == model.KindSlidingPuzzle {
		standings, more, err := h.service.PuzzleStandings(r.Context(), filters, page)
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusOK, response.PuzzleLeaderboard(game, standings, page, h.service.PageSize(), more))
		return
	}

	standings, more, err := h.service.MatchStandings(r.Context(), filters.Game, page)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MatchLeaderboard(game, standings, page, h.service.PageSize(), more))
}

// optionTree rebuilds the command option tree the filter parser expects
// from flat query parameters
func optionTree(game, size, sort, difficulty string) []command.Option {
	if model.GameKind(game) != model.KindSlidingPuzzle {
		return []command.Option{{Name: game}}
	}

	if size == "" {
		size = "3"
	}
	sizeOpt := command.Option{Name: size + "x" + size}
	if sort != "" {
		sizeOpt.Options = append(sizeOpt.Options, command.Option{Name: "sort", Value: sort})
	}
	if difficulty != "" {
		sizeOpt.Options = append(sizeOpt.Options, command.Option{Name: "difficulty", Value: difficulty})
	}

	return []command.Option{{Name: game, Options: []command.Option{sizeOpt}}}
}
