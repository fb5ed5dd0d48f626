package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pocketarcade/pocketarcade/internal/api/apierr"
	"github.com/pocketarcade/pocketarcade/internal/api/request"
	"github.com/pocketarcade/pocketarcade/internal/api/response"
	"github.com/pocketarcade/pocketarcade/internal/command"
	"github.com/pocketarcade/pocketarcade/internal/engine"
	"github.com/pocketarcade/pocketarcade/internal/games"
	"github.com/pocketarcade/pocketarcade/internal/model"
)

// ArcadeHandler handles command and interaction endpoints
type ArcadeHandler struct {
	engine *engine.Engine
}

// NewArcadeHandler creates a new arcade handler
func NewArcadeHandler(engine *engine.Engine) *ArcadeHandler {
	return &ArcadeHandler{engine: engine}
}

// Command handles POST /api/commands/{name}
func (h *ArcadeHandler) Command(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req request.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid JSON body"))
		return
	}
	if req.Player == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("player is required"))
		return
	}
	if _, ok := command.ByName(name); !ok {
		apierr.WriteError(w, fmt.Errorf("%w: %q", model.ErrUnknownGame, name))
		return
	}

	msg, err := h.engine.HandleCommand(r.Context(), name, games.CommandRequest{
		Player:  model.PlayerID(req.Player),
		Options: req.Options,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageFromRender(msg))
}

// Interaction handles POST /api/interactions
func (h *ArcadeHandler) Interaction(w http.ResponseWriter, r *http.Request) {
	var req request.InteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid JSON body"))
		return
	}
	if req.Player == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("player is required"))
		return
	}
	if req.ControlID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("control_id is required"))
		return
	}

	msg, err := h.engine.HandleComponent(r.Context(), games.ComponentEvent{
		ControlID:      req.ControlID,
		Player:         model.PlayerID(req.Player),
		MessageContent: req.MessageContent,
		MessageLink:    req.MessageLink,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageFromRender(msg))
}

// Commands handles GET /api/commands: the catalog the outer platform
// registers
func (h *ArcadeHandler) Commands(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, command.Catalog())
}
