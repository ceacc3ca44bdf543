package handlers

import (
	"log"
	"net/http"

	"github.com/nuevas-energias/hrcore/internal/api"
)

// handleCreateResolution handles POST /api/resolutions
func (h *APIHandler) handleCreateResolution(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req api.CreateResolutionRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := api.Validate(req); fieldErrors != nil {
		api.RespondValidationError(w, fieldErrors)
		return
	}

	resolution, err := h.incidentService.Resolve(req.GroupID, req.Description, principal.UserID)
	if err != nil {
		h.respondGroupWriteError(w, err, groupWriteResolve)
		return
	}

	log.Printf("APIHandler: User '%s' resolved incident group %s", principal.Username, req.GroupID)
	api.RespondJSON(w, http.StatusCreated, resolution)
}
